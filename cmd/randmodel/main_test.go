package main

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"randmodel/internal/config"
)

func TestRunGenerateBatch(t *testing.T) {
	var out strings.Builder
	err := runGenerate(&out, strings.NewReader(""), 5, false, 53, 3, config.DefaultGeneratorRate)
	if err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	for i, line := range lines {
		v, err := decimal.NewFromString(line)
		if err != nil {
			t.Errorf("line %d %q is not a decimal: %v", i, line, err)
			continue
		}
		if v.Sign() <= 0 {
			t.Errorf("line %d = %s, want a positive variate", i, v)
		}
	}
}

func TestRunGenerateDeterminism(t *testing.T) {
	render := func() string {
		var out strings.Builder
		if err := runGenerate(&out, strings.NewReader(""), 10, false, 53, 3, config.DefaultGeneratorRate); err != nil {
			t.Fatalf("runGenerate() error = %v", err)
		}
		return out.String()
	}
	if first, second := render(), render(); first != second {
		t.Error("same seed produced different output")
	}

	var other strings.Builder
	if err := runGenerate(&other, strings.NewReader(""), 10, false, 54, 3, config.DefaultGeneratorRate); err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}
	if other.String() == render() {
		t.Error("different seeds produced identical output")
	}
}

func TestRunGenerateInfinite(t *testing.T) {
	var out strings.Builder
	// first batch prints immediately, then one batch per input line, and
	// end of input terminates cleanly
	err := runGenerate(&out, strings.NewReader("\n\n"), 2, true, 53, 3, config.DefaultGeneratorRate)
	if err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6 for three batches of two", len(lines))
	}
}

func TestRunGenerateRejectsBadRate(t *testing.T) {
	if err := runGenerate(io.Discard, strings.NewReader(""), 1, false, 53, 3, "fast"); err == nil {
		t.Fatal("runGenerate() accepted a malformed rate")
	}
	if err := runGenerate(io.Discard, strings.NewReader(""), 1, false, 53, 0, config.DefaultGeneratorRate); err == nil {
		t.Fatal("runGenerate() accepted a zero shape")
	}
}
