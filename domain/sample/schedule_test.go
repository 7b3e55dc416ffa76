package sample

import (
	"errors"
	"testing"

	"randmodel/domain/core"
)

// TestDefaultScheduleValid tests that the shipped ladder passes its own validation
func TestDefaultScheduleValid(t *testing.T) {
	if err := DefaultSchedule.Validate(); err != nil {
		t.Fatalf("DefaultSchedule.Validate() = %v", err)
	}
	if DefaultSchedule.Full() != 300 {
		t.Errorf("DefaultSchedule.Full() = %d, want 300", DefaultSchedule.Full())
	}
	prefixes := DefaultSchedule.Prefixes()
	want := []int{10, 20, 50, 100, 200}
	if len(prefixes) != len(want) {
		t.Fatalf("Prefixes() length = %d, want %d", len(prefixes), len(want))
	}
	for i, n := range want {
		if prefixes[i] != n {
			t.Errorf("Prefixes()[%d] = %d, want %d", i, prefixes[i], n)
		}
	}
}

// TestScheduleValidate tests ladder invariants
func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name     string
		schedule Schedule
		ok       bool
	}{
		{"empty", Schedule{}, false},
		{"single", Schedule{10}, true},
		{"ascending", Schedule{2, 5, 9}, true},
		{"descending", Schedule{10, 5}, false},
		{"duplicate", Schedule{10, 10}, false},
		{"below minimum", Schedule{1, 10}, false},
	}
	for _, test := range tests {
		err := test.schedule.Validate()
		if test.ok && err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
		}
		if !test.ok && !errors.Is(err, core.ErrInvalidSchedule) {
			t.Errorf("%s: expected ErrInvalidSchedule, got %v", test.name, err)
		}
	}
}

// TestScheduleEmptyAccessors tests zero-value behavior
func TestScheduleEmptyAccessors(t *testing.T) {
	var sc Schedule
	if sc.Full() != 0 {
		t.Errorf("empty Full() = %d, want 0", sc.Full())
	}
	if sc.Prefixes() != nil {
		t.Errorf("empty Prefixes() = %v, want nil", sc.Prefixes())
	}
}
