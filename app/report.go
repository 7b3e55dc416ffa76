package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"randmodel/domain/distribution"
	"randmodel/domain/run"
	"randmodel/domain/stats"
)

// ReportData gathers everything the markdown report shows. The
// synthetic fields stay nil when classification ends the run before
// generation.
type ReportData struct {
	Manifest         *run.Manifest
	Full             *stats.Summary
	FullComparison   *stats.Comparison
	Fit              *distribution.ErlangFit
	FitCheck         *distribution.FitCheck
	SourceProfile    *stats.Profile
	SyntheticProfile *stats.Profile
	SourceAC         []decimal.Decimal
	SyntheticAC      []decimal.Decimal
	Correlation      decimal.Decimal
	Artifacts        []string
}

// DetectionLine reproduces the classification verdict printout.
func DetectionLine(family distribution.Family, fit *distribution.ErlangFit) string {
	switch family {
	case distribution.FamilyDeterministic:
		return "Detected deterministic variable"
	case distribution.FamilyErlang:
		if fit != nil {
			return fmt.Sprintf("Detected erlang-%d distribution", fit.K)
		}
		return "Detected erlang distribution"
	case distribution.FamilyExponential:
		return "Detected exponential distribution"
	default:
		return "Detected hyperexponential distribution"
	}
}

// BuildReport renders the run report as markdown.
func BuildReport(data ReportData) (string, error) {
	var b strings.Builder
	m := data.Manifest

	b.WriteString("# Sequence analysis report\n\n")
	fmt.Fprintf(&b, "Run `%s`, seed %d, created %s.\n\n",
		m.RunID, m.Seed, m.CreatedAt.Time().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Source: `%s`, %d values, sha256 `%s`.\n\n",
		m.SourcePath, data.Full.Size(), m.SourceDigest)

	b.WriteString("## Classification\n\n")
	fmt.Fprintf(&b, "%s.\n", DetectionLine(m.Family, data.Fit))
	if data.Fit != nil {
		fmt.Fprintf(&b, "\n- Parameter k: %s (rounded up to %d)\n", data.Fit.RawShape, data.Fit.K)
		fmt.Fprintf(&b, "- Parameter a: %s\n", data.Fit.Rate)
	}
	b.WriteString("\n")

	if err := writeStatisticsSection(&b, data); err != nil {
		return "", err
	}
	writeAutocorrelationSection(&b, data)
	writeProfileSection(&b, data)
	writeFitCheckSection(&b, data)

	if data.FullComparison != nil {
		b.WriteString("## Correlation\n\n")
		fmt.Fprintf(&b, "Correlation from generator: %s\n\n", data.Correlation)
	}

	if len(data.Artifacts) > 0 {
		b.WriteString("## Artifacts\n\n")
		for _, name := range data.Artifacts {
			fmt.Fprintf(&b, "- `%s`\n", name)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func writeStatisticsSection(b *strings.Builder, data ReportData) error {
	b.WriteString("## Statistics, full size\n\n")

	if data.FullComparison == nil {
		b.WriteString("| statistic | source |\n|---|---|\n")
		for _, st := range statisticRows() {
			v, err := st.value(data.Full)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "| %s | %s |\n", st.name, v)
		}
		b.WriteString("\n")
		return nil
	}

	b.WriteString("| statistic | source | synthetic | relative, % |\n|---|---|---|---|\n")
	for _, st := range statisticRows() {
		src, err := st.value(data.Full)
		if err != nil {
			return err
		}
		syn, err := st.value(data.FullComparison.Current())
		if err != nil {
			return err
		}
		rel, err := st.relative(data.FullComparison)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", st.name, src, syn, rel)
	}
	b.WriteString("\n")
	return nil
}

func writeAutocorrelationSection(b *strings.Builder, data ReportData) {
	if len(data.SourceAC) == 0 {
		return
	}
	b.WriteString("## Autocorrelation\n\n")

	if len(data.SyntheticAC) == 0 {
		b.WriteString("| lag | source |\n|---|---|\n")
		for i, v := range data.SourceAC {
			fmt.Fprintf(b, "| %d | %s |\n", i+1, v)
		}
		b.WriteString("\n")
		return
	}

	b.WriteString("| lag | source | synthetic |\n|---|---|---|\n")
	for i, v := range data.SourceAC {
		fmt.Fprintf(b, "| %d | %s | %s |\n", i+1, v, data.SyntheticAC[i])
	}
	b.WriteString("\n")
}

func writeProfileSection(b *strings.Builder, data ReportData) {
	if data.SourceProfile == nil {
		return
	}
	b.WriteString("## Distribution profile\n\n")

	type metric struct {
		name string
		pick func(*stats.Profile) string
	}
	metrics := []metric{
		{"min", func(p *stats.Profile) string { return formatFloat(p.Min) }},
		{"max", func(p *stats.Profile) string { return formatFloat(p.Max) }},
		{"median", func(p *stats.Profile) string { return formatFloat(p.Median) }},
		{"q25", func(p *stats.Profile) string { return formatFloat(p.Q25) }},
		{"q75", func(p *stats.Profile) string { return formatFloat(p.Q75) }},
		{"skewness", func(p *stats.Profile) string { return formatFloat(p.Skewness) }},
		{"kurtosis", func(p *stats.Profile) string { return formatFloat(p.Kurtosis) }},
		{"outliers", func(p *stats.Profile) string { return strconv.Itoa(p.Outliers) }},
	}

	if data.SyntheticProfile == nil {
		b.WriteString("| metric | source |\n|---|---|\n")
		for _, mt := range metrics {
			fmt.Fprintf(b, "| %s | %s |\n", mt.name, mt.pick(data.SourceProfile))
		}
		b.WriteString("\n")
		return
	}

	b.WriteString("| metric | source | synthetic |\n|---|---|---|\n")
	for _, mt := range metrics {
		fmt.Fprintf(b, "| %s | %s | %s |\n",
			mt.name, mt.pick(data.SourceProfile), mt.pick(data.SyntheticProfile))
	}
	b.WriteString("\n")
}

func writeFitCheckSection(b *strings.Builder, data ReportData) {
	if data.FitCheck == nil {
		return
	}
	c := data.FitCheck

	b.WriteString("## Goodness of fit\n\n")
	fmt.Fprintf(b, "Chi-square statistic %.4f over %d bins, %d degrees of freedom, p-value %.4f. ",
		c.Statistic, c.Bins, c.DegreesOfFreedom, c.PValue)
	if c.Acceptable {
		fmt.Fprintf(b, "The fitted distribution is not rejected at significance %.2f.\n\n", c.Alpha)
	} else {
		fmt.Fprintf(b, "The fitted distribution is rejected at significance %.2f.\n\n", c.Alpha)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
