package app

import (
	"strconv"

	"github.com/shopspring/decimal"

	"randmodel/domain/stats"
	"randmodel/internal/errors"
)

// statistic binds one table row to its pair of extractors: the
// absolute value taken from a summary and the percent difference taken
// from a comparison. Table builders walk a fixed, fully resolved list
// of these; each confidence level gets its own entry bound at
// construction, so no row depends on a shared loop variable.
type statistic struct {
	name     string
	value    func(*stats.Summary) (decimal.Decimal, error)
	relative func(*stats.Comparison) (decimal.Decimal, error)
}

func meanStatistic() statistic {
	return statistic{
		name:     "mean",
		value:    func(s *stats.Summary) (decimal.Decimal, error) { return s.Mean(), nil },
		relative: func(c *stats.Comparison) (decimal.Decimal, error) { return c.Mean(), nil },
	}
}

func confidenceStatistic(level stats.ConfidenceLevel) statistic {
	return statistic{
		name:     "confidence " + string(level),
		value:    func(s *stats.Summary) (decimal.Decimal, error) { return s.Confidence(level) },
		relative: func(c *stats.Comparison) (decimal.Decimal, error) { return c.Confidence(level) },
	}
}

func dispersionStatistic() statistic {
	return statistic{
		name:     "dispersion",
		value:    func(s *stats.Summary) (decimal.Decimal, error) { return s.Dispersion(), nil },
		relative: func(c *stats.Comparison) (decimal.Decimal, error) { return c.Dispersion(), nil },
	}
}

func standardDeviationStatistic() statistic {
	return statistic{
		name:     "standard deviation",
		value:    func(s *stats.Summary) (decimal.Decimal, error) { return s.StandardDeviation(), nil },
		relative: func(c *stats.Comparison) (decimal.Decimal, error) { return c.StandardDeviation(), nil },
	}
}

func variationStatistic() statistic {
	return statistic{
		name:     "coefficient of variation",
		value:    func(s *stats.Summary) (decimal.Decimal, error) { return s.CoefficientOfVariation() },
		relative: func(c *stats.Comparison) (decimal.Decimal, error) { return c.CoefficientOfVariation(), nil },
	}
}

// statisticRows is the row order shared by table 1 and table 2.
func statisticRows() []statistic {
	return []statistic{
		meanStatistic(),
		confidenceStatistic(stats.Confidence90),
		confidenceStatistic(stats.Confidence95),
		confidenceStatistic(stats.Confidence99),
		dispersionStatistic(),
		standardDeviationStatistic(),
		variationStatistic(),
	}
}

// BuildTable1 lays out the source sequence statistics: one column per
// schedule size, a value row per statistic, and after each value row a
// shorter row with the prefix-versus-full percent differences.
func BuildTable1(partials []*stats.Comparison, full *stats.Summary) ([][]string, error) {
	all := make([]*stats.Summary, 0, len(partials)+1)
	for _, p := range partials {
		all = append(all, p.Current())
	}
	all = append(all, full)

	rows := [][]string{sizeRow(all)}
	for _, st := range statisticRows() {
		values, err := valueRow(all, st)
		if err != nil {
			return nil, err
		}
		relatives, err := relativeRow(partials, st)
		if err != nil {
			return nil, err
		}
		rows = append(rows, values, relatives)
	}

	return rows, nil
}

// BuildTable2 lays out the synthetic sequence statistics: one column
// per schedule size, each compared against the source statistics of
// the same size, value and percent rows alternating at full width.
func BuildTable2(comparisons []*stats.Comparison) ([][]string, error) {
	currents := make([]*stats.Summary, len(comparisons))
	for i, c := range comparisons {
		currents[i] = c.Current()
	}

	rows := [][]string{sizeRow(currents)}
	for _, st := range statisticRows() {
		values, err := valueRow(currents, st)
		if err != nil {
			return nil, err
		}
		relatives, err := relativeRow(comparisons, st)
		if err != nil {
			return nil, err
		}
		rows = append(rows, values, relatives)
	}

	return rows, nil
}

// BuildTable3 lays out the correlograms: a lag header starting at 1,
// the source coefficients, the synthetic coefficients, and the percent
// differences against the source.
func BuildTable3(source, synthetic []decimal.Decimal) ([][]string, error) {
	if len(source) != len(synthetic) {
		return nil, errors.InvalidInput("correlogram lengths differ")
	}

	header := make([]string, len(source))
	relatives := make([]string, len(source))
	for i := range source {
		header[i] = strconv.Itoa(i + 1)
		r, err := stats.Relative(synthetic[i], source[i])
		if err != nil {
			return nil, errors.Wrapf(err, "relative autocorrelation at lag %d", i+1)
		}
		relatives[i] = r.String()
	}

	return [][]string{
		header,
		decimalRow(source),
		decimalRow(synthetic),
		relatives,
	}, nil
}

func sizeRow(summaries []*stats.Summary) []string {
	row := make([]string, len(summaries))
	for i, s := range summaries {
		row[i] = strconv.Itoa(s.Size())
	}
	return row
}

func valueRow(summaries []*stats.Summary, st statistic) ([]string, error) {
	row := make([]string, len(summaries))
	for i, s := range summaries {
		v, err := st.value(s)
		if err != nil {
			return nil, errors.Wrapf(err, "%s for size %d", st.name, s.Size())
		}
		row[i] = v.String()
	}
	return row, nil
}

func relativeRow(comparisons []*stats.Comparison, st statistic) ([]string, error) {
	row := make([]string, len(comparisons))
	for i, c := range comparisons {
		v, err := st.relative(c)
		if err != nil {
			return nil, errors.Wrapf(err, "relative %s for size %d", st.name, c.Current().Size())
		}
		row[i] = v.String()
	}
	return row, nil
}

func decimalRow(values []decimal.Decimal) []string {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = v.String()
	}
	return row
}
