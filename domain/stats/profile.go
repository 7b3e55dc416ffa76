package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"randmodel/domain/sample"
)

// Profile carries the float-precision descriptive shape of a sample for
// reporting. The closed-form pipeline math stays decimal; the profile
// is diagnostic output only.
type Profile struct {
	Size     int     `json:"size"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Outliers int     `json:"outliers"`
}

// BuildProfile computes the descriptive profile of a sample.
func BuildProfile(s *sample.Sample) (*Profile, error) {
	data := s.Float64s()

	mean, err := mstats.Mean(data)
	if err != nil {
		return nil, err
	}

	stdDev, err := mstats.StandardDeviationSample(data)
	if err != nil {
		return nil, err
	}

	min, err := mstats.Min(data)
	if err != nil {
		return nil, err
	}

	max, err := mstats.Max(data)
	if err != nil {
		return nil, err
	}

	median, err := mstats.Median(data)
	if err != nil {
		return nil, err
	}

	// Quartiles for IQR-based outlier detection
	q25, err := mstats.Percentile(data, 25)
	if err != nil {
		return nil, err
	}

	q75, err := mstats.Percentile(data, 75)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Size:     len(data),
		Mean:     mean,
		StdDev:   stdDev,
		Min:      min,
		Max:      max,
		Median:   median,
		Q25:      q25,
		Q75:      q75,
		Skewness: calculateSkewness(data, mean, stdDev),
		Kurtosis: calculateKurtosis(data, mean, stdDev),
		Outliers: countOutliers(data, q25, q75),
	}, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0

	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}

	skewness := sumCubedDeviations / n

	// Bias correction for sample skewness
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	skewness *= correction

	return skewness
}

// calculateKurtosis computes sample kurtosis (total, not excess)
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumFourthDeviations := 0.0

	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourthDeviations += deviation * deviation * deviation * deviation
	}

	kurtosis := sumFourthDeviations / n
	excessKurtosis := kurtosis - 3

	// Bias correction for sample excess kurtosis
	correction := (n - 1) / ((n - 2) * (n - 3))
	excessKurtosis = excessKurtosis*correction + 6/(n+1)

	return excessKurtosis + 3
}

// countOutliers identifies outliers using the IQR method
func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}

	return outlierCount
}
