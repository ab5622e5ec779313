package trend

import (
	"math"

	"langtrends/domain/langreport"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// flatSlope is the absolute slope (countries per year) under which a series counts as flat.
const flatSlope = 0.25

// Analyzer summarizes per-year language series
type Analyzer struct {
	years []float64
}

// NewAnalyzer creates an analyzer over the report years
func NewAnalyzer() *Analyzer {
	ys := langreport.Years()
	years := make([]float64, len(ys))
	for i, y := range ys {
		years[i] = float64(y)
	}
	return &Analyzer{years: years}
}

// Analyze returns one trend per language, in the order given.
func (a *Analyzer) Analyze(by langreport.ByYear, languages []string) ([]langreport.Trend, error) {
	out := make([]langreport.Trend, 0, len(languages))
	for _, lang := range languages {
		t, err := a.analyzeSeries(lang, by.Series(lang))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (a *Analyzer) analyzeSeries(lang string, counts []int) (langreport.Trend, error) {
	t := langreport.Trend{Language: lang, Counts: counts, Direction: langreport.Flat}
	if len(counts) == 0 {
		return t, nil
	}

	data := make([]float64, len(counts))
	for i, c := range counts {
		data[i] = float64(c)
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return t, err
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return t, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return t, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return t, err
	}

	t.Mean = mean
	t.StdDev = stdDev
	t.Min = int(min)
	t.Max = int(max)
	t.Change = counts[len(counts)-1] - counts[0]

	if len(data) >= 2 && len(data) == len(a.years) {
		alpha, beta := stat.LinearRegression(a.years, data, nil, false)
		if !math.IsNaN(beta) {
			t.Slope = beta
			t.Intercept = alpha
		}
	}

	switch {
	case t.Slope > flatSlope:
		t.Direction = langreport.Rising
	case t.Slope < -flatSlope:
		t.Direction = langreport.Falling
	}
	return t, nil
}
