package trend

import (
	"testing"

	"langtrends/domain/langreport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byYear(lang string, counts ...int) langreport.ByYear {
	by := langreport.ByYear{}
	for i, c := range counts {
		if c > 0 {
			by[langreport.LanguageYear{Language: lang, Year: langreport.FirstYear + i}] = c
		}
	}
	return by
}

func TestAnalyze_Rising(t *testing.T) {
	trends, err := NewAnalyzer().Analyze(byYear("Spanish", 1, 2, 3, 4, 5, 6), []string{"Spanish"})
	require.NoError(t, err)
	require.Len(t, trends, 1)

	tr := trends[0]
	assert.Equal(t, "Spanish", tr.Language)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, tr.Counts)
	assert.InDelta(t, 3.5, tr.Mean, 1e-9)
	assert.InDelta(t, 1.0, tr.Slope, 1e-9)
	assert.Equal(t, 1, tr.Min)
	assert.Equal(t, 6, tr.Max)
	assert.Equal(t, 5, tr.Change)
	assert.Equal(t, langreport.Rising, tr.Direction)
}

func TestAnalyze_FallingWithMissingYears(t *testing.T) {
	trends, err := NewAnalyzer().Analyze(byYear("French", 6, 4, 0, 2, 0, 0), []string{"French"})
	require.NoError(t, err)

	tr := trends[0]
	assert.Equal(t, []int{6, 4, 0, 2, 0, 0}, tr.Counts)
	assert.Equal(t, -6, tr.Change)
	assert.Less(t, tr.Slope, 0.0)
	assert.Equal(t, langreport.Falling, tr.Direction)
}

func TestAnalyze_Flat(t *testing.T) {
	trends, err := NewAnalyzer().Analyze(byYear("German", 3, 3, 3, 3, 3, 3), []string{"German"})
	require.NoError(t, err)

	tr := trends[0]
	assert.InDelta(t, 0, tr.Slope, 1e-9)
	assert.InDelta(t, 0, tr.StdDev, 1e-9)
	assert.Equal(t, langreport.Flat, tr.Direction)
}

func TestAnalyze_UnknownLanguageIsAllZero(t *testing.T) {
	trends, err := NewAnalyzer().Analyze(langreport.ByYear{}, []string{"Klingon"})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, trends[0].Counts)
	assert.Equal(t, langreport.Flat, trends[0].Direction)
}
