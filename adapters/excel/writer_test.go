package excel

import (
	"context"
	"path/filepath"
	"testing"

	"langtrends/domain/core"
	"langtrends/domain/langreport"
	"langtrends/internal"
	"langtrends/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriter_Export(t *testing.T) {
	rep := langreport.Transform(&langreport.RawTable{
		Headers: []string{"country", "pop1_2020", "pop2_2020", "pop1_2021"},
		Rows: [][]string{
			{"A", "Spanish", "French", "Spanish"},
			{"B", "Spanish", "", "English"},
		},
	})
	bundle := &ports.ReportBundle{RunID: core.NewRunID(), Report: rep}

	dir := t.TempDir()
	w := NewWriter(DefaultWriterConfig(dir), internal.Discard())
	paths, err := w.Export(context.Background(), bundle)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "language_report_tidy.xlsx")}, paths)
	assert.Equal(t, "xlsx", w.Name())

	f, err := excelize.OpenFile(paths[0])
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"tidy", "by_year", "overall"}, f.GetSheetList())

	tidy, err := f.GetRows("tidy")
	require.NoError(t, err)
	require.Len(t, tidy, 6)
	assert.Equal(t, []string{"country", "year", "slot", "rank", "language"}, tidy[0])
	assert.Equal(t, []string{"A", "2020", "1", "pop1", "Spanish"}, tidy[1])

	byYear, err := f.GetRows("by_year")
	require.NoError(t, err)
	assert.Equal(t, []string{"language", "2020", "2021", "2022", "2023", "2024", "2025"}, byYear[0])
	assert.Equal(t, []string{"Spanish", "2", "1", "0", "0", "0", "0"}, byYear[1])

	overall, err := f.GetRows("overall")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Spanish", "3"}, overall[1])
}

func TestWriter_EmptyReport(t *testing.T) {
	rep := langreport.Transform(&langreport.RawTable{Headers: []string{"country", "notes"}})

	w := NewWriter(DefaultWriterConfig(t.TempDir()), internal.Discard())
	paths, err := w.Export(context.Background(), &ports.ReportBundle{Report: rep})
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}
