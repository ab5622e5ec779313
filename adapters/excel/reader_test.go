package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"langtrends/domain/core"
	"langtrends/domain/langreport"
	"langtrends/internal"
	"langtrends/internal/errors"
	"langtrends/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readerFor(path string) *DataReader {
	cfg := DefaultExcelConfig()
	cfg.FilePath = path
	return NewDataReader(cfg, internal.Discard())
}

func TestLoad_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, testkit.SampleReport().WriteXLSX(path))

	wb, err := readerFor(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, path, wb.SourcePath)
	assert.Equal(t, []string{"country", "pop1_2020", "pop2_2020", "pop1_2021", "pop2_2021", "pop1_2025", "notes"}, wb.Data.Headers)
	require.Len(t, wb.Data.Rows, 5)
	assert.Equal(t, "Brazil", wb.Data.Rows[0][0])

	require.NotNil(t, wb.Overview)
	assert.Equal(t, []string{"Metric", "Value"}, wb.Overview.Headers)
	assert.Len(t, wb.Overview.Rows, 2)

	rep := langreport.Transform(&wb.Data)
	assert.Len(t, rep.Tidy, 21)
	assert.Equal(t, 14, rep.Overall["English"])
	assert.Equal(t, 4, rep.ByYear[langreport.LanguageYear{Language: "English", Year: 2021}])
	assert.Equal(t, []string{"English", "French"}, langreport.TopLanguages(rep.Overall, 2))
}

func TestLoad_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, testkit.SampleReport().WriteCSV(path))

	wb, err := readerFor(path).Load(context.Background())
	require.NoError(t, err)

	assert.Nil(t, wb.Overview)
	assert.Equal(t, "country", wb.Data.Headers[0])
	assert.Len(t, langreport.Transform(&wb.Data).Tidy, 21)
}

func TestLoad_MissingOverviewIsNotFatal(t *testing.T) {
	fx := testkit.SampleReport()
	fx.OverviewSheet = ""
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, fx.WriteXLSX(path))

	wb, err := readerFor(path).Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, wb.Overview)
}

func TestLoad_SourceUnavailable(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.xlsx")
	require.NoError(t, os.WriteFile(garbage, []byte("not a zip"), 0o644))

	legacy := filepath.Join(dir, "legacy.xls")
	require.NoError(t, os.WriteFile(legacy, []byte("old"), 0o644))

	wrongSheet := filepath.Join(dir, "wrong.xlsx")
	fx := testkit.SampleReport()
	fx.DataSheet = "Sheet2"
	require.NoError(t, fx.WriteXLSX(wrongSheet))

	tests := []struct {
		name string
		path string
		is   error
	}{
		{"missing file", filepath.Join(dir, "missing.xlsx"), os.ErrNotExist},
		{"corrupt workbook", garbage, core.ErrSourceUnavailable},
		{"unsupported extension", legacy, core.ErrUnsupportedFormat},
		{"missing data sheet", wrongSheet, core.ErrSheetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readerFor(tt.path).Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrSourceUnavailable)
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, errors.CodeSourceUnavailable, errors.GetCode(err))
		})
	}
}

func TestLoad_NoHeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banner_only.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Data by country"))
	require.NoError(t, f.SetCellValue("Data by country", "A1", "banner"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := readerFor(path).Load(context.Background())
	assert.ErrorIs(t, err, core.ErrNoHeader)
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := readerFor("report.xlsx").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessRows(t *testing.T) {
	r := readerFor("x.csv")
	rows := [][]string{
		{" Country ", "", " pop1_2020 "},
		{" A ", "x", " English "},
		{"", " ", ""},
		{"B"},
	}

	data, err := r.processRows(rows, 0, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"country", "Column_2", "pop1_2020"}, data.Headers)
	assert.Equal(t, [][]string{{"A", "x", "English"}, {"B"}}, data.Rows)

	plain, err := r.processRows(rows, 0, false)
	require.NoError(t, err)
	assert.Equal(t, "Country", plain.Headers[0])

	_, err = r.processRows(rows, 4, true)
	assert.ErrorIs(t, err, core.ErrNoHeader)
}
