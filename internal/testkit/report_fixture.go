package testkit

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ReportFixture describes a workbook shaped like the published language report:
// an Overview sheet plus a data sheet with one banner row above the header.
type ReportFixture struct {
	DataSheet     string
	OverviewSheet string
	Banner        string
	Headers       []string
	Rows          [][]string
	Overview      [][]string
}

// SampleReport returns a small report covering several years, blank cells and
// columns that are not pop<slot>_<year>.
func SampleReport() ReportFixture {
	return ReportFixture{
		DataSheet:     "Data by country",
		OverviewSheet: "Overview",
		Banner:        "Most popular language to learn, by country",
		Headers:       []string{" Country ", "pop1_2020", "pop2_2020", "pop1_2021", "pop2_2021", "pop1_2025", "notes"},
		Rows: [][]string{
			{"Brazil ", "English", "Spanish", "English", "Spanish", "English", "big market"},
			{"Mexico", "English", "French", "English", "", "English", ""},
			{"Spain", "English", "French", "English", "French", "English", ""},
			{"Japan", "English", "Korean", "English", "Korean", "English", ""},
			{"Colombia", "English", "", "", "", "English", ""},
		},
		Overview: [][]string{
			{"Metric", "Value"},
			{"Countries", "5"},
			{"Years", "2020-2025"},
		},
	}
}

// WriteXLSX saves the fixture as a workbook at path
func (fx ReportFixture) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", fx.DataSheet); err != nil {
		return err
	}
	if err := f.SetCellValue(fx.DataSheet, "A1", fx.Banner); err != nil {
		return err
	}
	if err := setRows(f, fx.DataSheet, 2, append([][]string{fx.Headers}, fx.Rows...)); err != nil {
		return err
	}

	if fx.OverviewSheet != "" {
		if _, err := f.NewSheet(fx.OverviewSheet); err != nil {
			return err
		}
		if err := setRows(f, fx.OverviewSheet, 1, fx.Overview); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// WriteCSV saves the data sheet (banner row included) as CSV at path
func (fx ReportFixture) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	records := append([][]string{{fx.Banner}, fx.Headers}, fx.Rows...)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return file.Close()
}

func setRows(f *excelize.File, sheet string, firstRow int, rows [][]string) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, firstRow+i)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
