package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const sheetName = "Standings"

type XLSXExporter struct{}

var _ Exporter = XLSXExporter{}

func (XLSXExporter) Export(s Standings, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zap.S().Errorf("close excel file failed: %v", err)
		}
	}()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet failed: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet failed: %w", err)
	}

	headers := header(s.Problems)
	if err := writeHeader(f, headers); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	for i, row := range s.Rows {
		values := cells(s.Problems, row)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("get cell name failed: %w", err)
		}
		rowData := make([]interface{}, len(values))
		for j, v := range values {
			rowData[j] = v
		}
		// Totals are stored as numbers so the sheet can be sorted.
		rowData[4] = row.Total
		if err := f.SetSheetRow(sheetName, cell, &rowData); err != nil {
			return fmt.Errorf("set row %d failed: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel file failed: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, headers []string) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style failed: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("get cell name failed: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("set header value failed: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style failed: %w", err)
		}
	}

	widths := map[string]float64{"A": 8, "B": 20, "C": 25, "D": 10, "E": 10, "F": 12}
	for col, width := range widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width failed: %w", err)
		}
	}
	return nil
}
