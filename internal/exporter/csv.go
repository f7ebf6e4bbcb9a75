package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

type CSVExporter struct{}

var _ Exporter = CSVExporter{}

func (CSVExporter) Export(s Standings, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header(s.Problems)); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}
	for _, row := range s.Rows {
		if err := csvWriter.Write(cells(s.Problems, row)); err != nil {
			return fmt.Errorf("write row failed: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
