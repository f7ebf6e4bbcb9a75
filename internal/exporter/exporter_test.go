package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/ZJUSCT/resolver/internal/resolver"
	"github.com/xuri/excelize/v2"
)

func sampleStandings() Standings {
	problems := []resolver.Problem{{ID: 1, Name: "Sum", Points: 100}, {ID: 2, Name: "Graph", Points: 100}}
	return Standings{
		Problems: problems,
		Rows: []resolver.UserRow{
			{
				Rank: "1", Official: true, UserID: 2, Username: "bob", FullName: "Bob",
				Total: 150, Penalty: 3723,
				Points: map[int64]float64{1: 100, 2: 50},
				Status: map[int64]resolver.Status{
					1: {Outcome: resolver.Accepted},
					2: {Outcome: resolver.Partial},
				},
			},
			{
				Rank: "1", Official: false, UserID: 1, Username: "ghost", FullName: "Ghost",
				Points: map[int64]float64{1: 0},
				Status: map[int64]resolver.Status{1: {Outcome: resolver.Incorrect, Pending: true}},
			},
		},
	}
}

func TestCSVExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (CSVExporter{}).Export(sampleStandings(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{
		{"Rank", "Username", "Full name", "Official", "Total", "Penalty", "A", "B"},
		{"1", "bob", "Bob", "yes", "150", "01:02:03", "100", "50"},
		{"1", "ghost", "Ghost", "no", "0", "00:00:00", "0?", ""},
	}
	if len(records) != len(want) {
		t.Fatalf("records = %v", records)
	}
	for i := range want {
		for j := range want[i] {
			if records[i][j] != want[i][j] {
				t.Fatalf("record[%d][%d] = %q, want %q", i, j, records[i][j], want[i][j])
			}
		}
	}
}

func TestXLSXExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (XLSXExporter{}).Export(sampleStandings(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 || rows[0][6] != "A" || rows[1][1] != "bob" || rows[1][4] != "150" || rows[2][6] != "0?" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestNew(t *testing.T) {
	for _, typ := range []Type{CSV, XLSX} {
		if _, err := New(typ); err != nil {
			t.Errorf("New(%s) error = %v", typ, err)
		}
	}
	if _, err := New("pdf"); err == nil {
		t.Error("New(pdf) error = nil")
	}
}
