package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ZJUSCT/resolver/internal/resolver"
)

// Standings is a ranked scoreboard ready to be written out.
type Standings struct {
	Problems []resolver.Problem
	Rows     []resolver.UserRow
}

type Exporter interface {
	Export(s Standings, w io.Writer) error
}

type Type string

const (
	CSV  Type = "csv"
	XLSX Type = "xlsx"
)

// New returns the exporter registered under t.
func New(t Type) (Exporter, error) {
	switch t {
	case CSV:
		return CSVExporter{}, nil
	case XLSX:
		return XLSXExporter{}, nil
	}
	return nil, fmt.Errorf("unknown export format %q", t)
}

// ContentType is the MIME type of files produced by t.
func (t Type) ContentType() string {
	if t == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func header(problems []resolver.Problem) []string {
	h := []string{"Rank", "Username", "Full name", "Official", "Total", "Penalty"}
	for i := range problems {
		h = append(h, resolver.ProblemCode(i))
	}
	return h
}

// cells renders one row. Problems the user never attempted are left blank;
// hidden results are marked with a question mark.
func cells(problems []resolver.Problem, row resolver.UserRow) []string {
	official := "yes"
	if !row.Official {
		official = "no"
	}
	out := []string{
		row.Rank,
		row.Username,
		row.FullName,
		official,
		formatPoints(row.Total),
		resolver.FormatPenalty(row.Penalty),
	}
	for _, p := range problems {
		st := row.Status[p.ID]
		cell := ""
		if st.Outcome != resolver.Unattempted {
			cell = formatPoints(row.Points[p.ID])
		}
		if st.Pending {
			cell += "?"
		}
		out = append(out, cell)
	}
	return out
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
