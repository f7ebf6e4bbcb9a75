package resolver

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
)

// UserRow is one line of the ranked scoreboard. Rows are derived from a
// snapshot on every read and never mutated afterwards.
type UserRow struct {
	Rank       string               `json:"rank"`
	Official   bool                 `json:"official"`
	UserID     int64                `json:"userId"`
	Username   string               `json:"username"`
	FullName   string               `json:"fullName"`
	Total      float64              `json:"total"`
	Penalty    float64              `json:"penalty"`
	Points     map[int64]float64    `json:"points"`
	Status     map[int64]Status     `json:"status"`
	ScoreClass map[int64]ScoreClass `json:"scoreClass"`
}

// Rank orders users by total points descending and penalty ascending, user
// id breaking remaining ties. Rank numbers count official users only; an
// official user shares the rank of the previous official user iff total and
// penalty are equal. Unofficial users carry the current rank string, which is
// cosmetic.
func Rank(users map[int64]*UserState, problems []Problem, unofficial map[string]struct{}) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		_, hidden := unofficial[u.Username]
		rows = append(rows, UserRow{
			Official:   !hidden,
			UserID:     u.ID,
			Username:   u.Username,
			FullName:   u.FullName,
			Total:      u.Total(problems),
			Penalty:    u.Penalty,
			Points:     maps.Clone(u.Points),
			Status:     maps.Clone(u.Status),
			ScoreClass: maps.Clone(u.ScoreClass),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		if rows[i].Penalty != rows[j].Penalty {
			return rows[i].Penalty < rows[j].Penalty
		}
		return rows[i].UserID < rows[j].UserID
	})

	var (
		rank, counted int
		lastTotal     float64
		lastPenalty   float64
		haveOfficial  bool
		rankString    string
	)
	for i := range rows {
		if !rows[i].Official {
			rows[i].Rank = rankString
			continue
		}
		counted++
		if !haveOfficial || rows[i].Total != lastTotal || rows[i].Penalty != lastPenalty {
			rank = counted
			lastTotal, lastPenalty = rows[i].Total, rows[i].Penalty
			haveOfficial = true
			rankString = strconv.Itoa(rank)
		}
		rows[i].Rank = rankString
	}
	return rows
}

// ProblemCode returns the spreadsheet-style column code of the problem at
// the given zero-based index: A..Z, AA, AB, ...
func ProblemCode(index int) string {
	var code []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		code = append([]byte{byte('A' + (n-1)%26)}, code...)
	}
	return string(code)
}

// FormatPenalty renders seconds as HH:MM:SS.
func FormatPenalty(seconds float64) string {
	s := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}
