package resolver

import (
	"strconv"
	"testing"
)

func rankFixture(t *testing.T, unofficial ...string) []UserRow {
	t.Helper()
	ds := Dataset{
		Users: []User{
			{ID: 1, Username: "ghost"},
			{ID: 2, Username: "ann"},
			{ID: 3, Username: "ben"},
			{ID: 4, Username: "cat"},
			{ID: 5, Username: "dan"},
		},
		Problems: []Problem{{ID: 1, Points: 100}, {ID: 2, Points: 100}},
		Submissions: []Submission{
			{ID: 1, ProblemID: 1, UserID: 1, Time: 10, Points: 100},
			{ID: 2, ProblemID: 2, UserID: 1, Time: 20, Points: 100},
			{ID: 3, ProblemID: 1, UserID: 2, Time: 60, Points: 100},
			{ID: 4, ProblemID: 1, UserID: 3, Time: 60, Points: 100},
			{ID: 5, ProblemID: 1, UserID: 4, Time: 90, Points: 100},
		},
	}
	idx, err := NewIndex(ds)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	set := make(map[string]struct{})
	for _, name := range unofficial {
		set[name] = struct{}{}
	}
	return Rank(Replay(idx, idx.Submissions(), DefaultPolicy()), idx.Problems(), set)
}

func TestRankTiesShareRank(t *testing.T) {
	rows := rankFixture(t)
	want := []struct {
		username string
		rank     string
	}{
		{"ghost", "1"},
		{"ann", "2"},
		{"ben", "2"},
		{"cat", "4"},
		{"dan", "5"},
	}
	for i, w := range want {
		if rows[i].Username != w.username || rows[i].Rank != w.rank {
			t.Errorf("row %d = %s rank %q, want %s rank %q", i, rows[i].Username, rows[i].Rank, w.username, w.rank)
		}
	}
}

func TestRankUnofficialDoesNotTakeRankOne(t *testing.T) {
	rows := rankFixture(t, "ghost")
	if rows[0].Username != "ghost" {
		t.Fatalf("top row = %s, want ghost to stay visible on top", rows[0].Username)
	}
	if rows[0].Official || rows[0].Rank == "1" {
		t.Errorf("ghost row = %+v, must not be official rank 1", rows[0])
	}
	if rows[1].Rank != "1" || rows[2].Rank != "1" {
		t.Errorf("ann/ben ranks = %q/%q, want 1/1", rows[1].Rank, rows[2].Rank)
	}
	if rows[3].Rank != "3" || rows[4].Rank != "4" {
		t.Errorf("cat/dan ranks = %q/%q, want 3/4", rows[3].Rank, rows[4].Rank)
	}
}

func TestRankUnofficialInTheMiddle(t *testing.T) {
	rows := rankFixture(t, "ben")
	if rows[2].Username != "ben" || rows[2].Rank != "2" || rows[2].Official {
		t.Errorf("ben row = %+v, want cosmetic rank 2", rows[2])
	}
	if rows[3].Rank != "3" {
		t.Errorf("cat rank = %q, want 3", rows[3].Rank)
	}
}

func TestRankTieInvariantOnRandomContests(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		ds := randomDataset(seed, 12, 3, 90)
		idx, err := NewIndex(ds)
		if err != nil {
			t.Fatalf("NewIndex() error = %v", err)
		}
		rows := Rank(Replay(idx, idx.Submissions(), DefaultPolicy()), idx.Problems(), nil)
		for i := 1; i < len(rows); i++ {
			prev, cur := rows[i-1], rows[i]
			same := prev.Total == cur.Total && prev.Penalty == cur.Penalty
			if same != (prev.Rank == cur.Rank) {
				t.Fatalf("seed %d rows %d/%d: totals %v/%v penalties %v/%v ranks %q/%q", seed, i-1, i, prev.Total, cur.Total, prev.Penalty, cur.Penalty, prev.Rank, cur.Rank)
			}
			p, _ := strconv.Atoi(prev.Rank)
			c, _ := strconv.Atoi(cur.Rank)
			if c < p {
				t.Fatalf("seed %d: rank decreased from %d to %d", seed, p, c)
			}
		}
	}
}

func TestProblemCode(t *testing.T) {
	tests := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"}
	for index, want := range tests {
		if got := ProblemCode(index); got != want {
			t.Errorf("ProblemCode(%d) = %q, want %q", index, got, want)
		}
	}
}

func TestFormatPenalty(t *testing.T) {
	if got := FormatPenalty(3725); got != "01:02:05" {
		t.Errorf("FormatPenalty(3725) = %q", got)
	}
	if got := FormatPenalty(0); got != "00:00:00" {
		t.Errorf("FormatPenalty(0) = %q", got)
	}
}
