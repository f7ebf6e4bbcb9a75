package resolver

import (
	"slices"
	"testing"
)

func TestReplayTwoUsers(t *testing.T) {
	idx, err := NewIndex(twoUserDataset())
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	users := Replay(idx, idx.Submissions(), DefaultPolicy())

	alice := users[1]
	if alice.Points[10] != 100 {
		t.Errorf("alice points = %v, want 100", alice.Points[10])
	}
	if alice.LastAlteringByProblem[10] != 3 || alice.LastAltering != 3 {
		t.Errorf("alice last altering = %d/%d, want 3/3", alice.LastAlteringByProblem[10], alice.LastAltering)
	}
	if got := alice.SubmissionsByProblem[10]; !slices.Equal(got, []int64{2, 3}) {
		t.Errorf("alice submissions = %v, want [2 3]", got)
	}
	if alice.Status[10] != (Status{Outcome: Accepted}) || alice.ScoreClass[10] != "score_100" {
		t.Errorf("alice status = %+v class = %q", alice.Status[10], alice.ScoreClass[10])
	}
	// 300 seconds of time plus one incorrect attempt.
	if alice.Penalty != 600 {
		t.Errorf("alice penalty = %v, want 600", alice.Penalty)
	}

	if bob := users[2]; bob.Penalty != 50 {
		t.Errorf("bob penalty = %v, want 50", bob.Penalty)
	}
}

func TestReplayZeroPointBookkeeping(t *testing.T) {
	ds := Dataset{
		Users:    []User{{ID: 1, Username: "u"}},
		Problems: []Problem{{ID: 1, Points: 100}, {ID: 2, Points: 100}},
		Submissions: []Submission{
			{ID: 1, ProblemID: 1, UserID: 1, Time: 10, Points: 0},
			{ID: 2, ProblemID: 1, UserID: 1, Time: 20, Points: 0},
			{ID: 3, ProblemID: 2, UserID: 1, Time: 30, Points: 40},
			{ID: 4, ProblemID: 2, UserID: 1, Time: 40, Points: 0},
			{ID: 5, ProblemID: 2, UserID: 1, Time: 50, Points: 30},
		},
	}
	idx, err := NewIndex(ds)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	u := Replay(idx, idx.Submissions(), DefaultPolicy())[1]

	if got := u.LastAlteringByProblem[1]; got != 2 {
		t.Errorf("problem 1 last altering = %d, want latest zero-point submission 2", got)
	}
	if got := u.LastAlteringByProblem[2]; got != 3 {
		t.Errorf("problem 2 last altering = %d, want 3", got)
	}
	if u.Points[2] != 40 {
		t.Errorf("problem 2 points = %v, want 40", u.Points[2])
	}
	if u.Status[1].Outcome != Incorrect || u.Status[2].Outcome != Partial {
		t.Errorf("outcomes = %v/%v, want incorrect/partial", u.Status[1].Outcome, u.Status[2].Outcome)
	}
	if u.ScoreClass[1] != "score_0" || u.ScoreClass[2] != "score_40_50" {
		t.Errorf("classes = %q/%q", u.ScoreClass[1], u.ScoreClass[2])
	}
	// Wrong attempts on problem 1 never count; problem 2 scored on its first attempt.
	if u.Penalty != 30 {
		t.Errorf("penalty = %v, want 30", u.Penalty)
	}
}

func TestReplayUntouchedProblems(t *testing.T) {
	idx, err := NewIndex(twoUserDataset())
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	users := Replay(idx, nil, DefaultPolicy())
	for id, u := range users {
		if u.Status[10] != (Status{Outcome: Unattempted}) || u.ScoreClass[10] != ScoreClassNone {
			t.Errorf("user %d status = %+v class = %q", id, u.Status[10], u.ScoreClass[10])
		}
		if u.LastAltering != -1 || u.Penalty != 0 {
			t.Errorf("user %d last altering = %d penalty = %v", id, u.LastAltering, u.Penalty)
		}
	}
}

func TestReplayDoesNotMutateInput(t *testing.T) {
	ds := twoUserDataset()
	idx, err := NewIndex(ds)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	subs := []Submission{ds.Submissions[2], ds.Submissions[0], ds.Submissions[1]}
	Replay(idx, subs, DefaultPolicy())
	if subs[0].ID != 3 || subs[1].ID != 1 || subs[2].ID != 2 {
		t.Fatalf("Replay reordered its input: %+v", subs)
	}
}

func TestReplayMonotonicPoints(t *testing.T) {
	ds := randomDataset(7, 5, 3, 80)
	idx, err := NewIndex(ds)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	full := Replay(idx, idx.Submissions(), DefaultPolicy())
	for n := 0; n <= len(idx.Submissions()); n += 7 {
		prefix := Replay(idx, idx.Submissions()[:n], DefaultPolicy())
		for uid, u := range prefix {
			for pid, pts := range u.Points {
				if full[uid].Points[pid] < pts {
					t.Fatalf("prefix %d: user %d problem %d has %v > final %v", n, uid, pid, pts, full[uid].Points[pid])
				}
			}
		}
	}
}

func TestPenaltyPolicies(t *testing.T) {
	ds := Dataset{
		Users:    []User{{ID: 1, Username: "u"}},
		Problems: []Problem{{ID: 1, Points: 100}, {ID: 2, Points: 100}},
		Submissions: []Submission{
			{ID: 1, ProblemID: 1, UserID: 1, Time: 100, Points: 0},
			{ID: 2, ProblemID: 1, UserID: 1, Time: 200, Points: 100},
			{ID: 3, ProblemID: 2, UserID: 1, Time: 500, Points: 60},
		},
	}
	idx, err := NewIndex(ds)
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}

	tests := []struct {
		name   string
		policy PenaltyPolicy
		want   float64
	}{
		{"max with 300", DefaultPenaltyPolicy(), 500 + 300},
		{"max with 1200", PenaltyPolicy{Unit: 1200, Time: PenaltyTimeMax, Accumulation: AccumulateRecompute}, 500 + 1200},
		{"sum with 1200", PenaltyPolicy{Unit: 1200, Time: PenaltyTimeSum, Accumulation: AccumulateRecompute}, 200 + 500 + 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := Replay(idx, idx.Submissions(), Policy{Penalty: tt.policy, Classifier: ThreeBuckets{}})[1]
			if u.Penalty != tt.want {
				t.Errorf("penalty = %v, want %v", u.Penalty, tt.want)
			}
		})
	}
}

func TestPenaltyPolicyValidate(t *testing.T) {
	if err := DefaultPenaltyPolicy().Validate(); err != nil {
		t.Errorf("default policy invalid: %v", err)
	}
	bad := []PenaltyPolicy{
		{Unit: 300, Time: "median", Accumulation: AccumulateRecompute},
		{Unit: 300, Time: PenaltyTimeMax, Accumulation: "double"},
		{Unit: -1, Time: PenaltyTimeMax, Accumulation: AccumulateRecompute},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", p)
		}
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		classifier ScoreClassifier
		points     float64
		want       ScoreClass
	}{
		{ThreeBuckets{}, 100, "score_100"},
		{ThreeBuckets{}, 0, "score_0"},
		{ThreeBuckets{}, 35, "score_40_50"},
		{DecileBuckets{}, 100, "score_90_100"},
		{DecileBuckets{}, 95, "score_90_100"},
		{DecileBuckets{}, 70, "score_70_80"},
		{DecileBuckets{}, 45, "score_40_50"},
		{DecileBuckets{}, 5, "score_0_10"},
		{DecileBuckets{}, 0, "score_0_10"},
	}
	for _, tt := range tests {
		if got := tt.classifier.Classify(tt.points, 100); got != tt.want {
			t.Errorf("%T.Classify(%v) = %q, want %q", tt.classifier, tt.points, got, tt.want)
		}
	}

	if _, err := ClassifierByName("decile"); err != nil {
		t.Errorf("ClassifierByName(decile) error = %v", err)
	}
	if _, err := ClassifierByName("fancy"); err == nil {
		t.Error("ClassifierByName(fancy) error = nil, want error")
	}
}
