package resolver

import (
	"cmp"
	"maps"
	"slices"
)

// UserState is the scoring state of one user. Values reachable from a
// committed snapshot are never mutated; transitions clone the user first.
type UserState struct {
	User

	Points     map[int64]float64    `json:"points"`
	Status     map[int64]Status     `json:"status"`
	ScoreClass map[int64]ScoreClass `json:"scoreClass"`

	// LastAlteringByProblem is the submission that last raised the points on
	// a problem, or the latest zero-point submission while still at zero.
	LastAlteringByProblem map[int64]int64 `json:"lastAlteringByProblem"`
	// LastAltering is the largest submission id that ever raised the score,
	// -1 if the user never scored.
	LastAltering int64 `json:"lastAltering"`

	SubmissionsByProblem map[int64][]int64 `json:"submissionsByProblem"`
	// Pending holds submissions whose outcome is not public yet, ordered by
	// problem id.
	Pending []int64 `json:"pending"`
	Penalty float64 `json:"penalty"`
}

func newUserState(u User, problems []Problem) *UserState {
	us := &UserState{
		User:                  u,
		Points:                make(map[int64]float64, len(problems)),
		Status:                make(map[int64]Status, len(problems)),
		ScoreClass:            make(map[int64]ScoreClass, len(problems)),
		LastAlteringByProblem: make(map[int64]int64),
		LastAltering:          -1,
		SubmissionsByProblem:  make(map[int64][]int64, len(problems)),
		Pending:               []int64{},
	}
	for _, p := range problems {
		us.Points[p.ID] = 0
		us.Status[p.ID] = Status{Outcome: Unattempted}
		us.ScoreClass[p.ID] = ScoreClassNone
		us.SubmissionsByProblem[p.ID] = []int64{}
	}
	return us
}

// Clone returns a deep copy sharing no mutable memory with u.
func (u *UserState) Clone() *UserState {
	c := *u
	c.Points = maps.Clone(u.Points)
	c.Status = maps.Clone(u.Status)
	c.ScoreClass = maps.Clone(u.ScoreClass)
	c.LastAlteringByProblem = maps.Clone(u.LastAlteringByProblem)
	c.SubmissionsByProblem = make(map[int64][]int64, len(u.SubmissionsByProblem))
	for k, v := range u.SubmissionsByProblem {
		c.SubmissionsByProblem[k] = slices.Clone(v)
	}
	c.Pending = slices.Clone(u.Pending)
	return &c
}

// Total is the sum of the user's points over the given problems.
func (u *UserState) Total(problems []Problem) float64 {
	var total float64
	for _, p := range problems {
		total += u.Points[p.ID]
	}
	return total
}

// apply folds one submission into the best-score bookkeeping. It reports
// whether the points on the problem increased.
func (u *UserState) apply(s Submission) bool {
	current := u.Points[s.ProblemID]
	switch {
	case s.Points > current:
		u.Points[s.ProblemID] = s.Points
		u.LastAlteringByProblem[s.ProblemID] = s.ID
		u.LastAltering = max(u.LastAltering, s.ID)
		return true
	case s.Points == 0 && current == 0:
		u.LastAlteringByProblem[s.ProblemID] = s.ID
	}
	return false
}

// refresh derives the outcome and score class of an attempted problem from
// its points. The pending flag is cleared.
func (u *UserState) refresh(p Problem, classifier ScoreClassifier) {
	points := u.Points[p.ID]
	outcome := Accepted
	switch {
	case points == 0:
		outcome = Incorrect
	case points < p.Points:
		outcome = Partial
	}
	u.Status[p.ID] = Status{Outcome: outcome}
	u.ScoreClass[p.ID] = classifier.Classify(points, p.Points)
}

// Replay folds the submissions, in id order, into fresh per-user states.
// The submissions must belong to idx. Replay does not modify its inputs and
// may be called concurrently.
func Replay(idx *Index, submissions []Submission, policy Policy) map[int64]*UserState {
	users := make(map[int64]*UserState, len(idx.Users()))
	for _, u := range idx.Users() {
		users[u.ID] = newUserState(u, idx.Problems())
	}

	ordered := slices.Clone(submissions)
	slices.SortFunc(ordered, func(a, b Submission) int { return cmp.Compare(a.ID, b.ID) })

	for _, s := range ordered {
		u := users[s.UserID]
		u.apply(s)
		u.SubmissionsByProblem[s.ProblemID] = append(u.SubmissionsByProblem[s.ProblemID], s.ID)
	}

	for _, u := range users {
		for _, p := range idx.Problems() {
			if len(u.SubmissionsByProblem[p.ID]) == 0 {
				continue
			}
			u.refresh(p, policy.Classifier)
		}
		u.Penalty = policy.Penalty.Penalty(u, idx)
	}
	return users
}
