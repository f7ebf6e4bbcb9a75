package resolver

import (
	"fmt"
	"sort"
)

// Index holds the lookup tables derived from a dataset. It is immutable once
// built and shared by every snapshot of a session.
type Index struct {
	users       []User
	problems    []Problem
	submissions []Submission // sorted by id

	userByID       map[int64]User
	problemByID    map[int64]Problem
	submissionByID map[int64]Submission
}

// NewIndex validates the dataset and builds its lookup tables. Duplicate
// identifiers and submissions referencing unknown users or problems are
// rejected with ErrMalformedInput.
func NewIndex(ds Dataset) (*Index, error) {
	idx := &Index{
		users:          append([]User(nil), ds.Users...),
		problems:       append([]Problem(nil), ds.Problems...),
		userByID:       make(map[int64]User, len(ds.Users)),
		problemByID:    make(map[int64]Problem, len(ds.Problems)),
		submissionByID: make(map[int64]Submission, len(ds.Submissions)),
	}

	for _, u := range ds.Users {
		if _, dup := idx.userByID[u.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate user id %d", ErrMalformedInput, u.ID)
		}
		idx.userByID[u.ID] = u
	}
	for _, p := range ds.Problems {
		if _, dup := idx.problemByID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate problem id %d", ErrMalformedInput, p.ID)
		}
		idx.problemByID[p.ID] = p
	}
	for _, s := range ds.Submissions {
		if _, dup := idx.submissionByID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate submission id %d", ErrMalformedInput, s.ID)
		}
		if _, ok := idx.userByID[s.UserID]; !ok {
			return nil, fmt.Errorf("%w: submission %d references unknown user %d", ErrMalformedInput, s.ID, s.UserID)
		}
		if _, ok := idx.problemByID[s.ProblemID]; !ok {
			return nil, fmt.Errorf("%w: submission %d references unknown problem %d", ErrMalformedInput, s.ID, s.ProblemID)
		}
		idx.submissionByID[s.ID] = s
	}

	idx.submissions = append([]Submission(nil), ds.Submissions...)
	sort.Slice(idx.submissions, func(i, j int) bool {
		return idx.submissions[i].ID < idx.submissions[j].ID
	})
	return idx, nil
}

// Users returns the users in dataset order.
func (idx *Index) Users() []User { return idx.users }

// Problems returns the problems in dataset order, which is also column order.
func (idx *Index) Problems() []Problem { return idx.problems }

// Submissions returns all submissions ordered by id.
func (idx *Index) Submissions() []Submission { return idx.submissions }

// SubmissionsBefore returns the submissions made strictly before the given
// contest time, ordered by id.
func (idx *Index) SubmissionsBefore(t float64) []Submission {
	out := make([]Submission, 0, len(idx.submissions))
	for _, s := range idx.submissions {
		if s.Time < t {
			out = append(out, s)
		}
	}
	return out
}

func (idx *Index) User(id int64) (User, error) {
	u, ok := idx.userByID[id]
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, nil
}

func (idx *Index) Problem(id int64) (Problem, error) {
	p, ok := idx.problemByID[id]
	if !ok {
		return Problem{}, fmt.Errorf("problem %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (idx *Index) Submission(id int64) (Submission, error) {
	s, ok := idx.submissionByID[id]
	if !ok {
		return Submission{}, fmt.Errorf("submission %d: %w", id, ErrNotFound)
	}
	return s, nil
}

// mustSubmission is used where the id was taken from the index itself.
func (idx *Index) mustSubmission(id int64) Submission {
	s, err := idx.Submission(id)
	if err != nil {
		panic(err)
	}
	return s
}
