package resolver

import "fmt"

// Problem is a contest problem. Points is the maximum score obtainable on it.
type Problem struct {
	ID     int64   `json:"problemId" yaml:"problemId"`
	Name   string  `json:"name" yaml:"name"`
	Points float64 `json:"points" yaml:"points"`
}

type User struct {
	ID       int64  `json:"userId" yaml:"userId"`
	Username string `json:"username" yaml:"username"`
	FullName string `json:"fullName" yaml:"fullName"`
}

// Submission is a single judged submission. Time is measured in seconds
// since the start of the contest. Submission ids order submissions
// chronologically.
type Submission struct {
	ID        int64   `json:"submissionId" yaml:"submissionId"`
	ProblemID int64   `json:"problemId" yaml:"problemId"`
	UserID    int64   `json:"userId" yaml:"userId"`
	Time      float64 `json:"time" yaml:"time"`
	Points    float64 `json:"points" yaml:"points"`
}

// Dataset is the full contest history consumed by a resolver session.
type Dataset struct {
	Users       []User       `json:"users" yaml:"users"`
	Problems    []Problem    `json:"problems" yaml:"problems"`
	Submissions []Submission `json:"submissions" yaml:"submissions"`
}

// WithoutUsers returns a copy of the dataset with the given usernames and
// all of their submissions removed.
func (d Dataset) WithoutUsers(usernames []string) Dataset {
	if len(usernames) == 0 {
		return d
	}
	hidden := make(map[string]struct{}, len(usernames))
	for _, name := range usernames {
		hidden[name] = struct{}{}
	}

	out := Dataset{Problems: d.Problems}
	removed := make(map[int64]struct{})
	for _, u := range d.Users {
		if _, ok := hidden[u.Username]; ok {
			removed[u.ID] = struct{}{}
			continue
		}
		out.Users = append(out.Users, u)
	}
	for _, s := range d.Submissions {
		if _, ok := removed[s.UserID]; ok {
			continue
		}
		out.Submissions = append(out.Submissions, s)
	}
	return out
}

// Outcome is the publicly known result of a user's attempts on a problem.
type Outcome uint8

const (
	Unattempted Outcome = iota
	Incorrect
	Partial
	Accepted
)

func (o Outcome) String() string {
	switch o {
	case Incorrect:
		return "incorrect"
	case Partial:
		return "partial"
	case Accepted:
		return "accepted"
	default:
		return "unattempted"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for _, candidate := range []Outcome{Unattempted, Incorrect, Partial, Accepted} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Status combines the public outcome with an independent pending flag that
// marks problems whose final outcome is still hidden.
type Status struct {
	Outcome Outcome `json:"outcome"`
	Pending bool    `json:"pending"`
}

// Bits encodes the status as the bitmask used by scoreboard front-ends:
// 1 unattempted, 2 incorrect, 4 partial, 8 accepted, |16 pending.
func (s Status) Bits() int {
	bits := 1 << s.Outcome
	if s.Pending {
		bits |= 16
	}
	return bits
}
