package resolver

import "fmt"

// ScoreClass is the coarse visual bucket of a user's points on a problem.
type ScoreClass string

// ScoreClassNone marks a problem the user has not attempted yet.
const ScoreClassNone ScoreClass = "a"

// ScoreClassifier maps achieved points to a ScoreClass.
type ScoreClassifier interface {
	Classify(points, max float64) ScoreClass
}

// ThreeBuckets distinguishes full, zero and partial scores.
type ThreeBuckets struct{}

func (ThreeBuckets) Classify(points, max float64) ScoreClass {
	switch {
	case points == max:
		return "score_100"
	case points == 0:
		return "score_0"
	default:
		return "score_40_50"
	}
}

// DecileBuckets splits the score ratio into ten buckets of 10% each.
type DecileBuckets struct{}

func (DecileBuckets) Classify(points, max float64) ScoreClass {
	if max <= 0 {
		return "score_90_100"
	}
	decile := int(points * 10 / max)
	if decile >= 9 {
		return "score_90_100"
	}
	if decile < 0 {
		decile = 0
	}
	return ScoreClass(fmt.Sprintf("score_%d_%d", decile*10, decile*10+10))
}

// ClassifierByName returns the classifier registered under name ("three" or
// "decile"). An empty name selects ThreeBuckets.
func ClassifierByName(name string) (ScoreClassifier, error) {
	switch name {
	case "", "three":
		return ThreeBuckets{}, nil
	case "decile":
		return DecileBuckets{}, nil
	}
	return nil, fmt.Errorf("unknown score classifier %q", name)
}

// PenaltyTime selects how submission times contribute to the penalty.
type PenaltyTime string

const (
	// PenaltyTimeMax uses the time of the last score-altering submission.
	PenaltyTimeMax PenaltyTime = "max"
	// PenaltyTimeSum adds up the score-establishing time of every scored problem.
	PenaltyTimeSum PenaltyTime = "sum"
)

// Accumulation selects how the penalty is updated when a single pending
// submission is resolved.
type Accumulation string

const (
	AccumulateRecompute Accumulation = "recompute"
	AccumulateIncrement Accumulation = "increment"
)

// PenaltyPolicy describes a judging convention's penalty rule.
type PenaltyPolicy struct {
	// Unit is added for every earlier attempt on a problem that ended with a
	// nonzero score.
	Unit         float64
	Time         PenaltyTime
	Accumulation Accumulation
}

// DefaultPenaltyPolicy returns the VNOJ convention: 300 seconds per
// incorrect attempt on the time of the last score change, recomputed.
func DefaultPenaltyPolicy() PenaltyPolicy {
	return PenaltyPolicy{Unit: 300, Time: PenaltyTimeMax, Accumulation: AccumulateRecompute}
}

func (p PenaltyPolicy) Validate() error {
	switch p.Time {
	case PenaltyTimeMax, PenaltyTimeSum:
	default:
		return fmt.Errorf("unknown penalty time rule %q", p.Time)
	}
	switch p.Accumulation {
	case AccumulateRecompute, AccumulateIncrement:
	default:
		return fmt.Errorf("unknown penalty accumulation %q", p.Accumulation)
	}
	if p.Unit < 0 {
		return fmt.Errorf("penalty unit must not be negative, got %v", p.Unit)
	}
	return nil
}

// Penalty computes the user's penalty in seconds. Attempts on problems that
// still have zero points are free.
func (p PenaltyPolicy) Penalty(u *UserState, idx *Index) float64 {
	if u.LastAltering == -1 {
		return 0
	}

	var incorrect int
	var elapsed float64
	for _, problem := range idx.Problems() {
		last, ok := u.LastAlteringByProblem[problem.ID]
		if !ok {
			continue
		}
		sub := idx.mustSubmission(last)
		if sub.Points == 0 {
			continue
		}
		for _, id := range u.SubmissionsByProblem[problem.ID] {
			if id < last {
				incorrect++
			}
		}
		if p.Time == PenaltyTimeSum {
			elapsed += sub.Time
		}
	}
	if p.Time != PenaltyTimeSum {
		elapsed = idx.mustSubmission(u.LastAltering).Time
	}
	return elapsed + p.Unit*float64(incorrect)
}

// Policy bundles the scoring conventions of a session.
type Policy struct {
	Penalty    PenaltyPolicy
	Classifier ScoreClassifier
}

func DefaultPolicy() Policy {
	return Policy{Penalty: DefaultPenaltyPolicy(), Classifier: ThreeBuckets{}}
}
