package resolver

import (
	"fmt"
	"math/rand/v2"
)

// twoUserDataset is the freeze scenario: bob solves before the freeze, alice
// fails before the freeze and solves after it.
func twoUserDataset() Dataset {
	return Dataset{
		Users: []User{
			{ID: 1, Username: "alice", FullName: "Alice"},
			{ID: 2, Username: "bob", FullName: "Bob"},
		},
		Problems: []Problem{{ID: 10, Name: "Sum", Points: 100}},
		Submissions: []Submission{
			{ID: 1, ProblemID: 10, UserID: 2, Time: 50, Points: 100},
			{ID: 2, ProblemID: 10, UserID: 1, Time: 100, Points: 0},
			{ID: 3, ProblemID: 10, UserID: 1, Time: 300, Points: 100},
		},
	}
}

// randomDataset returns a reproducible contest with partial scores.
func randomDataset(seed uint64, users, problems, submissions int) Dataset {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var ds Dataset
	for i := 1; i <= users; i++ {
		ds.Users = append(ds.Users, User{ID: int64(i), Username: fmt.Sprintf("user%d", i), FullName: fmt.Sprintf("User %d", i)})
	}
	for i := 1; i <= problems; i++ {
		ds.Problems = append(ds.Problems, Problem{ID: int64(100 + i), Name: fmt.Sprintf("P%d", i), Points: 100})
	}
	scores := []float64{0, 0, 20, 50, 100}
	t := 0.0
	for i := 1; i <= submissions; i++ {
		t += float64(1 + rng.IntN(60))
		ds.Submissions = append(ds.Submissions, Submission{
			ID:        int64(i),
			ProblemID: int64(101 + rng.IntN(problems)),
			UserID:    int64(1 + rng.IntN(users)),
			Time:      t,
			Points:    scores[rng.IntN(len(scores))],
		})
	}
	return ds
}

// runToEnd steps until the ceremony ends and returns the number of steps.
func runToEnd(r *Resolver, limit int) int {
	n := 0
	for r.Step() {
		n++
		if n > limit {
			panic("ceremony did not terminate")
		}
	}
	return n
}
