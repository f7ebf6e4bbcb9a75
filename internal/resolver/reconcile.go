package resolver

import (
	"cmp"
	"slices"
)

// Reconcile merges a frozen replay with a final replay of the same users.
// Every problem whose score-altering submission differs between the two
// gets the final submission queued as pending and its public status marked
// pending. The returned states carry the full submission history.
func Reconcile(idx *Index, public, private map[int64]*UserState) map[int64]*UserState {
	out := make(map[int64]*UserState, len(public))
	for id, pub := range public {
		u := pub.Clone()
		priv := private[id]
		u.SubmissionsByProblem = priv.Clone().SubmissionsByProblem
		u.Pending = []int64{}

		for _, p := range idx.Problems() {
			pubLast, pubOK := pub.LastAlteringByProblem[p.ID]
			privLast, privOK := priv.LastAlteringByProblem[p.ID]
			if pubOK == privOK && pubLast == privLast {
				continue
			}
			// privOK is always true here: the final replay sees a superset
			// of the frozen submissions.
			u.Pending = append(u.Pending, privLast)
			st := u.Status[p.ID]
			st.Pending = true
			u.Status[p.ID] = st
		}

		slices.SortStableFunc(u.Pending, func(a, b int64) int {
			return cmp.Compare(idx.mustSubmission(a).ProblemID, idx.mustSubmission(b).ProblemID)
		})
		out[id] = u
	}
	return out
}
