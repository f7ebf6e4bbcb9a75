package resolver

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"
)

// Action names the transition that produced a snapshot.
type Action string

const (
	ActionStart         Action = "start"
	ActionMarkRow       Action = "mark_row"
	ActionShowImage     Action = "show_image"
	ActionHideImage     Action = "hide_image"
	ActionNextRow       Action = "next_row"
	ActionFinish        Action = "finish"
	ActionSelectProblem Action = "select_problem"
	ActionResolve       Action = "resolve"
)

// State is one immutable snapshot of a reveal ceremony.
type State struct {
	Users map[int64]*UserState `json:"users"`

	// CurrentRowIndex indexes the ranked rows; -1 once the ceremony ended.
	CurrentRowIndex  int    `json:"currentRowIndex"`
	MarkedUserID     int64  `json:"markedUserId"`
	MarkedProblemID  int64  `json:"markedProblemId"`
	NextSubmissionID int64  `json:"nextSubmissionId"`
	ShownImage       bool   `json:"shownImage"`
	ImageSrc         string `json:"imageSrc"`
	Action           Action `json:"action"`
}

// next starts a new snapshot from s. The user map is copied; user states are
// shared and must be cloned before modification.
func (s *State) next(action Action) *State {
	n := *s
	n.Users = maps.Clone(s.Users)
	n.Action = action
	return &n
}

func (s *State) clearMarks() {
	s.MarkedProblemID = -1
	s.NextSubmissionID = -1
}

// Options configures a resolver session.
type Options struct {
	// FreezeTime splits submissions: those made strictly before it, in
	// seconds since contest start, are public.
	FreezeTime float64
	// Unofficial usernames are shown but do not take rank numbers.
	Unofficial []string
	// HideUnofficial removes unofficial users from the dataset altogether.
	HideUnofficial bool
	// Images maps a final rank string to an image reference shown once the
	// user at that rank has no pending submissions left.
	Images map[string]string
	Policy Policy
}

// Resolver drives the reveal ceremony. Step, StepChoice and Rollback must
// be called sequentially; the type does no locking of its own.
type Resolver struct {
	idx        *Index
	images     map[string]string
	unofficial map[string]struct{}
	policy     Policy
	history    *History
}

// New builds the frozen and final standings of the dataset and returns a
// resolver positioned at the last row.
func New(ds Dataset, opts Options) (*Resolver, error) {
	if opts.HideUnofficial {
		ds = ds.WithoutUsers(opts.Unofficial)
	}
	idx, err := NewIndex(ds)
	if err != nil {
		return nil, err
	}

	policy := opts.Policy
	if policy.Penalty == (PenaltyPolicy{}) {
		policy.Penalty = DefaultPenaltyPolicy()
	}
	if policy.Classifier == nil {
		policy.Classifier = ThreeBuckets{}
	}
	if err := policy.Penalty.Validate(); err != nil {
		return nil, err
	}

	unofficial := make(map[string]struct{}, len(opts.Unofficial))
	for _, name := range opts.Unofficial {
		unofficial[name] = struct{}{}
	}

	public := Replay(idx, idx.SubmissionsBefore(opts.FreezeTime), policy)
	private := Replay(idx, idx.Submissions(), policy)
	users := Reconcile(idx, public, private)

	initial := &State{
		Users:            users,
		CurrentRowIndex:  len(users) - 1,
		MarkedUserID:     -1,
		MarkedProblemID:  -1,
		NextSubmissionID: -1,
		Action:           ActionStart,
	}
	return &Resolver{
		idx:        idx,
		images:     maps.Clone(opts.Images),
		unofficial: unofficial,
		policy:     policy,
		history:    NewHistory(initial),
	}, nil
}

func (r *Resolver) Index() *Index { return r.idx }

// State returns the current snapshot. It must not be modified.
func (r *Resolver) State() *State { return r.history.Current() }

// Steps returns the number of committed transitions since the start.
func (r *Resolver) Steps() int { return r.history.Len() - 1 }

// Rows returns the ranking of the current snapshot.
func (r *Resolver) Rows() []UserRow {
	return r.rank(r.history.Current())
}

// Frozen returns the ranking shown before any reveal.
func (r *Resolver) Frozen() []UserRow {
	return r.rank(r.history.Initial())
}

// Final returns the ranking with every pending submission revealed.
func (r *Resolver) Final() []UserRow {
	return Rank(Replay(r.idx, r.idx.Submissions(), r.policy), r.idx.Problems(), r.unofficial)
}

func (r *Resolver) rank(s *State) []UserRow {
	return Rank(s.Users, r.idx.Problems(), r.unofficial)
}

// Step performs the next reveal action and reports whether the ceremony
// can continue.
func (r *Resolver) Step() bool {
	cont, _ := r.step(0, false)
	return cont
}

// StepChoice is Step with an explicit index into the marked user's pending
// queue, used when a problem is about to be selected. An out-of-range index
// leaves the state untouched and returns ErrInvalidStepChoice with true.
func (r *Resolver) StepChoice(choice int) (bool, error) {
	return r.step(choice, true)
}

// Rollback restores the snapshot before the last transition. It reports
// false when there is nothing to undo.
func (r *Resolver) Rollback() bool {
	return r.history.Pop()
}

func (r *Resolver) step(choice int, explicit bool) (bool, error) {
	s := r.history.Current()
	if s.CurrentRowIndex == -1 {
		return false, nil
	}

	rows := r.rank(s)
	row := rows[s.CurrentRowIndex]
	if s.MarkedUserID != row.UserID {
		n := s.next(ActionMarkRow)
		n.MarkedUserID = row.UserID
		n.clearMarks()
		r.history.Push(n)
		return true, nil
	}

	user := s.Users[s.MarkedUserID]
	if len(user.Pending) == 0 {
		return r.leaveRow(s, rows), nil
	}

	if s.MarkedProblemID == -1 {
		var subID int64
		if explicit {
			if choice < 0 || choice >= len(user.Pending) {
				zap.S().Warnf("invalid step choice %d for user %d with %d pending submissions", choice, user.ID, len(user.Pending))
				return true, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidStepChoice, choice, len(user.Pending))
			}
			subID = user.Pending[choice]
		} else {
			subID = slices.MinFunc(user.Pending, func(a, b int64) int {
				return cmp.Compare(r.idx.mustSubmission(a).ProblemID, r.idx.mustSubmission(b).ProblemID)
			})
		}
		n := s.next(ActionSelectProblem)
		n.MarkedProblemID = r.idx.mustSubmission(subID).ProblemID
		n.NextSubmissionID = subID
		r.history.Push(n)
		return true, nil
	}

	r.history.Push(r.resolve(s))
	return true, nil
}

// leaveRow handles a marked row without pending submissions: show and hide
// its image, then move the spotlight up or end the ceremony.
func (r *Resolver) leaveRow(s *State, rows []UserRow) bool {
	row := rows[s.CurrentRowIndex]
	if src, ok := r.image(row); ok && !s.ShownImage && s.ImageSrc == "" {
		n := s.next(ActionShowImage)
		n.ShownImage = true
		n.ImageSrc = src
		r.history.Push(n)
		return true
	}

	if s.ShownImage && s.ImageSrc != "" {
		n := s.next(ActionHideImage)
		n.ImageSrc = ""
		r.history.Push(n)
		return true
	}

	if s.CurrentRowIndex == 0 {
		n := s.next(ActionFinish)
		n.ShownImage = false
		n.ImageSrc = ""
		n.CurrentRowIndex = -1
		n.MarkedUserID = -1
		n.clearMarks()
		r.history.Push(n)
		return false
	}

	n := s.next(ActionNextRow)
	n.ShownImage = false
	n.ImageSrc = ""
	n.CurrentRowIndex = s.CurrentRowIndex - 1
	n.MarkedUserID = rows[n.CurrentRowIndex].UserID
	n.clearMarks()
	r.history.Push(n)
	return true
}

func (r *Resolver) image(row UserRow) (string, bool) {
	if !row.Official {
		return "", false
	}
	src, ok := r.images[row.Rank]
	return src, ok && src != ""
}

// resolve commits the staged submission of s, producing results identical
// to a full replay up to that submission.
func (r *Resolver) resolve(s *State) *State {
	sub := r.idx.mustSubmission(s.NextSubmissionID)
	problem, err := r.idx.Problem(sub.ProblemID)
	if err != nil {
		panic(err)
	}

	n := s.next(ActionResolve)
	u := s.Users[sub.UserID].Clone()
	previous := u.Penalty

	u.apply(sub)
	u.refresh(problem, r.policy.Classifier)
	u.Pending = slices.DeleteFunc(u.Pending, func(id int64) bool { return id == sub.ID })

	penalty := r.policy.Penalty.Penalty(u, r.idx)
	if r.policy.Penalty.Accumulation == AccumulateIncrement {
		penalty += previous
	}
	u.Penalty = penalty

	n.Users[u.ID] = u
	n.clearMarks()
	return n
}

// View is the read model handed to renderers.
type View struct {
	Problems         []Problem `json:"problems"`
	Rows             []UserRow `json:"rows"`
	CurrentRowIndex  int       `json:"currentRowIndex"`
	MarkedUserID     int64     `json:"markedUserId"`
	MarkedProblemID  int64     `json:"markedProblemId"`
	NextSubmissionID int64     `json:"nextSubmissionId"`
	ShownImage       bool      `json:"shownImage"`
	ImageSrc         string    `json:"imageSrc"`
	Action           Action    `json:"action"`
	Steps            int       `json:"steps"`
	Finished         bool      `json:"finished"`
}

func (r *Resolver) View() View {
	s := r.history.Current()
	return View{
		Problems:         r.idx.Problems(),
		Rows:             r.rank(s),
		CurrentRowIndex:  s.CurrentRowIndex,
		MarkedUserID:     s.MarkedUserID,
		MarkedProblemID:  s.MarkedProblemID,
		NextSubmissionID: s.NextSubmissionID,
		ShownImage:       s.ShownImage,
		ImageSrc:         s.ImageSrc,
		Action:           s.Action,
		Steps:            r.Steps(),
		Finished:         s.CurrentRowIndex == -1,
	}
}
