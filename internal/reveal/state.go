// Package reveal implements the step-wise reveal of a chart: a single
// cursor in [0, N] from which the visible nodes, visible edges, highlighted
// edge and annotation are derived.
package reveal

// Op names the transition that produced a ViewState.
type Op string

const (
	OpNone    Op = ""
	OpAdvance Op = "advance"
	OpRetreat Op = "retreat"
	OpReset   Op = "reset"
	OpShowAll Op = "show_all"
)

// ViewState is the only mutable entity of a walkthrough. It is plain data so
// it can be stored per viewer and re-projected into the same frame later.
type ViewState struct {
	Step int `json:"step"`
	Op   Op  `json:"op,omitempty"`
}

// Advance moves one step forward unless the cursor is already at n.
func Advance(s ViewState, n int) ViewState {
	if s.Step >= n {
		return s
	}
	return ViewState{Step: s.Step + 1, Op: OpAdvance}
}

// Retreat moves one step back unless the cursor is already at 0.
func Retreat(s ViewState) ViewState {
	if s.Step <= 0 {
		return s
	}
	return ViewState{Step: s.Step - 1, Op: OpRetreat}
}

func Reset() ViewState { return ViewState{Step: 0, Op: OpReset} }

func ShowAll(n int) ViewState { return ViewState{Step: n, Op: OpShowAll} }

// Apply dispatches op. Unknown ops leave the state unchanged and report false.
func Apply(s ViewState, op Op, n int) (ViewState, bool) {
	switch op {
	case OpAdvance:
		return Advance(s, n), true
	case OpRetreat:
		return Retreat(s), true
	case OpReset:
		return Reset(), true
	case OpShowAll:
		return ShowAll(n), true
	}
	return s, false
}

// Clamp forces the step into [0, n].
func (s ViewState) Clamp(n int) ViewState {
	switch {
	case s.Step < 0:
		s.Step = 0
	case s.Step > n:
		s.Step = n
	}
	return s
}
