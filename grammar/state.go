package grammar

import (
	"github.com/kymmt90/lrcc/bitset"
	"github.com/kymmt90/lrcc/symbol"
)

// config is a (rule, dot) pair extended with a FOLLOW set and the
// propagation-link graph edges, per §3. Configurations are interned by
// (ruleIndex, dot) only within the configPool of the state currently under
// construction (C6); once a state is finished its configs live on,
// referenced from State.Basis/Closure, for the rest of the pipeline.
type config struct {
	ruleIndex int
	dot       int

	follow *bitset.Set

	bwd []*config // predecessors: "this config's FOLLOW flows in from bwd[i]"
	fwd []*config // successors: filled by InvertPropagationLinks from bwd

	incomplete bool // used only during C8's fixed point
}

func (c *config) key() configKey { return configKey{c.ruleIndex, c.dot} }

type configKey struct {
	ruleIndex int
	dot       int
}

// ActionKind is a Action's disposition, per §3/§4.5.
type ActionKind int

const (
	ActionShift ActionKind = iota
	ActionAccept
	ActionReduce
	ActionError
	ActionConflict
	ActionShiftResolved
	ActionReduceResolved
	ActionNotUsed
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionAccept:
		return "accept"
	case ActionReduce:
		return "reduce"
	case ActionError:
		return "error"
	case ActionConflict:
		return "CONFLICT"
	case ActionShiftResolved:
		return "shift (resolved)"
	case ActionReduceResolved:
		return "reduce (resolved)"
	case ActionNotUsed:
		return "not used"
	default:
		return "?"
	}
}

// Action is one entry in a state's action list: "on lookahead Symbol, do
// Kind". ShiftTarget is valid for ActionShift; Rule is valid for
// ActionReduce/ActionReduceResolved.
type Action struct {
	Symbol      symbol.Symbol
	Kind        ActionKind
	ShiftTarget *State
	Rule        *Rule

	// Collide is a slot for chaining entries that land in the same
	// packed-table bucket; table.Pack keeps its collision chains in its
	// own scratch slices and never sets it.
	Collide *Action
}

// Shift is a transition on a grammar symbol discovered while building
// shifts (C7); it becomes a SHIFT Action once C9 assembles the action
// list for accept/reduce.
type Shift struct {
	Symbol symbol.Symbol
	Target *State
}

// State is one node of the canonical LR(0)/LALR(1) automaton.
type State struct {
	Num int

	Basis   []*config // sorted by (ruleIndex, dot); the state's identity
	Closure []*config // sorted; basis plus everything closure adds

	Shifts []Shift

	Actions []*Action
	Default *Action // the {default} action installed by C10, if any

	TabStart int
	Mask     int
}
