package grammar

import (
	"fmt"
	"sort"

	"github.com/kymmt90/lrcc/symbol"
)

// GenerateActions implements C9: add a REDUCE action for every
// end-of-rule configuration's FOLLOW set, add the ACCEPT action to state
// 0, sort each state's action list, resolve shift/reduce and
// reduce/reduce conflicts, and mark which rules can actually be reduced.
func (g *Grammar) GenerateActions() {
	g.addShiftActions()
	g.addReduceActions()
	g.addAcceptAction()

	for _, st := range g.States {
		sortActions(st.Actions)
		g.resolveStateConflicts(st)
	}

	g.markCanReduce()
	g.reportUnreducibleRules()
}

// addShiftActions copies every terminal transition out of st.Shifts (the
// LR(0) automaton shifts on both terminals and nonterminals) into the
// per-lookahead action list; nonterminal transitions stay GOTO-only and
// are read straight off State.Shifts by the emitter.
func (g *Grammar) addShiftActions() {
	for _, st := range g.States {
		for _, sh := range st.Shifts {
			if g.Symbols.Kind(sh.Symbol) != symbol.Terminal {
				continue
			}
			st.Actions = append(st.Actions, &Action{
				Symbol:      sh.Symbol,
				Kind:        ActionShift,
				ShiftTarget: sh.Target,
			})
		}
	}
}

func (g *Grammar) addReduceActions() {
	for _, st := range g.States {
		for _, cfg := range st.Closure {
			if cfg.ruleIndex == -1 {
				continue // the internal start-augmenting production never reduces
			}
			r := g.rule(cfg.ruleIndex)
			if cfg.dot != len(r.RHS) {
				continue
			}
			for t := 0; t < g.NTerminal; t++ {
				if cfg.follow.Test(t) {
					st.Actions = append(st.Actions, &Action{
						Symbol: symbol.Symbol(t),
						Kind:   ActionReduce,
						Rule:   r,
					})
				}
			}
		}
	}
}

// addAcceptAction adds the ACCEPT action to the first state, on a
// lookahead of the start nonterminal, per §4.5.
func (g *Grammar) addAcceptAction() {
	if len(g.States) == 0 {
		return
	}
	g.States[0].Actions = append(g.States[0].Actions, &Action{
		Symbol: g.Start,
		Kind:   ActionAccept,
	})
}

// sortKind orders SHIFT before ACCEPT before REDUCE before everything
// else, matching §4.5's "SHIFT (kind 0) sorts before REDUCE (kind 2)".
func sortKind(a *Action) int {
	switch a.Kind {
	case ActionShift:
		return 0
	case ActionAccept:
		return 1
	case ActionReduce:
		return 2
	default:
		return 3
	}
}

func sortActions(actions []*Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		a, b := actions[i], actions[j]
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if sortKind(a) != sortKind(b) {
			return sortKind(a) < sortKind(b)
		}
		if a.Kind == ActionReduce && b.Kind == ActionReduce {
			return a.Rule.Index < b.Rule.Index
		}
		return false
	})
}

// resolveStateConflicts groups st's sorted actions by lookahead symbol and
// resolves each group, per §4.5: within a run of same-symbol actions, the
// first (the shift, if any, else the lowest-indexed reduce) is compared
// against every other member of the run in turn, exactly as lemon.c's
// resolve_conflict loop does.
func (g *Grammar) resolveStateConflicts(st *State) {
	i := 0
	for i < len(st.Actions) {
		j := i + 1
		for j < len(st.Actions) && st.Actions[j].Symbol == st.Actions[i].Symbol {
			j++
		}
		g.ConflictCount += g.resolveGroup(st.Actions[i:j])
		i = j
	}
}

func (g *Grammar) resolveGroup(group []*Action) int {
	if len(group) < 2 {
		return 0
	}
	apx := group[0]
	conflicts := 0
	for i := 1; i < len(group); i++ {
		conflicts += g.resolveConflict(apx, group[i])
	}
	return conflicts
}

// resolveConflict resolves one pair of same-lookahead actions, per §4.5.
// apx is expected to sort before apy (SHIFT before REDUCE; lower rule
// index before higher for two REDUCEs). It returns 1 if the pair is an
// unresolvable CONFLICT, 0 otherwise. By construction (actions sorted
// SHIFT-then-REDUCE), SHIFT vs SHIFT never reaches here.
func (g *Grammar) resolveConflict(apx, apy *Action) int {
	prec := func(s symbol.Symbol) int {
		if s == symbol.NoSymbol {
			return symbol.NoPrecedence
		}
		return g.Symbols.Precedence(s)
	}

	switch {
	case apx.Kind == ActionShift && apy.Kind == ActionReduce:
		spx := apx.Symbol
		spy := apy.Rule.Precedence
		px, py := prec(spx), prec(spy)
		switch {
		case spy == symbol.NoSymbol || px < 0 || py < 0:
			apy.Kind = ActionConflict
			return 1
		case px > py:
			apy.Kind = ActionReduceResolved
		case px < py:
			apx.Kind = ActionShiftResolved
		case g.Symbols.Assoc(spx) == symbol.AssocRight:
			apy.Kind = ActionReduceResolved
		case g.Symbols.Assoc(spx) == symbol.AssocLeft:
			apx.Kind = ActionShiftResolved
		default:
			apy.Kind = ActionConflict
			return 1
		}
	case apx.Kind == ActionReduce && apy.Kind == ActionReduce:
		spx, spy := apx.Rule.Precedence, apy.Rule.Precedence
		px, py := prec(spx), prec(spy)
		switch {
		case spx == symbol.NoSymbol || spy == symbol.NoSymbol || px < 0 || py < 0 || px == py:
			apy.Kind = ActionConflict
			return 1
		case px > py:
			apy.Kind = ActionReduceResolved
		case px < py:
			apx.Kind = ActionReduceResolved
		}
	}
	return 0
}

func (g *Grammar) markCanReduce() {
	for _, r := range g.Rules {
		r.CanReduce = false
	}
	for _, st := range g.States {
		for _, a := range st.Actions {
			if a.Kind == ActionReduce {
				a.Rule.CanReduce = true
			}
		}
	}
}

func (g *Grammar) reportUnreducibleRules() {
	for _, r := range g.Rules {
		if r.CanReduce {
			continue
		}
		g.Errors.Add(g.Filename, r.Line, fmt.Errorf("%w", errUnreducibleRule))
	}
}
