package grammar

import "github.com/kymmt90/lrcc/symbol"

// ComputeFirstSets runs the two fixed-point loops §4.2 describes —
// λ-derivability and FIRST — together in one outer loop, since a change
// to one can enable a change in the other on the same pass. It requires
// Symbols.AssignIndexes to have already run, since FIRST sets are sized
// to the final terminal count.
func (g *Grammar) ComputeFirstSets() {
	nTerm := g.NTerminal
	for _, nt := range g.Symbols.NonTerminals() {
		g.Symbols.First(nt, nTerm)
	}

	for {
		changed := false
		for _, r := range g.Rules {
			if g.updateLambda(r) {
				changed = true
			}
			if g.updateFirst(r) {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

// updateLambda sets LHS's λ flag if this rule's RHS is all-λ; an empty
// RHS counts as all-λ, per §4.2.
func (g *Grammar) updateLambda(r *Rule) bool {
	allLambda := true
	for _, rhs := range r.RHS {
		if g.Symbols.Kind(rhs) == symbol.Terminal || !g.Symbols.Lambda(rhs) {
			allLambda = false
			break
		}
	}
	if !allLambda {
		return false
	}
	return g.Symbols.SetLambda(r.LHS, true)
}

// updateFirst unions this rule's contribution into FIRST(LHS), following
// §4.2's left-to-right scan and its self-recursion special case: a
// symbol equal to the LHS is skipped (treated as contributing nothing new)
// only once the LHS is already known λ; otherwise the scan stops there,
// since a non-λ self-reference can't yet be used to extend its own set.
func (g *Grammar) updateFirst(r *Rule) bool {
	changed := false
	lhsFirst := g.Symbols.First(r.LHS, g.NTerminal)

	for _, rhs := range r.RHS {
		if rhs == r.LHS {
			if !g.Symbols.Lambda(r.LHS) {
				break
			}
			continue
		}
		if g.Symbols.Kind(rhs) == symbol.Terminal {
			if !lhsFirst.Test(int(rhs)) {
				lhsFirst.Add(int(rhs))
				changed = true
			}
			break
		}
		if lhsFirst.Union(g.Symbols.First(rhs, g.NTerminal)) {
			changed = true
		}
		if !g.Symbols.Lambda(rhs) {
			break
		}
	}
	return changed
}
