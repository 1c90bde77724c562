// Package grammar implements the grammar analysis pipeline: scanning and
// parsing a grammar file into rules (C4), precedence and FIRST/λ analysis
// (C5), LR(0) state construction (C6/C7), LALR(1) follow-set propagation
// (C8), and reduce-action generation with conflict resolution (C9).
package grammar

import "github.com/kymmt90/lrcc/symbol"

// Compile runs the full analysis pipeline over src and returns the
// resulting Grammar. It never aborts early on grammar errors — per §7 the
// tool keeps going to surface as many as possible — callers should check
// g.Errors and g.ConflictCount before trusting g.States for emission.
func Compile(src, filename string) *Grammar {
	g := Parse(src, filename)

	g.End, g.ErrorSym, g.Default = g.Symbols.EnsurePseudoSymbols()
	// AssignIndexes renumbers every handle, so the handles the parser
	// stored in the rules are translated through their names afterwards.
	oldNames := g.Symbols.SortedNames(g.Symbols.All())
	g.NTerminal = g.Symbols.AssignIndexes()
	renumber := func(s symbol.Symbol) symbol.Symbol {
		if s != symbol.NoSymbol {
			s, _ = g.Symbols.Lookup(oldNames[s])
		}
		return s
	}
	for _, r := range g.Rules {
		r.LHS, r.Precedence = renumber(r.LHS), renumber(r.Precedence)
		for i := range r.RHS {
			r.RHS[i] = renumber(r.RHS[i])
		}
	}
	g.End, g.ErrorSym, g.Default = g.Symbols.EnsurePseudoSymbols()

	g.ValidateStackSize()
	g.ResolveStart()
	if g.Start == symbol.NoSymbol {
		return g
	}
	g.InferPrecedence()
	g.ComputeFirstSets()

	g.BuildStates()
	g.InvertPropagationLinks()
	g.PropagateFollow()
	g.GenerateActions()

	return g
}
