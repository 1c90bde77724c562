// Package table implements C10: default-action compression and the
// packed open-addressed hash action table, mirrored off lemon.c's
// CompressTables/ReportTable rather than the teacher's row-displacement
// compressor (the two compression strategies target different table
// shapes; see DESIGN.md).
package table

import "github.com/kymmt90/lrcc/grammar"

// Compress runs lemon.c's CompressTables pass over every state: if a
// state's REDUCE actions all name the same rule, and there is more than
// one of them, fold them into a single {default} action and mark the
// rest NOT_USED. A state whose REDUCE actions disagree on the rule is
// left untouched — compression only ever removes rows, never changes
// which rule fires for a given lookahead.
func Compress(g *grammar.Grammar) {
	for _, st := range g.States {
		compressState(st)
	}
}

func compressState(st *grammar.State) {
	var first *grammar.Action
	for _, a := range st.Actions {
		if a.Kind == grammar.ActionReduce {
			first = a
			break
		}
	}
	if first == nil {
		return
	}

	rule := first.Rule
	cnt := 1
	uniform := true
	for _, a := range st.Actions {
		if a == first {
			continue
		}
		if a.Kind != grammar.ActionReduce {
			continue
		}
		if a.Rule != rule {
			uniform = false
			break
		}
		cnt++
	}
	if !uniform || cnt <= 1 {
		return
	}

	st.Default = &grammar.Action{Kind: grammar.ActionReduce, Rule: rule}
	for _, a := range st.Actions {
		if a.Kind == grammar.ActionReduce {
			a.Kind = grammar.ActionNotUsed
		}
	}
}
