package grammar

import (
	"fmt"
	"io"
	"strings"

	"github.com/kymmt90/lrcc/symbol"
)

// WriteReport renders the state-by-state `.out` description §6 asks for:
// terminals, productions, then every state's items, shift/goto/reduce/
// accept actions and any conflict reported in it. basisOnly restricts
// each state's item list to its basis, per the `-b` flag.
func (g *Grammar) WriteReport(w io.Writer, basisOnly bool) {
	fmt.Fprintf(w, "%v conflicts\n\n", g.ConflictCount)

	g.WriteSymbolsAndRules(w)

	fmt.Fprintf(w, "\n%v states:\n\n", len(g.States))
	for _, st := range g.States {
		g.writeState(w, st, basisOnly)
	}
}

// WriteSymbolsAndRules renders the terminal cross-reference and rule list
// alone, the part of WriteReport the `-g` flag asks for without the
// per-state breakdown.
func (g *Grammar) WriteSymbolsAndRules(w io.Writer) {
	terms := g.Symbols.Terminals()
	fmt.Fprintf(w, "%v terminals:\n\n", len(terms))
	for _, s := range terms {
		fmt.Fprintf(w, "%4v %v\n", int(s), g.Symbols.Name(s))
	}
	fmt.Fprintf(w, "\n%v rules:\n\n", len(g.Rules))
	for _, r := range g.Rules {
		fmt.Fprintf(w, "%4v %v\n", r.Index, g.ruleToString(r, -1))
	}
}

func (g *Grammar) writeState(w io.Writer, st *State, basisOnly bool) {
	fmt.Fprintf(w, "state %v\n", st.Num)

	items := st.Closure
	if basisOnly {
		items = st.Basis
	}
	for _, cfg := range items {
		r := g.rule(cfg.ruleIndex)
		fmt.Fprintf(w, "    %v\n", g.ruleToString(r, cfg.dot))
	}
	fmt.Fprintln(w)

	// Only the actions that survived conflict resolution (plus the
	// CONFLICT marker itself) belong in the report, matching lemon.c's
	// PrintAction: SH_RESOLVED, RD_RESOLVED and NOT_USED entries are
	// skipped.
	liveShift := make(map[symbol.Symbol]bool, len(st.Actions))
	for _, a := range st.Actions {
		if a.Kind == ActionShift {
			liveShift[a.Symbol] = true
		}
	}

	var shifts, goTos, reduces []string
	var accept string
	for _, sh := range st.Shifts {
		target := fmt.Sprintf("%4v on %v", sh.Target.Num, g.Symbols.Name(sh.Symbol))
		if g.Symbols.Kind(sh.Symbol) == symbol.Terminal {
			if liveShift[sh.Symbol] {
				shifts = append(shifts, "shift  "+target)
			}
		} else {
			goTos = append(goTos, "goto   "+target)
		}
	}
	for _, a := range st.Actions {
		switch a.Kind {
		case ActionReduce:
			reduces = append(reduces, fmt.Sprintf("reduce %4v on %v", a.Rule.Index, g.Symbols.Name(a.Symbol)))
		case ActionAccept:
			accept = fmt.Sprintf("accept on %v", g.Symbols.Name(a.Symbol))
		case ActionConflict:
			reduces = append(reduces, fmt.Sprintf("reduce %4v on %v  ** CONFLICT **", a.Rule.Index, g.Symbols.Name(a.Symbol)))
		}
	}
	if st.Default != nil {
		reduces = append(reduces, fmt.Sprintf("reduce %4v on {default}", st.Default.Rule.Index))
	}

	for _, rec := range shifts {
		fmt.Fprintf(w, "    %v\n", rec)
	}
	for _, rec := range reduces {
		fmt.Fprintf(w, "    %v\n", rec)
	}
	if len(shifts) > 0 || len(reduces) > 0 {
		fmt.Fprintln(w)
	}
	for _, rec := range goTos {
		fmt.Fprintf(w, "    %v\n", rec)
	}
	if len(goTos) > 0 {
		fmt.Fprintln(w)
	}
	if accept != "" {
		fmt.Fprintf(w, "    %v\n\n", accept)
	}
}

// ruleToString renders "LHS -> sym sym ・ sym" with the dot placed at
// position dot (or omitted if dot < 0).
func (g *Grammar) ruleToString(r *Rule, dot int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", g.Symbols.Name(r.LHS))
	for i, sp := range r.RHS {
		if i == dot {
			b.WriteString(" ・")
		}
		fmt.Fprintf(&b, " %v", g.Symbols.Name(sp))
	}
	if dot == len(r.RHS) {
		b.WriteString(" ・")
	}
	return b.String()
}
