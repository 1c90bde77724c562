package grammar

import (
	"strings"
	"testing"

	"github.com/kymmt90/lrcc/symbol"
)

func TestWriteReportMentionsAcceptAndStates(t *testing.T) {
	g := Compile(`
%start_symbol s.
s ::= a.
a ::= A.
`, "min.y")
	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}

	var b strings.Builder
	g.WriteReport(&b, false)
	out := b.String()

	if !strings.Contains(out, "accept on") {
		t.Errorf("report missing an accept action:\n%s", out)
	}
	if !strings.Contains(out, "0 conflicts") {
		t.Errorf("report should show zero conflicts:\n%s", out)
	}
	if !strings.Contains(out, "state 0") {
		t.Errorf("report missing state 0:\n%s", out)
	}
}

// TestWriteStateOmitsResolvedAwayActions builds a state by hand with a
// shift/reduce pair resolved toward shift (on PLUS) and another resolved
// toward reduce (on MINUS), plus a genuine CONFLICT (on SLASH). Only the
// winning action of each pair, and the CONFLICT marker, should reach the
// report, per lemon.c's PrintAction.
func TestWriteStateOmitsResolvedAwayActions(t *testing.T) {
	g := NewGrammar("resolved.y")
	lhs := g.Symbols.Intern("expr")
	plus := g.Symbols.Intern("PLUS")
	minus := g.Symbols.Intern("MINUS")
	slash := g.Symbols.Intern("SLASH")
	g.Symbols.AssignIndexes()
	// AssignIndexes renumbers every handle, so look the symbols up again.
	lhs, _ = g.Symbols.Lookup("expr")
	plus, _ = g.Symbols.Lookup("PLUS")
	minus, _ = g.Symbols.Lookup("MINUS")
	slash, _ = g.Symbols.Lookup("SLASH")

	rPlus := &Rule{LHS: lhs, RHS: []symbol.Symbol{lhs, plus, lhs}}
	rMinus := &Rule{LHS: lhs, RHS: []symbol.Symbol{lhs, minus, lhs}}
	rSlash := &Rule{LHS: lhs, RHS: []symbol.Symbol{lhs, slash, lhs}}
	g.AddRule(rPlus)
	g.AddRule(rMinus)
	g.AddRule(rSlash)

	target := &State{Num: 1}
	st := &State{
		Num: 0,
		Shifts: []Shift{
			{Symbol: plus, Target: target},  // shift wins over reduce on PLUS
			{Symbol: minus, Target: target}, // reduce wins over shift on MINUS
		},
		Actions: []*Action{
			{Symbol: plus, Kind: ActionShift, ShiftTarget: target},
			{Symbol: plus, Kind: ActionReduceResolved, Rule: rPlus},
			{Symbol: minus, Kind: ActionShiftResolved, ShiftTarget: target},
			{Symbol: minus, Kind: ActionReduce, Rule: rMinus},
			{Symbol: slash, Kind: ActionConflict, Rule: rSlash},
		},
	}

	var b strings.Builder
	g.writeState(&b, st, false)
	out := b.String()

	if !strings.Contains(out, "shift") || !strings.Contains(out, "on PLUS") {
		t.Errorf("live shift on PLUS missing:\n%s", out)
	}
	if !strings.Contains(out, "on MINUS") {
		t.Errorf("live reduce on MINUS missing:\n%s", out)
	}
	if !strings.Contains(out, "** CONFLICT **") {
		t.Errorf("CONFLICT marker missing:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "shift") && strings.Contains(line, "on MINUS") {
			t.Errorf("resolved-away shift on MINUS should not appear: %q", line)
		}
		if strings.Contains(line, "reduce") && strings.Contains(line, "on PLUS") {
			t.Errorf("resolved-away reduce on PLUS should not appear: %q", line)
		}
	}
}
