package grammar

import (
	"fmt"
	"strconv"

	"github.com/kymmt90/lrcc/symbol"
)

// ValidateStackSize checks a declared %stack_size value the way lemon.c's
// emission pass does: it must parse as an integer greater than zero. An
// illegal value is reported and reset to the default of 100 so later
// stages and code emission still see a usable number.
func (g *Grammar) ValidateStackSize() {
	if g.StackSize == "" {
		return
	}
	n, err := strconv.Atoi(g.StackSize)
	if err != nil || n <= 0 {
		g.Errors.Add(g.Filename, g.StackSizeLine, fmt.Errorf("%w: %q, the stack size should be an integer constant greater than zero", errIllegalStackSize, g.StackSize))
		g.StackSize = "100"
	}
}

// ResolveStart fixes Grammar.Start to the %start_symbol declaration if
// present, else to the first rule's LHS, per §4.3 ("S is the configured
// start symbol or the first rule's LHS"). It also checks the §7 semantic
// rule that the start symbol must never appear on the right-hand side of
// any rule.
func (g *Grammar) ResolveStart() {
	if g.StartName != "" {
		if s, ok := g.Symbols.Lookup(g.StartName); ok {
			g.Start = s
		} else {
			g.Errors.Add(g.Filename, 0, errExpectedIdentifier)
			return
		}
	} else if len(g.Rules) > 0 {
		g.Start = g.Rules[0].LHS
	}

	for _, r := range g.Rules {
		for _, rhs := range r.RHS {
			if rhs == g.Start {
				g.Errors.Add(g.Filename, r.Line, errStartOnRHS)
			}
		}
	}
}

// InferPrecedence fills in Rule.Precedence for every rule that has none,
// per §4.2: adopt the leftmost RHS symbol that carries a defined
// precedence. Rules with an explicit [OVERRIDE] already have Precedence
// set by the parser and are left untouched.
func (g *Grammar) InferPrecedence() {
	for _, r := range g.Rules {
		if r.Precedence != symbol.NoSymbol {
			continue
		}
		for _, rhs := range r.RHS {
			if g.Symbols.Precedence(rhs) != symbol.NoPrecedence {
				r.Precedence = rhs
				break
			}
		}
	}
}
