package grammar

import "fmt"

// ReportUnusedAliases raises §7's "LHS/RHS alias never referenced" errors
// for rule r, given which aliases the emitter's action-code rewrite
// actually found a use for. It is called from the emit package, which
// owns the rewrite itself but has no access to these sentinel errors.
func (g *Grammar) ReportUnusedAliases(r *Rule, lhsUsed bool, rhsUsed []bool) {
	if r.LHSAlias != "" && !lhsUsed {
		g.Errors.Add(g.Filename, r.CodeLine, fmt.Errorf("%w: %q", errUnusedLHSAlias, r.LHSAlias))
	}
	for i, used := range rhsUsed {
		if r.RHSAlias[i] != "" && !used {
			g.Errors.Add(g.Filename, r.CodeLine, fmt.Errorf("%w: %q", errUnusedRHSAlias, r.RHSAlias[i]))
		}
	}
}
