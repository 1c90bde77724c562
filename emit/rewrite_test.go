package emit

import (
	"strings"
	"testing"

	"github.com/kymmt90/lrcc/grammar"
)

const aliasSrc = `
%start_symbol program.
%type expr { int }.
%type term { int }.
%destructor term { dropTerm() }.

expr(A) ::= expr(B) PLUS term(C). { A = B + C // B plus C
}
expr(A) ::= term(A).
term(A) ::= NUM(N). { A = N }
program ::= expr.
`

func compileAliased(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.Compile(aliasSrc, "alias.y")
	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}
	AssignDataTypes(g)
	return g
}

func ruleByLHSRHSLen(t *testing.T, g *grammar.Grammar, rhsLen int) *grammar.Rule {
	t.Helper()
	for _, r := range g.Rules {
		if len(r.RHS) == rhsLen && r.Code != "" {
			return r
		}
	}
	t.Fatalf("no rule with %d RHS symbols and a code block", rhsLen)
	return nil
}

func TestRewriteRuleBodySubstitutesLHSAndRHSAliases(t *testing.T) {
	g := compileAliased(t)
	r := ruleByLHSRHSLen(t, g, 3) // expr(A) ::= expr(B) PLUS term(C). { A = B + C ... }

	got := RewriteRuleBody(g, r)

	if !strings.Contains(got, "yyLHS.yy") {
		t.Errorf("rewritten body %q does not reference yyLHS", got)
	}
	if strings.Contains(got, " A ") || strings.HasPrefix(got, "A ") {
		t.Errorf("rewritten body %q still contains the raw LHS alias A", got)
	}
	// B is the first RHS symbol (offset -2 from the top after a 3-symbol pop),
	// C is the last (offset 0).
	if !strings.Contains(got, "yyStack[yytop-2]") {
		t.Errorf("rewritten body %q missing rewrite of alias B", got)
	}
	if !strings.Contains(got, "yyStack[yytop+0]") {
		t.Errorf("rewritten body %q missing rewrite of alias C", got)
	}
}

func TestRewriteRuleBodyLeavesCommentsAndStringsAlone(t *testing.T) {
	g := compileAliased(t)
	r := ruleByLHSRHSLen(t, g, 3)

	got := RewriteRuleBody(g, r)

	if !strings.Contains(got, "// B plus C") {
		t.Errorf("rewritten body %q must preserve the trailing comment verbatim, aliases untouched inside it", got)
	}
}

const destructorSrc = `
%start_symbol start.
%type start { int }.
%destructor NUM { releaseNum() }.

start ::= NUM PLUS NUM.
`

func TestAutoDestructorCallsCoversUnaliasedRHSWithDestructor(t *testing.T) {
	g := grammar.Compile(destructorSrc, "destructor.y")
	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}
	AssignDataTypes(g)

	r := g.Rules[0] // start ::= NUM PLUS NUM., no code block, both NUM positions un-aliased

	calls := AutoDestructorCalls(g, r)
	if len(calls) != 2 {
		t.Fatalf("got %d auto-destructor calls, want 2 (both un-aliased NUM positions): %v", len(calls), calls)
	}
	if !strings.Contains(calls[0], "p.destroy(") || !strings.Contains(calls[0], "yyStack[yytop-2]") {
		t.Errorf("first call %q should destroy the first NUM at offset -2", calls[0])
	}
	if !strings.Contains(calls[1], "p.destroy(") || !strings.Contains(calls[1], "yyStack[yytop+0]") {
		t.Errorf("second call %q should destroy the second NUM at offset 0", calls[1])
	}
}

func TestAutoDestructorCallsSkipsAliasedPositions(t *testing.T) {
	g := compileAliased(t)
	// expr(A) ::= expr(B) PLUS term(C): term has a %destructor but is
	// aliased, and the one un-aliased position (PLUS) has none.
	r := ruleByLHSRHSLen(t, g, 3)

	calls := AutoDestructorCalls(g, r)
	if len(calls) != 0 {
		t.Errorf("got %d auto-destructor calls for a rule with no un-aliased, destructor-bearing RHS symbols, want 0: %v", len(calls), calls)
	}
}

func TestRewriteRuleBodyReportsUnusedAlias(t *testing.T) {
	g := grammar.Compile(`
%start_symbol start.
start(A) ::= X(N). { println("no alias use here") }
`, "unused.y")
	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected parse errors: %v", g.Errors.Error())
	}
	AssignDataTypes(g)

	before := g.Errors.Len()
	for _, r := range g.Rules {
		RewriteRuleBody(g, r)
	}
	if g.Errors.Len() <= before {
		t.Fatal("expected unused LHS/RHS alias errors to be reported")
	}
}
