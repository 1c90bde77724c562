package grammar

import (
	"errors"
	"testing"
)

const exprSrc = `
%start_symbol program.

%left PLUS MINUS.
%left STAR SLASH.

expr ::= expr PLUS term.
expr ::= expr MINUS term.
expr ::= term.
term ::= term STAR factor.
term ::= term SLASH factor.
term ::= factor.
factor ::= NUM.
factor ::= LPAREN expr RPAREN.
program ::= expr.
`

func TestCompileMinimalExpr(t *testing.T) {
	g := Compile(exprSrc, "expr.y")

	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}
	if g.ConflictCount != 0 {
		t.Fatalf("unexpected conflicts: %d", g.ConflictCount)
	}
	if len(g.Rules) != 9 {
		t.Fatalf("got %d rules, want 9", len(g.Rules))
	}
	for _, r := range g.Rules {
		if !r.CanReduce {
			t.Errorf("rule %d (%s) never reduces", r.Index, g.Symbols.Name(r.LHS))
		}
	}
	if len(g.States) == 0 {
		t.Fatal("no states built")
	}
}

const ambiguousDangleSrc = `
program ::= stmt.
stmt ::= IF expr stmt.
stmt ::= IF expr stmt ELSE stmt.
stmt ::= OTHER.
expr ::= NUM.
`

func TestCompileDanglingElseConflict(t *testing.T) {
	g := Compile(ambiguousDangleSrc, "dangle.y")

	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}
	if g.ConflictCount == 0 {
		t.Fatal("expected a shift/reduce conflict on ELSE, got none")
	}
}

func TestCompileRejectsNonNumericStackSize(t *testing.T) {
	g := Compile(`
%start_symbol s.
%stack_size bogus.
s ::= A.
`, "bad-stacksize.y")

	found := false
	for _, e := range g.Errors {
		if errors.Is(e.Cause, errIllegalStackSize) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected errIllegalStackSize, got: %v", g.Errors.Error())
	}
	if g.StackSize != "100" {
		t.Errorf("StackSize = %q, want reset to the default 100", g.StackSize)
	}
}

func TestCompileRejectsNonPositiveStackSize(t *testing.T) {
	g := Compile(`
%start_symbol s.
%stack_size 0.
s ::= A.
`, "zero-stacksize.y")

	found := false
	for _, e := range g.Errors {
		if errors.Is(e.Cause, errIllegalStackSize) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected errIllegalStackSize, got: %v", g.Errors.Error())
	}
}

func TestCompileAcceptsValidStackSize(t *testing.T) {
	g := Compile(`
%start_symbol s.
%stack_size 2048.
s ::= A.
`, "ok-stacksize.y")

	for _, e := range g.Errors {
		if errors.Is(e.Cause, errIllegalStackSize) {
			t.Fatalf("unexpected errIllegalStackSize for a valid stack size: %v", g.Errors.Error())
		}
	}
	if g.StackSize != "2048" {
		t.Errorf("StackSize = %q, want 2048 preserved", g.StackSize)
	}
}

const unreducibleSrc = `
start ::= a.
a ::= X.
b ::= Y.
`

func TestCompileReportsUnreducibleRule(t *testing.T) {
	g := Compile(unreducibleSrc, "unreduce.y")

	found := false
	for _, e := range g.Errors {
		if e.Cause != nil {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an error for the unreachable rule b ::= Y")
	}
}
