package emit

import (
	"testing"

	"github.com/kymmt90/lrcc/grammar"
)

const typedSrc = `
%start_symbol program.
%type expr { int }.
%type term { int }.

expr ::= expr PLUS term.
expr ::= term.
term ::= NUM.
program ::= expr.
`

func TestAssignDataTypesDedupesIdenticalTypes(t *testing.T) {
	g := grammar.Compile(typedSrc, "typed.y")
	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}

	dt := AssignDataTypes(g)

	exprSym, ok := g.Symbols.Lookup("expr")
	if !ok {
		t.Fatal("expr not interned")
	}
	termSym, ok := g.Symbols.Lookup("term")
	if !ok {
		t.Fatal("term not interned")
	}

	if g.Symbols.DtNum(exprSym) != g.Symbols.DtNum(termSym) {
		t.Errorf("expr and term both declare %%type{int}, want the same slot; got %d and %d",
			g.Symbols.DtNum(exprSym), g.Symbols.DtNum(termSym))
	}
	if dt.Slots[g.Symbols.DtNum(exprSym)] != "int" {
		t.Errorf("slot %d text = %q, want %q", g.Symbols.DtNum(exprSym), dt.Slots[g.Symbols.DtNum(exprSym)], "int")
	}
	if dt.Slots[0] != "" {
		t.Errorf("slot 0 must stay the untyped sentinel, got %q", dt.Slots[0])
	}
}

func TestAssignDataTypesGivesErrorSymbolItsOwnSlot(t *testing.T) {
	g := grammar.Compile(typedSrc, "typed.y")
	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}

	dt := AssignDataTypes(g)

	errSlot := g.Symbols.DtNum(g.ErrorSym)
	if errSlot == 0 {
		t.Fatal("error symbol must not share the untyped sentinel slot")
	}
	if dt.Slots[errSlot] != "int" {
		t.Errorf("error symbol slot text = %q, want %q", dt.Slots[errSlot], "int")
	}

	numSym, ok := g.Symbols.Lookup("NUM")
	if !ok {
		t.Fatal("NUM not interned")
	}
	if g.Symbols.DtNum(numSym) != 0 {
		t.Errorf("NUM has no %%type declaration, want the untyped sentinel slot, got %d", g.Symbols.DtNum(numSym))
	}
}
