package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kymmt90/lrcc/grammar"
	"github.com/kymmt90/lrcc/table"
)

const emitSrc = `
%start_symbol program.
%token_prefix TK_.
%type expr { int }.

expr(A) ::= expr(B) PLUS term(C). { A = B + C }
expr(A) ::= term(A).
term ::= NUM.
program ::= expr.
`

func TestEmitProducesCompilableLookingOutput(t *testing.T) {
	g := grammar.Compile(emitSrc, "calc.y")
	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}
	table.Compress(g)
	p := table.Pack(g)
	dt := AssignDataTypes(g)

	var out bytes.Buffer
	header, err := Emit(g, p, dt, DefaultTemplate(), &out, Options{Name: "Calc"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if header != "" {
		t.Errorf("SeparateHeader was false, expected no header text, got %q", header)
	}

	got := out.String()
	for _, want := range []string{
		"package main",
		"func CalcNew() *CalcState",
		"const TK_PLUS =",
		"const TK_NUM =",
		"var yyActionTable = []yyActionEntry{",
		"var yyStateTable = []yyStateDesc{",
		"var yySymbolName = []string{",
		"case 0: // expr",
		"yyLHS.yy",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("emitted output missing %q\nfull output:\n%s", want, got)
		}
	}
}

func TestEmitSeparateHeaderMode(t *testing.T) {
	g := grammar.Compile(emitSrc, "calc.y")
	if g.Errors.Len() != 0 {
		t.Fatalf("unexpected errors: %v", g.Errors.Error())
	}
	table.Compress(g)
	p := table.Pack(g)
	dt := AssignDataTypes(g)

	var out bytes.Buffer
	header, err := Emit(g, p, dt, DefaultTemplate(), &out, Options{Name: "Calc", SeparateHeader: true})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(header, "const TK_PLUS =") {
		t.Errorf("separate header = %q, want the token defines", header)
	}
	if strings.Contains(out.String(), "const TK_PLUS =") {
		t.Error("token defines leaked into the main output when SeparateHeader was set")
	}
	if !strings.Contains(out.String(), `#include "Calc.h"`) {
		t.Error("main output missing the #include line for the separate header")
	}
}
