package grammar

import (
	"errors"
	"testing"
)

func hasError(g *Grammar, target error) bool {
	for _, e := range g.Errors {
		if errors.Is(e.Cause, target) {
			return true
		}
	}
	return false
}

func TestDestructorMissingSymbolNameRaisesDestructorSpecificError(t *testing.T) {
	g := Compile(`
%start_symbol s.
%destructor { drop() }.
s ::= A.
`, "missing-destructor-sym.y")

	if !hasError(g, errDestructorSymbolMissing) {
		t.Errorf("expected errDestructorSymbolMissing, got: %v", g.Errors.Error())
	}
	if hasError(g, errTypeSymbolMissing) {
		t.Errorf("did not expect errTypeSymbolMissing for a %%destructor declaration: %v", g.Errors.Error())
	}
}

func TestTypeMissingSymbolNameRaisesTypeSpecificError(t *testing.T) {
	g := Compile(`
%start_symbol s.
%type { int }.
s ::= A.
`, "missing-type-sym.y")

	if !hasError(g, errTypeSymbolMissing) {
		t.Errorf("expected errTypeSymbolMissing, got: %v", g.Errors.Error())
	}
	if hasError(g, errDestructorSymbolMissing) {
		t.Errorf("did not expect errDestructorSymbolMissing for a %%type declaration: %v", g.Errors.Error())
	}
}
