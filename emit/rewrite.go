package emit

import (
	"fmt"
	"strings"

	"github.com/kymmt90/lrcc/grammar"
)

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func rhsAliasIndex(r *grammar.Rule, word string) int {
	for i, a := range r.RHSAlias {
		if a != "" && a == word {
			return i
		}
	}
	return -1
}

// RewriteRuleBody rewrites r's raw action code, per §4.7: an identifier
// exactly matching the LHS alias becomes a reference to the reducer's
// output slot (typed by the LHS symbol's dtnum); one matching an RHS
// alias becomes the corresponding value-stack offset, typed by that RHS
// symbol's dtnum. Identifiers inside string/char literals and comments
// are left untouched, the same lexical regions the scanner already
// treats specially when it first captures the code block. Unused
// aliases are reported back through g.
func RewriteRuleBody(g *grammar.Grammar, r *grammar.Rule) string {
	if r.Code == "" {
		return ""
	}
	src := r.Code

	var out strings.Builder
	usedLHS := false
	usedRHS := make([]bool, len(r.RHSAlias))

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			j := i
			for j < len(src) && src[j] != '\n' {
				j++
			}
			out.WriteString(src[i:j])
			i = j

		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			j := i + 2
			for j+1 < len(src) && !(src[j] == '*' && src[j+1] == '/') {
				j++
			}
			if j+1 < len(src) {
				j += 2
			} else {
				j = len(src)
			}
			out.WriteString(src[i:j])
			i = j

		case c == '"' || c == '\'':
			quote := c
			j := i + 1
			for j < len(src) && src[j] != quote {
				if src[j] == '\\' && j+1 < len(src) {
					j++
				}
				j++
			}
			if j < len(src) {
				j++
			}
			out.WriteString(src[i:j])
			i = j

		case isIdentStart(c):
			j := i + 1
			for j < len(src) && isIdentCont(src[j]) {
				j++
			}
			word := src[i:j]
			switch {
			case r.LHSAlias != "" && word == r.LHSAlias:
				usedLHS = true
				fmt.Fprintf(&out, "yyLHS.yy%d", g.Symbols.DtNum(r.LHS))
			default:
				if idx := rhsAliasIndex(r, word); idx >= 0 {
					usedRHS[idx] = true
					offset := idx - len(r.RHS) + 1 // negative or zero stack offset from the top
					fmt.Fprintf(&out, "yyStack[yytop%+d].yy%d", offset, g.Symbols.DtNum(r.RHS[idx]))
				} else {
					out.WriteString(word)
				}
			}
			i = j

		default:
			out.WriteByte(c)
			i++
		}
	}

	g.ReportUnusedAliases(r, usedLHS, usedRHS)
	return out.String()
}

// AutoDestructorCalls returns the lines lemon.c's code emitter appends
// after a rule's action code, per §4.7: every RHS position with no alias
// still holds a value the action code never named, so if that symbol has
// a %destructor, it still needs to run or the value leaks.
func AutoDestructorCalls(g *grammar.Grammar, r *grammar.Rule) []string {
	var calls []string
	for i, sym := range r.RHS {
		if r.RHSAlias[i] != "" {
			continue
		}
		if _, _, ok := g.Symbols.Destructor(sym); !ok {
			continue
		}
		offset := i - len(r.RHS) + 1
		calls = append(calls, fmt.Sprintf("p.destroy(%d, yyStack[yytop%+d].yy%d)", int(sym), offset, g.Symbols.DtNum(sym)))
	}
	return calls
}
