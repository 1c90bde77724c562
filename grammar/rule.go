package grammar

import (
	"github.com/kymmt90/lrcc/rerr"
	"github.com/kymmt90/lrcc/symbol"
)

// Rule is one production, owned by Grammar.Rules in source order and
// additionally chained per LHS via symbol.Table.RuleHead/NextLHS, per §3.
type Rule struct {
	Index int

	LHS      symbol.Symbol
	LHSAlias string

	RHS      []symbol.Symbol
	RHSAlias []string // parallel to RHS; "" when a position has no alias

	Precedence symbol.Symbol // symbol.NoSymbol if neither explicit nor inferred

	Line     int // source line of the rule head (the LHS token)
	Code     string
	CodeLine int

	CanReduce bool // set during C9

	NextLHS int // index of the next rule sharing this LHS, or -1
}

// Grammar is the fully-parsed, not-yet-analyzed grammar: everything C4
// produces, threaded as an explicit value (the "Generator context" of §9)
// rather than held in package-level state.
type Grammar struct {
	Symbols *symbol.Table
	Rules   []*Rule

	Filename string

	Name             string
	Include          string
	Code             string
	TokenDestructor  string
	TokenDestructorLine int
	TokenPrefix      string
	SyntaxError      string
	ParseAccept      string
	ParseFailure     string
	StackOverflow    string
	ExtraArgument    string
	TokenType        string
	StackSize        string
	StackSizeLine    int
	StartName        string

	NTerminal int
	Start     symbol.Symbol // resolved start symbol, set by ResolveStart
	End       symbol.Symbol
	ErrorSym  symbol.Symbol
	Default   symbol.Symbol

	startRule *Rule // the internal "{accept} -> Start" augmenting production; never in Rules

	States        []*State
	stateByBasis  map[string]*State
	ConflictCount int

	Errors rerr.Errors
}

// rule resolves a configuration's rule index, including the sentinel -1
// index that names the internal start-augmenting rule.
func (g *Grammar) rule(idx int) *Rule {
	if idx == -1 {
		return g.startRule
	}
	return g.Rules[idx]
}

// NewGrammar returns an empty grammar bound to a fresh symbol table.
func NewGrammar(filename string) *Grammar {
	return &Grammar{
		Symbols:  symbol.NewTable(),
		Filename: filename,
		Start:    symbol.NoSymbol,
	}
}

// AddRule appends r to the rule list, assigns its Index, and links it into
// its LHS's rule chain.
func (g *Grammar) AddRule(r *Rule) {
	r.Index = len(g.Rules)
	r.NextLHS = -1
	if head := g.Symbols.RuleHead(r.LHS); head == -1 {
		g.Symbols.SetRuleHead(r.LHS, r.Index)
	} else {
		tail := g.Rules[head]
		for tail.NextLHS != -1 {
			tail = g.Rules[tail.NextLHS]
		}
		tail.NextLHS = r.Index
	}
	g.Rules = append(g.Rules, r)
}

// RulesFor returns every rule with the given LHS, in source order.
func (g *Grammar) RulesFor(lhs symbol.Symbol) []*Rule {
	var out []*Rule
	for i := g.Symbols.RuleHead(lhs); i != -1; {
		r := g.Rules[i]
		out = append(out, r)
		i = r.NextLHS
	}
	return out
}
