// Package symbol interns grammar symbol names into small integer handles
// and tracks the kind-specific attributes (precedence, associativity,
// FIRST set, destructor code, data type) that the rest of the analyzer
// hangs off those handles.
package symbol

import (
	"sort"
	"unicode"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/kymmt90/lrcc/bitset"
)

// Symbol is a stable handle into a Table. The zero value is not a valid
// symbol; use NoSymbol for "absent".
type Symbol int

// NoSymbol represents the absence of a symbol, e.g. a rule with no
// explicit precedence symbol.
const NoSymbol Symbol = -1

// Kind distinguishes terminals from nonterminals. A symbol's kind is
// determined once, from the case of its name's first letter, and never
// changes.
type Kind int

const (
	Terminal Kind = iota
	NonTerminal
)

func (k Kind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "nonterminal"
}

// Assoc is the associativity recorded by a %left/%right/%nonassoc
// declaration.
type Assoc int

const (
	AssocUnknown Assoc = iota
	AssocLeft
	AssocRight
	AssocNone
)

// NoPrecedence is the precedence value a symbol carries until a
// declaration assigns it one.
const NoPrecedence = -1

// DefaultName is the pseudo-symbol used by the packed action table to mean
// "any lookahead not otherwise listed". It sorts last among all symbols.
const DefaultName = "{default}"

// EndName is the end-of-input pseudo-terminal, always present.
const EndName = "$"

// ErrorName is the error-recovery pseudo-terminal, always present.
const ErrorName = "error"

type record struct {
	name           string
	kind           Kind
	prec           int
	assoc          Assoc
	lambda         bool
	first          *bitset.Set
	destructor     string
	destructorLine int
	hasDestructor  bool
	datatype       string
	dtnum          int
	ruleHead       int // index of the first rule with this symbol as LHS, or -1
}

// Table interns symbol names into Symbol handles and stores their
// attributes in one slice of records, indexed by handle. Handles are
// assigned in interning order and renumbered exactly once, by
// AssignIndexes, into the sorted order; a handle obtained before that
// call has to be looked up again by name afterwards.
type Table struct {
	recs     []*record
	byName   map[string]Symbol
	nextPrec int
	nTerm    int
	sorted   bool
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		byName:   make(map[string]Symbol),
		nextPrec: 0,
	}
}

// isTerminalName reports whether name would name a terminal: its first rune
// is uppercase, a digit, or punctuation other than a letter. Grammar
// surface symbols are always alphanumeric identifiers, so in practice this
// reduces to "first rune is not lowercase".
func isTerminalName(name string) bool {
	if name == "" {
		return true
	}
	r := []rune(name)[0]
	return !unicode.IsLower(r)
}

// Intern returns the Symbol for name, creating a new record on first use.
// Kind is inferred from the case of the first character, per §3: lowercase
// leading names are nonterminals, everything else is a terminal.
func (t *Table) Intern(name string) Symbol {
	if s, ok := t.byName[name]; ok {
		return s
	}
	kind := NonTerminal
	if isTerminalName(name) || name == ErrorName {
		kind = Terminal
	}
	r := &record{
		name:     name,
		kind:     kind,
		prec:     NoPrecedence,
		assoc:    AssocUnknown,
		ruleHead: -1,
	}
	s := Symbol(len(t.recs))
	t.recs = append(t.recs, r)
	t.byName[name] = s
	return s
}

// Lookup returns the Symbol for name without creating it.
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

func (t *Table) rec(s Symbol) *record {
	return t.recs[s]
}

// Name returns s's canonical name.
func (t *Table) Name(s Symbol) string { return t.rec(s).name }

// Kind returns s's kind.
func (t *Table) Kind(s Symbol) Kind { return t.rec(s).kind }

// Precedence returns s's precedence, or NoPrecedence if unset.
func (t *Table) Precedence(s Symbol) int { return t.rec(s).prec }

// Assoc returns s's associativity.
func (t *Table) Assoc(s Symbol) Assoc { return t.rec(s).assoc }

// SetPrecedence assigns prec/assoc to s. Returns false if s already carries
// a precedence (duplicate %left/%right/%nonassoc on the same symbol).
func (t *Table) SetPrecedence(s Symbol, prec int, assoc Assoc) bool {
	r := t.rec(s)
	if r.prec != NoPrecedence {
		return false
	}
	r.prec = prec
	r.assoc = assoc
	return true
}

// NewPrecedenceLevel returns the next precedence counter value, incrementing
// it. Each %left/%right/%nonassoc line gets its own level.
func (t *Table) NewPrecedenceLevel() int {
	t.nextPrec++
	return t.nextPrec
}

// Lambda reports whether nonterminal s can derive the empty string.
func (t *Table) Lambda(s Symbol) bool { return t.rec(s).lambda }

// SetLambda sets the λ flag for s, returning whether it actually changed
// (used to drive the λ/FIRST fixed point).
func (t *Table) SetLambda(s Symbol, v bool) bool {
	r := t.rec(s)
	if r.lambda == v {
		return false
	}
	r.lambda = v
	return true
}

// First returns s's FIRST set, allocating it lazily sized to the current
// terminal count. Only meaningful for nonterminals; called on a terminal it
// returns a set that nothing ever fills.
func (t *Table) First(s Symbol, nTerminals int) *bitset.Set {
	r := t.rec(s)
	if r.first == nil {
		r.first = bitset.New(nTerminals)
	}
	return r.first
}

// SetDestructor attaches a destructor code fragment and its source line to
// s. Returns false if s already has one (duplicate %destructor).
func (t *Table) SetDestructor(s Symbol, code string, line int) bool {
	r := t.rec(s)
	if r.hasDestructor {
		return false
	}
	r.destructor = code
	r.destructorLine = line
	r.hasDestructor = true
	return true
}

// Destructor returns s's destructor code and whether one was set.
func (t *Table) Destructor(s Symbol) (string, int, bool) {
	r := t.rec(s)
	return r.destructor, r.destructorLine, r.hasDestructor
}

// SetDataType attaches a %type datatype annotation to s. Returns false if s
// already has one.
func (t *Table) SetDataType(s Symbol, datatype string) bool {
	r := t.rec(s)
	if r.datatype != "" {
		return false
	}
	r.datatype = datatype
	return true
}

// DataType returns s's datatype annotation, or "" if none.
func (t *Table) DataType(s Symbol) string { return t.rec(s).datatype }

// SetDtNum records the emitted union slot id assigned to s during C11's
// datatype hashing pass.
func (t *Table) SetDtNum(s Symbol, n int) { t.rec(s).dtnum = n }

// DtNum returns s's assigned union slot id.
func (t *Table) DtNum(s Symbol) int { return t.rec(s).dtnum }

// RuleHead returns the index of the first rule with s as LHS, or -1.
func (t *Table) RuleHead(s Symbol) int { return t.rec(s).ruleHead }

// SetRuleHead records the head-of-chain rule index for nonterminal s.
func (t *Table) SetRuleHead(s Symbol, ruleIndex int) { t.rec(s).ruleHead = ruleIndex }

// Len returns the number of interned symbols.
func (t *Table) Len() int { return len(t.recs) }

// symbolComparator orders symbols the way §4.2 requires: terminals before
// nonterminals, each class alphabetical by name, with the {default}
// pseudo-symbol forced to sort last of all.
func (t *Table) symbolComparator(a, b interface{}) int {
	sa, sb := a.(Symbol), b.(Symbol)
	ra, rb := t.rec(sa), t.rec(sb)
	if ra.name == DefaultName {
		return 1
	}
	if rb.name == DefaultName {
		return -1
	}
	if ra.kind != rb.kind {
		if ra.kind == Terminal {
			return -1
		}
		return 1
	}
	switch {
	case ra.name < rb.name:
		return -1
	case ra.name > rb.name:
		return 1
	default:
		return 0
	}
}

// AssignIndexes sorts all interned symbols per §4.2's ordering, reassigns
// every Symbol handle to its position in that order, and returns the
// number of terminals. It must be called exactly once, after parsing has
// interned every symbol the grammar mentions (including the pseudo-symbols
// registered by EnsurePseudoSymbols) and before any analysis pass runs,
// since every later component addresses symbols by their final index.
func (t *Table) AssignIndexes() int {
	if t.sorted {
		return t.nTerm
	}
	ts := treeset.NewWith(func(a, b interface{}) int { return t.symbolComparator(a, b) })
	for i := range t.recs {
		ts.Add(Symbol(i))
	}

	order := make([]Symbol, 0, len(t.recs))
	for _, v := range ts.Values() {
		order = append(order, v.(Symbol))
	}

	newRecs := make([]*record, len(order))
	newIndex := make(map[Symbol]Symbol, len(order))
	nTerm := 0
	for newIdx, oldIdx := range order {
		rec := t.recs[oldIdx]
		newRecs[newIdx] = rec
		newIndex[oldIdx] = Symbol(newIdx)
		if rec.kind == Terminal && rec.name != DefaultName {
			nTerm++
		}
	}

	// Fix up ruleHead pointers: those are rule indexes, not symbol
	// indexes, so they are untouched by the symbol renumbering. Only the
	// byName map needs to track the new handle values.
	for name, old := range t.byName {
		t.byName[name] = newIndex[old]
	}

	t.recs = newRecs
	t.nTerm = nTerm
	t.sorted = true
	return nTerm
}

// NTerminal returns the terminal count computed by AssignIndexes. It is
// only valid after AssignIndexes has run.
func (t *Table) NTerminal() int { return t.nTerm }

// All returns every interned symbol in index order. Valid before or after
// AssignIndexes (the order just changes meaning).
func (t *Table) All() []Symbol {
	out := make([]Symbol, len(t.recs))
	for i := range t.recs {
		out[i] = Symbol(i)
	}
	return out
}

// Terminals returns symbols [0, NTerminal()), valid after AssignIndexes.
func (t *Table) Terminals() []Symbol {
	out := make([]Symbol, 0, t.nTerm)
	for i := 0; i < t.nTerm; i++ {
		out = append(out, Symbol(i))
	}
	return out
}

// NonTerminals returns symbols [NTerminal(), Len()), valid after
// AssignIndexes.
func (t *Table) NonTerminals() []Symbol {
	out := make([]Symbol, 0, len(t.recs)-t.nTerm)
	for i := t.nTerm; i < len(t.recs); i++ {
		out = append(out, Symbol(i))
	}
	return out
}

// EnsurePseudoSymbols interns the end-of-input, error, and {default}
// pseudo-symbols if they are not already present, per §4.2. It must run
// after the grammar file is fully parsed and before AssignIndexes.
func (t *Table) EnsurePseudoSymbols() (end, errSym, deflt Symbol) {
	end = t.Intern(EndName)
	errSym = t.Intern(ErrorName)
	deflt = t.Intern(DefaultName)
	return
}

// SortedNames is a convenience used by the reporter: the names of ss in
// the order Table would put them, independent of ss's own order.
func (t *Table) SortedNames(ss []Symbol) []string {
	cp := make([]Symbol, len(ss))
	copy(cp, ss)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	names := make([]string, len(cp))
	for i, s := range cp {
		names[i] = t.Name(s)
	}
	return names
}
