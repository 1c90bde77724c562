package emit

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/kymmt90/lrcc/grammar"
	"github.com/kymmt90/lrcc/symbol"
	"github.com/kymmt90/lrcc/table"
)

//go:embed templates/default.tmpl
var defaultTemplate string

// DefaultTemplate returns a fresh reader over the built-in template used
// when the `-t` flag names none, per §6.
func DefaultTemplate() io.Reader { return strings.NewReader(defaultTemplate) }

// Options mirrors the emission-affecting flags of §6's CLI.
type Options struct {
	Name           string // parser name substituted for "Parse" in the template, per §4.7
	SeparateHeader bool   // -m: elide inline token defines, write them to a .h instead
}

// Emit drives tmpl across g's compiled, compressed, packed state,
// writing the generated parser source to out and (if opts.SeparateHeader)
// returning the separate header's contents for the caller to write with
// the §8 "byte-identical content preserves mtime" rule.
func Emit(g *grammar.Grammar, p *table.Packed, dt *DataTypes, tmpl io.Reader, out io.Writer, opts Options) (header string, err error) {
	sc := bufio.NewScanner(tmpl)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	t := &templateDriver{sc: sc}

	t.xfer(out, opts.Name)
	tokenDefs := renderTokenDefines(g)
	if opts.SeparateHeader {
		header = tokenDefs
		fmt.Fprintf(out, "#include \"%s.h\"\n", opts.Name)
	} else {
		fmt.Fprintf(out, "%s", tokenDefs)
	}
	writeIncludeBlock(out, g)

	t.xfer(out, opts.Name)
	writeStackUnion(out, g, dt)
	writeFrameworkDefines(out, g)

	t.xfer(out, opts.Name)
	writeSymbolNames(out, g)

	t.xfer(out, opts.Name)
	writeActionTable(out, p)
	writeStateTable(out, p)

	t.xfer(out, opts.Name)
	writeDestructorDispatch(out, g)

	t.xfer(out, opts.Name)
	writeReduceCases(out, g)

	t.xfer(out, opts.Name)

	return header, sc.Err()
}

func renderTokenDefines(g *grammar.Grammar) string {
	var b strings.Builder
	prefix := g.TokenPrefix
	for _, s := range g.Symbols.Terminals() {
		if g.Symbols.Name(s) == symbol.EndName {
			continue
		}
		fmt.Fprintf(&b, "const %s%s = %d\n", prefix, g.Symbols.Name(s), int(s))
	}
	return b.String()
}

func writeIncludeBlock(out io.Writer, g *grammar.Grammar) {
	if g.Include == "" {
		return
	}
	fmt.Fprintf(out, "%s\n", g.Include)
}

func writeStackUnion(out io.Writer, g *grammar.Grammar, dt *DataTypes) {
	fmt.Fprintln(out, "type yyMinor struct {")
	for i, slotType := range dt.Slots {
		if i == 0 {
			continue
		}
		if slotType == "" {
			slotType = "interface{}"
		}
		fmt.Fprintf(out, "\tyy%d %s\n", i, slotType)
	}
	fmt.Fprintln(out, "}")
}

func writeFrameworkDefines(out io.Writer, g *grammar.Grammar) {
	codeWidth := "uint8"
	if g.Symbols.Len() > 250 {
		codeWidth = "int"
	}
	actionWidth := "uint8"
	if len(g.States)+len(g.Rules) > 250 {
		actionWidth = "int"
	}
	stackSize := "100"
	if g.StackSize != "" {
		stackSize = g.StackSize
	}
	fmt.Fprintf(out, "type YYCodeType = %s\n", codeWidth)
	fmt.Fprintf(out, "type YYActionType = %s\n", actionWidth)
	fmt.Fprintf(out, "const YYSTACKDEPTH = %s\n", stackSize)
	fmt.Fprintf(out, "const YYNSTATE = %d\n", len(g.States))
	fmt.Fprintf(out, "const YYNRULE = %d\n", len(g.Rules))
	fmt.Fprintf(out, "const YYERRORSYMBOL = %d\n", int(g.ErrorSym))
	fmt.Fprintf(out, "const YYERRSYMDT = %d\n", g.Symbols.DtNum(g.ErrorSym))
}

func writeActionTable(out io.Writer, p *table.Packed) {
	fmt.Fprintln(out, "type yyActionEntry struct {")
	fmt.Fprintln(out, "\tlookahead int")
	fmt.Fprintln(out, "\taction    int")
	fmt.Fprintln(out, "\tnext      int")
	fmt.Fprintln(out, "}")
	fmt.Fprintln(out, "var yyActionTable = []yyActionEntry{")
	for _, e := range p.Entries {
		if e.Lookahead == p.NoCode {
			fmt.Fprintln(out, "\t{YYNOCODE, 0, -1}, // unused")
			continue
		}
		collide := ""
		if e.Next >= 0 {
			collide = fmt.Sprintf(" -> &yyActionTable[%d]", e.Next)
		}
		fmt.Fprintf(out, "\t{%d, %d, %d}, // lookahead %d%s\n", e.Lookahead, e.Action, e.Next, e.Lookahead, collide)
	}
	fmt.Fprintln(out, "}")
}

func writeStateTable(out io.Writer, p *table.Packed) {
	fmt.Fprintln(out, "type yyStateDesc struct {")
	fmt.Fprintln(out, "\ttabstart      int")
	fmt.Fprintln(out, "\tmask          int")
	fmt.Fprintln(out, "\tdefaultAction int")
	fmt.Fprintln(out, "}")
	fmt.Fprintln(out, "var yyStateTable = []yyStateDesc{")
	for i, s := range p.States {
		fmt.Fprintf(out, "\t{%d, %d, %d}, // state %d\n", s.TabStart, s.Mask, s.DefaultAction, i)
	}
	fmt.Fprintln(out, "}")
}

func writeSymbolNames(out io.Writer, g *grammar.Grammar) {
	fmt.Fprintln(out, "var yySymbolName = []string{")
	for _, s := range g.Symbols.All() {
		fmt.Fprintf(out, "\t%q,\n", g.Symbols.Name(s))
	}
	fmt.Fprintln(out, "}")
}

func writeDestructorDispatch(out io.Writer, g *grammar.Grammar) {
	for _, s := range g.Symbols.All() {
		code, _, ok := g.Symbols.Destructor(s)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "\tcase %d: // %s\n", int(s), g.Symbols.Name(s))
		fmt.Fprintf(out, "\t\t%s\n", code)
	}
}

func writeReduceCases(out io.Writer, g *grammar.Grammar) {
	for _, r := range g.Rules {
		fmt.Fprintf(out, "\tcase %d: // %s\n", r.Index, g.Symbols.Name(r.LHS))
		body := RewriteRuleBody(g, r)
		if body != "" {
			fmt.Fprintf(out, "\t\t%s\n", body)
		}
		for _, call := range AutoDestructorCalls(g, r) {
			fmt.Fprintf(out, "\t\t%s\n", call)
		}
	}
}
