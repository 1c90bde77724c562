package grammar

import (
	"fmt"

	"github.com/kymmt90/lrcc/symbol"
)

// MaxRHS bounds the number of right-hand-side symbols a single rule may
// carry, per §7's "too many RHS (> MAXRHS)" error.
const MaxRHS = 200

type parserState int

const (
	stWaitDeclOrRule parserState = iota
	stWaitArrow
	stInRHS
	stWaitDeclKW
	stWaitPrecSym
	stLHSAlias
	stRHSAlias
	stPrecOverride
)

// declArgKind classifies how a declaration keyword's argument is scanned,
// per the target list enumerated in §4.1. This tool's surface syntax asks
// every non-symbol-name argument to be either a single identifier or a
// single braced code block, which keeps the keyword table small while
// still giving every keyword §4.1 names somewhere to write its value.
type declArgKind int

const (
	declArgID declArgKind = iota
	declArgCode
	declArgSymbolAndCode // %destructor, %type
	declArgPrecGroup     // %left, %right, %nonassoc
)

type declInfo struct {
	kind declArgKind
}

var declKeywords = map[string]declInfo{
	"name":             {declArgID},
	"include":          {declArgCode},
	"code":             {declArgCode},
	"token_destructor": {declArgCode},
	"token_prefix":     {declArgID},
	"syntax_error":     {declArgCode},
	"parse_accept":     {declArgCode},
	"parse_failure":    {declArgCode},
	"stack_overflow":   {declArgCode},
	"extra_argument":   {declArgCode},
	"token_type":       {declArgCode},
	"stack_size":       {declArgID},
	"start_symbol":     {declArgID},
	"left":             {declArgPrecGroup},
	"right":            {declArgPrecGroup},
	"nonassoc":         {declArgPrecGroup},
	"destructor":       {declArgSymbolAndCode},
	"type":             {declArgSymbolAndCode},
}

type ruleBuf struct {
	lhs      symbol.Symbol
	lhsAlias string
	line     int
	rhs      []symbol.Symbol
	alias    []string
}

// parser drives the §4.1 state machine over the token stream produced by
// Scanner, building up Grammar.Rules and the declaration fields.
type parser struct {
	sc *Scanner
	g  *Grammar

	state parserState
	cur   Token

	buf      ruleBuf
	lastRule *Rule

	curPrec  int
	curAssoc symbol.Assoc
}

// Parse reads src (the full grammar file contents) and builds a Grammar.
// It never stops at the first error: per §7, lexical/structural and
// semantic errors are accumulated in the returned Grammar's Errors field
// while the parser resynchronizes on the next `.` or `%`.
func Parse(src, filename string) *Grammar {
	p := &parser{
		sc:    NewScanner(src),
		g:     NewGrammar(filename),
		state: stWaitDeclOrRule,
	}
	p.advance()
	for p.cur.Kind != TokEOF {
		p.step()
	}
	if p.state == stInRHS || p.state == stWaitArrow {
		p.errorAt(p.cur.Line, fmt.Errorf("unexpected end of file while parsing a rule"))
	}
	return p.g
}

func (p *parser) errorAt(line int, err error) {
	p.g.Errors.Add(p.g.Filename, line, err)
}

func (p *parser) advance() {
	tok, err := p.sc.Next()
	for err != nil {
		p.errorAt(p.sc.Line(), err)
		tok, err = p.sc.Next()
	}
	p.cur = tok
}

func (p *parser) step() {
	switch p.state {
	case stWaitDeclOrRule:
		p.stepWaitDeclOrRule()
	case stWaitArrow:
		p.stepWaitArrow()
	case stInRHS:
		p.stepInRHS()
	case stWaitDeclKW:
		p.stepWaitDeclKW()
	case stWaitPrecSym:
		p.stepWaitPrecSym()
	case stLHSAlias:
		p.stepLHSAlias()
	case stRHSAlias:
		p.stepRHSAlias()
	case stPrecOverride:
		p.stepPrecOverride()
	}
}

func (p *parser) stepWaitDeclOrRule() {
	switch p.cur.Kind {
	case TokPercent:
		p.advance()
		p.state = stWaitDeclKW
	case TokID:
		if isTerminalName(p.cur.Text) {
			p.errorAt(p.cur.Line, fmt.Errorf("expected a lowercase nonterminal name to start a rule, found %q", p.cur.Text))
			p.resync()
			return
		}
		p.buf = ruleBuf{lhs: p.g.Symbols.Intern(p.cur.Text), line: p.cur.Line}
		p.advance()
		p.state = stWaitArrow
	case TokLBrace, TokCode:
		if p.lastRule == nil {
			p.errorAt(p.cur.Line, errDuplicateCode)
			p.advance()
			return
		}
		if p.lastRule.Code != "" {
			p.errorAt(p.cur.Line, errDuplicateCode)
			p.advance()
			return
		}
		p.lastRule.Code = p.cur.Text
		p.lastRule.CodeLine = p.cur.Line
		p.advance()
	case TokLBracket:
		p.advance()
		p.state = stPrecOverride
	default:
		p.errorAt(p.cur.Line, fmt.Errorf("unexpected %v, expected a declaration or a rule", p.cur.Kind))
		p.resync()
	}
}

func (p *parser) stepWaitArrow() {
	switch p.cur.Kind {
	case TokArrow:
		p.advance()
		p.state = stInRHS
	case TokLParen:
		p.advance()
		p.state = stLHSAlias
	default:
		p.errorAt(p.cur.Line, errExpectedArrow)
		p.resync()
	}
}

func (p *parser) stepLHSAlias() {
	if p.cur.Kind != TokID {
		p.errorAt(p.cur.Line, errExpectedIdentifier)
		p.resync()
		return
	}
	p.buf.lhsAlias = p.cur.Text
	p.advance()
	if p.cur.Kind != TokRParen {
		p.errorAt(p.cur.Line, errExpectedParen)
		p.resync()
		return
	}
	p.advance()
	p.state = stWaitArrow
}

func (p *parser) stepInRHS() {
	switch p.cur.Kind {
	case TokID:
		if len(p.buf.rhs) >= MaxRHS {
			p.errorAt(p.cur.Line, errTooManyRHS)
			p.resync()
			return
		}
		p.buf.rhs = append(p.buf.rhs, p.g.Symbols.Intern(p.cur.Text))
		p.buf.alias = append(p.buf.alias, "")
		p.advance()
	case TokLParen:
		if len(p.buf.rhs) == 0 {
			p.errorAt(p.cur.Line, fmt.Errorf("an alias must follow a right-hand-side symbol"))
			p.resync()
			return
		}
		p.advance()
		p.state = stRHSAlias
	case TokDot:
		p.advance()
		p.materializeRule()
		p.state = stWaitDeclOrRule
	default:
		p.errorAt(p.cur.Line, fmt.Errorf("unexpected %v in a rule's right-hand side", p.cur.Kind))
		p.resync()
	}
}

func (p *parser) stepRHSAlias() {
	if p.cur.Kind != TokID {
		p.errorAt(p.cur.Line, errExpectedIdentifier)
		p.resync()
		return
	}
	p.buf.alias[len(p.buf.alias)-1] = p.cur.Text
	p.advance()
	if p.cur.Kind != TokRParen {
		p.errorAt(p.cur.Line, errExpectedParen)
		p.resync()
		return
	}
	p.advance()
	p.state = stInRHS
}

func (p *parser) stepPrecOverride() {
	if p.cur.Kind != TokID || !isTerminalName(p.cur.Text) {
		p.errorAt(p.cur.Line, fmt.Errorf("expected an uppercase terminal name for the precedence override"))
		p.resync()
		return
	}
	if p.lastRule == nil {
		p.errorAt(p.cur.Line, fmt.Errorf("a precedence override must follow a rule"))
	} else {
		p.lastRule.Precedence = p.g.Symbols.Intern(p.cur.Text)
	}
	p.advance()
	if p.cur.Kind != TokRBracket {
		p.errorAt(p.cur.Line, errExpectedBracket)
		p.resync()
		return
	}
	p.advance()
	p.state = stWaitDeclOrRule
}

func (p *parser) materializeRule() {
	r := &Rule{
		LHS:        p.buf.lhs,
		LHSAlias:   p.buf.lhsAlias,
		RHS:        p.buf.rhs,
		RHSAlias:   p.buf.alias,
		Precedence: symbol.NoSymbol,
		Line:       p.buf.line,
	}
	p.g.AddRule(r)
	p.lastRule = r
	p.buf = ruleBuf{}
}

func (p *parser) stepWaitDeclKW() {
	if p.cur.Kind != TokID {
		p.errorAt(p.cur.Line, errUnknownDeclKeyword)
		p.resync()
		return
	}
	info, ok := declKeywords[p.cur.Text]
	if !ok {
		p.errorAt(p.cur.Line, fmt.Errorf("%w: %q", errUnknownDeclKeyword, p.cur.Text))
		p.advance()
		p.resync()
		return
	}
	name := p.cur.Text
	p.advance()

	switch info.kind {
	case declArgPrecGroup:
		p.curPrec = p.g.Symbols.NewPrecedenceLevel()
		switch name {
		case "left":
			p.curAssoc = symbol.AssocLeft
		case "right":
			p.curAssoc = symbol.AssocRight
		default:
			p.curAssoc = symbol.AssocNone
		}
		p.state = stWaitPrecSym
		return
	case declArgSymbolAndCode:
		p.parseSymbolAndCodeDecl(name)
		return
	case declArgID:
		p.parseIDDecl(name)
		return
	case declArgCode:
		p.parseCodeDecl(name)
		return
	}
}

func (p *parser) parseIDDecl(name string) {
	if p.cur.Kind != TokID {
		p.errorAt(p.cur.Line, errExpectedIdentifier)
		p.resync()
		return
	}
	text := p.cur.Text
	line := p.cur.Line
	p.advance()
	p.assignDeclField(name, text, line)
	p.expectDotEndDecl()
}

func (p *parser) parseCodeDecl(name string) {
	if p.cur.Kind != TokCode {
		p.errorAt(p.cur.Line, fmt.Errorf("expected a { ... } code block for %%%s", name))
		p.resync()
		return
	}
	text := p.cur.Text
	line := p.cur.Line
	p.advance()
	p.assignDeclField(name, text, line)
	p.expectDotEndDecl()
}

func (p *parser) parseSymbolAndCodeDecl(name string) {
	if p.cur.Kind != TokID {
		if name == "destructor" {
			p.errorAt(p.cur.Line, errDestructorSymbolMissing)
		} else {
			p.errorAt(p.cur.Line, errTypeSymbolMissing)
		}
		p.resync()
		return
	}
	sym := p.g.Symbols.Intern(p.cur.Text)
	p.advance()
	if p.cur.Kind != TokCode {
		p.errorAt(p.cur.Line, fmt.Errorf("expected a { ... } code block for %%%s", name))
		p.resync()
		return
	}
	text := p.cur.Text
	line := p.cur.Line
	p.advance()

	switch name {
	case "destructor":
		if !p.g.Symbols.SetDestructor(sym, text, line) {
			p.errorAt(line, fmt.Errorf("%%destructor already set for %q", p.g.Symbols.Name(sym)))
		}
	case "type":
		if !p.g.Symbols.SetDataType(sym, text) {
			p.errorAt(line, fmt.Errorf("%%type already set for %q", p.g.Symbols.Name(sym)))
		}
	}
	p.expectDotEndDecl()
}

func (p *parser) expectDotEndDecl() {
	if p.cur.Kind != TokDot {
		p.errorAt(p.cur.Line, errExpectedDot)
		p.resync()
		return
	}
	p.advance()
	p.state = stWaitDeclOrRule
}

func (p *parser) assignDeclField(name, text string, line int) {
	switch name {
	case "name":
		p.g.Name = text
	case "include":
		p.g.Include = text
	case "code":
		p.g.Code = text
	case "token_destructor":
		p.g.TokenDestructor = text
		p.g.TokenDestructorLine = line
	case "token_prefix":
		p.g.TokenPrefix = text
	case "syntax_error":
		p.g.SyntaxError = text
	case "parse_accept":
		p.g.ParseAccept = text
	case "parse_failure":
		p.g.ParseFailure = text
	case "stack_overflow":
		p.g.StackOverflow = text
	case "extra_argument":
		p.g.ExtraArgument = text
	case "token_type":
		p.g.TokenType = text
	case "stack_size":
		p.g.StackSize = text
		p.g.StackSizeLine = line
	case "start_symbol":
		p.g.StartName = text
	}
}

func (p *parser) stepWaitPrecSym() {
	switch p.cur.Kind {
	case TokID:
		if !isTerminalName(p.cur.Text) {
			p.errorAt(p.cur.Line, fmt.Errorf("expected an uppercase terminal name in a precedence declaration"))
			p.advance()
			return
		}
		sym := p.g.Symbols.Intern(p.cur.Text)
		if !p.g.Symbols.SetPrecedence(sym, p.curPrec, p.curAssoc) {
			p.errorAt(p.cur.Line, fmt.Errorf("%w: %q", errDuplicatePrecedence, p.cur.Text))
		}
		p.advance()
	case TokDot:
		p.advance()
		p.state = stWaitDeclOrRule
	default:
		p.errorAt(p.cur.Line, fmt.Errorf("unexpected %v in a precedence declaration", p.cur.Kind))
		p.resync()
	}
}

// isTerminalName mirrors symbol.isTerminalName's rule (uppercase-leading
// names are terminals) without exposing the lowercase helper across
// packages.
func isTerminalName(name string) bool {
	if name == "" {
		return true
	}
	c := name[0]
	return !(c >= 'a' && c <= 'z')
}

// resync implements the RESYNC_* states: skip tokens until a rule
// boundary `.` or a declaration boundary `%`, consuming the boundary
// token and switching state accordingly, per §4.1/§7.
func (p *parser) resync() {
	p.buf = ruleBuf{}
	for {
		switch p.cur.Kind {
		case TokEOF:
			p.state = stWaitDeclOrRule
			return
		case TokDot:
			p.advance()
			p.state = stWaitDeclOrRule
			return
		case TokPercent:
			p.advance()
			p.state = stWaitDeclKW
			return
		default:
			p.advance()
		}
	}
}
