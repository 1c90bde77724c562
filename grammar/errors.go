package grammar

import "errors"

// Sentinel errors for the lexical/structural and semantic categories §7
// enumerates. Each is wrapped with source-file/line context into a
// rerr.GrammarError at the point it is raised.
var (
	errUnterminatedString   = errors.New("unterminated string")
	errUnterminatedCode     = errors.New("unterminated code block")
	errIllegalCharacter     = errors.New("illegal character")
	errUnknownDeclKeyword   = errors.New("unknown declaration keyword")
	errExpectedArrow        = errors.New("expected ::=")
	errExpectedDot          = errors.New("expected .")
	errExpectedParen        = errors.New("expected )")
	errExpectedBracket      = errors.New("expected ]")
	errExpectedIdentifier   = errors.New("expected identifier")

	errStartOnRHS           = errors.New("the start symbol must not appear on the right-hand side of any rule")
	errNonterminalNoRules   = errors.New("nonterminal has no rules")
	errDuplicatePrecedence  = errors.New("symbol already has a precedence")
	errDuplicateCode        = errors.New("rule already has an action code block")
	errTooManyRHS           = errors.New("too many right-hand-side symbols")
	errUnusedLHSAlias       = errors.New("LHS alias is never referenced in the action code")
	errUnusedRHSAlias       = errors.New("RHS alias is never referenced in the action code")
	errUnreducibleRule      = errors.New("This rule can not be reduced.")
	errIllegalStackSize     = errors.New("illegal stack size")

	// errDestructorSymbolMissing and errTypeSymbolMissing cover the same
	// "no symbol name follows the keyword" mistake for %destructor and
	// %type respectively. §9's Open Question notes that the source's
	// message for the %type case is a copy-paste of the %destructor one
	// (it names "%destructor" even when %type is what's missing a
	// symbol); these stay two distinct sentinels, each naming its own
	// keyword, so that mistake isn't reproduced here.
	errDestructorSymbolMissing = errors.New("symbol name missing after %destructor keyword")
	errTypeSymbolMissing       = errors.New("symbol name missing after %type keyword")
)
