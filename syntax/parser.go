// Package syntax implements the lexer and the recursive-descent parser that
// turns Mila source text into an *ast.Program.
package syntax

import (
	"milac/ast"
	"milac/report"
)

// Parser is a one-token-lookahead recursive descent parser. Each rule method
// reads Peek(), dispatches on the token kind, and either returns an AST
// fragment or a *report.ParseError describing what was expected.
type Parser struct {
	lex *Lexer
}

// Parse lexes and parses source into a *ast.Program.
func Parse(source string) (*ast.Program, error) {
	lex, err := NewLexer(source)
	if err != nil {
		return nil, err
	}
	p := &Parser{lex: lex}
	return p.parseProgram()
}

func (p *Parser) peek() Token {
	return p.lex.Peek()
}

// match consumes the lookahead if it equals kind.
func (p *Parser) match(kind int) (Token, bool, error) {
	return p.lex.Match(kind)
}

// expect consumes the lookahead if it equals kind, else raises a ParseError
// naming rule as the context and kind's spelling as the sole expectation.
func (p *Parser) expect(kind int, rule string) (Token, error) {
	tok, ok, err := p.match(kind)
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, p.errExpect(rule, name(kind))
	}
	return tok, nil
}

// expectIdent is expect specialized for TOK_IDENT, for the common case of
// wanting the identifier text back.
func (p *Parser) expectIdent(rule string) (string, report.Position, error) {
	tok, ok, err := p.match(TOK_IDENT)
	if err != nil {
		return "", report.Position{}, err
	}
	if !ok {
		return "", report.Position{}, p.errExpect(rule, name(TOK_IDENT))
	}
	return tok.Ident, tok.Pos, nil
}

func (p *Parser) errExpect(rule string, expected ...string) error {
	tok := p.peek()
	return report.NewParseError(rule, tok.Value(), tok.Pos, expected...)
}
