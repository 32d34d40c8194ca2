package parser

import (
	"github.com/lassejlv/cii/pkg/ast"
	"github.com/lassejlv/cii/pkg/token"
)

// maxArgs bounds call arguments and function parameters.
const maxArgs = 255

// Parser is a recursive-descent parser over a scanned token stream.
type Parser struct {
	tokens  []token.Token
	current int
	errs    Errors
}

// Parse builds the statement list for tokens. On a syntax error the parser
// skips to the next statement boundary and keeps going, so the returned
// *Errors lists every problem found. Statements that parsed cleanly are
// returned alongside the error.
func Parse(tokens []token.Token) ([]ast.Stmt, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, token.New(token.EOF, "", line))
	}
	p := &Parser{tokens: tokens}
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.errs.errOrNil()
}

// ParseSource scans and parses src, reporting scan and syntax errors
// together.
func ParseSource(src string) ([]ast.Stmt, error) {
	tokens, scanErr := Scan(src)
	stmts, parseErr := Parse(tokens)

	var all Errors
	for _, err := range []error{scanErr, parseErr} {
		if errs, ok := err.(*Errors); ok {
			all.Issues = append(all.Issues, errs.Issues...)
		}
	}
	return stmts, all.errOrNil()
}

// Token stream helpers.

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), message)
}

func (p *Parser) check(kind token.Kind) bool {
	if p.atEnd() {
		return kind == token.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) errorAt(tok token.Token, message string) error {
	return &SyntaxError{Token: tok, Message: message}
}

// synchronize discards tokens until a likely statement boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While,
			token.Print, token.Return, token.Break, token.Continue:
			return
		}
		p.advance()
	}
}
