package parser

import (
	"github.com/lassejlv/cii/pkg/ast"
	"github.com/lassejlv/cii/pkg/token"
)

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.Break):
		keyword := p.previous()
		if _, err := p.consume(token.Semicolon, "Expect ';' after 'break'."); err != nil {
			return nil, err
		}
		return ast.NewBreak(keyword), nil
	case p.match(token.Continue):
		keyword := p.previous()
		if _, err := p.consume(token.Semicolon, "Expect ';' after 'continue'."); err != nil {
			return nil, err
		}
		return ast.NewContinue(keyword), nil
	case p.match(token.LeftBrace):
		line := p.previous().Line
		stmts, err := p.blockStatements()
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(stmts, line), nil
	default:
		return p.expressionStatement()
	}
}

// blockStatements parses declarations up to the closing brace; the opening
// brace has already been consumed.
func (p *Parser) blockStatements() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) body }` with incr as the loop's increment, so it also
// runs after a continue.
func (p *Parser) forStatement() (ast.Stmt, error) {
	line := p.previous().Line
	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var (
		init ast.Stmt
		err  error
	)
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if !p.check(token.RightParen) {
		if incr, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if cond == nil {
		cond = ast.NewLiteral(true, line)
	}
	var loop ast.Stmt = ast.NewWhile(cond, body, incr, line)
	if init != nil {
		loop = ast.NewBlock([]ast.Stmt{init, loop}, line)
	}
	return loop, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	line := p.previous().Line
	cond, err := p.parenthesizedCondition("if")
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.match(token.Else) {
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return ast.NewIf(cond, then, els, line), nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	line := p.previous().Line
	cond, err := p.parenthesizedCondition("while")
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(cond, body, nil, line), nil
}

func (p *Parser) parenthesizedCondition(keyword string) (ast.Expr, error) {
	if _, err := p.consume(token.LeftParen, "Expect '(' after '"+keyword+"'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RightParen, "Expect ')' after "+keyword+" condition."); err != nil {
		return nil, err
	}
	return cond, nil
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	line := p.previous().Line
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.NewPrint(value, line), nil
}

func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.previous()
	var (
		value ast.Expr
		err   error
	)
	if !p.check(token.Semicolon) {
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturn(keyword, value), nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpression(expr), nil
}
