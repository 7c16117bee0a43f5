package syntax

import (
	"milac/ast"
)

// parseExpr = or_expr
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseOr()
}

// or_expr = and_expr (OR and_expr)*
func (p *Parser) parseOr() (ast.Expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok, err := p.match(TOK_OR)
		if err != nil {
			return nil, err
		}
		if !ok {
			return lhs, nil
		}
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinOp{Base: ast.At(tok.Pos), Op: ast.OpOr, Lhs: lhs, Rhs: rhs}
	}
}

// and_expr = eq_expr (AND eq_expr)*
func (p *Parser) parseAnd() (ast.Expr, error) {
	lhs, err := p.parseEq()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok, err := p.match(TOK_AND)
		if err != nil {
			return nil, err
		}
		if !ok {
			return lhs, nil
		}
		rhs, err := p.parseEq()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinOp{Base: ast.At(tok.Pos), Op: ast.OpAnd, Lhs: lhs, Rhs: rhs}
	}
}

// eq_expr = rel_expr ((= | <>) rel_expr)*
func (p *Parser) parseEq() (ast.Expr, error) {
	lhs, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	for {
		op, tok, matched, err := p.matchOneOf(TOK_EQ, TOK_NEQ)
		if err != nil {
			return nil, err
		}
		if !matched {
			return lhs, nil
		}
		rhs, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinOp{Base: ast.At(tok.Pos), Op: op, Lhs: lhs, Rhs: rhs}
	}
}

// rel_expr = add_expr ((< | <= | > | >=) add_expr)*
func (p *Parser) parseRel() (ast.Expr, error) {
	lhs, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		op, tok, matched, err := p.matchOneOf(TOK_LT, TOK_LTEQ, TOK_GT, TOK_GTEQ)
		if err != nil {
			return nil, err
		}
		if !matched {
			return lhs, nil
		}
		rhs, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinOp{Base: ast.At(tok.Pos), Op: op, Lhs: lhs, Rhs: rhs}
	}
}

// add_expr = mul_expr ((+ | -) mul_expr)*
func (p *Parser) parseAdd() (ast.Expr, error) {
	lhs, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		op, tok, matched, err := p.matchOneOf(TOK_PLUS, TOK_MINUS)
		if err != nil {
			return nil, err
		}
		if !matched {
			return lhs, nil
		}
		rhs, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinOp{Base: ast.At(tok.Pos), Op: op, Lhs: lhs, Rhs: rhs}
	}
}

// mul_expr = unary_expr ((* | / | MOD | DIV) unary_expr)*
func (p *Parser) parseMul() (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, tok, matched, err := p.matchOneOf(TOK_STAR, TOK_SLASH, TOK_MOD, TOK_DIV)
		if err != nil {
			return nil, err
		}
		if !matched {
			return lhs, nil
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinOp{Base: ast.At(tok.Pos), Op: op, Lhs: lhs, Rhs: rhs}
	}
}

// unary_expr = (- | NOT) unary_expr | primary
func (p *Parser) parseUnary() (ast.Expr, error) {
	if tok, ok, err := p.match(TOK_MINUS); err != nil {
		return nil, err
	} else if ok {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Base: ast.At(tok.Pos), Op: ast.OpNeg, X: x}, nil
	}

	if tok, ok, err := p.match(TOK_NOT); err != nil {
		return nil, err
	} else if ok {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Base: ast.At(tok.Pos), Op: ast.OpNot, X: x}, nil
	}

	return p.parsePrimary()
}

// primary = IDENT (function_args | '[' expr ']' | ε) | '(' expr ')' | int_lit | real_lit
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case TOK_INT_LIT:
		if _, _, err := p.match(TOK_INT_LIT); err != nil {
			return nil, err
		}
		return ast.NewLiteralInt(tok.Pos, tok.IntVal), nil

	case TOK_REAL_LIT:
		if _, _, err := p.match(TOK_REAL_LIT); err != nil {
			return nil, err
		}
		return ast.NewLiteralReal(tok.Pos, tok.RealVal), nil

	case TOK_LPAREN:
		if _, _, err := p.match(TOK_LPAREN); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOK_RPAREN, "parenthesized expression"); err != nil {
			return nil, err
		}
		return inner, nil

	case TOK_IDENT:
		ident, pos, err := p.expectIdent("primary expression")
		if err != nil {
			return nil, err
		}

		if _, ok, err := p.match(TOK_LPAREN); err != nil {
			return nil, err
		} else if ok {
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			return &ast.Call{Base: ast.At(pos), Name: ident, Args: args}, nil
		}

		if _, ok, err := p.match(TOK_LBRACKET); err != nil {
			return nil, err
		} else if ok {
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TOK_RBRACKET, "array index"); err != nil {
				return nil, err
			}
			return &ast.ArrayRef{Base: ast.At(pos), Name: ident, Index: idx}, nil
		}

		return &ast.VarRef{Base: ast.At(pos), Name: ident}, nil
	}

	return nil, p.errExpect("primary expression",
		name(TOK_INT_LIT), name(TOK_REAL_LIT), name(TOK_LPAREN), name(TOK_IDENT))
}

// parseCallArgs parses the argument list of a call whose opening '(' has
// already been consumed.
func (p *Parser) parseCallArgs() ([]ast.Expr, error) {
	if _, ok, err := p.match(TOK_RPAREN); err != nil {
		return nil, err
	} else if ok {
		return nil, nil
	}

	var args []ast.Expr
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if _, ok, err := p.match(TOK_COMMA); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		break
	}

	if _, err := p.expect(TOK_RPAREN, "call arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

// matchOneOf consumes the lookahead and returns its mapped ast.Operator if
// its kind is one of kinds; otherwise it leaves the lookahead untouched.
func (p *Parser) matchOneOf(kinds ...int) (ast.Operator, Token, bool, error) {
	for _, k := range kinds {
		if tok, ok, err := p.match(k); err != nil {
			return 0, Token{}, false, err
		} else if ok {
			return tokenToOp[k], tok, true, nil
		}
	}
	return 0, Token{}, false, nil
}

var tokenToOp = map[int]ast.Operator{
	TOK_PLUS:  ast.OpAdd,
	TOK_MINUS: ast.OpSub,
	TOK_STAR:  ast.OpMul,
	TOK_SLASH: ast.OpDiv,
	TOK_DIV:   ast.OpDivKw,
	TOK_MOD:   ast.OpMod,
	TOK_EQ:    ast.OpEq,
	TOK_NEQ:   ast.OpNeq,
	TOK_LT:    ast.OpLt,
	TOK_LTEQ:  ast.OpLe,
	TOK_GT:    ast.OpGt,
	TOK_GTEQ:  ast.OpGe,
	TOK_AND:   ast.OpAnd,
	TOK_OR:    ast.OpOr,
}
