package syntax

import (
	"milac/ast"
)

// stmt = empty_stmt | EXIT | BREAK
//      | IDENT (call_args | '[' expr ']' ':=' expr | ':=' expr)
//      | compound_stmt
//      | IF expr THEN stmt [ELSE stmt]
//      | WHILE expr DO stmt
//      | FOR IDENT ':=' expr (TO|DOWNTO) expr DO stmt
func (p *Parser) parseStmt() (ast.Stmt, error) {
	tok := p.peek()
	switch tok.Kind {
	case TOK_SEMI, TOK_END:
		return &ast.Empty{Base: ast.At(tok.Pos)}, nil

	case TOK_EXIT:
		if _, _, err := p.match(TOK_EXIT); err != nil {
			return nil, err
		}
		return &ast.Exit{Base: ast.At(tok.Pos)}, nil

	case TOK_BREAK:
		if _, _, err := p.match(TOK_BREAK); err != nil {
			return nil, err
		}
		return &ast.Break{Base: ast.At(tok.Pos)}, nil

	case TOK_BEGIN:
		return p.parseCompound()

	case TOK_IF:
		return p.parseIf()

	case TOK_WHILE:
		return p.parseWhile()

	case TOK_FOR:
		return p.parseFor()

	case TOK_IDENT:
		return p.parseIdentStmt()
	}

	return nil, p.errExpect("statement",
		name(TOK_EXIT), name(TOK_BREAK), name(TOK_BEGIN), name(TOK_IF),
		name(TOK_WHILE), name(TOK_FOR), name(TOK_IDENT))
}

// compound_stmt = BEGIN stmt (';' stmt)* END
func (p *Parser) parseCompound() (ast.Stmt, error) {
	begin, err := p.expect(TOK_BEGIN, "compound statement")
	if err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)

		if _, ok, err := p.match(TOK_SEMI); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		break
	}

	if _, err := p.expect(TOK_END, "compound statement"); err != nil {
		return nil, err
	}

	return &ast.Compound{Base: ast.At(begin.Pos), Stmts: stmts}, nil
}

// parseIdentStmt resolves the three forms starting with an identifier: a
// procedure/predefined call, an array-element assignment, or a plain
// variable assignment.
func (p *Parser) parseIdentStmt() (ast.Stmt, error) {
	ident, pos, err := p.expectIdent("statement")
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
		return &ast.ProcCall{Base: ast.At(pos), Name: ident, Args: args}, nil
	}

	var lhs ast.Expr = &ast.VarRef{Base: ast.At(pos), Name: ident}
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
		lhs = &ast.ArrayRef{Base: ast.At(pos), Name: ident, Index: idx}
	}

	assign, err := p.expect(TOK_ASSIGN, "assignment")
	if err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Base: ast.At(assign.Pos), Lhs: lhs, Rhs: rhs}, nil
}

// if_stmt = IF expr THEN stmt [ELSE stmt]
// the dangling else binds to the nearest unmatched IF because this call
// greedily consumes an ELSE immediately after parsing the THEN branch.
func (p *Parser) parseIf() (ast.Stmt, error) {
	tok, err := p.expect(TOK_IF, "if statement")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_THEN, "if statement"); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Stmt
	if _, ok, err := p.match(TOK_ELSE); err != nil {
		return nil, err
	} else if ok {
		elseStmt, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Base: ast.At(tok.Pos), Cond: cond, Then: then, Else: elseStmt}, nil
}

// while_stmt = WHILE expr DO stmt
func (p *Parser) parseWhile() (ast.Stmt, error) {
	tok, err := p.expect(TOK_WHILE, "while statement")
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_DO, "while statement"); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ast.While{Base: ast.At(tok.Pos), Cond: cond, Body: body}, nil
}

// for_stmt = FOR IDENT ':=' expr (TO|DOWNTO) expr DO stmt
func (p *Parser) parseFor() (ast.Stmt, error) {
	tok, err := p.expect(TOK_FOR, "for statement")
	if err != nil {
		return nil, err
	}

	ident, identPos, err := p.expectIdent("for statement")
	if err != nil {
		return nil, err
	}
	assign, err := p.expect(TOK_ASSIGN, "for statement")
	if err != nil {
		return nil, err
	}
	from, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	init := &ast.Assign{
		Base: ast.At(assign.Pos),
		Lhs:  &ast.VarRef{Base: ast.At(identPos), Name: ident},
		Rhs:  from,
	}

	var dir ast.ForDirection
	if _, ok, err := p.match(TOK_TO); err != nil {
		return nil, err
	} else if ok {
		dir = ast.Up
	} else if _, ok, err := p.match(TOK_DOWNTO); err != nil {
		return nil, err
	} else if ok {
		dir = ast.Down
	} else {
		return nil, p.errExpect("for statement", name(TOK_TO), name(TOK_DOWNTO))
	}

	to, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_DO, "for statement"); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	return &ast.For{Base: ast.At(tok.Pos), Init: init, To: to, Body: body, Direction: dir}, nil
}
