package syntax

import (
	"milac/ast"
	"milac/report"
)

// program = PROGRAM IDENT ';' block '.'
func (p *Parser) parseProgram() (*ast.Program, error) {
	tok, err := p.expect(TOK_PROGRAM, "program")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdent("program name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_SEMI, "program"); err != nil {
		return nil, err
	}

	block, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TOK_DOT, "program"); err != nil {
		return nil, err
	}

	return &ast.Program{Base: ast.At(tok.Pos), Name: name, Block: block}, nil
}

// block = (const_defs | var_decls | proc_decl | fun_decl)* compound_stmt
func (p *Parser) parseBlock(isMain bool) (*ast.Block, error) {
	pos := p.peek().Pos
	var stmts []ast.Stmt

	for {
		switch p.peek().Kind {
		case TOK_CONST:
			defs, err := p.parseConstDefs()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, defs...)
			continue

		case TOK_VAR:
			decls, err := p.parseVarDecls()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, decls...)
			continue

		case TOK_PROCEDURE:
			decl, err := p.parseProcDecl()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, decl)
			continue

		case TOK_FUNCTION:
			decl, err := p.parseFunDecl()
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, decl)
			continue
		}
		break
	}

	compound, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, compound)

	return &ast.Block{Base: ast.At(pos), Stmts: stmts, IsMain: isMain}, nil
}

// const_defs = CONST (IDENT '=' expr ';')+
func (p *Parser) parseConstDefs() ([]ast.Stmt, error) {
	if _, err := p.expect(TOK_CONST, "constant definitions"); err != nil {
		return nil, err
	}

	var defs []ast.Stmt
	for {
		name, pos, err := p.expectIdent("constant definition")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOK_EQ, "constant definition"); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOK_SEMI, "constant definition"); err != nil {
			return nil, err
		}

		defs = append(defs, &ast.ConstDef{Base: ast.At(pos), Name: name, Expr: expr})

		if p.peek().Kind != TOK_IDENT {
			break
		}
	}

	return defs, nil
}

// var_decls = VAR (ident_list ':' type ';')+
func (p *Parser) parseVarDecls() ([]ast.Stmt, error) {
	if _, err := p.expect(TOK_VAR, "variable declarations"); err != nil {
		return nil, err
	}

	var decls []ast.Stmt
	for {
		names, poss, err := p.parseIdentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOK_COLON, "variable declaration"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOK_SEMI, "variable declaration"); err != nil {
			return nil, err
		}

		for i, n := range names {
			switch t := typ.(type) {
			case ast.Primitive:
				decls = append(decls, &ast.VarDecl{Base: ast.At(poss[i]), Name: n, Type: t})
			case ast.Array:
				decls = append(decls, &ast.ArrayDecl{Base: ast.At(poss[i]), Name: n, Type: t})
			}
		}

		if p.peek().Kind != TOK_IDENT {
			break
		}
	}

	return decls, nil
}

// ident_list = IDENT (',' IDENT)*
func (p *Parser) parseIdentList() ([]string, []report.Position, error) {
	var names []string
	var positions []report.Position

	for {
		name, pos, err := p.expectIdent("identifier list")
		if err != nil {
			return nil, nil, err
		}
		names = append(names, name)
		positions = append(positions, pos)

		if _, ok, err := p.match(TOK_COMMA); err != nil {
			return nil, nil, err
		} else if ok {
			continue
		}
		break
	}

	return names, positions, nil
}

// type = primitive_type | ARRAY '[' signed_int '..' signed_int ']' OF primitive_type
func (p *Parser) parseType() (ast.Type, error) {
	if p.peek().Kind == TOK_ARRAY {
		return p.parseArrayType()
	}
	return p.parsePrimitiveType()
}

// primitive_type = INTEGER | REAL
func (p *Parser) parsePrimitiveType() (ast.Primitive, error) {
	switch p.peek().Kind {
	case TOK_INTEGER:
		if _, _, err := p.match(TOK_INTEGER); err != nil {
			return ast.Primitive{}, err
		}
		return ast.Primitive{Kind: ast.Integer}, nil
	case TOK_REAL:
		if _, _, err := p.match(TOK_REAL); err != nil {
			return ast.Primitive{}, err
		}
		return ast.Primitive{Kind: ast.Real}, nil
	}
	return ast.Primitive{}, p.errExpect("type", name(TOK_INTEGER), name(TOK_REAL))
}

func (p *Parser) parseArrayType() (ast.Array, error) {
	if _, err := p.expect(TOK_ARRAY, "array type"); err != nil {
		return ast.Array{}, err
	}
	if _, err := p.expect(TOK_LBRACKET, "array type"); err != nil {
		return ast.Array{}, err
	}
	lo, err := p.parseSignedInt()
	if err != nil {
		return ast.Array{}, err
	}
	if _, err := p.expect(TOK_DOTDOT, "array type"); err != nil {
		return ast.Array{}, err
	}
	hi, err := p.parseSignedInt()
	if err != nil {
		return ast.Array{}, err
	}
	if _, err := p.expect(TOK_RBRACKET, "array type"); err != nil {
		return ast.Array{}, err
	}
	if _, err := p.expect(TOK_OF, "array type"); err != nil {
		return ast.Array{}, err
	}
	elem, err := p.parsePrimitiveType()
	if err != nil {
		return ast.Array{}, err
	}

	arr, err := ast.NewArray(elem, lo, hi)
	if err != nil {
		return ast.Array{}, report.NewParseError("array type", err.Error(), p.peek().Pos)
	}
	return arr, nil
}

// signed_int = ['-'] int_lit
func (p *Parser) parseSignedInt() (int32, error) {
	neg := false
	if _, ok, err := p.match(TOK_MINUS); err != nil {
		return 0, err
	} else if ok {
		neg = true
	}
	tok, err := p.expect(TOK_INT_LIT, "array bound")
	if err != nil {
		return 0, err
	}
	if neg {
		return -tok.IntVal, nil
	}
	return tok.IntVal, nil
}

// proc_decl = PROCEDURE IDENT params ';' body_or_forward ';'
func (p *Parser) parseProcDecl() (ast.Stmt, error) {
	tok, err := p.expect(TOK_PROCEDURE, "procedure declaration")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdent("procedure declaration")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_SEMI, "procedure declaration"); err != nil {
		return nil, err
	}

	forward, body, err := p.parseBodyOrForward()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_SEMI, "procedure declaration"); err != nil {
		return nil, err
	}

	return &ast.ProcDecl{Base: ast.At(tok.Pos), Name: name, Params: params, Body: body, Forward: forward}, nil
}

// fun_decl = FUNCTION IDENT params ':' primitive_type ';' body_or_forward ';'
func (p *Parser) parseFunDecl() (ast.Stmt, error) {
	tok, err := p.expect(TOK_FUNCTION, "function declaration")
	if err != nil {
		return nil, err
	}
	name, _, err := p.expectIdent("function declaration")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_COLON, "function declaration"); err != nil {
		return nil, err
	}
	retType, err := p.parsePrimitiveType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_SEMI, "function declaration"); err != nil {
		return nil, err
	}

	forward, body, err := p.parseBodyOrForward()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOK_SEMI, "function declaration"); err != nil {
		return nil, err
	}

	return &ast.FunDecl{
		Base: ast.At(tok.Pos), Name: name, Params: params, RetType: retType, Body: body, Forward: forward,
	}, nil
}

// params = '(' [ident_list ':' primitive_type (';' ident_list ':' primitive_type)*] ')'
func (p *Parser) parseParams() ([]*ast.VarDecl, error) {
	if _, err := p.expect(TOK_LPAREN, "parameter list"); err != nil {
		return nil, err
	}

	if _, ok, err := p.match(TOK_RPAREN); err != nil {
		return nil, err
	} else if ok {
		return nil, nil
	}

	var params []*ast.VarDecl
	for {
		names, poss, err := p.parseIdentList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOK_COLON, "parameter list"); err != nil {
			return nil, err
		}
		typ, err := p.parsePrimitiveType()
		if err != nil {
			return nil, err
		}
		for i, n := range names {
			params = append(params, &ast.VarDecl{Base: ast.At(poss[i]), Name: n, Type: typ})
		}

		if _, ok, err := p.match(TOK_SEMI); err != nil {
			return nil, err
		} else if ok {
			continue
		}
		break
	}

	if _, err := p.expect(TOK_RPAREN, "parameter list"); err != nil {
		return nil, err
	}
	return params, nil
}

// body_or_forward = FORWARD | body
// body = (const_defs | var_decls)* compound_stmt
func (p *Parser) parseBodyOrForward() (bool, *ast.Block, error) {
	if _, ok, err := p.match(TOK_FORWARD); err != nil {
		return false, nil, err
	} else if ok {
		return true, nil, nil
	}

	pos := p.peek().Pos
	var stmts []ast.Stmt

	for {
		switch p.peek().Kind {
		case TOK_CONST:
			defs, err := p.parseConstDefs()
			if err != nil {
				return false, nil, err
			}
			stmts = append(stmts, defs...)
			continue

		case TOK_VAR:
			decls, err := p.parseVarDecls()
			if err != nil {
				return false, nil, err
			}
			stmts = append(stmts, decls...)
			continue
		}
		break
	}

	compound, err := p.parseCompound()
	if err != nil {
		return false, nil, err
	}
	stmts = append(stmts, compound)

	return false, &ast.Block{Base: ast.At(pos), Stmts: stmts, IsMain: false}, nil
}
