package sqlparser

import (
	"LatticeDb/internal/ast"
	"LatticeDb/internal/database"
	"fmt"
	"strings"
)

func (p *Parser) parseSelectStatement() (*ast.SelectStatement, error) {
	stmt := &ast.SelectStatement{}

	if p.expectPeek(ALL) {
		stmt.Projection = []string{"*"}
	} else if p.expectPeek(IDENT) {
		fields, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		stmt.Projection = fields
	} else {
		return nil, p.expected("column list or *")
	}

	if !p.expectPeek(FROM) {
		return nil, p.expected("from")
	}
	if !p.expectPeek(IDENT) {
		return nil, p.expected("table name")
	}
	left := p.curToken.Literal

	if p.peekTokenIs(INNER) || p.peekTokenIs(JOIN) {
		join, err := p.parseJoin(left)
		if err != nil {
			return nil, err
		}
		stmt.From = join
	} else {
		stmt.From = ast.TableRef{Name: left}
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	return stmt, nil
}

func (p *Parser) parseJoin(left string) (ast.JoinSpec, error) {
	if p.expectPeek(INNER) && !p.peekTokenIs(JOIN) {
		return ast.JoinSpec{}, p.expected("join")
	}
	p.nextToken()

	if !p.expectPeek(IDENT) {
		return ast.JoinSpec{}, p.expected("table name")
	}
	join := ast.JoinSpec{Left: left, Right: p.curToken.Literal}

	if !p.expectPeek(ON) {
		return ast.JoinSpec{}, p.expected("on")
	}
	if !p.expectPeek(IDENT) {
		return ast.JoinSpec{}, p.expected("join column")
	}
	join.LeftColumn = p.curToken.Literal
	if !p.expectPeek(ASSIGN) {
		return ast.JoinSpec{}, p.expected("=")
	}
	if !p.expectPeek(IDENT) {
		return ast.JoinSpec{}, p.expected("join column")
	}
	join.RightColumn = p.curToken.Literal

	// ON b.y = a.x names the right table first
	if strings.HasPrefix(join.LeftColumn, join.Right+".") && strings.HasPrefix(join.RightColumn, join.Left+".") {
		join.LeftColumn, join.RightColumn = join.RightColumn, join.LeftColumn
	}
	return join, nil
}

func (p *Parser) parseWhere() (database.Condition, error) {
	if !p.peekTokenIs(WHERE) {
		return nil, nil
	}
	p.nextToken()
	p.nextToken()
	return p.parseCondition()
}

func (p *Parser) parseInsertStatement() (*ast.InsertStatement, error) {
	stmt := &ast.InsertStatement{}

	if !p.expectPeek(INTO) {
		return nil, p.expected("into")
	}
	if !p.expectPeek(IDENT) {
		return nil, p.expected("table name")
	}
	stmt.TableName = p.curToken.Literal

	if p.expectPeek(LPAREN) {
		p.nextToken()
		columns, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = columns

		if !p.expectPeek(RPAREN) {
			return nil, p.expected(")")
		}
	}

	if !p.expectPeek(VALUES) {
		return nil, p.expected("values")
	}

	for {
		values, err := p.parseValueList()
		if err != nil {
			return nil, err
		}
		stmt.ValueLists = append(stmt.ValueLists, values)

		if !p.peekTokenIs(COMMA) {
			break
		}
		p.nextToken()
	}

	return stmt, nil
}

func (p *Parser) parseValueList() ([]string, error) {
	if !p.expectPeek(LPAREN) {
		return nil, p.expected("(")
	}

	values := []string{}
	for {
		p.nextToken()
		value, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		if !p.peekTokenIs(COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(RPAREN) {
		return nil, p.expected(")")
	}
	return values, nil
}

func (p *Parser) parseUpdateStatement() (*ast.UpdateStatement, error) {
	stmt := &ast.UpdateStatement{}

	if !p.expectPeek(IDENT) {
		return nil, p.expected("table name")
	}
	stmt.TableName = p.curToken.Literal

	if !p.expectPeek(SET) {
		return nil, p.expected("set")
	}

	for {
		if !p.expectPeek(IDENT) {
			return nil, p.expected("column name")
		}
		assignment := ast.Assignment{Column: p.curToken.Literal}

		if !p.expectPeek(ASSIGN) {
			return nil, p.expected("=")
		}
		p.nextToken()
		value, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		assignment.Value = value
		stmt.Assignments = append(stmt.Assignments, assignment)

		if !p.peekTokenIs(COMMA) {
			break
		}
		p.nextToken()
	}

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	return stmt, nil
}

func (p *Parser) parseDeleteStatement() (*ast.DeleteStatement, error) {
	stmt := &ast.DeleteStatement{}

	if !p.expectPeek(FROM) {
		return nil, p.expected("from")
	}
	if !p.expectPeek(IDENT) {
		return nil, p.expected("table name")
	}
	stmt.TableName = p.curToken.Literal

	where, err := p.parseWhere()
	if err != nil {
		return nil, err
	}
	stmt.Where = where

	return stmt, nil
}

func (p *Parser) parseCreateStatement() (ast.Statement, error) {
	switch {
	case p.expectPeek(TABLE):
		return p.parseCreateTableStatement()
	case p.expectPeek(DATABASE):
		if !p.expectPeek(IDENT) {
			return nil, p.expected("database name")
		}
		return &ast.CreateDatabaseStatement{Name: p.curToken.Literal}, nil
	default:
		return nil, p.expected("table or database")
	}
}

func (p *Parser) parseCreateTableStatement() (*ast.CreateTableStatement, error) {
	stmt := &ast.CreateTableStatement{}

	if !p.expectPeek(IDENT) {
		return nil, p.expected("table name")
	}
	stmt.TableName = p.curToken.Literal

	if !p.expectPeek(LPAREN) {
		return nil, p.expected("(")
	}

	for {
		p.nextToken()
		switch {
		case p.curTokenIs(FOREIGN):
			fk, err := p.parseForeignKey()
			if err != nil {
				return nil, err
			}
			stmt.ForeignKeys = append(stmt.ForeignKeys, fk)
		case p.curTokenIs(IDENT):
			col, err := p.parseColumnDefinition()
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
		default:
			return nil, fmt.Errorf("expected column definition, got %s", describe(p.curToken))
		}

		if !p.peekTokenIs(COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(RPAREN) {
		return nil, p.expected(")")
	}
	return stmt, nil
}

// parseColumnDefinition reads name TYPE[(n)] followed by any of PRIMARY KEY,
// NOT NULL, NULL and DEFAULT literal. Columns are nullable unless marked NOT
// NULL or PRIMARY KEY.
func (p *Parser) parseColumnDefinition() (database.ColumnAttr, error) {
	col := database.ColumnAttr{
		Name:       p.curToken.Literal,
		IsNullable: true,
	}

	if !p.expectPeek(IDENT) {
		return col, p.expected("data type for column " + col.Name)
	}
	col.DataType = database.ParseDataType(p.curToken.Literal)

	// length specifications are accepted and ignored
	if p.expectPeek(LPAREN) {
		if !p.expectPeek(INT) {
			return col, p.expected("integer for length specification")
		}
		if !p.expectPeek(RPAREN) {
			return col, p.expected(")")
		}
	}

	for {
		switch {
		case p.expectPeek(PRIMARY):
			if !p.expectPeek(KEY) {
				return col, p.expected("key")
			}
			col.IsPK = true
		case p.expectPeek(NOT):
			if !p.expectPeek(NULL) {
				return col, p.expected("null")
			}
			col.IsNullable = false
		case p.expectPeek(NULL):
			col.IsNullable = true
		case p.expectPeek(DEFAULT):
			p.nextToken()
			value, err := p.parseLiteral()
			if err != nil {
				return col, err
			}
			col.Default = database.StringPtr(value)
		default:
			if col.IsPK {
				col.IsNullable = false
			}
			return col, nil
		}
	}
}

func (p *Parser) parseForeignKey() (database.ForeignKeyAttr, error) {
	var fk database.ForeignKeyAttr

	if !p.expectPeek(KEY) {
		return fk, p.expected("key")
	}
	if !p.expectPeek(LPAREN) {
		return fk, p.expected("(")
	}
	if !p.expectPeek(IDENT) {
		return fk, p.expected("column name")
	}
	fk.Column = p.curToken.Literal
	if !p.expectPeek(RPAREN) {
		return fk, p.expected(")")
	}

	if !p.expectPeek(REFERENCES) {
		return fk, p.expected("references")
	}
	if !p.expectPeek(IDENT) {
		return fk, p.expected("table name")
	}
	fk.Table = p.curToken.Literal
	if !p.expectPeek(LPAREN) {
		return fk, p.expected("(")
	}
	if !p.expectPeek(IDENT) {
		return fk, p.expected("column name")
	}
	fk.RefColumn = p.curToken.Literal
	if !p.expectPeek(RPAREN) {
		return fk, p.expected(")")
	}
	return fk, nil
}

func (p *Parser) parseDropStatement() (ast.Statement, error) {
	switch {
	case p.expectPeek(TABLE):
		if !p.expectPeek(IDENT) {
			return nil, p.expected("table name")
		}
		tables, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		return &ast.DropTableStatement{Tables: tables}, nil
	case p.expectPeek(DATABASE):
		if !p.expectPeek(IDENT) {
			return nil, p.expected("database name")
		}
		return &ast.DropDatabaseStatement{Name: p.curToken.Literal}, nil
	default:
		return nil, p.expected("table or database")
	}
}

func (p *Parser) parseDescribeTableStatement() (*ast.DescribeTableStatement, error) {
	if !p.expectPeek(IDENT) {
		return nil, p.expected("table name")
	}
	return &ast.DescribeTableStatement{TableName: p.curToken.Literal}, nil
}

func (p *Parser) parseShowStatement() (ast.Statement, error) {
	switch {
	case p.expectPeek(TABLES):
		return &ast.ShowTablesStatement{}, nil
	case p.expectPeek(DATABASES):
		return &ast.ShowDatabasesStatement{}, nil
	default:
		return nil, p.expected("tables or databases")
	}
}

func (p *Parser) parseUseStatement() (*ast.UseDatabaseStatement, error) {
	if !p.expectPeek(IDENT) {
		return nil, p.expected("database name")
	}
	return &ast.UseDatabaseStatement{Name: p.curToken.Literal}, nil
}
