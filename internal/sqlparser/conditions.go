package sqlparser

import (
	"LatticeDb/internal/database"
	"fmt"
)

// Conditions bind OR loosest, then AND, then a single comparison or a
// parenthesised condition:
//
//	cond    := and (OR and)*
//	and     := primary (AND primary)*
//	primary := '(' cond ')' | col ('<'|'>'|'=') literal | col IS NULL | col LIKE 'pattern'
//
// Each parse function starts on the first token of its rule and stops on the
// last one.

func (p *Parser) parseCondition() (database.Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peekTokenIs(OR) {
		p.nextToken()
		p.nextToken()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &database.Logical{Left: left, Op: database.OpOr, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (database.Condition, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.peekTokenIs(AND) {
		p.nextToken()
		p.nextToken()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &database.Logical{Left: left, Op: database.OpAnd, Right: right}
	}
	return left, nil
}

var comparisonOps = map[TokenType]database.Operator{
	LESS_THAN:    database.OpLt,
	GREATER_THAN: database.OpGt,
	ASSIGN:       database.OpEq,
}

func (p *Parser) parsePrimary() (database.Condition, error) {
	if p.curTokenIs(LPAREN) {
		p.nextToken()
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		if !p.expectPeek(RPAREN) {
			return nil, p.expected(")")
		}
		return cond, nil
	}

	if !p.curTokenIs(IDENT) {
		return nil, fmt.Errorf("expected column name or ( in condition, got %s", describe(p.curToken))
	}
	column := p.curToken.Literal

	if op, ok := comparisonOps[p.peekToken.Type]; ok {
		p.nextToken()
		p.nextToken()
		value, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &database.Comparison{Column: column, Op: op, Value: database.StringPtr(value)}, nil
	}

	switch {
	case p.expectPeek(IS):
		if !p.expectPeek(NULL) {
			return nil, p.expected("null")
		}
		return &database.Comparison{Column: column, Op: database.OpIsNull}, nil
	case p.expectPeek(LIKE):
		if !p.expectPeek(STRING) {
			return nil, p.expected("pattern string")
		}
		return &database.Comparison{Column: column, Op: database.OpLike, Value: database.StringPtr(p.curToken.Literal)}, nil
	default:
		return nil, p.expected("comparison operator")
	}
}
