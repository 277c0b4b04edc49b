package sqlparser

import (
	"LatticeDb/internal/ast"
	"LatticeDb/internal/database"
	"fmt"
	"strings"
)

type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
}

func NewParser(l *Lexer) *Parser {
	p := &Parser{lexer: l}
	p.nextToken()
	p.nextToken() // read two tokens, so curToken and peekToken are both set
	return p
}

// Parse turns one SQL statement into its statement model.
func Parse(input string) (ast.Statement, error) {
	return NewParser(NewLexer(input)).ParseStatement()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

func (p *Parser) ParseStatement() (ast.Statement, error) {
	var stmt ast.Statement
	var err error

	switch p.curToken.Type {
	case SELECT:
		stmt, err = p.parseSelectStatement()
	case INSERT:
		stmt, err = p.parseInsertStatement()
	case CREATE:
		stmt, err = p.parseCreateStatement()
	case UPDATE:
		stmt, err = p.parseUpdateStatement()
	case DELETE:
		stmt, err = p.parseDeleteStatement()
	case DROP:
		stmt, err = p.parseDropStatement()
	case DESC:
		stmt, err = p.parseDescribeTableStatement()
	case SHOW:
		stmt, err = p.parseShowStatement()
	case USE:
		stmt, err = p.parseUseStatement()
	case EOF:
		return nil, fmt.Errorf("empty statement")
	default:
		return nil, fmt.Errorf("expected statement, got %s", describe(p.curToken))
	}
	if err != nil {
		return nil, err
	}

	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// endStatement accepts an optional trailing semicolon and then requires the
// end of input.
func (p *Parser) endStatement() error {
	if p.peekTokenIs(SEMICOLON) {
		p.nextToken()
	}
	if !p.peekTokenIs(EOF) {
		return fmt.Errorf("unexpected %s after end of statement", describe(p.peekToken))
	}
	return nil
}

// parseLiteral reads the value at curToken as the string the engine stores.
func (p *Parser) parseLiteral() (string, error) {
	switch p.curToken.Type {
	case STRING, INT, FLOAT:
		return p.curToken.Literal, nil
	case BOOL:
		return strings.ToLower(p.curToken.Literal), nil
	case NULL:
		return database.NullValue, nil
	default:
		return "", fmt.Errorf("expected literal value, got %s", describe(p.curToken))
	}
}

func (p *Parser) parseIdentifierList() ([]string, error) {
	if !p.curTokenIs(IDENT) {
		return nil, fmt.Errorf("expected identifier, got %s", describe(p.curToken))
	}
	identifiers := []string{p.curToken.Literal}

	for p.peekTokenIs(COMMA) {
		p.nextToken()
		if !p.expectPeek(IDENT) {
			return nil, p.expected("identifier")
		}
		identifiers = append(identifiers, p.curToken.Literal)
	}

	return identifiers, nil
}

func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

// expected builds the error for a failed expectPeek.
func (p *Parser) expected(what string) error {
	return fmt.Errorf("expected %s, got %s", what, describe(p.peekToken))
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case ILLEGAL:
		return fmt.Sprintf("illegal input %q", tok.Literal)
	case STRING:
		return fmt.Sprintf("'%s'", tok.Literal)
	default:
		return tok.Literal
	}
}
