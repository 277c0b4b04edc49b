package sqlparser

import "strings"

type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	if l.ch == 0 {
		tok.Type = EOF
		tok.Literal = ""
		return tok
	}

	switch l.ch {
	case '=':
		tok = newToken(ASSIGN, l.ch)
	case '<':
		tok = newToken(LESS_THAN, l.ch)
	case '>':
		tok = newToken(GREATER_THAN, l.ch)
	case ';':
		tok = newToken(SEMICOLON, l.ch)
	case '(':
		tok = newToken(LPAREN, l.ch)
	case ')':
		tok = newToken(RPAREN, l.ch)
	case ',':
		tok = newToken(COMMA, l.ch)
	case '*':
		tok = newToken(ALL, l.ch)
	case '\'':
		value, ok := l.readString()
		if !ok {
			return Token{Type: ILLEGAL, Literal: "'" + value}
		}
		tok.Type = STRING
		tok.Literal = value
		return tok
	case '-':
		if isDigit(l.peekChar()) {
			return l.readNumberToken()
		}
		tok = newToken(ILLEGAL, l.ch)
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.readNumberToken()
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else {
			tok = newToken(ILLEGAL, l.ch)
		}
	}

	l.readChar()
	return tok
}

// readIdentifier also consumes table-qualified names such as users.id.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isAlphanumeric(l.ch) || (l.ch == '.' && isLetter(l.peekChar())) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch)}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch >= 0x80
}

func isAlphanumeric(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // users, users.id
	INT    = "INT"    // 1343456
	STRING = "STRING" // 'foo bar'
	FLOAT  = "FLOAT"  // 123.456
	BOOL   = "BOOL"   // true, false
	ALL    = "*"

	// Operators
	ASSIGN       = "="
	LESS_THAN    = "<"
	GREATER_THAN = ">"

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"
	LPAREN    = "("
	RPAREN    = ")"

	// Keywords
	SELECT     = "SELECT"
	FROM       = "FROM"
	WHERE      = "WHERE"
	INSERT     = "INSERT"
	INTO       = "INTO"
	VALUES     = "VALUES"
	CREATE     = "CREATE"
	TABLE      = "TABLE"
	TABLES     = "TABLES"
	DROP       = "DROP"
	NULL       = "NULL"
	NOT        = "NOT"
	DELETE     = "DELETE"
	DESC       = "DESC"
	UPDATE     = "UPDATE"
	SET        = "SET"
	JOIN       = "JOIN"
	INNER      = "INNER"
	ON         = "ON"
	AND        = "AND"
	OR         = "OR"
	IS         = "IS"
	LIKE       = "LIKE"
	PRIMARY    = "PRIMARY"
	KEY        = "KEY"
	DEFAULT    = "DEFAULT"
	FOREIGN    = "FOREIGN"
	REFERENCES = "REFERENCES"
	DATABASE   = "DATABASE"
	DATABASES  = "DATABASES"
	USE        = "USE"
	SHOW       = "SHOW"
)

var keywords = map[string]TokenType{
	"select":     SELECT,
	"from":       FROM,
	"where":      WHERE,
	"insert":     INSERT,
	"into":       INTO,
	"values":     VALUES,
	"true":       BOOL,
	"false":      BOOL,
	"create":     CREATE,
	"table":      TABLE,
	"tables":     TABLES,
	"drop":       DROP,
	"null":       NULL,
	"not":        NOT,
	"delete":     DELETE,
	"desc":       DESC,
	"describe":   DESC,
	"update":     UPDATE,
	"set":        SET,
	"join":       JOIN,
	"inner":      INNER,
	"on":         ON,
	"and":        AND,
	"or":         OR,
	"is":         IS,
	"like":       LIKE,
	"primary":    PRIMARY,
	"key":        KEY,
	"default":    DEFAULT,
	"foreign":    FOREIGN,
	"references": REFERENCES,
	"database":   DATABASE,
	"databases":  DATABASES,
	"use":        USE,
	"show":       SHOW,
}

func LookupIdent(ident string) TokenType {
	identLower := strings.ToLower(ident)
	if tok, ok := keywords[identLower]; ok {
		return tok
	}
	return IDENT
}

// readString reads a single-quoted literal; '' stands for one quote. It
// reports false when the input ends before the closing quote.
func (l *Lexer) readString() (string, bool) {
	var sb strings.Builder
	for {
		l.readChar()
		switch {
		case l.ch == 0 && l.position >= len(l.input):
			return sb.String(), false
		case l.ch == '\'' && l.peekChar() == '\'':
			sb.WriteByte('\'')
			l.readChar()
		case l.ch == '\'':
			l.readChar()
			return sb.String(), true
		default:
			sb.WriteByte(l.ch)
		}
	}
}

func (l *Lexer) readNumberToken() Token {
	var tok Token
	startPos := l.position
	isFloat := false

	if l.ch == '-' {
		l.readChar()
	}

	// Read the integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Check for decimal point
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		// Read decimal places
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if isFloat {
		tok.Type = FLOAT
	} else {
		tok.Type = INT
	}
	tok.Literal = l.input[startPos:l.position]
	return tok
}
