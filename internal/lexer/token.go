package lexer

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota

	INT
	BOOL

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %

	BAND  // &
	BOR   // |
	XOR   // ^
	SHR   // >>
	SHL   // <<
	TILDE // ~

	EQ  // ==
	NEQ // !=
	LT  // <
	LEQ // <=
	GT  // >
	GEQ // >=

	XMARK // !

	LPAREN // (
	RPAREN // )

	SEMICOLON // ;
)

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case INT:
		return "INT"
	case BOOL:
		return "BOOL"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case BAND:
		return "BAND"
	case BOR:
		return "BOR"
	case XOR:
		return "XOR"
	case SHR:
		return "SHR"
	case SHL:
		return "SHL"
	case TILDE:
		return "TILDE"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case LEQ:
		return "LEQ"
	case GT:
		return "GT"
	case GEQ:
		return "GEQ"
	case XMARK:
		return "XMARK"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case SEMICOLON:
		return "SEMICOLON"
	default:
		panic(fmt.Sprintf("TokenKind.String(): received illegal token kind: %d", tk))
	}
}

type TokenMetadata struct {
	Line   int
	Column int
	Length int
}

type Token struct {
	Kind  TokenKind
	Value string

	// IntValue is the payload of an INT token. Literals the lexer rejected
	// carry 0.
	IntValue uint32

	Metadata TokenMetadata
}

func (t *Token) hasActualValue() bool {
	switch t.Kind {
	case INT, BOOL:
		return true
	}

	return false
}

func (t *Token) String() string {
	if !t.hasActualValue() {
		return fmt.Sprintf("%s()", t.Kind)
	}

	return fmt.Sprintf("%s(%s)", t.Kind, t.Value)
}
