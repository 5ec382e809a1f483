package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/kievzenit/exprc/internal/compiler_errors"
)

type Lexer struct {
	buf []byte
	pos int

	line, col int

	logs []compiler_errors.Log
}

func NewLexer(buf []byte) *Lexer {
	return &Lexer{
		buf: buf,
		pos: 0,

		line: 1,
		col:  1,
	}
}

// Tokenize scans the whole buffer. Unrecognized input is logged and
// skipped, so the returned tokens always end with EOF.
func (l *Lexer) Tokenize() ([]Token, []compiler_errors.Log) {
	tokens := make([]Token, 0)

	for l.hasChars() {
		start, line, col := l.pos, l.line, l.col

		switch {
		case l.isCurrSkippable():
			if l.isCurrNewline() {
				l.line++
				l.col = 0
			}

		case l.isCurrDigit():
			tokens = append(tokens, l.withMetadata(l.processNumber(), start, line, col))

		case l.isCurrIdentifier():
			token, ok := l.processIdentifier()
			if ok {
				tokens = append(tokens, l.withMetadata(token, start, line, col))
			}

		case l.isCurrPunctuation():
			token, ok := l.processPunctuation()
			if ok {
				tokens = append(tokens, l.withMetadata(token, start, line, col))
			}

		default:
			r, size := utf8.DecodeRune(l.buf[l.pos:])
			l.pos += size - 1
			l.logs = append(l.logs, l.errorAt(compiler_errors.UnrecognizedToken{Token: string(r)}, line, col))
		}

		l.advance()
	}

	tokens = append(tokens, Token{
		Kind:  EOF,
		Value: EOF.String(),
		Metadata: TokenMetadata{
			Line:   l.line,
			Column: l.col,
		},
	})

	return tokens, l.logs
}

func (l *Lexer) withMetadata(token Token, start, line, col int) Token {
	token.Metadata = TokenMetadata{
		Line:   line,
		Column: col,
		Length: l.pos - start + 1,
	}
	return token
}

func (l *Lexer) errorAt(kind compiler_errors.ErrorKind, line, col int) compiler_errors.Log {
	return compiler_errors.NewError(kind).At(line, col)
}

func (l *Lexer) isCurrIdentifier() bool {
	return (l.read() >= 'a' && l.read() <= 'z') || (l.read() >= 'A' && l.read() <= 'Z') || l.read() == '_'
}

func (l *Lexer) isCurrDigit() bool {
	return l.read() >= '0' && l.read() <= '9'
}

func (l *Lexer) isCurrPunctuation() bool {
	switch l.read() {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~', '(', ')', ';':
		return true
	}
	return false
}

func (l *Lexer) isCurrNewline() bool {
	return l.read() == '\n'
}

func (l *Lexer) isCurrSkippable() bool {
	switch l.read() {
	case ' ', '\t', '\n', '\r':
		return true
	}

	return false
}

func (l *Lexer) processIdentifier() (Token, bool) {
	line, col := l.line, l.col
	identifierBuf := make([]byte, 0)
	identifierBuf = append(identifierBuf, l.read())
	l.advance()

	for l.hasChars() {
		if !l.isCurrIdentifier() && !l.isCurrDigit() {
			break
		}

		identifierBuf = append(identifierBuf, l.read())
		l.advance()
	}
	l.unread()
	identifier := string(identifierBuf)

	switch identifier {
	case "true", "false":
		return Token{
			Kind:  BOOL,
			Value: identifier,
		}, true
	}

	l.logs = append(l.logs, l.errorAt(compiler_errors.UnrecognizedToken{Token: identifier}, line, col))
	return Token{}, false
}

func (l *Lexer) processNumber() Token {
	line, col := l.line, l.col
	numberBuf := make([]byte, 0)
	numberBuf = append(numberBuf, l.read())
	l.advance()

	for l.hasChars() {
		if !l.isCurrDigit() {
			break
		}

		numberBuf = append(numberBuf, l.read())
		l.advance()
	}
	l.unread()
	number := string(numberBuf)

	value, err := strconv.ParseUint(number, 10, 32)
	if err != nil || value > uint64(compiler_errors.MinIntLiteral) {
		l.logs = append(l.logs, l.errorAt(compiler_errors.UnrepresentableIntegerLiteral{Token: number}, line, col))
		value = 0
	}

	return Token{
		Kind:     INT,
		Value:    number,
		IntValue: uint32(value),
	}
}

// processTwoChar handles operators that may be followed by a second
// character, like '<' and '<='.
func (l *Lexer) processTwoChar(single TokenKind, pairs map[byte]TokenKind) Token {
	first := l.read()
	l.advance()
	if !l.hasChars() {
		l.unread()
		return Token{
			Kind:  single,
			Value: string(first),
		}
	}

	if kind, ok := pairs[l.read()]; ok {
		return Token{
			Kind:  kind,
			Value: string([]byte{first, l.read()}),
		}
	}

	l.unread()
	return Token{
		Kind:  single,
		Value: string(first),
	}
}

// processEquals accepts "==". A lone '=' has no meaning in the language.
func (l *Lexer) processEquals() (Token, bool) {
	line, col := l.line, l.col
	l.advance()
	if l.hasChars() && l.read() == '=' {
		return Token{
			Kind:  EQ,
			Value: "==",
		}, true
	}

	l.unread()
	l.logs = append(l.logs, l.errorAt(compiler_errors.UnrecognizedToken{Token: "="}, line, col))
	return Token{}, false
}

func (l *Lexer) processPunctuation() (Token, bool) {
	switch l.read() {
	case '=':
		return l.processEquals()
	case '!':
		return l.processTwoChar(XMARK, map[byte]TokenKind{'=': NEQ}), true
	case '<':
		return l.processTwoChar(LT, map[byte]TokenKind{'=': LEQ, '<': SHL}), true
	case '>':
		return l.processTwoChar(GT, map[byte]TokenKind{'=': GEQ, '>': SHR}), true
	}

	kind, ok := singleCharPunctuation[l.read()]
	if !ok {
		panic("unreachable")
	}

	return Token{
		Kind:  kind,
		Value: string(l.read()),
	}, true
}

var singleCharPunctuation = map[byte]TokenKind{
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	'/': SLASH,
	'%': PERCENT,
	'&': BAND,
	'|': BOR,
	'^': XOR,
	'~': TILDE,
	'(': LPAREN,
	')': RPAREN,
	';': SEMICOLON,
}

func (l *Lexer) hasChars() bool {
	return l.pos < len(l.buf)
}

func (l *Lexer) advance() {
	l.pos++
	l.col++
}

func (l *Lexer) unread() {
	l.pos--
	l.col--
}

func (l *Lexer) read() byte { return l.buf[l.pos] }
