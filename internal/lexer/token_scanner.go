package lexer

type TokenScanner interface {
	Read() *Token
}

// SimpleTokenScanner walks a token slice ending with EOF. Reading past the
// end keeps returning the EOF token.
type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

func NewTokenScanner(tokens []Token) TokenScanner {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		panic("token stream must end with EOF")
	}

	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Read() *Token {
	token := &s.tokens[s.pos]
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}

	return token
}
