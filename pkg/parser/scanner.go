package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/lassejlv/cii/pkg/token"
)

type scanner struct {
	src    string
	start  int
	pos    int
	line   int
	tokens []token.Token
	errs   Errors
}

// Scan splits src into tokens. The stream always ends with an EOF token, even
// when errors are reported; scanning continues past a bad character so every
// lexical error is collected.
func Scan(src string) ([]token.Token, error) {
	s := &scanner{src: src, line: 1}
	for !s.atEnd() {
		s.start = s.pos
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.New(token.EOF, "", s.line))
	return s.tokens, s.errs.errOrNil()
}

func (s *scanner) scanToken() {
	ch := s.advance()
	switch ch {
	case '(':
		s.emit(token.LeftParen)
	case ')':
		s.emit(token.RightParen)
	case '{':
		s.emit(token.LeftBrace)
	case '}':
		s.emit(token.RightBrace)
	case ',':
		s.emit(token.Comma)
	case '.':
		s.emit(token.Dot)
	case '-':
		s.emit(token.Minus)
	case '+':
		s.emit(token.Plus)
	case ';':
		s.emit(token.Semicolon)
	case '*':
		s.emit(token.Star)
	case '!':
		s.emit(s.pick('=', token.BangEqual, token.Bang))
	case '=':
		s.emit(s.pick('=', token.EqualEqual, token.Equal))
	case '<':
		s.emit(s.pick('=', token.LessEqual, token.Less))
	case '>':
		s.emit(s.pick('=', token.GreaterEqual, token.Greater))
	case '/':
		if s.match('/') {
			for !s.atEnd() && s.peek() != '\n' {
				s.pos++
			}
			return
		}
		s.emit(token.Slash)
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(ch):
			s.scanNumber()
		case isAlpha(ch):
			s.scanIdentifier()
		default:
			s.unexpected()
		}
	}
}

// unexpected reports the character at s.start, consuming the rest of a
// multi-byte rune so it yields one error.
func (s *scanner) unexpected() {
	r, width := utf8.DecodeRuneInString(s.src[s.start:])
	s.pos = s.start + width
	s.errs.add(&ScanError{Line: s.line, Message: fmt.Sprintf("Unexpected character '%c'.", r)})
}

// scanString reads up to the closing quote. Strings may span lines and have
// no escape sequences.
func (s *scanner) scanString() {
	startLine := s.line
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.pos++
	}
	if s.atEnd() {
		s.errs.add(&ScanError{Line: startLine, Message: "Unterminated string.", AtEnd: true})
		return
	}
	s.pos++
	value := s.src[s.start+1 : s.pos-1]
	s.tokens = append(s.tokens, token.Token{Kind: token.String, Lexeme: s.src[s.start:s.pos], Literal: value, Line: startLine})
}

func (s *scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.pos++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.pos++
		for isDigit(s.peek()) {
			s.pos++
		}
	}
	lexeme := s.src[s.start:s.pos]
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.errs.add(&ScanError{Line: s.line, Message: fmt.Sprintf("Invalid number '%s'.", lexeme)})
		return
	}
	s.tokens = append(s.tokens, token.Token{Kind: token.Number, Lexeme: lexeme, Literal: value, Line: s.line})
}

func (s *scanner) scanIdentifier() {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.pos++
	}
	lexeme := s.src[s.start:s.pos]
	if kind, ok := token.Keywords[lexeme]; ok {
		s.emit(kind)
		return
	}
	s.emit(token.Identifier)
}

func (s *scanner) emit(kind token.Kind) {
	s.tokens = append(s.tokens, token.New(kind, s.src[s.start:s.pos], s.line))
}

func (s *scanner) pick(next byte, matched, otherwise token.Kind) token.Kind {
	if s.match(next) {
		return matched
	}
	return otherwise
}

func (s *scanner) match(expected byte) bool {
	if s.atEnd() || s.src[s.pos] != expected {
		return false
	}
	s.pos++
	return true
}

func (s *scanner) advance() byte {
	ch := s.src[s.pos]
	s.pos++
	return ch
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekNext() byte {
	if s.pos+1 >= len(s.src) {
		return 0
	}
	return s.src[s.pos+1]
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}
