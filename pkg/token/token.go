package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	Illegal Kind = iota
	EOF

	// Single-character punctuation.
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Break
	Class
	Continue
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	This
	True
	Var
	While
)

var kindNames = map[Kind]string{
	Illegal:      "illegal",
	EOF:          "end of input",
	LeftParen:    "(",
	RightParen:   ")",
	LeftBrace:    "{",
	RightBrace:   "}",
	Comma:        ",",
	Dot:          ".",
	Minus:        "-",
	Plus:         "+",
	Semicolon:    ";",
	Slash:        "/",
	Star:         "*",
	Bang:         "!",
	BangEqual:    "!=",
	Equal:        "=",
	EqualEqual:   "==",
	Greater:      ">",
	GreaterEqual: ">=",
	Less:         "<",
	LessEqual:    "<=",
	Identifier:   "identifier",
	String:       "string",
	Number:       "number",
	And:          "and",
	Break:        "break",
	Class:        "class",
	Continue:     "continue",
	Else:         "else",
	False:        "false",
	Fun:          "fun",
	For:          "for",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// Keywords maps reserved words to their token kinds.
var Keywords = map[string]Kind{
	"and":      And,
	"break":    Break,
	"class":    Class,
	"continue": Continue,
	"else":     Else,
	"false":    False,
	"fun":      Fun,
	"for":      For,
	"if":       If,
	"nil":      Nil,
	"or":       Or,
	"print":    Print,
	"return":   Return,
	"this":     This,
	"true":     True,
	"var":      Var,
	"while":    While,
}

// Token is a single lexeme produced by the scanner. Literal holds a float64
// for numbers and a string for string literals.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
}

// New builds a token without a literal payload.
func New(kind Kind, lexeme string, line int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line}
}

// Ident is a shorthand for identifier tokens.
func Ident(name string, line int) Token {
	return Token{Kind: Identifier, Lexeme: name, Line: line}
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s %q %v", t.Kind, t.Lexeme, t.Literal)
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
}
