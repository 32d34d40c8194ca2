package parser

import (
	"errors"
	"testing"

	"github.com/go-test/deep"

	"github.com/lassejlv/cii/pkg/token"
)

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestScanTokenKinds(t *testing.T) {
	tokens, err := Scan("var x = 1.5; // trailing comment\nif (x >= 2 and !done) print \"hi\";")
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	want := []token.Kind{
		token.Var, token.Identifier, token.Equal, token.Number, token.Semicolon,
		token.If, token.LeftParen, token.Identifier, token.GreaterEqual, token.Number,
		token.And, token.Bang, token.Identifier, token.RightParen,
		token.Print, token.String, token.Semicolon, token.EOF,
	}
	if diff := deep.Equal(kindsOf(tokens), want); diff != nil {
		t.Fatalf("unexpected tokens: %v", diff)
	}
	if tokens[3].Literal != 1.5 {
		t.Fatalf("expected number literal 1.5, got %#v", tokens[3].Literal)
	}
	if tokens[15].Literal != "hi" || tokens[15].Line != 2 {
		t.Fatalf("unexpected string token %v on line %d", tokens[15], tokens[15].Line)
	}
}

func TestScanMultilineStringKeepsStartLine(t *testing.T) {
	tokens, err := Scan("\"a\nb\" x")
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	if tokens[0].Literal != "a\nb" || tokens[0].Line != 1 {
		t.Fatalf("unexpected string token %v line %d", tokens[0], tokens[0].Line)
	}
	if tokens[1].Line != 2 {
		t.Fatalf("expected identifier on line 2, got %d", tokens[1].Line)
	}
}

func TestScanCollectsEveryError(t *testing.T) {
	tokens, err := Scan("@ var # \"open")
	var errs *Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected *Errors, got %v", err)
	}
	messages := make([]string, 0, len(errs.Issues))
	for _, issue := range errs.Issues {
		messages = append(messages, issue.Error())
	}
	want := []string{
		"[line 1] Error: Unexpected character '@'.",
		"[line 1] Error: Unexpected character '#'.",
		"[line 1] Error: Unterminated string.",
	}
	if diff := deep.Equal(messages, want); diff != nil {
		t.Fatalf("unexpected errors: %v", diff)
	}
	if diff := deep.Equal(kindsOf(tokens), []token.Kind{token.Var, token.EOF}); diff != nil {
		t.Fatalf("unexpected tokens: %v", diff)
	}
}

func TestScanReportsMultiByteCharacterOnce(t *testing.T) {
	tokens, err := Scan("var café = 1;")
	var errs *Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected *Errors, got %v", err)
	}
	if len(errs.Issues) != 1 || errs.Issues[0].Error() != "[line 1] Error: Unexpected character 'é'." {
		t.Fatalf("unexpected errors: %v", errs.Issues)
	}
	want := []token.Kind{token.Var, token.Identifier, token.Equal, token.Number, token.Semicolon, token.EOF}
	if diff := deep.Equal(kindsOf(tokens), want); diff != nil {
		t.Fatalf("unexpected tokens: %v", diff)
	}
}
