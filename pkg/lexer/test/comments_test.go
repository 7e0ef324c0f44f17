package lexer_test

import (
	"microc/pkg/lexer"
	"testing"
)

func TestComments(t *testing.T) {
	input := `// Function to decrement a value and return it
int x = 10; // trailing comment
/* block
   comment */ int y = 20;
int z /* inline */ = 30;`

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.INT, lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.SEMICOLON,
		lexer.INT, lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.SEMICOLON,
		lexer.INT, lexer.ID, lexer.ASSIGN, lexer.NUM, lexer.SEMICOLON,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	mylexer := lexer.NewLexer("int x; /* never closed")
	for _, expected := range []lexer.TokenType{lexer.INT, lexer.ID, lexer.SEMICOLON, lexer.EOF} {
		if tok := mylexer.NextToken(); tok.Type != expected {
			t.Errorf("expected %s, got %s", expected, tok.Type)
		}
	}
}
