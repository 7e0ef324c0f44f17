package parser

import (
	"strings"

	"microc/pkg/lexer"
)

// terminals maps grammar symbols to the token types they match
var terminals = func() map[string]lexer.TokenType {
	m := make(map[string]lexer.TokenType)
	for t := lexer.EOF; t < lexer.ILLEGAL; t++ {
		if name, ok := (lexer.Token{Type: t}).TokenToString(); ok {
			m[name] = t
		}
	}
	return m
}()

// terminalType resolves a grammar symbol to its token type
func terminalType(symbol string) (lexer.TokenType, bool) {
	t, ok := terminals[symbol]
	return t, ok
}

// isSemanticAction checks if a symbol is a semantic action
func isSemanticAction(symbol string) bool {
	return strings.HasPrefix(symbol, "@")
}

// isTerminal checks if a symbol is a terminal
func (p *Parser) isTerminal(symbol string) bool {
	// Semantic actions are considered terminals
	if isSemanticAction(symbol) {
		return true
	}

	_, ok := terminals[symbol]
	return ok
}

// matchTerminal checks if the current token matches the expected terminal
func (p *Parser) matchTerminal(expected string) bool {
	t, ok := terminals[expected]
	return ok && p.currentToken.Type == t
}
