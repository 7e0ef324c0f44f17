package parser

import (
	"fmt"
	"strings"

	"microc/pkg/color"
	"microc/pkg/lexer"
)

type ErrorKind int

const (
	SyntaxError ErrorKind = iota
	SemanticError
)

func (k ErrorKind) String() string {
	if k == SemanticError {
		return "semantic error"
	}
	return "syntax error"
}

// Error carries the diagnostics of a failed parse
type Error struct {
	Kind     ErrorKind
	Messages []string
}

func (e *Error) Error() string {
	if len(e.Messages) == 0 {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Messages, "; "))
}

// handleTerminalError is called when a terminal on the stack doesn't match current token.
// It reports the error and tells the caller to stop.
func (p *Parser) handleTerminalError(expected string) bool {
	// Heuristic: if we expected ';' but current token clearly starts a new statement,
	// closes a block, or ends input, report "Missing semicolon".
	if expected == ";" && p.isStatementBoundary(p.currentToken.Type) {
		p.addError("Missing semicolon")
		return true
	}

	// Specific: declaration without identifier like `int = 42;`
	if expected == "id" && p.currentToken.Type == lexer.ASSIGN {
		p.addError("Missing identifier")
		return true
	}

	// Default contextual error
	p.addContextualError(expected)
	return true
}

// handleNonTerminalError is called when there is no production for top non-terminal and current token.
// It reports the error and tells the caller to stop.
func (p *Parser) handleNonTerminalError(expected string) bool {
	// Special: ArgList followed by a boundary like ';' (e.g., id '(' ; )
	// This likely means a missing ')'.
	if expected == "ArgList" || expected == "ArgList'" {
		if p.currentToken.Type == lexer.SEMICOLON ||
			p.currentToken.Type == lexer.RBRACE ||
			p.isStatementBoundary(p.currentToken.Type) {
			p.addError("Missing closing parenthesis")
			return true
		}
	}

	// Empty condition: if () or while()
	if expected == "Expr" && p.currentToken.Type == lexer.RPAREN {
		p.addError("Empty condition")
		return true
	}

	// If parsing an expression tail/postfix and the next token begins a new statement or closes a block,
	// this is often a missing semicolon.
	if p.isExpressionTail(expected) && p.isStatementBoundary(p.currentToken.Type) {
		p.addError("Missing semicolon")
		return true
	}

	// Default contextual error
	p.addContextualError(expected)
	return true
}

// handleUnexpectedEndOfInput is called when the grammar is done but tokens remain
func (p *Parser) handleUnexpectedEndOfInput() {
	p.addError(fmt.Sprintf("Unexpected token '%s' at end of input", p.currentToken.Type))
}

// addError records a parsing error with location
func (p *Parser) addError(msg string) {
	pos := p.currentToken.Pos
	formatted := color.RedText(msg) + " at " + color.YellowText(fmt.Sprintf("Line: %d, Column %d", pos.Line, pos.Column))
	p.errors = append(p.errors, formatted)
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

// isExpressionTail checks if the non-terminal is part of an expression
func (p *Parser) isExpressionTail(sym string) bool {
	switch sym {
	case "OrExpr'", "AndExpr'", "RelExpr'", "Sum'", "Term'", "FactorSuffix", "IdSuffix", "DeclInit":
		return true
	default:
		return false
	}
}

// isStatementBoundary checks if a token type indicates the start of a new statement or block boundary
func (p *Parser) isStatementBoundary(t lexer.TokenType) bool {
	switch t {
	case lexer.INT, lexer.ID, lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN, lexer.ELSE, lexer.RBRACE, lexer.EOF:
		return true
	default:
		return false
	}
}

// addContextualError generates a contextual error message based on expected and current token
func (p *Parser) addContextualError(expected string) {
	p.addError(p.categorizeError(expected, p.currentToken))
}

// categorizeError provides a specific error message based on expected symbol and current token
func (p *Parser) categorizeError(expected string, current lexer.Token) string {
	if current.Type == lexer.ILLEGAL {
		return fmt.Sprintf("Illegal character '%s'", current.Lexeme)
	}

	// Delimiters
	switch expected {
	case ")":
		return "Missing closing parenthesis"
	case "}":
		return "Missing closing brace"
	case "{":
		return "Missing opening brace"
	case ";":
		return "Missing semicolon"
	case "(":
		if current.Type == lexer.LBRACE {
			return "Wrong bracket type - expected parenthesis"
		}
		return "Missing opening parenthesis"
	}

	// Identifiers and literals
	switch expected {
	case "id":
		if current.Type == lexer.SEMICOLON {
			return "Missing identifier"
		}
		if _, reserved := lexer.IsKeyword(current.Lexeme); reserved {
			return "Cannot use reserved keyword as identifier"
		}
		return "Expected identifier"
	case "num":
		return "Expected number"
	case "Program", "IncludeList", "FuncList", "RetType":
		return "Expected function definition"
	case "Param", "ParamList":
		return "Expected parameter declaration"
	case "Stmt", "StmtList":
		if current.Type == lexer.EOF {
			return "Missing closing brace"
		}
		return "Expected statement"
	}

	// Expressions missing before ) or ; or ,
	switch expected {
	case "Expr", "OrExpr", "AndExpr", "RelExpr", "Sum", "Term", "Unary", "Factor", "ReturnValue":
		if current.Type == lexer.SEMICOLON || current.Type == lexer.RPAREN || current.Type == lexer.COMMA {
			return "Missing expression"
		}
		return "Expected expression"
	}

	return "Syntax error"
}
