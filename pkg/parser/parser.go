package parser

import (
	"microc/pkg/ast"
	"microc/pkg/lexer"
	"microc/pkg/parser/builder"
	"microc/pkg/parser/stack"
)

type Parser struct {
	stack        *stack.Stack[string] // LL(1) parsing stack
	lexer        *lexer.Lexer         // lexer instance
	b            *builder.Builder     // syntax tree builder
	currentToken lexer.Token          // current token
	table        ParsingTable         // LL(1) parsing table
	errors       []string             // list of errors
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		b:      builder.NewBuilder(),
		table:  NewParsingTable(),
		stack:  stack.NewStack("$", StartSymbol), // Program is start state and $ is bottom of the stack
		errors: []string{},
	}

	// Initialize current token
	p.nextToken()

	return p
}

// Parse runs the LL(1) loop until the stack is empty or the first syntax error
func (p *Parser) Parse() {
	for p.stack.Size() > 1 { // While stack is not empty (only $ remains)
		top := p.stack.Pop()

		if p.isTerminal(top) {
			// Check if this is a semantic action
			if isSemanticAction(top) {
				p.b.ExecuteAction(top)
			} else if p.matchTerminal(top) {
				p.b.SetCurrentToken(p.currentToken)
				p.nextToken()
			} else {
				if p.handleTerminalError(top) {
					return
				}
			}
		} else {
			// Non-terminal: pick production from table
			if production, ok := p.table[top][p.currentToken.Type]; ok {
				rhs_length := len(production.RHS)
				// If production is ε, do not push anything
				if rhs_length == 0 || (rhs_length == 1 && production.RHS[0] == "ε") {
					continue
				}

				// Push RHS of production onto stack in reverse order (so first symbol is on top)
				for i := rhs_length - 1; i >= 0; i-- {
					if production.RHS[i] != "ε" {
						p.stack.Push(production.RHS[i])
					}
				}

			} else {
				if p.handleNonTerminalError(top) {
					return
				}
			}
		}
	}

	if p.currentToken.Type != lexer.EOF {
		p.handleUnexpectedEndOfInput()
		return
	}
}

// nextToken advances to the next token from the lexer
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}

// Program returns the syntax tree. It is only complete when Parse reported
// no syntax errors.
func (p *Parser) Program() *ast.Program {
	return p.b.Program()
}

// GetSemanticErrors returns the list of semantic errors
func (p *Parser) GetSemanticErrors() []string {
	return p.b.GetErrors()
}

// Parse is a convenience wrapper that lexes and parses src in one go.
// The first syntax or semantic error is returned as an error.
func Parse(src string) (*ast.Program, error) {
	p := NewParser(lexer.NewLexer(src))
	p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &Error{Kind: SyntaxError, Messages: errs}
	}
	if errs := p.GetSemanticErrors(); len(errs) > 0 {
		return nil, &Error{Kind: SemanticError, Messages: errs}
	}
	return p.Program(), nil
}
