package ast

import "microc/pkg/lexer"

type Operation string

// List of expression operators
const (
	OpAdd Operation = "+"
	OpSub Operation = "-"
	OpMul Operation = "*"
	OpDiv Operation = "/"
	OpMod Operation = "%"
	OpAnd Operation = "&&"
	OpOr  Operation = "||"
	OpNot Operation = "!"
	OpNeg Operation = "neg"
	OpEq  Operation = "=="
	OpNeq Operation = "!="
	OpLt  Operation = "<"
	OpLe  Operation = "<="
	OpGt  Operation = ">"
	OpGe  Operation = ">="
	OpNop Operation = ""
)

// IsComparison reports whether op compares two integers
func (op Operation) IsComparison() bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsLogical reports whether op combines booleans
func (op Operation) IsLogical() bool {
	return op == OpAnd || op == OpOr || op == OpNot
}

// GetLexOperation maps a lexer token type to an expression operator.
// Compound assignment tokens map to the arithmetic operator they apply.
func GetLexOperation(t lexer.TokenType) Operation {
	switch t {
	case lexer.PLUS, lexer.PLUS_ASSIGN, lexer.INCR:
		return OpAdd
	case lexer.MINUS, lexer.MINUS_ASSIGN, lexer.DECR:
		return OpSub
	case lexer.MULT, lexer.MULT_ASSIGN:
		return OpMul
	case lexer.DIV, lexer.DIV_ASSIGN:
		return OpDiv
	case lexer.MOD:
		return OpMod
	case lexer.AND:
		return OpAnd
	case lexer.OR:
		return OpOr
	case lexer.NOT:
		return OpNot
	case lexer.EQ:
		return OpEq
	case lexer.NE:
		return OpNeq
	case lexer.LT:
		return OpLt
	case lexer.LE:
		return OpLe
	case lexer.GT:
		return OpGt
	case lexer.GE:
		return OpGe
	default:
		return OpNop
	}
}
