package parser

import (
	"fmt"
	"strings"

	"microc/pkg/lexer"
)

type Production struct {
	LHS string
	RHS []string
}

type ParsingTable map[string]map[lexer.TokenType]Production

// StartSymbol is the non-terminal the parse starts from
const StartSymbol = "Program"

// Semantic actions are written as "@name" and run when popped off the parse stack.
// Expression actions come before the recursive tail so operators associate to the left.
var grammar = []Production{
	{LHS: "Program", RHS: []string{"IncludeList", "FuncList", "@program_end"}},

	{LHS: "IncludeList", RHS: []string{"#include", "@include", "IncludeList"}},
	{LHS: "IncludeList", RHS: []string{"ε"}},

	{LHS: "FuncList", RHS: []string{"FuncDecl", "FuncList"}},
	{LHS: "FuncList", RHS: []string{"ε"}},

	{LHS: "FuncDecl", RHS: []string{"RetType", "id", "@func_start", "(", "ParamList", ")", "@block_start", "{", "StmtList", "}", "@block_end", "@func_end"}},

	{LHS: "RetType", RHS: []string{"int", "@ret_int"}},
	{LHS: "RetType", RHS: []string{"void", "@ret_void"}},

	{LHS: "ParamList", RHS: []string{"Param", "Param'"}},
	{LHS: "ParamList", RHS: []string{"void"}},
	{LHS: "ParamList", RHS: []string{"ε"}},

	{LHS: "Param'", RHS: []string{",", "Param", "Param'"}},
	{LHS: "Param'", RHS: []string{"ε"}},

	{LHS: "Param", RHS: []string{"int", "id", "@param"}},

	{LHS: "StmtList", RHS: []string{"Stmt", "StmtList"}},
	{LHS: "StmtList", RHS: []string{"ε"}},

	{LHS: "Stmt", RHS: []string{"VarDecl"}},
	{LHS: "Stmt", RHS: []string{"IdStmt"}},
	{LHS: "Stmt", RHS: []string{"IfStmt"}},
	{LHS: "Stmt", RHS: []string{"WhileStmt"}},
	{LHS: "Stmt", RHS: []string{"ReturnStmt"}},
	{LHS: "Stmt", RHS: []string{"PrintStmt"}},

	{LHS: "VarDecl", RHS: []string{"int", "id", "@capture_target", "DeclInit", ";"}},

	{LHS: "DeclInit", RHS: []string{"=", "Expr", "@decl_init"}},
	{LHS: "DeclInit", RHS: []string{"@decl_bare"}},

	{LHS: "IdStmt", RHS: []string{"id", "@capture_target", "IdSuffix", ";"}},

	{LHS: "IdSuffix", RHS: []string{"=", "Expr", "@assign"}},
	{LHS: "IdSuffix", RHS: []string{"AssignOp", "Expr", "@compound"}},
	{LHS: "IdSuffix", RHS: []string{"++", "@incr"}},
	{LHS: "IdSuffix", RHS: []string{"--", "@decr"}},
	{LHS: "IdSuffix", RHS: []string{"@call_start", "(", "ArgList", ")", "@call_end", "@expr_stmt"}},

	{LHS: "AssignOp", RHS: []string{"+=", "@push_op"}},
	{LHS: "AssignOp", RHS: []string{"-=", "@push_op"}},
	{LHS: "AssignOp", RHS: []string{"*=", "@push_op"}},
	{LHS: "AssignOp", RHS: []string{"/=", "@push_op"}},

	{LHS: "IfStmt", RHS: []string{"if", "@mark", "(", "Expr", ")", "@block_start", "{", "StmtList", "}", "@block_end", "ElsePart"}},

	{LHS: "ElsePart", RHS: []string{"else", "ElseBody"}},
	{LHS: "ElsePart", RHS: []string{"@if"}},

	// else-if nests the inner if in a block of its own
	{LHS: "ElseBody", RHS: []string{"@block_start", "{", "StmtList", "}", "@block_end", "@if_else"}},
	{LHS: "ElseBody", RHS: []string{"@block_start", "IfStmt", "@block_end", "@if_else"}},

	{LHS: "WhileStmt", RHS: []string{"while", "@mark", "(", "Expr", ")", "@block_start", "{", "StmtList", "}", "@block_end", "@while"}},

	{LHS: "ReturnStmt", RHS: []string{"return", "@mark", "ReturnValue", ";"}},

	{LHS: "ReturnValue", RHS: []string{"Expr", "@return_value"}},
	{LHS: "ReturnValue", RHS: []string{"@return_void"}},

	{LHS: "PrintStmt", RHS: []string{"print", "@mark", "(", "Expr", ")", ";", "@print"}},

	{LHS: "Expr", RHS: []string{"OrExpr"}},

	{LHS: "OrExpr", RHS: []string{"AndExpr", "OrExpr'"}},

	{LHS: "OrExpr'", RHS: []string{"||", "AndExpr", "@or", "OrExpr'"}},
	{LHS: "OrExpr'", RHS: []string{"ε"}},

	{LHS: "AndExpr", RHS: []string{"RelExpr", "AndExpr'"}},

	{LHS: "AndExpr'", RHS: []string{"&&", "RelExpr", "@and", "AndExpr'"}},
	{LHS: "AndExpr'", RHS: []string{"ε"}},

	{LHS: "RelExpr", RHS: []string{"Sum", "RelExpr'"}},

	{LHS: "RelExpr'", RHS: []string{"RelOp", "Sum", "@rel"}},
	{LHS: "RelExpr'", RHS: []string{"ε"}},

	{LHS: "RelOp", RHS: []string{"<", "@push_op"}},
	{LHS: "RelOp", RHS: []string{">", "@push_op"}},
	{LHS: "RelOp", RHS: []string{"<=", "@push_op"}},
	{LHS: "RelOp", RHS: []string{">=", "@push_op"}},
	{LHS: "RelOp", RHS: []string{"==", "@push_op"}},
	{LHS: "RelOp", RHS: []string{"!=", "@push_op"}},

	{LHS: "Sum", RHS: []string{"Term", "Sum'"}},

	{LHS: "Sum'", RHS: []string{"+", "Term", "@add", "Sum'"}},
	{LHS: "Sum'", RHS: []string{"-", "Term", "@sub", "Sum'"}},
	{LHS: "Sum'", RHS: []string{"ε"}},

	{LHS: "Term", RHS: []string{"Unary", "Term'"}},

	{LHS: "Term'", RHS: []string{"*", "Unary", "@mul", "Term'"}},
	{LHS: "Term'", RHS: []string{"/", "Unary", "@div", "Term'"}},
	{LHS: "Term'", RHS: []string{"%", "Unary", "@mod", "Term'"}},
	{LHS: "Term'", RHS: []string{"ε"}},

	{LHS: "Unary", RHS: []string{"!", "@mark", "Unary", "@not"}},
	{LHS: "Unary", RHS: []string{"-", "@mark", "Unary", "@neg"}},
	{LHS: "Unary", RHS: []string{"Factor"}},

	{LHS: "Factor", RHS: []string{"num", "@push_num"}},
	{LHS: "Factor", RHS: []string{"id", "FactorSuffix"}},
	{LHS: "Factor", RHS: []string{"(", "Expr", ")"}},

	{LHS: "FactorSuffix", RHS: []string{"@load"}},
	{LHS: "FactorSuffix", RHS: []string{"@call_start", "(", "ArgList", ")", "@call_end"}},

	{LHS: "ArgList", RHS: []string{"Expr", "@arg", "ArgList'"}},
	{LHS: "ArgList", RHS: []string{"ε"}},

	{LHS: "ArgList'", RHS: []string{",", "Expr", "@arg", "ArgList'"}},
	{LHS: "ArgList'", RHS: []string{"ε"}},
}

var defaultTable = mustBuildTable(grammar)

// NewParsingTable returns the LL(1) parsing table of the microc grammar
func NewParsingTable() ParsingTable {
	return defaultTable
}

// Grammar returns a copy of the productions the table was built from
func Grammar() []Production {
	out := make([]Production, len(grammar))
	copy(out, grammar)
	return out
}

func mustBuildTable(g []Production) ParsingTable {
	table, conflicts := BuildTable(g)
	if len(conflicts) > 0 {
		panic("grammar is not LL(1):\n" + strings.Join(conflicts, "\n"))
	}
	return table
}

// BuildTable computes FIRST and FOLLOW sets for g and fills the LL(1) table.
// Every cell claimed by two productions is reported as a conflict.
func BuildTable(g []Production) (ParsingTable, []string) {
	nonTerminals := make(map[string]bool)
	for _, prod := range g {
		nonTerminals[prod.LHS] = true
	}

	first := make(map[string]map[lexer.TokenType]bool)
	follow := make(map[string]map[lexer.TokenType]bool)
	nullable := make(map[string]bool)
	for nt := range nonTerminals {
		first[nt] = make(map[lexer.TokenType]bool)
		follow[nt] = make(map[lexer.TokenType]bool)
	}
	follow[StartSymbol][lexer.EOF] = true

	// firstOf returns FIRST of a symbol sequence and whether it derives ε
	firstOf := func(seq []string) (map[lexer.TokenType]bool, bool) {
		out := make(map[lexer.TokenType]bool)
		for _, sym := range seq {
			switch {
			case sym == "ε" || isSemanticAction(sym):
				continue
			case nonTerminals[sym]:
				for t := range first[sym] {
					out[t] = true
				}
				if !nullable[sym] {
					return out, false
				}
			default:
				if t, ok := terminalType(sym); ok {
					out[t] = true
				}
				return out, false
			}
		}
		return out, true
	}

	addAll := func(dst, src map[lexer.TokenType]bool) bool {
		changed := false
		for t := range src {
			if !dst[t] {
				dst[t] = true
				changed = true
			}
		}
		return changed
	}

	for changed := true; changed; {
		changed = false
		for _, prod := range g {
			f, null := firstOf(prod.RHS)
			if addAll(first[prod.LHS], f) {
				changed = true
			}
			if null && !nullable[prod.LHS] {
				nullable[prod.LHS] = true
				changed = true
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, prod := range g {
			for i, sym := range prod.RHS {
				if !nonTerminals[sym] {
					continue
				}
				f, null := firstOf(prod.RHS[i+1:])
				if addAll(follow[sym], f) {
					changed = true
				}
				if null && addAll(follow[sym], follow[prod.LHS]) {
					changed = true
				}
			}
		}
	}

	table := make(ParsingTable)
	owner := make(map[string]map[lexer.TokenType]int)
	var conflicts []string

	set := func(i int, t lexer.TokenType) {
		prod := g[i]
		if table[prod.LHS] == nil {
			table[prod.LHS] = make(map[lexer.TokenType]Production)
			owner[prod.LHS] = make(map[lexer.TokenType]int)
		}
		if j, taken := owner[prod.LHS][t]; taken && j != i {
			conflicts = append(conflicts, fmt.Sprintf("%s on '%s': %v vs %v", prod.LHS, t, g[j].RHS, prod.RHS))
			return
		}
		table[prod.LHS][t] = prod
		owner[prod.LHS][t] = i
	}

	for i, prod := range g {
		f, null := firstOf(prod.RHS)
		for t := range f {
			set(i, t)
		}
		if null {
			for t := range follow[prod.LHS] {
				set(i, t)
			}
		}
	}

	return table, conflicts
}
