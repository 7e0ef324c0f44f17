package ast

// Inspect traverses the statements in depth-first order, calling fn for
// every statement and expression. If fn returns false the children of
// that node are skipped.
func Inspect(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		inspectStmt(s, fn)
	}
}

func inspectStmt(s Stmt, fn func(Node) bool) {
	if s == nil || !fn(s) {
		return
	}
	switch st := s.(type) {
	case *Decl:
		inspectExpr(st.Init, fn)
	case *Assign:
		inspectExpr(st.Value, fn)
	case *If:
		inspectExpr(st.Cond, fn)
		Inspect(st.Then, fn)
		Inspect(st.Else, fn)
	case *While:
		inspectExpr(st.Cond, fn)
		Inspect(st.Body, fn)
	case *Return:
		inspectExpr(st.Value, fn)
	case *ExprStmt:
		inspectExpr(st.Call, fn)
	case *Print:
		inspectExpr(st.Value, fn)
	}
}

func inspectExpr(e Expr, fn func(Node) bool) {
	if e == nil {
		return
	}
	// a nil *Call stored in an Expr is not a nil interface
	if c, ok := e.(*Call); ok && c == nil {
		return
	}
	if !fn(e) {
		return
	}
	switch ex := e.(type) {
	case *Unary:
		inspectExpr(ex.X, fn)
	case *Binary:
		inspectExpr(ex.Left, fn)
		inspectExpr(ex.Right, fn)
	case *Call:
		for _, a := range ex.Args {
			inspectExpr(a, fn)
		}
	}
}

// Calls returns every call expression in fn's body in source order
func Calls(fn *Function) []*Call {
	var out []*Call
	Inspect(fn.Body, func(n Node) bool {
		if c, ok := n.(*Call); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Locals returns the names declared or assigned in fn, parameters first,
// without duplicates and in order of first appearance.
func Locals(fn *Function) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, p := range fn.Params {
		add(p)
	}
	Inspect(fn.Body, func(n Node) bool {
		switch s := n.(type) {
		case *Decl:
			add(s.Name)
		case *Assign:
			add(s.Name)
		case *Ident:
			add(s.Name)
		}
		return true
	})
	return out
}
