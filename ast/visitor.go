package ast

// Visitor and Walk exist for downstream consumers (formatters, static
// analyzers); the parser itself never calls Walk. Out of scope per spec.md
// §1 ("AST consumers... only their boundary contracts are specified"), kept
// minimal: a pre-order walk over the Statement/Expression list structure,
// mirroring the teacher's Node/Visitor/Accept shape (DESIGN.md).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// Walk traverses the program tree in source order, calling v.Visit for each
// top-level statement (not for the program itself). It does not descend into
// statement/expression payloads: a full traversal belongs to a consumer
// package, not the core parser.
func Walk(v Visitor, prog *Program) {
	if v == nil || prog == nil {
		return
	}
	for _, stmt := range prog.Statements {
		if v2 := v.Visit(stmt); v2 != nil {
			v = v2
		}
	}
}
