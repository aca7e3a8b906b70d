package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	insppass "golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// AnalyzerDeclSecret flags const and var declarations that bind a
// secret-named identifier to a secret-like string literal.
var AnalyzerDeclSecret = &analysis.Analyzer{
	Name:     "secretdecl",
	Doc:      "flags hardcoded secret literals in const and var declarations",
	Run:      runDeclSecret,
	Requires: []*analysis.Analyzer{insppass.Analyzer},
}

func runDeclSecret(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[insppass.Analyzer].(*inspector.Inspector)

	nodes := []ast.Node{(*ast.ValueSpec)(nil)}
	insp.Nodes(nodes, func(n ast.Node, push bool) bool {
		if !push {
			return true
		}
		vs := n.(*ast.ValueSpec)
		for i, name := range vs.Names {
			if name.Name == "_" || i >= len(vs.Values) {
				continue
			}
			val, ok := stringLiteral(vs.Values[i])
			if !ok {
				continue
			}
			reportSecret(pass, name.Name, val, vs.Values[i].Pos())
		}
		return true
	})

	return nil, nil
}
