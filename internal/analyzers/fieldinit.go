package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	insppass "golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// AnalyzerFieldInit flags struct composite literals that initialize a
// secret-named field with a secret-like string literal.
var AnalyzerFieldInit = &analysis.Analyzer{
	Name:     "secretfieldinit",
	Doc:      "flags hardcoded secret literals in struct field initializations",
	Run:      runFieldInit,
	Requires: []*analysis.Analyzer{insppass.Analyzer},
}

func runFieldInit(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[insppass.Analyzer].(*inspector.Inspector)

	nodes := []ast.Node{(*ast.CompositeLit)(nil)}
	insp.Nodes(nodes, func(n ast.Node, push bool) bool {
		if !push {
			return true
		}
		cl := n.(*ast.CompositeLit)
		for _, el := range cl.Elts {
			kv, ok := el.(*ast.KeyValueExpr)
			if !ok {
				continue
			}
			// Identifier keys are struct fields; string-literal keys are
			// map entries and belong to the map-entry analyzer.
			key, ok := kv.Key.(*ast.Ident)
			if !ok {
				continue
			}
			val, ok := stringLiteral(kv.Value)
			if !ok {
				continue
			}
			reportSecret(pass, key.Name, val, kv.Value.Pos())
		}
		return true
	})

	return nil, nil
}
