package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	insppass "golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// AnalyzerMapEntry flags map literals that pair a secret-like string key
// with a secret-like string literal value, e.g. {"api_key": "sk_..."}.
var AnalyzerMapEntry = &analysis.Analyzer{
	Name:     "secretmapentry",
	Doc:      "flags hardcoded secret literals keyed by secret-like strings in map literals",
	Run:      runMapEntry,
	Requires: []*analysis.Analyzer{insppass.Analyzer},
}

func runMapEntry(pass *analysis.Pass) (any, error) {
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
			key, ok := stringLiteral(kv.Key)
			if !ok {
				continue
			}
			val, ok := stringLiteral(kv.Value)
			if !ok {
				continue
			}
			reportSecret(pass, key, val, kv.Value.Pos())
		}
		return true
	})

	return nil, nil
}
