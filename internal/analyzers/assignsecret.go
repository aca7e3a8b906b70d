package analyzers

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	insppass "golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// AnalyzerAssignSecret flags assignments that store a secret-like string
// literal into a secret-named variable or struct field, covering both
// `token := "..."` and `cfg.Password = "..."` forms.
var AnalyzerAssignSecret = &analysis.Analyzer{
	Name:     "secretassign",
	Doc:      "flags hardcoded secret literals assigned to secret-named variables or fields",
	Run:      runAssignSecret,
	Requires: []*analysis.Analyzer{insppass.Analyzer},
}

func runAssignSecret(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[insppass.Analyzer].(*inspector.Inspector)

	nodes := []ast.Node{(*ast.AssignStmt)(nil)}
	insp.Nodes(nodes, func(n ast.Node, push bool) bool {
		if !push {
			return true
		}
		as := n.(*ast.AssignStmt)
		for i, lhs := range as.Lhs {
			if i >= len(as.Rhs) {
				continue
			}
			id := fieldIdent(lhs)
			if id == nil || id.Name == "_" {
				continue
			}
			val, ok := stringLiteral(as.Rhs[i])
			if !ok {
				continue
			}
			reportSecret(pass, id.Name, val, as.Rhs[i].Pos())
		}
		return true
	})

	return nil, nil
}
