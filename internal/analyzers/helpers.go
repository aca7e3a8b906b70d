package analyzers

import (
	"go/ast"
	"go/token"
	"strconv"
	"sync/atomic"

	"golang.org/x/tools/go/analysis"

	"github.com/secretlit/secretlit/internal/secrets"
)

// stringLiteral returns the unquoted text of a string literal expression.
// Returns false for any non-literal or non-string expression, so computed
// initializers never reach the matcher.
func stringLiteral(expr ast.Expr) (string, bool) {
	bl, ok := expr.(*ast.BasicLit)
	if !ok || bl.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(bl.Value)
	if err != nil {
		return "", false
	}
	return s, true
}

// fieldIdent returns the written identifier for an assignment target, handling
// both plain identifiers and selector expressions. Returns nil if unresolved.
func fieldIdent(expr ast.Expr) *ast.Ident {
	switch x := expr.(type) {
	case *ast.Ident:
		return x
	case *ast.SelectorExpr:
		if x.Sel != nil {
			return x.Sel
		}
	}
	return nil
}

// matcher backs every extraction analyzer. The analysis framework gives the
// analyzers no per-run state, so the matcher is process-wide: SetMatcher
// swaps it for a config-customized one, and the linter binary keeps the
// default heuristics. The pointer is atomic so concurrent analysis runs
// never race, but runs wanting different matchers must not overlap.
var matcher atomic.Pointer[secrets.Matcher]

func init() {
	matcher.Store(secrets.NewMatcher())
}

// SetMatcher replaces the matcher used by the analyzers for the rest of the
// process. Call before starting an analysis run.
func SetMatcher(m *secrets.Matcher) {
	if m != nil {
		matcher.Store(m)
	}
}

// reportSecret runs the decision rule over a single extracted fact and emits
// a diagnostic at pos when both predicates hold.
func reportSecret(pass *analysis.Pass, fieldName, literalValue string, pos token.Pos) {
	p := pass.Fset.Position(pos)
	findings := matcher.Load().Scan([]secrets.FieldInit{{
		FieldName:    fieldName,
		LiteralValue: literalValue,
		Position:     secrets.Position{Filename: p.Filename, Line: p.Line, Column: p.Column},
	}})
	for _, f := range findings {
		pass.Reportf(pos, "%s", f.Message)
	}
}
