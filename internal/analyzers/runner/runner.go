package runner

import (
	"context"
	"go/ast"
	"go/build"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	insppass "golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/packages"
)

// Spec binds one extraction analyzer to its catalog metadata.
type Spec struct {
	RuleID     string
	Title      string
	Suggestion string
	Analyzer   *analysis.Analyzer
}

// Finding is one diagnostic aggregated across analyzers and packages.
type Finding struct {
	RuleID     string
	Title      string
	Suggestion string
	Filename   string
	Line       int
	Column     int
	Message    string
}

// RunSpecs loads packages under dir once and runs every analyzer against each
// loaded package, returning aggregated findings. Context cancellation is
// honored between packages.
func RunSpecs(ctx context.Context, dir string, specs []Spec) ([]Finding, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports,
		Dir:  dir,
	}
	fset := token.NewFileSet()
	cfg.Fset = fset
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, err
	}
	sizes := types.SizesFor("gc", build.Default.GOARCH)

	var out []Finding
	for _, p := range pkgs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if len(p.Syntax) == 0 || p.TypesInfo == nil {
			continue
		}
		// The inspector is shared across analyzers for this package; every
		// extraction analyzer requires it.
		insp := inspector.New(p.Syntax)
		for _, spec := range specs {
			var diags []analysis.Diagnostic
			pass := &analysis.Pass{
				Analyzer:   spec.Analyzer,
				Fset:       fset,
				Files:      append([]*ast.File{}, p.Syntax...),
				Pkg:        p.Types,
				TypesInfo:  p.TypesInfo,
				TypesSizes: sizes,
				Report:     func(d analysis.Diagnostic) { diags = append(diags, d) },
				ResultOf:   map[*analysis.Analyzer]interface{}{insppass.Analyzer: insp},
			}
			if _, err := spec.Analyzer.Run(pass); err != nil {
				continue
			}
			for _, d := range diags {
				pos := fset.Position(d.Pos)
				out = append(out, Finding{
					RuleID:     spec.RuleID,
					Title:      spec.Title,
					Suggestion: spec.Suggestion,
					Filename:   pos.Filename,
					Line:       pos.Line,
					Column:     pos.Column,
					Message:    d.Message,
				})
			}
		}
	}
	return out, nil
}
