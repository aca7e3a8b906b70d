// secretlit-linter exposes the extraction analyzers as a standalone vet tool:
//
//	go vet -vettool=$(which secretlit-linter) ./...
package main

import (
	"github.com/secretlit/secretlit/internal/analyzers"

	"golang.org/x/tools/go/analysis/multichecker"
)

func main() {
	multichecker.Main(
		analyzers.AnalyzerAssignSecret,
		analyzers.AnalyzerDeclSecret,
		analyzers.AnalyzerFieldInit,
		analyzers.AnalyzerMapEntry,
	)
}
