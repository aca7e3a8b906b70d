package analyzers

import (
	"testing"

	"github.com/secretlit/secretlit/internal/analyzers/testutil"
)

func TestDeclSecret_ConstFlagged(t *testing.T) {
	src := `package a
const apiKey = "sk_abcdefghij"`
	diags, err := testutil.RunAnalyzerOnSrc(AnalyzerDeclSecret, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestDeclSecret_VarGroupFlagged(t *testing.T) {
	src := `package a
var (
	endpoint = "https://example.com"
	password = "token_abc123"
)`
	diags, err := testutil.RunAnalyzerOnSrc(AnalyzerDeclSecret, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestDeclSecret_BlankAndUntyped_NoDiag(t *testing.T) {
	src := `package a
var _ = "sk_abcdefghij"
var count = 3
var name = "alice"`
	diags, err := testutil.RunAnalyzerOnSrc(AnalyzerDeclSecret, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}
