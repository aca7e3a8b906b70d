package analyzers

import (
	"testing"

	"github.com/secretlit/secretlit/internal/analyzers/testutil"
)

func TestAssignSecret_FieldAssignmentFlagged(t *testing.T) {
	src := `package a
type Config struct{ Password string }
func f(){ var cfg Config; cfg.Password = "apikey_x"; _ = cfg }`
	diags, err := testutil.RunAnalyzerOnSrc(AnalyzerAssignSecret, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestAssignSecret_ShortVarDeclFlagged(t *testing.T) {
	src := `package a
func f(){ authToken := "sk_live_abc"; _ = authToken }`
	diags, err := testutil.RunAnalyzerOnSrc(AnalyzerAssignSecret, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
}

func TestAssignSecret_TupleAssignMismatch_NoPanic(t *testing.T) {
	src := `package a
func pair() (string, string) { return "", "" }
func f(){ secret, other := pair(); _, _ = secret, other }`
	diags, err := testutil.RunAnalyzerOnSrc(AnalyzerAssignSecret, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics for non-literal RHS, got %d", len(diags))
	}
}

func TestAssignSecret_PlainName_NoDiag(t *testing.T) {
	src := `package a
func f(){ greeting := "sk_abcdefghij"; _ = greeting }`
	diags, err := testutil.RunAnalyzerOnSrc(AnalyzerAssignSecret, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}
