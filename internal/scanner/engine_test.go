package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestEngine_FindsPlantedSecret(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"go.mod": "module tmp\n\ngo 1.23\n",
		"main.go": `package main

type config struct {
	APIKey   string
	Endpoint string
}

var cfg = config{
	APIKey:   "sk_abcdefghij",
	Endpoint: "https://example.com",
}

func main() {}
`,
	})

	eng := NewEngine(BuildAnalyzerSpecs("", ""))
	issues, err := eng.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("engine run: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d: %+v", len(issues), issues)
	}
	is := issues[0]
	if is.RuleID != RuleFieldInitID {
		t.Errorf("unexpected rule ID %q", is.RuleID)
	}
	if is.Severity != SeverityError {
		t.Errorf("unexpected severity %q", is.Severity)
	}
	if !strings.Contains(is.Message, "APIKey") || !strings.Contains(is.Message, "sk_abcdefghij") {
		t.Errorf("message must embed field and value: %q", is.Message)
	}
	if is.Position.Line != 9 {
		t.Errorf("expected finding on line 9, got %d", is.Position.Line)
	}
}

func TestEngine_DisabledRuleProducesNothing(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"go.mod":  "module tmp\n\ngo 1.23\n",
		"main.go": "package main\n\nconst authToken = \"token_abc\"\n\nfunc main() {}\n",
	})

	eng := NewEngine(BuildAnalyzerSpecs("", RuleDeclSecretID))
	issues, err := eng.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("engine run: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected 0 issues with %s disabled, got %+v", RuleDeclSecretID, issues)
	}
}

func TestBuildAnalyzerSpecs_IncludeWins(t *testing.T) {
	specs := BuildAnalyzerSpecs("SEC001,SEC003", "SEC001")
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}
	if specs[0].RuleID != RuleFieldInitID || specs[1].RuleID != RuleAssignmentID {
		t.Fatalf("unexpected spec selection: %+v", specs)
	}
}

func TestConfigFileRuleEnabled(t *testing.T) {
	if !ConfigFileRuleEnabled("", "") {
		t.Error("SEC010 should be on by default")
	}
	if ConfigFileRuleEnabled("", RuleConfigFileID) {
		t.Error("SEC010 should honor disable list")
	}
	if ConfigFileRuleEnabled("SEC001", "") {
		t.Error("SEC010 should be off when include list omits it")
	}
	if !ConfigFileRuleEnabled("SEC010", "") {
		t.Error("SEC010 should be on when include list names it")
	}
}
