package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secretlit/secretlit/internal/logging"
	"github.com/secretlit/secretlit/internal/scanner"
)

func TestRun_GoAndConfigIssuesMerged(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module tmp\n\ngo 1.23\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(`package main

const dbPassword = "sk_abcdefghij"

func main() {}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTH_TOKEN=token_prod_123\n"), 0o644))

	var buf bytes.Buffer
	count, err := Run(context.Background(), Options{
		Root:   dir,
		Format: "json",
		Out:    &buf,
		Logger: logging.Nop(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var out struct {
		Issues []scanner.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Issues, 2)
	rules := []string{out.Issues[0].RuleID, out.Issues[1].RuleID}
	assert.Contains(t, rules, scanner.RuleDeclSecretID)
	assert.Contains(t, rules, scanner.RuleConfigFileID)
}

func TestRun_SkipConfigFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("API_KEY=sk_abcdefghij\n"), 0o644))

	var buf bytes.Buffer
	count, err := Run(context.Background(), Options{
		Root:            dir,
		Format:          "text",
		SkipConfigFiles: true,
		Out:             &buf,
		Logger:          logging.Nop(),
	})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Contains(t, buf.String(), "No hardcoded secrets found")
}

func TestRun_MissingRootErrors(t *testing.T) {
	var buf bytes.Buffer
	count, err := Run(context.Background(), Options{
		Root:   filepath.Join(t.TempDir(), "no-such-dir"),
		Format: "text",
		Out:    &buf,
		Logger: logging.Nop(),
	})
	require.Error(t, err)
	assert.Zero(t, count)
	assert.Empty(t, buf.String())
}

func TestRun_FileRootErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0o644))

	_, err := Run(context.Background(), Options{
		Root:   file,
		Format: "text",
		Out:    &bytes.Buffer{},
		Logger: logging.Nop(),
	})
	require.ErrorContains(t, err, "not a directory")
}

func TestRun_DisableRuleViaFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("API_KEY=sk_abcdefghij\n"), 0o644))

	var buf bytes.Buffer
	count, err := Run(context.Background(), Options{
		Root:         dir,
		Format:       "text",
		DisableRules: scanner.RuleConfigFileID,
		Out:          &buf,
		Logger:       logging.Nop(),
	})
	require.NoError(t, err)
	assert.Zero(t, count)
}
