package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secretlit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Empty(t, cfg.Rules.Include)
	assert.False(t, cfg.SkipConfigFiles)
}

func TestLoad_FullDocument(t *testing.T) {
	path := writeConfig(t, `rules:
  disable: [SEC004]
matcher:
  extra_name_substrings: [credential]
  extra_value_prefixes: [ghp_]
  min_run_length: 40
output:
  format: sarif
skip_config_files: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"SEC004"}, cfg.Rules.Disable)
	assert.Equal(t, "SEC004", cfg.DisableCSV())
	assert.Equal(t, 40, cfg.Matcher.MinRunLength)
	assert.Equal(t, "sarif", cfg.Output.Format)
	assert.True(t, cfg.SkipConfigFiles)
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "rulez:\n  disable: [SEC001]\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsBadFormat(t *testing.T) {
	path := writeConfig(t, "output:\n  format: xml\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_BlankMatcherEntries(t *testing.T) {
	cfg := NewDefault()
	cfg.Matcher.ExtraValuePrefixes = []string{" "}
	assert.Error(t, Validate(&cfg))
}

func TestResolvePath_FlagWinsOverEnv(t *testing.T) {
	envPath := writeConfig(t, "output:\n  format: json\n")
	t.Setenv(EnvConfigPath, envPath)
	assert.Equal(t, "explicit.yaml", ResolvePath("explicit.yaml"))
	assert.Equal(t, envPath, ResolvePath(""))
}
