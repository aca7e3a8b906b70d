// Package app wires configuration, scanning and reporting behind the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/secretlit/secretlit/internal/analyzers"
	"github.com/secretlit/secretlit/internal/config"
	"github.com/secretlit/secretlit/internal/configscan"
	"github.com/secretlit/secretlit/internal/report"
	"github.com/secretlit/secretlit/internal/scanner"
	"github.com/secretlit/secretlit/internal/secrets"
)

// Tool identity used in reports.
const (
	ToolName    = "secretlit"
	ToolVersion = "0.3.0"
)

// Options configures a single-tree scan.
type Options struct {
	Root            string
	ConfigPath      string
	Format          string // overrides config when non-empty
	IncludeRules    string // CSV, overrides config when non-empty
	DisableRules    string // CSV, overrides config when non-empty
	SkipConfigFiles bool

	Out    io.Writer
	Logger *zap.SugaredLogger
}

// Run scans one tree and renders the report. It returns the number of issues
// found so the CLI can choose its exit code. Matcher customization from the
// config is installed process-wide in the extraction analyzers, so
// overlapping Run calls with different matcher configs are not supported.
func Run(ctx context.Context, opts Options) (int, error) {
	// A missing root must be an operational error, not a clean scan.
	if info, err := os.Stat(opts.Root); err != nil {
		return 0, fmt.Errorf("scan root %s: %w", opts.Root, err)
	} else if !info.IsDir() {
		return 0, fmt.Errorf("scan root %s: not a directory", opts.Root)
	}

	cfg, err := config.Load(config.ResolvePath(opts.ConfigPath))
	if err != nil {
		return 0, err
	}

	format, err := report.ParseFormat(firstNonEmpty(opts.Format, cfg.Output.Format))
	if err != nil {
		return 0, err
	}
	include := firstNonEmpty(opts.IncludeRules, cfg.IncludeCSV())
	disable := firstNonEmpty(opts.DisableRules, cfg.DisableCSV())
	skipConfigFiles := opts.SkipConfigFiles || cfg.SkipConfigFiles

	matcher := buildMatcher(cfg.Matcher)
	analyzers.SetMatcher(matcher)

	issues, err := scanTree(ctx, opts.Root, matcher, include, disable, skipConfigFiles, opts.Logger)
	if err != nil {
		return 0, err
	}

	if err := report.Render(opts.Out, issues, format, ToolName, ToolVersion); err != nil {
		return 0, err
	}
	return len(issues), nil
}

// scanTree runs the Go extraction analyzers and the config-file scanner over
// root and merges their issues into one deterministic listing.
func scanTree(ctx context.Context, root string, matcher *secrets.Matcher, include, disable string, skipConfigFiles bool, log *zap.SugaredLogger) ([]scanner.Issue, error) {
	var issues []scanner.Issue

	if isGoModule(root) {
		log.Infow("🧩 Scanning Go packages", "root", root)
		eng := scanner.NewEngine(scanner.BuildAnalyzerSpecs(include, disable))
		goIssues, err := eng.Run(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("scan go packages: %w", err)
		}
		issues = append(issues, goIssues...)
	} else {
		log.Debugw("⚪ No go.mod; skipping Go analysis", "root", root)
	}

	if !skipConfigFiles && scanner.ConfigFileRuleEnabled(include, disable) {
		log.Infow("📄 Scanning configuration files", "root", root)
		cfgIssues, err := configscan.New(matcher).ScanTree(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("scan config files: %w", err)
		}
		issues = append(issues, cfgIssues...)
	}

	scanner.SortIssues(issues)
	return issues, nil
}

func buildMatcher(mc config.MatcherConfig) *secrets.Matcher {
	var opts []secrets.Option
	if len(mc.ExtraNameSubstrings) > 0 {
		opts = append(opts, secrets.WithNameSubstrings(mc.ExtraNameSubstrings...))
	}
	if len(mc.ExtraValuePrefixes) > 0 {
		opts = append(opts, secrets.WithValuePrefixes(mc.ExtraValuePrefixes...))
	}
	if mc.MinRunLength > 0 {
		opts = append(opts, secrets.WithMinRunLength(mc.MinRunLength))
	}
	return secrets.NewMatcher(opts...)
}

func isGoModule(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
