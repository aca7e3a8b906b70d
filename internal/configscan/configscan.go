// Package configscan extracts key/value facts from non-Go configuration
// artifacts (.env, properties, YAML, JSON) and feeds them through the same
// hardcoded-secret rule applied to Go source.
package configscan

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/secretlit/secretlit/internal/scanner"
	"github.com/secretlit/secretlit/internal/secrets"
)

// maxFileBytes caps how large a config file may be before it is skipped.
const maxFileBytes = 2 * 1024 * 1024

// skipDirs are never descended into.
var skipDirs = map[string]struct{}{
	".git":         {},
	"vendor":       {},
	"node_modules": {},
	"testdata":     {},
}

// lineExts are scanned with the line-based key=value extractor.
var lineExts = map[string]struct{}{
	".env":        {},
	".properties": {},
	".ini":        {},
	".tfvars":     {},
	".conf":       {},
}

// treeExts are parsed as YAML; yaml.v3 accepts JSON as well.
var treeExts = map[string]struct{}{
	".yaml": {},
	".yml":  {},
	".json": {},
}

// keyValueLine matches `KEY = value`, `key: value` and `export KEY=value`
// lines in dotenv/properties style files.
var keyValueLine = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z0-9_.\-]+)\s*[:=]\s*(.+?)\s*$`)

// Scanner walks a tree and produces SEC010 issues for secret-like key/value
// pairs in configuration files.
type Scanner struct {
	matcher *secrets.Matcher
}

// New builds a config-file scanner around the given matcher; a nil matcher
// uses the default heuristics.
func New(matcher *secrets.Matcher) *Scanner {
	if matcher == nil {
		matcher = secrets.NewMatcher()
	}
	return &Scanner{matcher: matcher}
}

// ScanTree walks root and scans every recognized config file. Unreadable or
// oversized files are skipped, not fatal. Paths in issue positions are
// relative to root.
func (s *Scanner) ScanTree(ctx context.Context, root string) ([]scanner.Issue, error) {
	var issues []scanner.Issue
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable root means the whole scan is void; errors
			// below it only lose that subtree.
			if path == root {
				return err
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !recognized(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxFileBytes {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		fileIssues, err := s.ScanFile(path, rel)
		if err != nil {
			return nil
		}
		issues = append(issues, fileIssues...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	scanner.SortIssues(issues)
	return issues, nil
}

// ScanFile scans a single config file, reporting positions under displayPath.
func (s *Scanner) ScanFile(path, displayPath string) ([]scanner.Issue, error) {
	ext := strings.ToLower(filepath.Ext(path))
	base := strings.ToLower(filepath.Base(path))

	var inits []secrets.FieldInit
	var err error
	switch {
	case strings.HasPrefix(base, ".env") || hasExt(lineExts, ext):
		inits, err = extractLines(path, displayPath)
	case hasExt(treeExts, ext):
		inits, err = extractDocument(path, displayPath)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	findings := s.matcher.Scan(inits)
	issues := make([]scanner.Issue, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, scanner.Issue{
			RuleID:   scanner.RuleConfigFileID,
			Title:    "Hardcoded secret in configuration file",
			Message:  f.Message,
			Severity: scanner.SeverityFor(scanner.RuleConfigFileID),
			Position: scanner.Position{
				Filename: f.Position.Filename,
				Line:     f.Position.Line,
				Column:   f.Position.Column,
			},
			Suggestion: "Reference the secret indirectly (environment interpolation, secret store) instead of inlining it",
		})
	}
	return issues, nil
}

func recognized(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, ".env") {
		return true
	}
	ext := filepath.Ext(lower)
	return hasExt(lineExts, ext) || hasExt(treeExts, ext)
}

func hasExt(set map[string]struct{}, ext string) bool {
	_, ok := set[ext]
	return ok
}

// extractLines pulls key/value pairs out of dotenv/properties style files,
// one fact per matching line. Comment lines and values wrapped in quotes are
// normalized before matching.
func extractLines(path, displayPath string) ([]secrets.FieldInit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var inits []secrets.FieldInit
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxFileBytes)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}
		m := keyValueLine.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		inits = append(inits, secrets.FieldInit{
			FieldName:    m[1],
			LiteralValue: unquote(m[2]),
			Position:     secrets.Position{Filename: displayPath, Line: line},
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return inits, nil
}

// extractDocument parses a YAML or JSON document into a node tree and walks
// every mapping, keeping the literal lines yaml.v3 records on each node.
func extractDocument(path, displayPath string) ([]secrets.FieldInit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		// Not well-formed; nothing to extract.
		return nil, nil
	}
	var inits []secrets.FieldInit
	walkNode(&root, displayPath, &inits)
	return inits, nil
}

func walkNode(n *yaml.Node, displayPath string, inits *[]secrets.FieldInit) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			walkNode(c, displayPath, inits)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind == yaml.ScalarNode && val.Kind == yaml.ScalarNode {
				*inits = append(*inits, secrets.FieldInit{
					FieldName:    key.Value,
					LiteralValue: val.Value,
					Position:     secrets.Position{Filename: displayPath, Line: val.Line, Column: val.Column},
				})
				continue
			}
			walkNode(val, displayPath, inits)
		}
	}
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
