// Package report renders scan issues as plain text, JSON or SARIF.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/secretlit/secretlit/internal/scanner"
)

// Format names an output format.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatSARIF:
		return FormatSARIF, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or sarif)", s)
}

// jsonReport is the envelope for --format json output.
type jsonReport struct {
	Tool    string          `json:"tool"`
	Version string          `json:"version"`
	Count   int             `json:"count"`
	Issues  []scanner.Issue `json:"issues"`
}

// Render writes issues to w in the requested format.
func Render(w io.Writer, issues []scanner.Issue, format Format, toolName, toolVersion string) error {
	switch format {
	case FormatJSON:
		out := jsonReport{Tool: toolName, Version: toolVersion, Count: len(issues), Issues: issues}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatSARIF:
		data, err := SARIF(issues, toolName, toolVersion)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return renderText(w, issues)
	}
}

// renderText prints a human-oriented listing. Decorations are dropped when
// stdout is not a terminal so the output stays grep-friendly in CI.
func renderText(w io.Writer, issues []scanner.Issue) error {
	decorate := false
	if f, ok := w.(*os.File); ok {
		decorate = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	if len(issues) == 0 {
		if _, err := fmt.Fprintln(w, mark(decorate, "✅ ")+"No hardcoded secrets found"); err != nil {
			return err
		}
		return nil
	}

	for _, is := range issues {
		loc := is.Position.Filename
		if is.Position.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, is.Position.Line)
			if is.Position.Column > 0 {
				loc = fmt.Sprintf("%s:%d", loc, is.Position.Column)
			}
		}
		if _, err := fmt.Fprintf(w, "%s%s [%s] %s\n", mark(decorate, "🔑 "), loc, is.RuleID, is.Message); err != nil {
			return err
		}
		if is.Suggestion != "" {
			if _, err := fmt.Fprintf(w, "    ↳ %s\n", is.Suggestion); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "\n%d issue(s) found\n", len(issues))
	return err
}

func mark(decorate bool, s string) string {
	if decorate {
		return s
	}
	return ""
}
