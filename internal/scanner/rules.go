package scanner

import (
	"sort"
	"strings"

	"github.com/secretlit/secretlit/internal/analyzers"
	arunner "github.com/secretlit/secretlit/internal/analyzers/runner"
)

// Rule IDs for hardcoded secret detection.
const (
	// Go source extraction sites
	RuleFieldInitID  = "SEC001"
	RuleDeclSecretID = "SEC002"
	RuleAssignmentID = "SEC003"
	RuleMapEntryID   = "SEC004"

	// Non-Go artifacts
	RuleConfigFileID = "SEC010"
)

// RuleMeta carries the catalog metadata shared by every output format.
type RuleMeta struct {
	ID         string
	Title      string
	Severity   Severity
	Suggestion string
}

// analyzerCatalog maps rule IDs to their analyzer-backed specs.
var analyzerCatalog = map[string]arunner.Spec{
	RuleFieldInitID: {
		RuleID:     RuleFieldInitID,
		Title:      "Hardcoded secret in struct field initialization",
		Suggestion: "Load the value from the environment or a secrets manager and rotate the exposed credential",
		Analyzer:   analyzers.AnalyzerFieldInit,
	},
	RuleDeclSecretID: {
		RuleID:     RuleDeclSecretID,
		Title:      "Hardcoded secret in const or var declaration",
		Suggestion: "Load the value from the environment or a secrets manager and rotate the exposed credential",
		Analyzer:   analyzers.AnalyzerDeclSecret,
	},
	RuleAssignmentID: {
		RuleID:     RuleAssignmentID,
		Title:      "Hardcoded secret in assignment",
		Suggestion: "Load the value from the environment or a secrets manager and rotate the exposed credential",
		Analyzer:   analyzers.AnalyzerAssignSecret,
	},
	RuleMapEntryID: {
		RuleID:     RuleMapEntryID,
		Title:      "Hardcoded secret in map literal",
		Suggestion: "Load the value from the environment or a secrets manager and rotate the exposed credential",
		Analyzer:   analyzers.AnalyzerMapEntry,
	},
}

// ruleSeverities records per-rule severity; every secret finding is an error
// except map entries, where key naming is a weaker signal.
var ruleSeverities = map[string]Severity{
	RuleFieldInitID:  SeverityError,
	RuleDeclSecretID: SeverityError,
	RuleAssignmentID: SeverityError,
	RuleMapEntryID:   SeverityWarning,
	RuleConfigFileID: SeverityError,
}

// SeverityFor returns the severity for a rule ID, defaulting to warning.
func SeverityFor(ruleID string) Severity {
	if s, ok := ruleSeverities[ruleID]; ok {
		return s
	}
	return SeverityWarning
}

// AllRuleIDs returns every known rule ID in stable order.
func AllRuleIDs() []string {
	ids := make([]string, 0, len(analyzerCatalog)+1)
	for id := range analyzerCatalog {
		ids = append(ids, id)
	}
	ids = append(ids, RuleConfigFileID)
	sort.Strings(ids)
	return ids
}

// Metadata returns catalog metadata for every known rule in stable order,
// for report renderers that enumerate rules.
func Metadata() []RuleMeta {
	out := make([]RuleMeta, 0, len(analyzerCatalog)+1)
	for _, id := range AllRuleIDs() {
		if spec, ok := analyzerCatalog[id]; ok {
			out = append(out, RuleMeta{ID: id, Title: spec.Title, Severity: SeverityFor(id), Suggestion: spec.Suggestion})
			continue
		}
		out = append(out, RuleMeta{
			ID:         RuleConfigFileID,
			Title:      "Hardcoded secret in configuration file",
			Severity:   SeverityFor(RuleConfigFileID),
			Suggestion: "Reference the secret indirectly (environment interpolation, secret store) instead of inlining it",
		})
	}
	return out
}

// BuildAnalyzerSpecs selects the analyzer specs to run based on include and
// disable lists. A non-empty include list enables only those rule IDs;
// otherwise every analyzer runs except those explicitly disabled.
func BuildAnalyzerSpecs(includeCSV, disableCSV string) []arunner.Spec {
	var out []arunner.Spec
	if strings.TrimSpace(includeCSV) != "" {
		for _, id := range splitAndTrim(includeCSV) {
			if spec, ok := analyzerCatalog[id]; ok {
				out = append(out, spec)
			}
		}
		sortSpecs(out)
		return out
	}
	disabled := map[string]struct{}{}
	for _, id := range splitAndTrim(disableCSV) {
		if id != "" {
			disabled[id] = struct{}{}
		}
	}
	for id, spec := range analyzerCatalog {
		if _, off := disabled[id]; off {
			continue
		}
		out = append(out, spec)
	}
	sortSpecs(out)
	return out
}

// ConfigFileRuleEnabled reports whether SEC010 survives the include/disable
// selection used for the analyzer specs.
func ConfigFileRuleEnabled(includeCSV, disableCSV string) bool {
	if strings.TrimSpace(includeCSV) != "" {
		for _, id := range splitAndTrim(includeCSV) {
			if id == RuleConfigFileID {
				return true
			}
		}
		return false
	}
	for _, id := range splitAndTrim(disableCSV) {
		if id == RuleConfigFileID {
			return false
		}
	}
	return true
}

func sortSpecs(specs []arunner.Spec) {
	sort.Slice(specs, func(i, j int) bool { return specs[i].RuleID < specs[j].RuleID })
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
