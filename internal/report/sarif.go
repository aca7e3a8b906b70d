package report

import (
	"encoding/json"

	"github.com/secretlit/secretlit/internal/scanner"
)

// SARIF v2.1.0 types, the minimal subset accepted by GitHub Code Scanning.

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string              `json:"id"`
	ShortDescription sarifMessage        `json:"shortDescription"`
	DefaultConfig    *sarifDefaultConfig `json:"defaultConfiguration,omitempty"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// sevToLevel maps internal severities onto SARIF result levels.
func sevToLevel(s scanner.Severity) string {
	switch s {
	case scanner.SeverityError:
		return "error"
	case scanner.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// SARIF renders issues as an indented SARIF 2.1.0 log, enumerating the full
// rule catalog in the driver so consumers can surface disabled rules too.
func SARIF(issues []scanner.Issue, toolName, toolVersion string) ([]byte, error) {
	rules := make([]sarifRule, 0)
	for _, meta := range scanner.Metadata() {
		rules = append(rules, sarifRule{
			ID:               meta.ID,
			ShortDescription: sarifMessage{Text: meta.Title},
			DefaultConfig:    &sarifDefaultConfig{Level: sevToLevel(meta.Severity)},
		})
	}

	results := make([]sarifResult, 0, len(issues))
	for _, is := range issues {
		uri := is.Position.Filename
		if uri == "" {
			uri = "UNKNOWN"
		}
		line := is.Position.Line
		if line <= 0 {
			line = 1
		}
		results = append(results, sarifResult{
			RuleID:  is.RuleID,
			Level:   sevToLevel(is.Severity),
			Message: sarifMessage{Text: is.Message},
			Locations: []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: uri},
					Region:           sarifRegion{StartLine: line, StartColumn: is.Position.Column},
				},
			}},
		})
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: sarifDriver{Name: toolName, Version: toolVersion, Rules: rules}},
			Results: results,
		}},
	}
	return json.MarshalIndent(log, "", "  ")
}
