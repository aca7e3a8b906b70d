package scanner

// Severity indicates how severe a finding is.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Position indicates where in source a finding occurred.
type Position struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column,omitempty"`
}

// Issue is a single hardcoded-secret finding, normalized across the Go
// extraction analyzers and the config-file scanner.
type Issue struct {
	RuleID     string   `json:"ruleId"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	Position   Position `json:"position"`
	Suggestion string   `json:"suggestion,omitempty"`
}
