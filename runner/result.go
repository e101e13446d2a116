package runner

import (
	"time"

	"github.com/google/uuid"

	"github.com/archlint/archlint/resolver"
	"github.com/archlint/archlint/rules"
)

// Override is one in-file suppression annotation, already parsed by
// the external tag parser. A zero Expires means no expiry.
type Override struct {
	Rule    string    `json:"rule"`
	Value   string    `json:"value,omitempty"`
	Reason  string    `json:"reason"`
	Expires time.Time `json:"expires,omitempty"`
	Line    int       `json:"line,omitempty"`
}

// ActiveOverride reports a well-formed override that was in effect
// during a run. Overrides suppress violations but are never silent:
// every active one appears here.
type ActiveOverride struct {
	Rule   string `json:"rule"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
	Line   int    `json:"line,omitempty"`

	// Suppressed counts the violations this override absorbed.
	Suppressed int `json:"suppressed"`
}

// Skip reasons recorded on SkippedConstraint.
const (
	SkipCapability       = "capability"        // language lacks a required feature
	SkipCondition        = "condition"         // when/unless guard did not hold
	SkipUnknownRule      = "unknown_rule"      // no validator registered
	SkipInvalidCondition = "invalid_condition" // guard itself malformed
)

// SkippedConstraint records a constraint the runner did not evaluate
// and why. Skips are surfaced so "not applicable" never reads as
// "checked and passed".
type SkippedConstraint struct {
	Rule   string `json:"rule"`
	Value  string `json:"value,omitempty"`
	Source string `json:"source,omitempty"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// Result is the outcome of validating one file. For identical file
// content and registry state the result is identical, run to run.
type Result struct {
	// RunID is a deterministic UUID derived from path, architecture
	// and content, so identical inputs produce identical results.
	RunID string `json:"run_id"`

	FilePath string `json:"file_path"`
	ArchID   string `json:"arch_id"`

	// Passed is true when no error-severity violations remain after
	// override suppression.
	Passed bool `json:"passed"`

	Violations []rules.Violation `json:"violations,omitempty"`
	Warnings   []rules.Violation `json:"warnings,omitempty"`
	Infos      []rules.Violation `json:"infos,omitempty"`

	ActiveOverrides []ActiveOverride    `json:"active_overrides,omitempty"`
	Skipped         []SkippedConstraint `json:"skipped,omitempty"`

	// Conflicts carries the resolver's slot-collision records for the
	// architecture this file is tagged with.
	Conflicts []resolver.Conflict `json:"conflicts,omitempty"`
}

// runIDNamespace seeds the deterministic run ID.
var runIDNamespace = uuid.MustParse("9f2c1f3a-7c45-5e0b-9d4e-2a8f6b1c0d73")

// runID derives a stable UUID (v5) from the validation inputs.
func runID(path, archID string, content []byte) string {
	seed := make([]byte, 0, len(path)+len(archID)+len(content)+2)
	seed = append(seed, path...)
	seed = append(seed, 0)
	seed = append(seed, archID...)
	seed = append(seed, 0)
	seed = append(seed, content...)
	return uuid.NewSHA1(runIDNamespace, seed).String()
}
