package rules

import (
	"fmt"

	"github.com/archlint/archlint/schema"
)

// Violation is one failed constraint evaluation against one file. The
// field set is the wire contract every presentation layer consumes;
// fields may be added but never renamed or removed.
type Violation struct {
	Code     string          `json:"code"`
	Rule     string          `json:"rule"`
	Value    string          `json:"value,omitempty"`
	Severity schema.Severity `json:"severity"`
	Line     int             `json:"line,omitempty"`
	Column   int             `json:"column,omitempty"`
	Message  string          `json:"message"`
	Why      string          `json:"why,omitempty"`
	FixHint  string          `json:"fix_hint,omitempty"`

	// Source is the architecture or mixin ID whose constraint failed.
	Source string `json:"source,omitempty"`

	Suggestion   string   `json:"suggestion,omitempty"`
	DidYouMean   []string `json:"did_you_mean,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// Error implements the error interface.
func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s: %s", v.Code, v.Rule, v.Message)
}

// Result is the outcome of evaluating one constraint against one file.
type Result struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"`
}

// pass is the zero-violation result.
func pass() Result {
	return Result{Passed: true}
}

// fail wraps violations into a failed result.
func fail(violations ...Violation) Result {
	return Result{Passed: false, Violations: violations}
}

// newViolation seeds a violation with everything copied verbatim from
// the resolved constraint: severity, provenance and rationale are the
// constraint's to decide, never the validator's.
func newViolation(code string, c *schema.Constraint, message string) Violation {
	return Violation{
		Code:     code,
		Rule:     c.Rule,
		Value:    c.Value,
		Severity: c.Severity,
		Message:  message,
		Why:      c.Why,
		Source:   c.Source,
	}
}
