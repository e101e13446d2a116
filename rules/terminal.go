package rules

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/archlint/archlint/schema"
)

// FormatOptions configures terminal rendering of violations.
type FormatOptions struct {
	NoColor bool

	// Explain appends the code-level documentation after the
	// finding-specific lines.
	Explain bool
}

// FormatForTerminal renders a violation for terminal output.
//
// Example:
//
//	error A001 must_extend: class PaymentService has no base class, must extend BaseService
//	  --> src/payment.ts:12  (from svc.payment)
//	  why: services share transaction handling through the base class
//	  fix: declare the class as extending BaseService
func (v Violation) FormatForTerminal(opts FormatOptions) string {
	header := severityColor(v.Severity)
	dim := color.New(color.Faint)
	if opts.NoColor {
		header.DisableColor()
		dim.DisableColor()
	}

	var b strings.Builder
	header.Fprintf(&b, "%s %s %s", v.Severity, v.Code, v.Rule)
	fmt.Fprintf(&b, ": %s\n", v.Message)

	location := v.locationLine()
	if location != "" {
		fmt.Fprintf(&b, "  --> %s", location)
		if v.Source != "" {
			dim.Fprintf(&b, "  (from %s)", v.Source)
		}
		b.WriteString("\n")
	}
	if v.Why != "" {
		dim.Fprintf(&b, "  why: %s\n", v.Why)
	}
	if v.FixHint != "" {
		fmt.Fprintf(&b, "  fix: %s\n", v.FixHint)
	}
	if v.Suggestion != "" {
		fmt.Fprintf(&b, "  suggestion: %s\n", v.Suggestion)
	}
	if len(v.DidYouMean) > 0 {
		fmt.Fprintf(&b, "  did you mean: %s?\n", strings.Join(v.DidYouMean, ", "))
	}
	if len(v.Alternatives) > 0 {
		fmt.Fprintf(&b, "  alternatives checked: %s\n", strings.Join(v.Alternatives, ", "))
	}
	if opts.Explain {
		if e, ok := Explain(v.Code); ok {
			dim.Fprintf(&b, "  = %s: %s\n", v.Code, e.Summary)
			dim.Fprintf(&b, "    %s\n", e.Remedy)
		}
	}
	return b.String()
}

func (v Violation) locationLine() string {
	switch {
	case v.Line > 0 && v.Column > 0:
		return fmt.Sprintf("line %d:%d", v.Line, v.Column)
	case v.Line > 0:
		return fmt.Sprintf("line %d", v.Line)
	default:
		return ""
	}
}

func severityColor(s schema.Severity) *color.Color {
	switch s {
	case schema.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case schema.SeverityWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan, color.Bold)
	}
}
