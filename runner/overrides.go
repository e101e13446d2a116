package runner

import (
	"fmt"
	"time"

	"github.com/archlint/archlint/rules"
	"github.com/archlint/archlint/schema"
)

// overrideState is one override after validity checking.
type overrideState struct {
	override   Override
	suppressed int
}

// checkOverrides splits overrides into usable suppressors and
// violations for the malformed or expired ones. Invalid overrides are
// flagged, never silently honored.
func checkOverrides(overrides []Override, now time.Time) ([]*overrideState, []rules.Violation) {
	var (
		valid   []*overrideState
		flagged []rules.Violation
	)
	for _, o := range overrides {
		switch {
		case o.Rule == "" || o.Reason == "":
			flagged = append(flagged, rules.Violation{
				Code:     rules.CodeMalformedOverride,
				Rule:     o.Rule,
				Value:    o.Value,
				Severity: schema.SeverityWarning,
				Line:     o.Line,
				Message:  "override is missing a rule or a reason and was ignored",
				FixHint:  `write the override as: @override <rule> reason="..."`,
			})
		case !o.Expires.IsZero() && !o.Expires.After(now):
			flagged = append(flagged, rules.Violation{
				Code:     rules.CodeExpiredOverride,
				Rule:     o.Rule,
				Value:    o.Value,
				Severity: schema.SeverityWarning,
				Line:     o.Line,
				Message: fmt.Sprintf("override of %s expired on %s and was ignored",
					o.Rule, o.Expires.Format("2006-01-02")),
				FixHint: "re-justify the override with a new expiry, or fix the violation",
			})
		default:
			valid = append(valid, &overrideState{override: o})
		}
	}
	return valid, flagged
}

// suppressor returns the override covering a violation: rule must
// match, and the override's value, when set, must match the
// constraint's value.
func suppressor(valid []*overrideState, v rules.Violation) *overrideState {
	for _, s := range valid {
		if s.override.Rule != v.Rule {
			continue
		}
		if s.override.Value != "" && s.override.Value != v.Value {
			continue
		}
		return s
	}
	return nil
}
