package rules

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/agext/levenshtein"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// editDistance is the shared levenshtein helper for similarity checks
// and did-you-mean lookups.
func editDistance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}

// distinctIdentifiersValidator flags pairs of exported identifiers
// whose names are within a small edit distance of each other. Near-
// identical names in one file usually mean a copy-paste split that
// should have been a parameter.
//
// The constraint value is the maximum edit distance treated as "too
// similar"; it defaults to 2 when unset.
type distinctIdentifiersValidator struct{}

func (v *distinctIdentifiersValidator) Rule() string { return "distinct_identifiers" }
func (v *distinctIdentifiersValidator) Code() string { return CodeDistinctIdentifiers }
func (v *distinctIdentifiersValidator) Requires() semantic.Capabilities {
	return semantic.Capabilities{}
}

func (v *distinctIdentifiersValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	threshold := 2
	if c.Value != "" {
		n, err := strconv.Atoi(c.Value)
		if err != nil || n <= 0 {
			vio := newViolation(CodeInvalidLimit, c,
				fmt.Sprintf("distinct_identifiers requires a positive integer distance, got %q", c.Value))
			vio.FixHint = "set the constraint value to a positive integer edit distance"
			return fail(vio)
		}
		threshold = n
	}

	names := exportedNames(ctx.Model)
	sort.Strings(names)

	var violations []Violation
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a, b := names[i], names[j]
			if a == b {
				continue
			}
			// Short names collide trivially; only compare names long
			// enough for the distance to mean anything.
			if len(a) <= threshold+1 || len(b) <= threshold+1 {
				continue
			}
			if editDistance(a, b) > threshold {
				continue
			}
			vio := newViolation(CodeDistinctIdentifiers, c,
				fmt.Sprintf("exported names %q and %q differ by %d edit(s)", a, b, editDistance(a, b)))
			vio.FixHint = "rename one of them to state its distinct purpose, or merge the duplicated logic"
			violations = append(violations, vio)
		}
	}

	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}

func exportedNames(m *semantic.Model) []string {
	var names []string
	for _, cls := range m.Classes {
		if cls.Exported {
			names = append(names, cls.Name)
		}
	}
	for _, fn := range m.Functions {
		if fn.Exported {
			names = append(names, fn.Name)
		}
	}
	for _, iface := range m.Interfaces {
		if iface.Exported {
			names = append(names, iface.Name)
		}
	}
	return names
}
