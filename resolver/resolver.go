// Package resolver flattens an architecture's inheritance chain and
// mixins into one ordered, conflict-checked set of effective
// constraints. Resolution is pure: for a fixed registry, resolving the
// same ID twice yields structurally identical results.
package resolver

import (
	"strings"

	"github.com/archlint/archlint/registry"
	"github.com/archlint/archlint/schema"
)

// maxInheritanceDepth bounds the root-ward walk. Chains deeper than
// this are treated as circular rather than walked forever.
const maxInheritanceDepth = 10

// maxSuggestions limits did-you-mean lists on not-found errors.
const maxSuggestions = 3

// Conflict reasons.
const (
	ConflictOverride = "override"          // leaf-closer declaration replaced the slot
	ConflictSeverity = "severity_mismatch" // same rule and value, different severity
)

// Conflict records a slot collision: Winner stayed in the effective
// set, Loser was displaced. The engine surfaces every collision rather
// than silently dropping the ancestor's version.
type Conflict struct {
	Rule   string             `json:"rule"`
	Slot   string             `json:"slot"`
	Reason string             `json:"reason"`
	Winner *schema.Constraint `json:"winner"`
	Loser  *schema.Constraint `json:"loser"`
}

// FlattenedArchitecture is the fully resolved view of one architecture.
// It is recomputed on demand and never mutated after being returned;
// all constraint entries are clones tagged with their originating
// architecture or mixin ID.
type FlattenedArchitecture struct {
	ID               string               `json:"id"`
	InheritanceChain []string             `json:"inheritance_chain"` // root -> leaf
	AppliedMixins    []string             `json:"applied_mixins"`
	Constraints      []*schema.Constraint `json:"constraints"`
	Hints            []schema.Hint        `json:"hints,omitempty"`
	Pointers         []string             `json:"pointers,omitempty"`
	Singleton        bool                 `json:"singleton,omitempty"`

	// DeprecatedIDs lists chain members and mixins flagged deprecated,
	// so callers can warn without re-walking the registry.
	DeprecatedIDs []string `json:"deprecated_ids,omitempty"`
}

// singletonSlotRules are rule kinds where at most one constraint per
// architecture makes sense, so two declarations collide regardless of
// operand (a child redeclaring max_file_lines replaces the parent's).
// For all other rules the operand is part of the slot and differing
// operands coexist.
var singletonSlotRules = map[string]bool{
	"must_extend":          true,
	"must_implement":       true,
	"forbid_inheritance":   true,
	"naming_pattern":       true,
	"location_pattern":     true,
	"require_coverage":     true,
	"require_export":       true,
	"forbid_mutation":      true,
	"max_file_lines":       true,
	"max_loc":              true,
	"max_imports":          true,
	"max_exports":          true,
	"max_functions":        true,
	"distinct_identifiers": true,
}

// slotKey identifies the merge slot a constraint occupies.
func slotKey(c *schema.Constraint) string {
	if singletonSlotRules[c.Rule] {
		return c.Rule
	}
	operand := c.EffectivePattern()
	if len(c.Patterns) > 0 {
		operand = strings.Join(c.Patterns, "|")
	}
	return c.Rule + "\x00" + operand
}

// sameContent reports whether two constraints are duplicates that can
// dedupe silently: same operands, same guards, same severity.
func sameContent(a, b *schema.Constraint) bool {
	if a.Value != b.Value || a.Pattern != b.Pattern || a.Severity != b.Severity ||
		a.Target != b.Target {
		return false
	}
	return samePatterns(a, b) && sameGuards(a, b)
}

// sameOperand reports whether two constraints target the same value,
// ignoring severity. Used to tell a severity mismatch from an override.
func sameOperand(a, b *schema.Constraint) bool {
	if a.Value != b.Value || a.Pattern != b.Pattern {
		return false
	}
	return samePatterns(a, b) && sameGuards(a, b)
}

func samePatterns(a, b *schema.Constraint) bool {
	if len(a.Patterns) != len(b.Patterns) {
		return false
	}
	for i := range a.Patterns {
		if a.Patterns[i] != b.Patterns[i] {
			return false
		}
	}
	return true
}

// sameGuards compares the parts of a constraint the slot key does not
// see. Two declarations with the same operand but different guards are
// not duplicates: the later one still wins the slot, but the displaced
// guard is surfaced as a conflict rather than dropped.
func sameGuards(a, b *schema.Constraint) bool {
	return condEqual(a.When, b.When) &&
		condEqual(a.Unless, b.Unless) &&
		condEqual(a.AppliesWhen, b.AppliesWhen) &&
		namingEqual(a.Naming, b.Naming)
}

func condEqual(a, b *schema.Condition) bool {
	if a.Empty() || b.Empty() {
		return a.Empty() == b.Empty()
	}
	return *a == *b
}

func namingEqual(a, b *schema.NamingSpec) bool {
	if a.Empty() || b.Empty() {
		return a.Empty() == b.Empty()
	}
	return *a == *b
}

// Resolve flattens archID against the registry. Inline mixins are
// appended to the leaf's mixin list for this call only; the registry
// is never mutated. The returned conflicts record every slot collision
// the merge resolved.
func Resolve(reg *registry.Registry, archID string, inlineMixins ...string) (*FlattenedArchitecture, []Conflict, error) {
	chain, err := inheritanceChain(reg, archID)
	if err != nil {
		return nil, nil, err
	}

	flat := &FlattenedArchitecture{
		ID:               archID,
		InheritanceChain: make([]string, 0, len(chain)),
	}

	var (
		effective []*schema.Constraint
		conflicts []Conflict
		slots     = make(map[string]int) // slot key -> index in effective
		seenMixin = make(map[string]bool)
		seenPtr   = make(map[string]bool)
	)

	merge := func(c *schema.Constraint, source string) {
		rc := c.Clone()
		rc.Source = source

		key := slotKey(rc)
		idx, taken := slots[key]
		if !taken {
			slots[key] = len(effective)
			effective = append(effective, rc)
			return
		}

		prev := effective[idx]
		if sameContent(prev, rc) {
			// Exact duplicate from another source; first wins, nothing lost.
			return
		}

		reason := ConflictOverride
		if sameOperand(prev, rc) {
			reason = ConflictSeverity
		}
		conflicts = append(conflicts, Conflict{
			Rule:   rc.Rule,
			Slot:   key,
			Reason: reason,
			Winner: rc,
			Loser:  prev,
		})
		effective[idx] = rc
	}

	applyMixin := func(id, arch string) error {
		m := reg.Mixin(id)
		if m == nil {
			return &MixinNotFoundError{
				ID:         id,
				Arch:       arch,
				DidYouMean: reg.SuggestMixins(id, maxSuggestions),
			}
		}
		if !seenMixin[id] {
			seenMixin[id] = true
			flat.AppliedMixins = append(flat.AppliedMixins, id)
		}
		if m.Deprecated {
			flat.DeprecatedIDs = appendUnique(flat.DeprecatedIDs, id)
		}
		for _, c := range m.Constraints {
			merge(c, id)
		}
		for _, h := range m.Hints {
			flat.Hints = append(flat.Hints, schema.Hint{Text: h.Text, Source: id})
		}
		for _, p := range m.Pointers {
			if !seenPtr[p] {
				seenPtr[p] = true
				flat.Pointers = append(flat.Pointers, p)
			}
		}
		return nil
	}

	leaf := chain[len(chain)-1]
	for _, node := range chain {
		flat.InheritanceChain = append(flat.InheritanceChain, node.ID)
		if node.Deprecated {
			flat.DeprecatedIDs = appendUnique(flat.DeprecatedIDs, node.ID)
		}
		if node.Singleton {
			flat.Singleton = true
		}

		for _, id := range node.Mixins {
			if err := applyMixin(id, node.ID); err != nil {
				return nil, nil, err
			}
		}
		if node == leaf {
			// Inline mixins come from the use-site tag, not from
			// registry data, so an unresolved one names no referencing
			// architecture.
			for _, id := range inlineMixins {
				if err := applyMixin(id, ""); err != nil {
					return nil, nil, err
				}
			}
		}

		for _, c := range node.Constraints {
			merge(c, node.ID)
		}
		if node.Naming != nil && !node.Naming.Empty() {
			merge(&schema.Constraint{
				Rule:     "naming_pattern",
				Severity: schema.SeverityError,
				Naming:   node.Naming,
				Why:      "architecture-level naming spec",
			}, node.ID)
		}
		for _, h := range node.Hints {
			flat.Hints = append(flat.Hints, schema.Hint{Text: h.Text, Source: node.ID})
		}
		for _, p := range node.Pointers {
			if !seenPtr[p] {
				seenPtr[p] = true
				flat.Pointers = append(flat.Pointers, p)
			}
		}
	}

	flat.Constraints = effective
	return flat, conflicts, nil
}

// inheritanceChain walks inherits edges root-ward from archID and
// returns the nodes ordered root -> leaf. A revisited node or a chain
// beyond maxInheritanceDepth fails instead of hanging or truncating.
func inheritanceChain(reg *registry.Registry, archID string) ([]*schema.ArchitectureNode, error) {
	node := reg.Architecture(archID)
	if node == nil {
		return nil, &ArchitectureNotFoundError{
			ID:         archID,
			DidYouMean: reg.SuggestArchitectures(archID, maxSuggestions),
		}
	}

	var (
		reversed []*schema.ArchitectureNode
		walked   []string
		visited  = make(map[string]bool)
	)
	for node != nil {
		if visited[node.ID] || len(reversed) >= maxInheritanceDepth {
			return nil, &CircularInheritanceError{
				ID:    archID,
				Chain: append(walked, node.ID),
			}
		}
		visited[node.ID] = true
		walked = append(walked, node.ID)
		reversed = append(reversed, node)

		if node.Inherits == "" {
			break
		}
		parent := reg.Architecture(node.Inherits)
		if parent == nil {
			return nil, &ArchitectureNotFoundError{
				ID:         node.Inherits,
				DidYouMean: reg.SuggestArchitectures(node.Inherits, maxSuggestions),
			}
		}
		node = parent
	}

	chain := make([]*schema.ArchitectureNode, len(reversed))
	for i, n := range reversed {
		chain[len(reversed)-1-i] = n
	}
	return chain, nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
