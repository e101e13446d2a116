package schema

// Condition guards when a constraint applies to a file. All set fields
// must hold (conjunctive). The resolver passes conditions through
// unevaluated; only the orchestrator has the file context to evaluate them.
type Condition struct {
	// Path is a doublestar glob matched against the file path.
	Path string `json:"path,omitempty"`

	// Language matches the semantic model's language identifier.
	Language string `json:"language,omitempty"`

	// HasImport holds when the file imports the given path
	// (exact match or path-prefix).
	HasImport string `json:"has_import,omitempty"`

	// HasDecorator holds when any class or function in the file
	// carries the given decorator.
	HasDecorator string `json:"has_decorator,omitempty"`

	// Matches is a regex tested against the raw file content with
	// multiline and dot-all flags.
	Matches string `json:"matches,omitempty"`
}

// Empty reports whether the condition has no fields set.
func (c *Condition) Empty() bool {
	if c == nil {
		return true
	}
	return c.Path == "" && c.Language == "" && c.HasImport == "" &&
		c.HasDecorator == "" && c.Matches == ""
}

// Constraint is one rule instance attached to an architecture or mixin.
type Constraint struct {
	// Rule names the rule kind (must_extend, naming_pattern, ...).
	Rule string `json:"rule"`

	// Value is the rule's primary operand: a base class name, a glob,
	// a numeric limit, an import path, depending on the rule kind.
	Value string `json:"value,omitempty"`

	// Severity is copied onto every violation this constraint produces.
	Severity Severity `json:"severity"`

	// Why is the human rationale surfaced alongside violations.
	Why string `json:"why,omitempty"`

	// Source is the architecture or mixin ID that declared this
	// constraint. The resolver fills it during flattening; a value set
	// here is kept as-is.
	Source string `json:"source,omitempty"`

	// Pattern is the regex operand for pattern rules. When empty,
	// pattern rules fall back to Value.
	Pattern string `json:"pattern,omitempty"`

	// Patterns holds the alternatives for require_one_of.
	Patterns []string `json:"patterns,omitempty"`

	// Target selects what a structural rule applies to where both make
	// sense ("class" or "function"); empty means the rule default.
	Target string `json:"target,omitempty"`

	// Naming is the structured spec for naming_pattern.
	Naming *NamingSpec `json:"naming,omitempty"`

	// When applies the constraint only when the condition holds.
	When *Condition `json:"when,omitempty"`

	// Unless skips the constraint when the condition holds.
	Unless *Condition `json:"unless,omitempty"`

	// AppliesWhen is an alias form of When kept for registry data that
	// uses the older key; semantics are identical.
	AppliesWhen *Condition `json:"applies_when,omitempty"`
}

// EffectivePattern returns the regex operand for pattern rules:
// Pattern when set, otherwise Value.
func (c *Constraint) EffectivePattern() string {
	if c.Pattern != "" {
		return c.Pattern
	}
	return c.Value
}

// Clone returns a deep copy. The resolver hands out clones so a
// flattened architecture never aliases registry data.
func (c *Constraint) Clone() *Constraint {
	cp := *c
	if c.Patterns != nil {
		cp.Patterns = append([]string(nil), c.Patterns...)
	}
	if c.Naming != nil {
		n := *c.Naming
		cp.Naming = &n
	}
	if c.When != nil {
		w := *c.When
		cp.When = &w
	}
	if c.Unless != nil {
		u := *c.Unless
		cp.Unless = &u
	}
	if c.AppliesWhen != nil {
		a := *c.AppliesWhen
		cp.AppliesWhen = &a
	}
	return &cp
}
