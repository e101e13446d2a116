// Package rules implements the constraint validation engine: one pure
// validator per rule kind, dispatched through a lookup table, each
// producing violations with stable codes and deterministic wording.
//
// Validators are side-effect free. The only retained state is a
// compiled-pattern cache derived from constraint text. Severity and
// provenance are always copied from the resolved constraint.
package rules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// Validator evaluates one rule kind against one file.
type Validator interface {
	// Rule is the rule name constraints reference.
	Rule() string

	// Code is the stable violation code this rule owns.
	Code() string

	// Requires declares the language capabilities the rule needs. A
	// file whose adapter lacks them is skipped, not vacuously passed.
	Requires() semantic.Capabilities

	// Validate evaluates the constraint. It must be pure: same
	// constraint and context, same result.
	Validate(c *schema.Constraint, ctx *Context) Result
}

// UnknownRuleError reports a constraint naming a rule no validator
// handles.
type UnknownRuleError struct {
	Rule       string
	DidYouMean []string
}

func (e *UnknownRuleError) Error() string {
	if len(e.DidYouMean) > 0 {
		return fmt.Sprintf("unknown rule %q (did you mean %q?)", e.Rule, e.DidYouMean[0])
	}
	return fmt.Sprintf("unknown rule %q", e.Rule)
}

// Registry is the rule-name to validator lookup table. Adding a rule
// kind is a Register call, not a change to any central conditional.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// NewRegistry creates a registry with every built-in rule registered.
func NewRegistry() *Registry {
	r := &Registry{validators: make(map[string]Validator)}
	for _, v := range builtins() {
		// Built-in names are distinct by construction.
		r.validators[v.Rule()] = v
	}
	return r
}

// Register adds a validator. Re-registering a rule name is a wiring
// bug and fails loudly.
func (r *Registry) Register(v Validator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.validators[v.Rule()]; taken {
		return fmt.Errorf("rule %q already registered", v.Rule())
	}
	r.validators[v.Rule()] = v
	return nil
}

// Lookup returns the validator for a rule name.
func (r *Registry) Lookup(rule string) (Validator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.validators[rule]
	if !ok {
		return nil, &UnknownRuleError{Rule: rule, DidYouMean: r.closest(rule)}
	}
	return v, nil
}

// Rules returns all registered rule names, sorted.
func (r *Registry) Rules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// closest returns the registered rule closest to the unknown name.
// Caller holds at least a read lock.
func (r *Registry) closest(rule string) []string {
	best := ""
	bestDist := len(rule)/2 + 1
	for name := range r.validators {
		if d := editDistance(rule, name); d < bestDist {
			bestDist = d
			best = name
		}
	}
	if best == "" {
		return nil
	}
	return []string{best}
}

// builtins lists every built-in validator, one per rule kind.
func builtins() []Validator {
	return []Validator{
		&mustExtendValidator{},
		&mustImplementValidator{},
		&forbidInheritanceValidator{},
		&requireDecoratorValidator{},
		&forbidDecoratorValidator{},
		&namingPatternValidator{},
		&locationPatternValidator{},
		&requirePatternValidator{},
		&forbidPatternValidator{},
		&requireOneOfValidator{},
		&requireCoverageValidator{},
		&maxFileLinesValidator{},
		&maxLOCValidator{},
		&maxImportsValidator{},
		&maxExportsValidator{},
		&maxFunctionsValidator{},
		&requireImportValidator{},
		&forbidImportValidator{},
		&requireExportValidator{},
		&forbidCallValidator{},
		&forbidMutationValidator{},
		&distinctIdentifiersValidator{},
	}
}
