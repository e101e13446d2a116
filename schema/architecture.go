// Package schema defines the data model for architectural rule bundles:
// architectures, mixins, constraints and the conditions and naming specs
// they carry. Registry loading and file tagging live outside this module;
// schema types are the shape that external loaders produce.
package schema

// Hint is soft, non-mechanical guidance attached to an architecture.
// Hints are carried through resolution for downstream advisory layers
// and are never evaluated by the rule engine.
type Hint struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// ArchitectureNode is one named architectural role: an inheritable
// bundle of constraints, hints and documentation pointers.
//
// The inherits relation forms a tree: at most one parent, no cycles.
// The resolver enforces both.
type ArchitectureNode struct {
	// ID is the hierarchical dotted identifier ("svc.payment").
	ID string `json:"id"`

	Description string `json:"description,omitempty"`
	Rationale   string `json:"rationale,omitempty"`

	// Inherits names the single parent architecture, if any.
	Inherits string `json:"inherits,omitempty"`

	// Mixins are applied in declaration order, before the node's own
	// constraints.
	Mixins []string `json:"mixins,omitempty"`

	Constraints []*Constraint `json:"constraints,omitempty"`
	Hints       []Hint        `json:"hints,omitempty"`

	// Pointers are documentation references (URLs, file paths).
	Pointers []string `json:"pointers,omitempty"`

	// Naming, when set, is shorthand for a naming_pattern constraint
	// declared at architecture level.
	Naming *NamingSpec `json:"naming,omitempty"`

	Version    string `json:"version,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`

	// Singleton marks a role only one file in a repository may
	// implement. Enforcement is cross-file and belongs to the batch
	// layer; the flag is carried through resolution.
	Singleton bool `json:"singleton,omitempty"`
}

// Mixin is a non-inheriting, reusable constraint bundle. Mixins do not
// recurse: they have no parents and no nested mixins, and combine only
// at use-site via an architecture's mixin list or inline mixins.
type Mixin struct {
	ID          string        `json:"id"`
	Description string        `json:"description,omitempty"`
	Rationale   string        `json:"rationale,omitempty"`
	Constraints []*Constraint `json:"constraints,omitempty"`
	Hints       []Hint        `json:"hints,omitempty"`
	Pointers    []string      `json:"pointers,omitempty"`
	Version     string        `json:"version,omitempty"`
	Deprecated  bool          `json:"deprecated,omitempty"`
}
