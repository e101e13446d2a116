// Package semantic defines the language-neutral structural summary of
// one source file and the capability-tagged registry of per-language
// adapters that produce it. The rule engine depends only on this shape;
// parsing internals (tree-sitter grammars, go/ast walks) live in the
// adapters.
package semantic

// Import is one import/include/require statement.
type Import struct {
	Path  string `json:"path"`
	Alias string `json:"alias,omitempty"`
	Line  int    `json:"line,omitempty"`
}

// Class is one class-like declaration.
type Class struct {
	Name     string `json:"name"`
	Exported bool   `json:"exported"`

	// Extends is the direct base, generic parameters included as
	// written ("Repository<User>").
	Extends string `json:"extends,omitempty"`

	// InheritanceChain lists resolved ancestors nearest-first, when
	// the adapter can resolve them. Empty does not mean "no base":
	// check Extends.
	InheritanceChain []string `json:"inheritance_chain,omitempty"`

	Implements []string `json:"implements,omitempty"`
	Decorators []string `json:"decorators,omitempty"`
	Line       int      `json:"line,omitempty"`
}

// Interface is one interface-like declaration.
type Interface struct {
	Name     string   `json:"name"`
	Exported bool     `json:"exported"`
	Extends  []string `json:"extends,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// Function is one function or method declaration.
type Function struct {
	Name       string   `json:"name"`
	Exported   bool     `json:"exported"`
	Decorators []string `json:"decorators,omitempty"`

	// Intents are semantic tags declared on the function
	// ("@intent:soft-delete" yields "soft-delete").
	Intents []string `json:"intents,omitempty"`
	Line    int      `json:"line,omitempty"`
}

// Call is one recorded function call site.
type Call struct {
	// Name is the qualified callee as written ("db.Exec", "eval").
	Name string `json:"name"`
	Line int    `json:"line,omitempty"`
}

// Mutation is one recorded write to shared state (package-level
// variable, global, module attribute).
type Mutation struct {
	Target string `json:"target"`
	Line   int    `json:"line,omitempty"`
}

// Model is the structural summary of one file. It is read-only input
// to the rule engine: validators never modify it, and one Model may be
// shared across many constraint evaluations of the same file.
type Model struct {
	FilePath string `json:"file_path"`
	Language string `json:"language"`

	// LineCount is raw lines; LOCCount excludes blanks and comments.
	LineCount int `json:"line_count"`
	LOCCount  int `json:"loc_count"`

	Imports       []Import    `json:"imports,omitempty"`
	Classes       []Class     `json:"classes,omitempty"`
	Interfaces    []Interface `json:"interfaces,omitempty"`
	Functions     []Function  `json:"functions,omitempty"`
	FunctionCalls []Call      `json:"function_calls,omitempty"`
	Mutations     []Mutation  `json:"mutations,omitempty"`
	Exports       []string    `json:"exports,omitempty"`

	// Intents are file-level semantic tags.
	Intents []string `json:"intents,omitempty"`
}

// HasImport reports whether the model imports path exactly or under it
// as a path prefix ("lodash" matches "lodash/fp").
func (m *Model) HasImport(path string) bool {
	for _, imp := range m.Imports {
		if imp.Path == path {
			return true
		}
		if len(imp.Path) > len(path) && imp.Path[:len(path)] == path && imp.Path[len(path)] == '/' {
			return true
		}
	}
	return false
}

// HasDecorator reports whether any class or function carries the
// decorator name.
func (m *Model) HasDecorator(name string) bool {
	for _, c := range m.Classes {
		for _, d := range c.Decorators {
			if d == name {
				return true
			}
		}
	}
	for _, f := range m.Functions {
		for _, d := range f.Decorators {
			if d == name {
				return true
			}
		}
	}
	return false
}

// HasIntent reports whether the intent is declared at file level or on
// any function.
func (m *Model) HasIntent(name string) bool {
	for _, in := range m.Intents {
		if in == name {
			return true
		}
	}
	for _, f := range m.Functions {
		for _, in := range f.Intents {
			if in == name {
				return true
			}
		}
	}
	return false
}
