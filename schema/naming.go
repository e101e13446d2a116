package schema

// NameCase identifies a filename casing convention.
type NameCase string

const (
	CasePascal NameCase = "PascalCase"
	CaseCamel  NameCase = "camelCase"
	CaseSnake  NameCase = "snake_case"
	CaseUpper  NameCase = "UPPER_CASE"
	CaseKebab  NameCase = "kebab-case"
)

// casePatterns maps each casing convention to its regex fragment.
// Fragments are unanchored; the naming validator anchors the
// assembled pattern start-to-end.
var casePatterns = map[NameCase]string{
	CasePascal: `[A-Z][a-zA-Z0-9]*`,
	CaseCamel:  `[a-z][a-zA-Z0-9]*`,
	CaseSnake:  `[a-z][a-z0-9]*(?:_[a-z0-9]+)*`,
	CaseUpper:  `[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)*`,
	CaseKebab:  `[a-z][a-z0-9]*(?:-[a-z0-9]+)*`,
}

// Pattern returns the regex fragment for the case, or "" if unknown.
func (c NameCase) Pattern() string {
	return casePatterns[c]
}

// Valid reports whether c names a known casing convention.
func (c NameCase) Valid() bool {
	_, ok := casePatterns[c]
	return ok
}

// NamingSpec is the structured form of a naming_pattern constraint:
// literal prefix + case pattern + literal suffix + literal extension,
// each part optional but at least one must be set.
type NamingSpec struct {
	Case      NameCase `json:"case,omitempty"`
	Prefix    string   `json:"prefix,omitempty"`
	Suffix    string   `json:"suffix,omitempty"`
	Extension string   `json:"extension,omitempty"`
}

// Empty reports whether no field of the spec is set. An empty spec is
// a configuration error, distinct from a filename that fails to match.
func (n *NamingSpec) Empty() bool {
	if n == nil {
		return true
	}
	return n.Case == "" && n.Prefix == "" && n.Suffix == "" && n.Extension == ""
}
