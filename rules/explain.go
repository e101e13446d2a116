package rules

// Explanation is the code-level documentation for a violation code:
// what the rule guards and the usual way out. It is static per code,
// unlike a violation's Message and FixHint which are specific to one
// finding.
type Explanation struct {
	Summary string
	Remedy  string
}

// Explain returns the documentation for a violation code.
func Explain(code string) (Explanation, bool) {
	e, ok := explanations[code]
	return e, ok
}

var explanations = map[string]Explanation{
	CodeMustExtend: {
		Summary: "every exported class in this role must descend from the required base class",
		Remedy:  "extend the base class directly, or through an intermediate class that does",
	},
	CodeMustImplement: {
		Summary: "every exported class in this role must implement the required interface",
		Remedy:  "add the interface to the class's implements list and satisfy its members",
	},
	CodeForbidInheritance: {
		Summary: "classes in this role must not inherit, or must not inherit the named base",
		Remedy:  "prefer composition: hold the collaborator as a field instead of extending it",
	},
	CodeRequireDecorator: {
		Summary: "declarations in this role must carry the required decorator",
		Remedy:  "add the decorator; it is how the framework discovers this role",
	},
	CodeForbidDecorator: {
		Summary: "the named decorator is not allowed in this role",
		Remedy:  "remove the decorator or move the declaration to a role that permits it",
	},
	CodeNamingPattern: {
		Summary: "file names in this role follow a fixed shape",
		Remedy:  "rename the file to match the role's naming convention",
	},
	CodeLocationPattern: {
		Summary: "files in this role live under a fixed path",
		Remedy:  "move the file to the directory the role prescribes",
	},
	CodeRequirePattern: {
		Summary: "files in this role must contain the required content",
		Remedy:  "add the missing construct; the rule's fix hint names it",
	},
	CodeForbidPattern: {
		Summary: "the matched content is not allowed in this role",
		Remedy:  "remove or relocate the flagged content",
	},
	CodeRequireOneOf: {
		Summary: "files in this role must satisfy at least one of the listed alternatives",
		Remedy:  "implement one alternative, or opt out with the role's annotation if one exists",
	},
	CodeRequireCoverage: {
		Summary: "files in this role must declare where their tests live",
		Remedy:  "add a @tested-by annotation pointing at the covering test file",
	},
	CodeMaxFileLines: {
		Summary: "files in this role have a line budget",
		Remedy:  "split the file along its responsibilities",
	},
	CodeMaxLOC: {
		Summary: "files in this role have a code-line budget; blanks and comments are free",
		Remedy:  "split the file along its responsibilities",
	},
	CodeMaxImports: {
		Summary: "files in this role have an import budget",
		Remedy:  "reduce the dependency surface, often by extracting a collaborator",
	},
	CodeMaxExports: {
		Summary: "files in this role have an export budget",
		Remedy:  "move secondary exports into their own files",
	},
	CodeMaxFunctions: {
		Summary: "files in this role have a function-count budget",
		Remedy:  "split the file along its responsibilities",
	},
	CodeRequireImport: {
		Summary: "files in this role must import the named module",
		Remedy:  "add the import; the role depends on it by contract",
	},
	CodeForbidImport: {
		Summary: "files in this role must not depend on the named module or anything under it",
		Remedy:  "route the dependency through the layer that owns it",
	},
	CodeRequireExport: {
		Summary: "files in this role must export the named symbol",
		Remedy:  "export the symbol; it is the role's public surface",
	},
	CodeForbidCall: {
		Summary: "the named call is reserved for another layer",
		Remedy:  "call through the owning layer's interface instead",
	},
	CodeForbidMutation: {
		Summary: "this role is side-effect free; shared state must not be written here",
		Remedy:  "pass state explicitly and return the new value",
	},
	CodeDistinctIdentifiers: {
		Summary: "exported names in one file must be clearly distinct from each other",
		Remedy:  "rename one of the pair to state its distinct purpose, or merge the duplication",
	},
	CodeInvalidPattern: {
		Summary: "the constraint's pattern does not compile; the rule could not run",
		Remedy:  "fix the pattern in the architecture registry",
	},
	CodeInvalidNamingSpec: {
		Summary: "the constraint's naming spec is empty or names an unknown case style",
		Remedy:  "fix the naming spec in the architecture registry",
	},
	CodeInvalidLimit: {
		Summary: "the constraint's limit is not a positive integer; the rule could not run",
		Remedy:  "fix the limit value in the architecture registry",
	},
	CodeMalformedOverride: {
		Summary: "an override annotation is missing its rule or reason and was ignored",
		Remedy:  `write the override as: @override <rule> reason="..."`,
	},
	CodeExpiredOverride: {
		Summary: "an override annotation is past its expiry and was ignored",
		Remedy:  "re-justify the override with a new expiry, or fix the violation",
	},
}
