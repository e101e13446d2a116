package rules

// Stable violation codes, one per rule kind. External tooling keys on
// these; never renumber.
//
// A001-A099: structural rules
// A101-A199: naming and location rules
// A201-A299: content rules
// A301-A399: size-limit rules
// A401-A499: dependency and shape rules
// A501-A599: similarity rules
// A801-A899: configuration faults surfaced as violations
// A901-A999: override faults
const (
	CodeMustExtend          = "A001"
	CodeMustImplement       = "A002"
	CodeForbidInheritance   = "A003"
	CodeRequireDecorator    = "A004"
	CodeForbidDecorator     = "A005"
	CodeNamingPattern       = "A101"
	CodeLocationPattern     = "A102"
	CodeRequirePattern      = "A201"
	CodeForbidPattern       = "A202"
	CodeRequireOneOf        = "A203"
	CodeRequireCoverage     = "A204"
	CodeMaxFileLines        = "A301"
	CodeMaxLOC              = "A302"
	CodeMaxImports          = "A303"
	CodeMaxExports          = "A304"
	CodeMaxFunctions        = "A305"
	CodeRequireImport       = "A401"
	CodeForbidImport        = "A402"
	CodeRequireExport       = "A403"
	CodeForbidCall          = "A404"
	CodeForbidMutation      = "A405"
	CodeDistinctIdentifiers = "A501"

	CodeInvalidPattern    = "A801"
	CodeInvalidNamingSpec = "A802"
	CodeInvalidLimit      = "A803"

	CodeMalformedOverride = "A901"
	CodeExpiredOverride   = "A902"
)
