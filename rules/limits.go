package rules

import (
	"fmt"
	"strconv"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// parseLimit reads the numeric operand of a size-limit rule. A value
// that is not a positive integer is a configuration fault.
func parseLimit(c *schema.Constraint) (int, *Violation) {
	n, err := strconv.Atoi(c.Value)
	if err != nil || n <= 0 {
		vio := newViolation(CodeInvalidLimit, c,
			fmt.Sprintf("%s requires a positive integer value, got %q", c.Rule, c.Value))
		vio.FixHint = "set the constraint value to a positive integer"
		return 0, &vio
	}
	return n, nil
}

// checkLimit produces the uniform over-limit violation all size rules
// share.
func checkLimit(code string, c *schema.Constraint, actual int, unit, hint string) Result {
	limit, bad := parseLimit(c)
	if bad != nil {
		return fail(*bad)
	}
	if actual <= limit {
		return pass()
	}
	vio := newViolation(code, c,
		fmt.Sprintf("file has %d %s, limit is %d", actual, unit, limit))
	vio.FixHint = hint
	return fail(vio)
}

type maxFileLinesValidator struct{}

func (v *maxFileLinesValidator) Rule() string                    { return "max_file_lines" }
func (v *maxFileLinesValidator) Code() string                    { return CodeMaxFileLines }
func (v *maxFileLinesValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *maxFileLinesValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	return checkLimit(CodeMaxFileLines, c, ctx.Model.LineCount, "lines",
		"split the file along its responsibilities")
}

type maxLOCValidator struct{}

func (v *maxLOCValidator) Rule() string                    { return "max_loc" }
func (v *maxLOCValidator) Code() string                    { return CodeMaxLOC }
func (v *maxLOCValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *maxLOCValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	return checkLimit(CodeMaxLOC, c, ctx.Model.LOCCount, "lines of code",
		"split the file along its responsibilities")
}

type maxImportsValidator struct{}

func (v *maxImportsValidator) Rule() string                    { return "max_imports" }
func (v *maxImportsValidator) Code() string                    { return CodeMaxImports }
func (v *maxImportsValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *maxImportsValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	return checkLimit(CodeMaxImports, c, len(ctx.Model.Imports), "imports",
		"reduce the file's dependency surface")
}

type maxExportsValidator struct{}

func (v *maxExportsValidator) Rule() string                    { return "max_exports" }
func (v *maxExportsValidator) Code() string                    { return CodeMaxExports }
func (v *maxExportsValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *maxExportsValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	return checkLimit(CodeMaxExports, c, len(ctx.Model.Exports), "exports",
		"move secondary exports into their own files")
}

type maxFunctionsValidator struct{}

func (v *maxFunctionsValidator) Rule() string                    { return "max_functions" }
func (v *maxFunctionsValidator) Code() string                    { return CodeMaxFunctions }
func (v *maxFunctionsValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *maxFunctionsValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	return checkLimit(CodeMaxFunctions, c, len(ctx.Model.Functions), "functions",
		"split the file along its responsibilities")
}
