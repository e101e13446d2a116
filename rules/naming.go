package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// namingPatternValidator checks the file name against either a raw
// pattern (constraint value) or a structured naming spec. A spec with
// no field set is a configuration fault, reported distinctly from a
// file name that merely fails to match.
type namingPatternValidator struct{}

func (v *namingPatternValidator) Rule() string                    { return "naming_pattern" }
func (v *namingPatternValidator) Code() string                    { return CodeNamingPattern }
func (v *namingPatternValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *namingPatternValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	if c.Naming != nil {
		return v.validateSpec(c, ctx)
	}

	pattern := c.EffectivePattern()
	if pattern == "" {
		vio := newViolation(CodeInvalidNamingSpec, c,
			"naming_pattern constraint has neither a pattern nor a naming spec")
		vio.FixHint = "set a pattern value or a naming spec on the constraint"
		return fail(vio)
	}

	re, err := compileCached("^(?:" + pattern + ")$")
	if err != nil {
		vio := newViolation(CodeInvalidPattern, c,
			fmt.Sprintf("invalid naming pattern %q: %v", pattern, err))
		vio.FixHint = "fix the pattern in the registry"
		return fail(vio)
	}

	if re.MatchString(ctx.FileName) {
		return pass()
	}
	vio := newViolation(CodeNamingPattern, c,
		fmt.Sprintf("file name %q does not match pattern %q", ctx.FileName, pattern))
	vio.FixHint = fmt.Sprintf("rename the file to match %q", pattern)
	return fail(vio)
}

func (v *namingPatternValidator) validateSpec(c *schema.Constraint, ctx *Context) Result {
	spec := c.Naming
	if spec.Empty() {
		vio := newViolation(CodeInvalidNamingSpec, c,
			"naming spec has no case, prefix, suffix or extension set")
		vio.FixHint = "set at least one field on the naming spec"
		return fail(vio)
	}
	if spec.Case != "" && !spec.Case.Valid() {
		vio := newViolation(CodeInvalidNamingSpec, c,
			fmt.Sprintf("unknown naming case %q", spec.Case))
		vio.FixHint = "use PascalCase, camelCase, snake_case, UPPER_CASE or kebab-case"
		return fail(vio)
	}

	// Literal prefix + case pattern + literal suffix + literal
	// extension, anchored start-to-end.
	var b strings.Builder
	b.WriteString("^")
	b.WriteString(regexp.QuoteMeta(spec.Prefix))
	if spec.Case != "" {
		b.WriteString(spec.Case.Pattern())
	}
	b.WriteString(regexp.QuoteMeta(spec.Suffix))
	b.WriteString(regexp.QuoteMeta(spec.Extension))
	b.WriteString("$")

	re, err := compileCached(b.String())
	if err != nil {
		vio := newViolation(CodeInvalidNamingSpec, c,
			fmt.Sprintf("naming spec does not compile: %v", err))
		return fail(vio)
	}

	if re.MatchString(ctx.FileName) {
		return pass()
	}
	vio := newViolation(CodeNamingPattern, c,
		fmt.Sprintf("file name %q does not match the naming spec (%s)", ctx.FileName, describeSpec(spec)))
	vio.FixHint = fmt.Sprintf("rename the file to match: %s", describeSpec(spec))
	return fail(vio)
}

func describeSpec(spec *schema.NamingSpec) string {
	var parts []string
	if spec.Case != "" {
		parts = append(parts, string(spec.Case))
	}
	if spec.Prefix != "" {
		parts = append(parts, fmt.Sprintf("prefix %q", spec.Prefix))
	}
	if spec.Suffix != "" {
		parts = append(parts, fmt.Sprintf("suffix %q", spec.Suffix))
	}
	if spec.Extension != "" {
		parts = append(parts, fmt.Sprintf("extension %q", spec.Extension))
	}
	return strings.Join(parts, ", ")
}

// locationPatternValidator checks the file path against a doublestar
// glob ("internal/**/repository/*.go").
type locationPatternValidator struct{}

func (v *locationPatternValidator) Rule() string                    { return "location_pattern" }
func (v *locationPatternValidator) Code() string                    { return CodeLocationPattern }
func (v *locationPatternValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *locationPatternValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	pattern := c.EffectivePattern()
	if !doublestar.ValidatePattern(pattern) {
		vio := newViolation(CodeInvalidPattern, c,
			fmt.Sprintf("invalid location glob %q", pattern))
		vio.FixHint = "fix the glob in the registry"
		return fail(vio)
	}

	path := strings.ReplaceAll(ctx.FilePath, "\\", "/")
	ok, _ := doublestar.Match(pattern, path)
	if ok {
		return pass()
	}
	vio := newViolation(CodeLocationPattern, c,
		fmt.Sprintf("file %s is outside the allowed location %q", ctx.FilePath, pattern))
	vio.FixHint = fmt.Sprintf("move the file under a path matching %q", pattern)
	return fail(vio)
}
