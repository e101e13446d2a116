package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// requirePatternValidator requires the constraint's pattern to match
// the file content at least once. Patterns compile with multiline and
// dot-all flags: line anchors match per line, `.` crosses newlines.
type requirePatternValidator struct{}

func (v *requirePatternValidator) Rule() string                    { return "require_pattern" }
func (v *requirePatternValidator) Code() string                    { return CodeRequirePattern }
func (v *requirePatternValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *requirePatternValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	re, bad := contentPattern(c)
	if bad != nil {
		return fail(*bad)
	}
	if re.MatchString(ctx.Content) {
		return pass()
	}
	vio := newViolation(CodeRequirePattern, c,
		fmt.Sprintf("required pattern %q not found in file", c.EffectivePattern()))
	vio.FixHint = fmt.Sprintf("add content matching %q", c.EffectivePattern())
	return fail(vio)
}

// forbidPatternValidator rejects any match of the constraint's pattern
// in the file content, reporting the line of the first match.
type forbidPatternValidator struct{}

func (v *forbidPatternValidator) Rule() string                    { return "forbid_pattern" }
func (v *forbidPatternValidator) Code() string                    { return CodeForbidPattern }
func (v *forbidPatternValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *forbidPatternValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	re, bad := contentPattern(c)
	if bad != nil {
		return fail(*bad)
	}
	loc := re.FindStringIndex(ctx.Content)
	if loc == nil {
		return pass()
	}
	vio := newViolation(CodeForbidPattern, c,
		fmt.Sprintf("forbidden pattern %q found in file", c.EffectivePattern()))
	vio.Line = lineOfOffset(ctx.Content, loc[0])
	vio.FixHint = fmt.Sprintf("remove the content matching %q", c.EffectivePattern())
	return fail(vio)
}

// contentPattern compiles the constraint's pattern operand. An invalid
// pattern is its own violation, never a silent pass.
func contentPattern(c *schema.Constraint) (*regexp.Regexp, *Violation) {
	pattern := c.EffectivePattern()
	re, err := compileContentPattern(pattern)
	if err != nil {
		vio := newViolation(CodeInvalidPattern, c,
			fmt.Sprintf("invalid pattern %q: %v", pattern, err))
		vio.FixHint = "fix the pattern in the registry"
		return nil, &vio
	}
	return re, nil
}

// lineOfOffset converts a byte offset into a 1-based line number.
func lineOfOffset(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

// requireOneOfValidator passes when any alternative is satisfied.
// Alternatives dispatch by shape:
//
//	@intent:name  — file-level or function-level intent tag
//	@xxx          — tag inside a comment, matched case-insensitively
//	/…/           — regex with multiline and dot-all flags
//	anything else — literal substring of the file content
//
// On failure the message enumerates every alternative checked, and the
// fix hint prefers an @-prefixed opt-out alternative if one exists.
type requireOneOfValidator struct{}

func (v *requireOneOfValidator) Rule() string                    { return "require_one_of" }
func (v *requireOneOfValidator) Code() string                    { return CodeRequireOneOf }
func (v *requireOneOfValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *requireOneOfValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	alternatives := c.Patterns
	if len(alternatives) == 0 && c.Value != "" {
		alternatives = []string{c.Value}
	}
	if len(alternatives) == 0 {
		vio := newViolation(CodeInvalidPattern, c,
			"require_one_of constraint has no alternatives")
		vio.FixHint = "list at least one alternative on the constraint"
		return fail(vio)
	}

	for _, alt := range alternatives {
		ok, bad := matchAlternative(alt, c, ctx)
		if bad != nil {
			return fail(*bad)
		}
		if ok {
			return pass()
		}
	}

	vio := newViolation(CodeRequireOneOf, c,
		fmt.Sprintf("none of the required alternatives found: %s", strings.Join(alternatives, ", ")))
	vio.Alternatives = append([]string(nil), alternatives...)
	vio.FixHint = oneOfFixHint(alternatives)
	return fail(vio)
}

func matchAlternative(alt string, c *schema.Constraint, ctx *Context) (bool, *Violation) {
	switch {
	case strings.HasPrefix(alt, "@intent:"):
		return ctx.HasIntent(strings.TrimPrefix(alt, "@intent:")), nil

	case strings.HasPrefix(alt, "@"):
		return commentTagPresent(ctx.Content, alt), nil

	case len(alt) > 1 && strings.HasPrefix(alt, "/") && strings.HasSuffix(alt, "/"):
		re, err := compileContentPattern(alt[1 : len(alt)-1])
		if err != nil {
			vio := newViolation(CodeInvalidPattern, c,
				fmt.Sprintf("invalid alternative pattern %q: %v", alt, err))
			return false, &vio
		}
		return re.MatchString(ctx.Content), nil

	default:
		return strings.Contains(ctx.Content, alt), nil
	}
}

// commentTagPresent looks for the tag on a commented line,
// case-insensitively. A lexical scan over comment markers is all the
// engine has; adapters do not surface comments in the model.
func commentTagPresent(content, tag string) bool {
	re, err := compileCached(`(?im)(//|#|/\*|\*|--|<!--)[^\n]*` + regexp.QuoteMeta(tag))
	if err != nil {
		return false
	}
	return re.MatchString(content)
}

func oneOfFixHint(alternatives []string) string {
	for _, alt := range alternatives {
		if strings.HasPrefix(alt, "@") {
			return fmt.Sprintf("add a %s annotation to opt out, or satisfy one of the other alternatives", alt)
		}
	}
	return fmt.Sprintf("satisfy one of: %s", strings.Join(alternatives, ", "))
}

// requireCoverageValidator requires the file to declare its covering
// test via a @tested-by annotation. This is the mechanical half of
// coverage checking; measuring actual test execution is external.
type requireCoverageValidator struct{}

func (v *requireCoverageValidator) Rule() string                    { return "require_coverage" }
func (v *requireCoverageValidator) Code() string                    { return CodeRequireCoverage }
func (v *requireCoverageValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

var testedByRe = regexp.MustCompile(`(?im)@tested-by[:\s]+\S+`)

func (v *requireCoverageValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	if testedByRe.MatchString(ctx.Content) {
		return pass()
	}
	vio := newViolation(CodeRequireCoverage, c,
		"file does not declare a covering test (@tested-by annotation missing)")
	vio.FixHint = "add a comment like: @tested-by path/to/the_test_file"
	return fail(vio)
}
