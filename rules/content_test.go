package rules

import (
	"strings"
	"testing"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

func contentCtx(content string) *Context {
	return NewContext("src/file.ts", "svc.test", &semantic.Model{}, content)
}

func TestRequirePattern(t *testing.T) {
	v := &requirePatternValidator{}
	constraint := &schema.Constraint{
		Rule:     "require_pattern",
		Pattern:  `export\s+default`,
		Severity: schema.SeverityError,
	}

	if res := v.Validate(constraint, contentCtx("export default class Foo {}")); !res.Passed {
		t.Errorf("matching content should pass: %+v", res.Violations)
	}

	res := v.Validate(constraint, contentCtx("module.exports = Foo"))
	if res.Passed || res.Violations[0].Code != CodeRequirePattern {
		t.Fatalf("missing pattern must fail with %s, got %+v", CodeRequirePattern, res)
	}
}

func TestRequirePatternFallsBackToValue(t *testing.T) {
	v := &requirePatternValidator{}
	constraint := &schema.Constraint{
		Rule:     "require_pattern",
		Value:    "isDeleted",
		Severity: schema.SeverityError,
	}

	if res := v.Validate(constraint, contentCtx("if (row.isDeleted) return")); !res.Passed {
		t.Errorf("value fallback should be used as the pattern: %+v", res.Violations)
	}
}

func TestForbidPattern(t *testing.T) {
	v := &forbidPatternValidator{}
	constraint := &schema.Constraint{
		Rule:     "forbid_pattern",
		Pattern:  `console\.log`,
		Severity: schema.SeverityWarning,
	}

	if res := v.Validate(constraint, contentCtx("logger.info('x')")); !res.Passed {
		t.Errorf("clean content should pass: %+v", res.Violations)
	}

	res := v.Validate(constraint, contentCtx("const a = 1\nconst b = 2\nconsole.log(a)\n"))
	if res.Passed {
		t.Fatal("forbidden pattern must fail on any match")
	}
	if res.Violations[0].Line != 3 {
		t.Errorf("line = %d, want 3 (line of first match)", res.Violations[0].Line)
	}
}

func TestPatternFlagSemantics(t *testing.T) {
	content := "first line\nsecond line\nthird line\n"

	// ^ anchors to any line start, not only the file start.
	anchored := &schema.Constraint{Rule: "require_pattern", Pattern: "^second", Severity: schema.SeverityError}
	if res := (&requirePatternValidator{}).Validate(anchored, contentCtx(content)); !res.Passed {
		t.Errorf("^-anchored pattern should match a later line: %+v", res.Violations)
	}

	// . crosses a literal newline.
	spanning := &schema.Constraint{Rule: "require_pattern", Pattern: "line.second", Severity: schema.SeverityError}
	if res := (&requirePatternValidator{}).Validate(spanning, contentCtx(content)); !res.Passed {
		t.Errorf(". should match across newlines: %+v", res.Violations)
	}
}

func TestInvalidPatternIsOwnViolation(t *testing.T) {
	for _, v := range []Validator{&requirePatternValidator{}, &forbidPatternValidator{}} {
		constraint := &schema.Constraint{
			Rule:     v.Rule(),
			Pattern:  `([unclosed`,
			Severity: schema.SeverityError,
		}
		res := v.Validate(constraint, contentCtx("anything"))
		if res.Passed {
			t.Fatalf("%s: invalid pattern must never pass silently", v.Rule())
		}
		if res.Violations[0].Code != CodeInvalidPattern {
			t.Errorf("%s: code = %s, want %s", v.Rule(), res.Violations[0].Code, CodeInvalidPattern)
		}
	}
}

func TestRequireOneOf(t *testing.T) {
	v := &requireOneOfValidator{}
	constraint := &schema.Constraint{
		Rule:     "require_one_of",
		Patterns: []string{"isDeleted", "@no-soft-delete"},
		Severity: schema.SeverityError,
	}

	// Literal substring alternative.
	if res := v.Validate(constraint, contentCtx("where({ isDeleted: false })")); !res.Passed {
		t.Errorf("literal alternative should satisfy: %+v", res.Violations)
	}

	// Comment-tag alternative, case-insensitive.
	if res := v.Validate(constraint, contentCtx("// @No-Soft-Delete: lookup table\nselect()")); !res.Passed {
		t.Errorf("comment tag should satisfy case-insensitively: %+v", res.Violations)
	}

	// Neither: the message enumerates every alternative.
	res := v.Validate(constraint, contentCtx("select().from(users)"))
	if res.Passed {
		t.Fatal("content with no alternative must fail")
	}
	vio := res.Violations[0]
	if !strings.Contains(vio.Message, "isDeleted") || !strings.Contains(vio.Message, "@no-soft-delete") {
		t.Errorf("message must list both alternatives: %s", vio.Message)
	}
	if len(vio.Alternatives) != 2 {
		t.Errorf("Alternatives = %v, want both", vio.Alternatives)
	}
	// The fix hint prefers the @-prefixed opt-out.
	if !strings.Contains(vio.FixHint, "@no-soft-delete") {
		t.Errorf("fix hint should suggest the opt-out annotation: %s", vio.FixHint)
	}
}

func TestRequireOneOfIntent(t *testing.T) {
	v := &requireOneOfValidator{}
	constraint := &schema.Constraint{
		Rule:     "require_one_of",
		Patterns: []string{"@intent:soft-delete"},
		Severity: schema.SeverityError,
	}

	fileLevel := NewContext("src/repo.ts", "svc.test",
		&semantic.Model{Intents: []string{"soft-delete"}}, "")
	if res := v.Validate(constraint, fileLevel); !res.Passed {
		t.Errorf("file-level intent should satisfy: %+v", res.Violations)
	}

	funcLevel := NewContext("src/repo.ts", "svc.test",
		&semantic.Model{Functions: []semantic.Function{{Name: "remove", Intents: []string{"soft-delete"}}}}, "")
	if res := v.Validate(constraint, funcLevel); !res.Passed {
		t.Errorf("function-level intent should satisfy: %+v", res.Violations)
	}

	if res := v.Validate(constraint, contentCtx("no intents here")); res.Passed {
		t.Error("missing intent must fail")
	}
}

func TestRequireOneOfRegexAlternative(t *testing.T) {
	v := &requireOneOfValidator{}
	constraint := &schema.Constraint{
		Rule:     "require_one_of",
		Patterns: []string{`/^import .*audit/`},
		Severity: schema.SeverityError,
	}

	if res := v.Validate(constraint, contentCtx("const x = 1\nimport { log } from 'audit'\n")); !res.Passed {
		t.Errorf("regex alternative should match with multiline flags: %+v", res.Violations)
	}
	if res := v.Validate(constraint, contentCtx("nothing")); res.Passed {
		t.Error("unmatched regex alternative must fail")
	}
}

func TestRequireOneOfNoAlternativesIsConfigFault(t *testing.T) {
	v := &requireOneOfValidator{}
	constraint := &schema.Constraint{Rule: "require_one_of", Severity: schema.SeverityError}

	res := v.Validate(constraint, contentCtx("anything"))
	if res.Passed || res.Violations[0].Code != CodeInvalidPattern {
		t.Fatalf("empty alternative list is a config fault, got %+v", res)
	}
}

func TestRequireCoverage(t *testing.T) {
	v := &requireCoverageValidator{}
	constraint := &schema.Constraint{Rule: "require_coverage", Severity: schema.SeverityWarning}

	if res := v.Validate(constraint, contentCtx("// @tested-by tests/payment_test.ts\ncode()")); !res.Passed {
		t.Errorf("declared covering test should pass: %+v", res.Violations)
	}

	res := v.Validate(constraint, contentCtx("code()"))
	if res.Passed || res.Violations[0].Code != CodeRequireCoverage {
		t.Fatalf("missing @tested-by must fail with %s, got %+v", CodeRequireCoverage, res)
	}
}
