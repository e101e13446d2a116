package rules

import (
	"fmt"
	"strings"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// baseName strips generic parameters from a type reference:
// "Repository<User>" and "Repository[User]" both reduce to "Repository".
func baseName(ref string) string {
	if i := strings.IndexAny(ref, "<["); i >= 0 {
		ref = ref[:i]
	}
	return strings.TrimSpace(ref)
}

// mustExtendValidator checks that every exported class reaches the
// required base, directly or through its resolved inheritance chain.
// "No base at all" and "wrong base" are distinct findings.
type mustExtendValidator struct{}

func (v *mustExtendValidator) Rule() string { return "must_extend" }
func (v *mustExtendValidator) Code() string { return CodeMustExtend }
func (v *mustExtendValidator) Requires() semantic.Capabilities {
	return semantic.Capabilities{Inheritance: true}
}

func (v *mustExtendValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	required := baseName(c.Value)
	var violations []Violation

	for _, cls := range ctx.Model.Classes {
		if !cls.Exported {
			continue
		}

		if cls.Extends == "" && len(cls.InheritanceChain) == 0 {
			vio := newViolation(CodeMustExtend, c,
				fmt.Sprintf("class %s has no base class, must extend %s", cls.Name, required))
			vio.Line = cls.Line
			vio.FixHint = fmt.Sprintf("declare the class as extending %s", required)
			vio.Suggestion = fmt.Sprintf("class %s extends %s", cls.Name, required)
			violations = append(violations, vio)
			continue
		}

		if v.reaches(&cls, required) {
			continue
		}

		vio := newViolation(CodeMustExtend, c,
			fmt.Sprintf("class %s extends %s, expected %s", cls.Name, baseName(cls.Extends), required))
		vio.Line = cls.Line
		vio.FixHint = fmt.Sprintf("change the base class to %s or insert %s into the hierarchy", required, required)
		violations = append(violations, vio)
	}

	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}

// reaches reports whether the class reaches required directly or via
// its resolved ancestor chain.
func (v *mustExtendValidator) reaches(cls *semantic.Class, required string) bool {
	if baseName(cls.Extends) == required {
		return true
	}
	for _, anc := range cls.InheritanceChain {
		if baseName(anc) == required {
			return true
		}
	}
	return false
}

// mustImplementValidator checks that every exported class implements
// the required interface.
type mustImplementValidator struct{}

func (v *mustImplementValidator) Rule() string { return "must_implement" }
func (v *mustImplementValidator) Code() string { return CodeMustImplement }
func (v *mustImplementValidator) Requires() semantic.Capabilities {
	return semantic.Capabilities{Interfaces: true}
}

func (v *mustImplementValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	required := baseName(c.Value)
	var violations []Violation

	for _, cls := range ctx.Model.Classes {
		if !cls.Exported {
			continue
		}
		implemented := false
		for _, iface := range cls.Implements {
			if baseName(iface) == required {
				implemented = true
				break
			}
		}
		if implemented {
			continue
		}
		vio := newViolation(CodeMustImplement, c,
			fmt.Sprintf("class %s does not implement %s", cls.Name, required))
		vio.Line = cls.Line
		vio.FixHint = fmt.Sprintf("implement the %s interface", required)
		violations = append(violations, vio)
	}

	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}

// forbidInheritanceValidator rejects exported classes that extend
// anything, or a specific base when the constraint value names one.
type forbidInheritanceValidator struct{}

func (v *forbidInheritanceValidator) Rule() string { return "forbid_inheritance" }
func (v *forbidInheritanceValidator) Code() string { return CodeForbidInheritance }
func (v *forbidInheritanceValidator) Requires() semantic.Capabilities {
	return semantic.Capabilities{Inheritance: true}
}

func (v *forbidInheritanceValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	forbidden := baseName(c.Value)
	var violations []Violation

	for _, cls := range ctx.Model.Classes {
		if !cls.Exported || cls.Extends == "" {
			continue
		}
		base := baseName(cls.Extends)
		if forbidden != "" && base != forbidden && !chainContains(cls.InheritanceChain, forbidden) {
			continue
		}

		var msg string
		if forbidden == "" {
			msg = fmt.Sprintf("class %s extends %s, inheritance is not allowed here", cls.Name, base)
		} else {
			msg = fmt.Sprintf("class %s must not extend %s", cls.Name, forbidden)
		}
		vio := newViolation(CodeForbidInheritance, c, msg)
		vio.Line = cls.Line
		vio.FixHint = "compose the behavior instead of inheriting it"
		violations = append(violations, vio)
	}

	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}

func chainContains(chain []string, name string) bool {
	for _, anc := range chain {
		if baseName(anc) == name {
			return true
		}
	}
	return false
}

// requireDecoratorValidator checks that exported classes (or exported
// functions when Target is "function") carry the decorator named by
// the constraint value.
type requireDecoratorValidator struct{}

func (v *requireDecoratorValidator) Rule() string { return "require_decorator" }
func (v *requireDecoratorValidator) Code() string { return CodeRequireDecorator }
func (v *requireDecoratorValidator) Requires() semantic.Capabilities {
	return semantic.Capabilities{Decorators: true}
}

func (v *requireDecoratorValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	name := strings.TrimPrefix(c.Value, "@")
	var violations []Violation

	if c.Target == "function" {
		for _, fn := range ctx.Model.Functions {
			if !fn.Exported || hasDecorator(fn.Decorators, name) {
				continue
			}
			vio := newViolation(CodeRequireDecorator, c,
				fmt.Sprintf("function %s is missing the @%s decorator", fn.Name, name))
			vio.Line = fn.Line
			vio.FixHint = fmt.Sprintf("decorate %s with @%s", fn.Name, name)
			violations = append(violations, vio)
		}
	} else {
		for _, cls := range ctx.Model.Classes {
			if !cls.Exported || hasDecorator(cls.Decorators, name) {
				continue
			}
			vio := newViolation(CodeRequireDecorator, c,
				fmt.Sprintf("class %s is missing the @%s decorator", cls.Name, name))
			vio.Line = cls.Line
			vio.FixHint = fmt.Sprintf("decorate %s with @%s", cls.Name, name)
			violations = append(violations, vio)
		}
	}

	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}

// forbidDecoratorValidator rejects the decorator named by the
// constraint value wherever it appears.
type forbidDecoratorValidator struct{}

func (v *forbidDecoratorValidator) Rule() string { return "forbid_decorator" }
func (v *forbidDecoratorValidator) Code() string { return CodeForbidDecorator }
func (v *forbidDecoratorValidator) Requires() semantic.Capabilities {
	return semantic.Capabilities{Decorators: true}
}

func (v *forbidDecoratorValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	name := strings.TrimPrefix(c.Value, "@")
	var violations []Violation

	for _, cls := range ctx.Model.Classes {
		if hasDecorator(cls.Decorators, name) {
			vio := newViolation(CodeForbidDecorator, c,
				fmt.Sprintf("class %s uses the forbidden @%s decorator", cls.Name, name))
			vio.Line = cls.Line
			vio.FixHint = fmt.Sprintf("remove @%s from %s", name, cls.Name)
			violations = append(violations, vio)
		}
	}
	for _, fn := range ctx.Model.Functions {
		if hasDecorator(fn.Decorators, name) {
			vio := newViolation(CodeForbidDecorator, c,
				fmt.Sprintf("function %s uses the forbidden @%s decorator", fn.Name, name))
			vio.Line = fn.Line
			vio.FixHint = fmt.Sprintf("remove @%s from %s", name, fn.Name)
			violations = append(violations, vio)
		}
	}

	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}

func hasDecorator(decorators []string, name string) bool {
	for _, d := range decorators {
		if strings.TrimPrefix(d, "@") == name {
			return true
		}
	}
	return false
}
