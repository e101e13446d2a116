package rules

import (
	"fmt"
	"strings"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// requireImportValidator requires the file to import the constraint
// value, exactly or as a path prefix.
type requireImportValidator struct{}

func (v *requireImportValidator) Rule() string                    { return "require_import" }
func (v *requireImportValidator) Code() string                    { return CodeRequireImport }
func (v *requireImportValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *requireImportValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	if ctx.Model.HasImport(c.Value) {
		return pass()
	}
	vio := newViolation(CodeRequireImport, c,
		fmt.Sprintf("required import %q not found", c.Value))
	vio.FixHint = fmt.Sprintf("import %q", c.Value)
	return fail(vio)
}

// forbidImportValidator rejects imports of the constraint value,
// exactly or under it as a path prefix.
type forbidImportValidator struct{}

func (v *forbidImportValidator) Rule() string                    { return "forbid_import" }
func (v *forbidImportValidator) Code() string                    { return CodeForbidImport }
func (v *forbidImportValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *forbidImportValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	var violations []Violation
	for _, imp := range ctx.Model.Imports {
		if imp.Path != c.Value && !strings.HasPrefix(imp.Path, c.Value+"/") {
			continue
		}
		vio := newViolation(CodeForbidImport, c,
			fmt.Sprintf("forbidden import %q", imp.Path))
		vio.Line = imp.Line
		vio.FixHint = fmt.Sprintf("remove the import of %q; this layer must not depend on it", imp.Path)
		violations = append(violations, vio)
	}
	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}

// requireExportValidator requires the file to export the named symbol,
// or at least one symbol when the constraint value is empty.
type requireExportValidator struct{}

func (v *requireExportValidator) Rule() string                    { return "require_export" }
func (v *requireExportValidator) Code() string                    { return CodeRequireExport }
func (v *requireExportValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *requireExportValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	if c.Value == "" {
		if len(ctx.Model.Exports) > 0 {
			return pass()
		}
		vio := newViolation(CodeRequireExport, c, "file exports nothing")
		vio.FixHint = "export the file's public surface"
		return fail(vio)
	}

	for _, exp := range ctx.Model.Exports {
		if exp == c.Value {
			return pass()
		}
	}
	vio := newViolation(CodeRequireExport, c,
		fmt.Sprintf("required export %q not found", c.Value))
	vio.FixHint = fmt.Sprintf("export %q from this file", c.Value)
	return fail(vio)
}

// forbidCallValidator rejects calls to the qualified name in the
// constraint value ("db.Exec", "eval").
type forbidCallValidator struct{}

func (v *forbidCallValidator) Rule() string                    { return "forbid_call" }
func (v *forbidCallValidator) Code() string                    { return CodeForbidCall }
func (v *forbidCallValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *forbidCallValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	var violations []Violation
	for _, call := range ctx.Model.FunctionCalls {
		if call.Name != c.Value {
			continue
		}
		vio := newViolation(CodeForbidCall, c,
			fmt.Sprintf("call to %s is not allowed here", call.Name))
		vio.Line = call.Line
		vio.FixHint = fmt.Sprintf("route this through the layer that owns %s", call.Name)
		violations = append(violations, vio)
	}
	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}

// forbidMutationValidator rejects writes to shared state recorded in
// the model.
type forbidMutationValidator struct{}

func (v *forbidMutationValidator) Rule() string                    { return "forbid_mutation" }
func (v *forbidMutationValidator) Code() string                    { return CodeForbidMutation }
func (v *forbidMutationValidator) Requires() semantic.Capabilities { return semantic.Capabilities{} }

func (v *forbidMutationValidator) Validate(c *schema.Constraint, ctx *Context) Result {
	var violations []Violation
	for _, mut := range ctx.Model.Mutations {
		if c.Value != "" && mut.Target != c.Value {
			continue
		}
		vio := newViolation(CodeForbidMutation, c,
			fmt.Sprintf("mutation of shared state %q", mut.Target))
		vio.Line = mut.Line
		vio.FixHint = "keep this role side-effect free; pass state explicitly"
		violations = append(violations, vio)
	}
	if len(violations) > 0 {
		return fail(violations...)
	}
	return pass()
}
