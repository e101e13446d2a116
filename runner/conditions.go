package runner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// applies decides whether a constraint's when/unless/applies_when
// guards hold for this file. A malformed guard is an error, never a
// silent decision either way.
func applies(c *schema.Constraint, model *semantic.Model, path, content string) (bool, error) {
	for _, guard := range []*schema.Condition{c.When, c.AppliesWhen} {
		if guard.Empty() {
			continue
		}
		ok, err := conditionHolds(guard, model, path, content)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	if !c.Unless.Empty() {
		ok, err := conditionHolds(c.Unless, model, path, content)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}

	return true, nil
}

// conditionHolds evaluates one condition; all set fields must hold.
func conditionHolds(cond *schema.Condition, model *semantic.Model, path, content string) (bool, error) {
	if cond.Path != "" {
		if !doublestar.ValidatePattern(cond.Path) {
			return false, fmt.Errorf("invalid condition path glob %q", cond.Path)
		}
		ok, _ := doublestar.Match(cond.Path, strings.ReplaceAll(path, "\\", "/"))
		if !ok {
			return false, nil
		}
	}
	if cond.Language != "" && (model == nil || model.Language != cond.Language) {
		return false, nil
	}
	if cond.HasImport != "" && (model == nil || !model.HasImport(cond.HasImport)) {
		return false, nil
	}
	if cond.HasDecorator != "" && (model == nil || !model.HasDecorator(cond.HasDecorator)) {
		return false, nil
	}
	if cond.Matches != "" {
		re, err := regexp.Compile("(?ms)" + cond.Matches)
		if err != nil {
			return false, fmt.Errorf("invalid condition pattern %q: %w", cond.Matches, err)
		}
		if !re.MatchString(content) {
			return false, nil
		}
	}
	return true, nil
}
