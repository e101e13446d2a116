// Package runner orchestrates one file's validation: resolve the
// file's architecture, obtain its semantic model, evaluate every
// applicable constraint and partition the findings. The runner alone
// decides caller-visible policy; resolver and validators only report.
package runner

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/archlint/archlint/registry"
	"github.com/archlint/archlint/resolver"
	"github.com/archlint/archlint/rules"
	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// ErrUntagged marks a file with no architecture tag. Untagged files
// are reported through a separate channel, not validated here.
var ErrUntagged = errors.New("file has no architecture tag")

// FileInput is everything the runner needs for one file. Tag and
// override extraction happen in the external tag parser; the runner
// receives the results.
type FileInput struct {
	Path    string
	Content []byte

	// ArchID is the architecture the file is tagged with.
	ArchID string

	// InlineMixins are use-site extras from the tag; they apply to
	// this validation only.
	InlineMixins []string

	Overrides []Override

	// Intents are externally parsed file-level intent tags, merged
	// with the ones the adapter extracts.
	Intents []string
}

// Runner ties resolver, adapters and validators together.
type Runner struct {
	rules    *rules.Registry
	adapters *semantic.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithClock injects the time source used for override expiry. Tests
// pin it so results stay reproducible.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New creates a runner over the given rule and adapter registries.
func New(ruleRegistry *rules.Registry, adapters *semantic.Registry, opts ...Option) *Runner {
	r := &Runner{
		rules:    ruleRegistry,
		adapters: adapters,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates one file against its tagged architecture.
//
// Configuration failures (unknown architecture or mixin, circular
// inheritance) and adapter failures return an error: "could not check"
// is never conflated with "passed". Rule findings come back inside the
// Result, partitioned by the severity each constraint declared.
func (r *Runner) Run(ctx context.Context, file FileInput, reg *registry.Registry) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if file.ArchID == "" {
		return nil, ErrUntagged
	}

	flat, conflicts, err := resolver.Resolve(reg, file.ArchID, file.InlineMixins...)
	if err != nil {
		return nil, err
	}

	adapter, err := r.adapters.ForFile(file.Path)
	if err != nil {
		return nil, err
	}
	model, err := adapter.Parse(file.Path, file.Content)
	if err != nil {
		return nil, &semantic.ParseError{Path: file.Path, Err: err}
	}
	caps := adapter.Capabilities()
	content := string(file.Content)

	result := &Result{
		RunID:     runID(file.Path, file.ArchID, file.Content),
		FilePath:  file.Path,
		ArchID:    file.ArchID,
		Conflicts: conflicts,
	}

	validOverrides, flagged := checkOverrides(file.Overrides, r.now())
	for _, v := range flagged {
		result.partition(v)
	}

	for _, constraint := range flat.Constraints {
		validator, err := r.rules.Lookup(constraint.Rule)
		if err != nil {
			r.logger.Warn("skipping constraint with unknown rule",
				zap.String("rule", constraint.Rule),
				zap.String("source", constraint.Source),
				zap.String("file", file.Path))
			result.skip(constraint, SkipUnknownRule, err.Error())
			continue
		}

		if !caps.Satisfies(validator.Requires()) {
			result.skip(constraint, SkipCapability,
				"language "+model.Language+" lacks a capability this rule needs")
			continue
		}

		ok, err := applies(constraint, model, file.Path, content)
		if err != nil {
			r.logger.Warn("skipping constraint with malformed condition",
				zap.String("rule", constraint.Rule),
				zap.String("source", constraint.Source),
				zap.Error(err))
			result.skip(constraint, SkipInvalidCondition, err.Error())
			continue
		}
		if !ok {
			result.skip(constraint, SkipCondition, "")
			continue
		}

		evalCtx := rules.NewContext(file.Path, file.ArchID, model, content)
		evalCtx.Source = constraint.Source
		evalCtx.Intents = append(evalCtx.Intents, file.Intents...)

		outcome := validator.Validate(constraint, evalCtx)
		for _, v := range outcome.Violations {
			// Only the rule's own findings are suppressible. Configuration
			// faults (invalid patterns, specs, limits) carry a different
			// code and always surface: overrides suppress violations, they
			// do not absorb broken constraints.
			if v.Code == validator.Code() {
				if s := suppressor(validOverrides, v); s != nil {
					s.suppressed++
					continue
				}
			}
			result.partition(v)
		}
	}

	for _, s := range validOverrides {
		result.ActiveOverrides = append(result.ActiveOverrides, ActiveOverride{
			Rule:       s.override.Rule,
			Value:      s.override.Value,
			Reason:     s.override.Reason,
			Line:       s.override.Line,
			Suppressed: s.suppressed,
		})
	}

	result.Passed = len(result.Violations) == 0
	return result, nil
}

// partition files a violation into the severity bucket the constraint
// declared. Unknown severities count as errors rather than vanish.
func (res *Result) partition(v rules.Violation) {
	switch v.Severity {
	case schema.SeverityWarning:
		res.Warnings = append(res.Warnings, v)
	case schema.SeverityInfo:
		res.Infos = append(res.Infos, v)
	default:
		res.Violations = append(res.Violations, v)
	}
}

func (res *Result) skip(c *schema.Constraint, reason, detail string) {
	res.Skipped = append(res.Skipped, SkippedConstraint{
		Rule:   c.Rule,
		Value:  c.Value,
		Source: c.Source,
		Reason: reason,
		Detail: detail,
	})
}
