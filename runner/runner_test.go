package runner

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlint/archlint/registry"
	"github.com/archlint/archlint/resolver"
	"github.com/archlint/archlint/rules"
	"github.com/archlint/archlint/schema"
	"github.com/archlint/archlint/semantic"
)

// scriptAdapter is a deliberately small adapter over a toy class
// syntax, enough to exercise the orchestration paths.
type scriptAdapter struct {
	caps semantic.Capabilities
	err  error
}

var (
	classRe  = regexp.MustCompile(`(?m)^(export\s+)?class\s+(\w+)(?:\s+extends\s+(\w+))?`)
	importRe = regexp.MustCompile(`(?m)^import\b.*?from\s+['"]([^'"]+)['"]`)
)

func (a *scriptAdapter) Language() string     { return "typescript" }
func (a *scriptAdapter) Extensions() []string { return []string{".ts"} }

func (a *scriptAdapter) Capabilities() semantic.Capabilities { return a.caps }

func (a *scriptAdapter) Parse(path string, content []byte) (*semantic.Model, error) {
	if a.err != nil {
		return nil, a.err
	}
	src := string(content)
	m := &semantic.Model{
		Language:  "typescript",
		LineCount: strings.Count(src, "\n"),
	}
	for _, match := range classRe.FindAllStringSubmatch(src, -1) {
		cls := semantic.Class{Name: match[2], Exported: match[1] != ""}
		if match[3] != "" {
			cls.Extends = match[3]
			cls.InheritanceChain = []string{match[3]}
		}
		m.Classes = append(m.Classes, cls)
		if cls.Exported {
			m.Exports = append(m.Exports, cls.Name)
		}
	}
	for _, match := range importRe.FindAllStringSubmatch(src, -1) {
		m.Imports = append(m.Imports, semantic.Import{Path: match[1]})
	}
	return m, nil
}

func fullCaps() semantic.Capabilities {
	return semantic.Capabilities{Inheritance: true, Interfaces: true, Decorators: true}
}

func adapterRegistry(t *testing.T, a semantic.Adapter) *semantic.Registry {
	t.Helper()
	adapters := semantic.NewRegistry()
	require.NoError(t, adapters.Register(a))
	return adapters
}

// paymentRegistry models a small tree: svc at the root, svc.payment
// requiring the service base class.
func paymentRegistry() *registry.Registry {
	reg := registry.New()
	reg.AddArchitecture(&schema.ArchitectureNode{ID: "svc"})
	reg.AddArchitecture(&schema.ArchitectureNode{
		ID:       "svc.payment",
		Inherits: "svc",
		Constraints: []*schema.Constraint{
			{
				Rule:     "must_extend",
				Value:    "BaseService",
				Severity: schema.SeverityError,
				Why:      "services share the base lifecycle",
			},
		},
	})
	return reg
}

func TestRunFlagsMissingBaseClass(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService {}\n"),
		ArchID:  "svc.payment",
	}, paymentRegistry())
	require.NoError(t, err)

	assert.False(t, res.Passed)
	require.Len(t, res.Violations, 1)
	vio := res.Violations[0]
	assert.Equal(t, rules.CodeMustExtend, vio.Code)
	assert.Contains(t, vio.Message, "has no base class")
	assert.Equal(t, "services share the base lifecycle", vio.Why)
	assert.Equal(t, "svc.payment", vio.Source)
}

func TestRunPassesWhenBaseClassPresent(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService extends BaseService {}\n"),
		ArchID:  "svc.payment",
	}, paymentRegistry())
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Empty(t, res.Violations)
}

func TestRunUntaggedFile(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	_, err := r.Run(context.Background(), FileInput{
		Path:    "src/stray.ts",
		Content: []byte("export class Stray {}\n"),
	}, paymentRegistry())
	require.ErrorIs(t, err, ErrUntagged)
}

func TestRunUnknownArchitecture(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	_, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService {}\n"),
		ArchID:  "svc.paymnet",
	}, paymentRegistry())

	var notFound *resolver.ArchitectureNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "svc.paymnet", notFound.ID)
	assert.Contains(t, notFound.DidYouMean, "svc.payment")
}

func TestRunNoAdapterForExtension(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	_, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.py",
		Content: []byte("class PaymentService: pass\n"),
		ArchID:  "svc.payment",
	}, paymentRegistry())

	var noAdapter *semantic.NoAdapterError
	require.ErrorAs(t, err, &noAdapter)
	assert.Equal(t, ".py", noAdapter.Extension)
}

func TestRunParseFailureIsAnError(t *testing.T) {
	broken := &scriptAdapter{caps: fullCaps(), err: assert.AnError}
	r := New(rules.NewRegistry(), adapterRegistry(t, broken))

	_, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService {}\n"),
		ArchID:  "svc.payment",
	}, paymentRegistry())

	var parseErr *semantic.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.ErrorIs(t, err, assert.AnError)
}

func TestRunPartitionsBySeverity(t *testing.T) {
	reg := registry.New()
	reg.AddArchitecture(&schema.ArchitectureNode{
		ID: "svc.payment",
		Constraints: []*schema.Constraint{
			{Rule: "max_file_lines", Value: "1", Severity: schema.SeverityWarning},
			{Rule: "require_export", Value: "RefundService", Severity: schema.SeverityInfo},
		},
	})
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService {}\nconst x = 1\nconst y = 2\n"),
		ArchID:  "svc.payment",
	}, reg)
	require.NoError(t, err)

	assert.True(t, res.Passed, "warnings and infos never fail a file")
	assert.Empty(t, res.Violations)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, rules.CodeMaxFileLines, res.Warnings[0].Code)
	require.Len(t, res.Infos, 1)
	assert.Equal(t, rules.CodeRequireExport, res.Infos[0].Code)
}

func TestRunOverrideSuppresses(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService {}\n"),
		ArchID:  "svc.payment",
		Overrides: []Override{
			{Rule: "must_extend", Reason: "legacy class, migration tracked in JIRA-412", Line: 2},
		},
	}, paymentRegistry())
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Empty(t, res.Violations)
	require.Len(t, res.ActiveOverrides, 1)
	assert.Equal(t, 1, res.ActiveOverrides[0].Suppressed)
	assert.Equal(t, "legacy class, migration tracked in JIRA-412", res.ActiveOverrides[0].Reason)
}

func TestRunMalformedOverride(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService {}\n"),
		ArchID:  "svc.payment",
		Overrides: []Override{
			{Rule: "must_extend"}, // no reason
		},
	}, paymentRegistry())
	require.NoError(t, err)

	// The override is ignored: the violation stands and the override
	// itself is flagged.
	assert.False(t, res.Passed)
	require.Len(t, res.Violations, 1)
	assert.Empty(t, res.ActiveOverrides)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, rules.CodeMalformedOverride, res.Warnings[0].Code)
}

func TestRunOverrideNeverAbsorbsConfigFaults(t *testing.T) {
	reg := registry.New()
	reg.AddArchitecture(&schema.ArchitectureNode{
		ID: "svc.payment",
		Constraints: []*schema.Constraint{
			{Rule: "require_pattern", Pattern: "([unclosed", Severity: schema.SeverityError},
		},
	})
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService extends BaseService {}\n"),
		ArchID:  "svc.payment",
		Overrides: []Override{
			{Rule: "require_pattern", Reason: "pattern under discussion"},
		},
	}, reg)
	require.NoError(t, err)

	// The broken pattern is a configuration fault, not a rule finding;
	// the override must not make it vanish.
	assert.False(t, res.Passed)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, rules.CodeInvalidPattern, res.Violations[0].Code)
	require.Len(t, res.ActiveOverrides, 1)
	assert.Equal(t, 0, res.ActiveOverrides[0].Suppressed)
}

func TestRunExpiredOverride(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}),
		WithClock(func() time.Time { return frozen }))

	input := FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService {}\n"),
		ArchID:  "svc.payment",
		Overrides: []Override{
			{
				Rule:    "must_extend",
				Reason:  "grace period",
				Expires: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	res, err := r.Run(context.Background(), input, paymentRegistry())
	require.NoError(t, err)

	assert.False(t, res.Passed, "expired overrides must not suppress")
	require.Len(t, res.Violations, 1)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, rules.CodeExpiredOverride, res.Warnings[0].Code)
	assert.Contains(t, res.Warnings[0].Message, "2026-02-01")

	// Same override before the expiry suppresses normally.
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r = New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}),
		WithClock(func() time.Time { return earlier }))
	res, err = r.Run(context.Background(), input, paymentRegistry())
	require.NoError(t, err)
	assert.True(t, res.Passed)
	require.Len(t, res.ActiveOverrides, 1)
	assert.Equal(t, 1, res.ActiveOverrides[0].Suppressed)
}

func TestRunSkipsAreRecorded(t *testing.T) {
	reg := registry.New()
	reg.AddArchitecture(&schema.ArchitectureNode{
		ID: "svc.payment",
		Constraints: []*schema.Constraint{
			{Rule: "require_decorator", Value: "injectable", Severity: schema.SeverityError},
			{Rule: "must_follow_vibes", Severity: schema.SeverityError},
			{Rule: "max_file_lines", Value: "1000", Severity: schema.SeverityError,
				When: &schema.Condition{Path: "**/*.js"}},
			{Rule: "require_pattern", Value: "constructor", Severity: schema.SeverityError,
				When: &schema.Condition{Path: "src/[invalid"}},
		},
	})

	// This adapter's language has no decorators.
	caps := semantic.Capabilities{Inheritance: true, Interfaces: true}
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: caps}))

	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService extends BaseService {}\n"),
		ArchID:  "svc.payment",
	}, reg)
	require.NoError(t, err)

	assert.True(t, res.Passed)
	require.Len(t, res.Skipped, 4)

	byRule := make(map[string]SkippedConstraint)
	for _, s := range res.Skipped {
		byRule[s.Rule] = s
	}
	assert.Equal(t, SkipCapability, byRule["require_decorator"].Reason)
	assert.Equal(t, SkipUnknownRule, byRule["must_follow_vibes"].Reason)
	assert.Contains(t, byRule["must_follow_vibes"].Detail, "unknown rule")
	assert.Equal(t, SkipCondition, byRule["max_file_lines"].Reason)
	assert.Equal(t, SkipInvalidCondition, byRule["require_pattern"].Reason)
}

func TestRunConditionGuards(t *testing.T) {
	reg := registry.New()
	reg.AddArchitecture(&schema.ArchitectureNode{
		ID: "svc.payment",
		Constraints: []*schema.Constraint{
			{Rule: "forbid_import", Value: "app/infra", Severity: schema.SeverityError,
				When: &schema.Condition{Path: "src/services/**"}},
			{Rule: "require_export", Severity: schema.SeverityError,
				Unless: &schema.Condition{HasImport: "app/infra/db"}},
		},
	})
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	content := []byte("import { db } from 'app/infra/db'\nclass hidden {}\n")
	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: content,
		ArchID:  "svc.payment",
	}, reg)
	require.NoError(t, err)

	// forbid_import applies (path matches) and fires; require_export is
	// skipped because the unless guard holds.
	require.Len(t, res.Violations, 1)
	assert.Equal(t, rules.CodeForbidImport, res.Violations[0].Code)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "require_export", res.Skipped[0].Rule)
	assert.Equal(t, SkipCondition, res.Skipped[0].Reason)
}

func TestRunIDIsDeterministic(t *testing.T) {
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	input := FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService extends BaseService {}\n"),
		ArchID:  "svc.payment",
	}

	first, err := r.Run(context.Background(), input, paymentRegistry())
	require.NoError(t, err)
	second, err := r.Run(context.Background(), input, paymentRegistry())
	require.NoError(t, err)
	assert.Equal(t, first.RunID, second.RunID)

	changed := input
	changed.Content = []byte("export class PaymentService {}\n")
	third, err := r.Run(context.Background(), changed, paymentRegistry())
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, third.RunID)
}

func TestRunSurfacesResolverConflicts(t *testing.T) {
	reg := registry.New()
	reg.AddArchitecture(&schema.ArchitectureNode{
		ID: "svc",
		Constraints: []*schema.Constraint{
			{Rule: "max_file_lines", Value: "100", Severity: schema.SeverityError},
		},
	})
	reg.AddArchitecture(&schema.ArchitectureNode{
		ID:       "svc.payment",
		Inherits: "svc",
		Constraints: []*schema.Constraint{
			{Rule: "max_file_lines", Value: "50", Severity: schema.SeverityError},
		},
	})
	r := New(rules.NewRegistry(), adapterRegistry(t, &scriptAdapter{caps: fullCaps()}))

	res, err := r.Run(context.Background(), FileInput{
		Path:    "src/services/payment.ts",
		Content: []byte("export class PaymentService extends BaseService {}\n"),
		ArchID:  "svc.payment",
	}, reg)
	require.NoError(t, err)

	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "max_file_lines", res.Conflicts[0].Rule)
	assert.Equal(t, "svc.payment", res.Conflicts[0].Winner.Source)
	assert.Equal(t, "50", res.Conflicts[0].Winner.Value)
	assert.Equal(t, "svc", res.Conflicts[0].Loser.Source)
	assert.Equal(t, "100", res.Conflicts[0].Loser.Value)
}
