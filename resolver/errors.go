package resolver

import (
	"fmt"
	"strings"
)

// ArchitectureNotFoundError reports a resolve call for an ID the
// registry does not contain. DidYouMean carries the closest registered
// IDs so callers can surface a suggestion.
type ArchitectureNotFoundError struct {
	ID         string
	DidYouMean []string
}

func (e *ArchitectureNotFoundError) Error() string {
	if len(e.DidYouMean) > 0 {
		return fmt.Sprintf("architecture not found: %s (did you mean %s?)",
			e.ID, strings.Join(e.DidYouMean, ", "))
	}
	return fmt.Sprintf("architecture not found: %s", e.ID)
}

// MixinNotFoundError reports a mixin reference the registry cannot
// satisfy. Arch is the architecture whose mixin list referenced it,
// or "" for an inline mixin.
type MixinNotFoundError struct {
	ID         string
	Arch       string
	DidYouMean []string
}

func (e *MixinNotFoundError) Error() string {
	msg := fmt.Sprintf("mixin not found: %s", e.ID)
	if e.Arch != "" {
		msg += fmt.Sprintf(" (referenced by %s)", e.Arch)
	}
	if len(e.DidYouMean) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.DidYouMean, ", "))
	}
	return msg
}

// CircularInheritanceError reports a cycle or an implausibly deep
// inheritance chain. Chain holds the IDs in walk order, ending at the
// node that closed the cycle or exceeded the bound.
type CircularInheritanceError struct {
	ID    string
	Chain []string
}

func (e *CircularInheritanceError) Error() string {
	return fmt.Sprintf("circular inheritance resolving %s: %s",
		e.ID, strings.Join(e.Chain, " -> "))
}
