package schema

// Severity is the weight a constraint carries when it fails.
// It is declared in registry data and copied verbatim onto every
// violation the constraint produces; validators never change it.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is one of the known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}
