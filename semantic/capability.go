package semantic

// Capabilities declares which language features an adapter's models can
// represent. Validators consult these flags, never language names: a
// rule that needs class inheritance is inapplicable (not vacuously
// satisfied) for a language without it.
type Capabilities struct {
	Inheritance bool `json:"inheritance"`
	Interfaces  bool `json:"interfaces"`
	Decorators  bool `json:"decorators"`
	Visibility  bool `json:"visibility"`
}

// Satisfies reports whether every capability required is present.
func (c Capabilities) Satisfies(required Capabilities) bool {
	if required.Inheritance && !c.Inheritance {
		return false
	}
	if required.Interfaces && !c.Interfaces {
		return false
	}
	if required.Decorators && !c.Decorators {
		return false
	}
	if required.Visibility && !c.Visibility {
		return false
	}
	return true
}
