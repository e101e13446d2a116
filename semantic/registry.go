package semantic

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Adapter turns file content into a Model for one language. Adapters
// must be safe for concurrent Parse calls and must not retain the
// content slice.
type Adapter interface {
	// Language is the identifier recorded on produced models ("go",
	// "typescript", "python").
	Language() string

	// Extensions lists the file extensions this adapter handles,
	// dot included (".ts", ".tsx").
	Extensions() []string

	// Capabilities declares which structural features the language has.
	Capabilities() Capabilities

	// Parse produces the structural summary of one file. A non-nil
	// error means "could not check", which callers must keep distinct
	// from "checked, zero findings".
	Parse(path string, content []byte) (*Model, error)
}

// NoAdapterError reports a file extension no registered adapter claims.
type NoAdapterError struct {
	Path      string
	Extension string
}

func (e *NoAdapterError) Error() string {
	return fmt.Sprintf("no semantic adapter for %s (extension %q)", e.Path, e.Extension)
}

// ParseError wraps an adapter failure with the file it occurred on.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Registry dispatches files to adapters by extension. Registration
// normally happens at startup; lookups are concurrent-safe.
type Registry struct {
	mu          sync.RWMutex
	byExtension map[string]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{byExtension: make(map[string]Adapter)}
}

// Register claims the adapter's extensions. Registering an extension
// twice is a wiring bug and fails loudly.
func (r *Registry) Register(a Adapter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range a.Extensions() {
		ext = strings.ToLower(ext)
		if prev, taken := r.byExtension[ext]; taken {
			return fmt.Errorf("extension %q already registered to %s", ext, prev.Language())
		}
		r.byExtension[ext] = a
	}
	return nil
}

// ForFile returns the adapter claiming the file's extension.
func (r *Registry) ForFile(path string) (Adapter, error) {
	ext := strings.ToLower(filepath.Ext(path))

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byExtension[ext]
	if !ok {
		return nil, &NoAdapterError{Path: path, Extension: ext}
	}
	return a, nil
}

// Parse dispatches to the adapter for the file's extension.
func (r *Registry) Parse(path string, content []byte) (*Model, error) {
	a, err := r.ForFile(path)
	if err != nil {
		return nil, err
	}
	m, err := a.Parse(path, content)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return m, nil
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
