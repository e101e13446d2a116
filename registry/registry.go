// Package registry holds the in-memory lookup tables the resolver reads:
// architecture ID to node and mixin ID to mixin. How the data gets here
// (YAML files, generated code, a service) is the loader's concern; the
// registry only stores, indexes and suggests.
package registry

import (
	"sort"
	"sync"

	"github.com/agext/levenshtein"

	"github.com/archlint/archlint/schema"
)

// Registry is a thread-safe store of architectures and mixins with
// pre-sorted ID indexes for deterministic iteration.
type Registry struct {
	mu            sync.RWMutex
	architectures map[string]*schema.ArchitectureNode
	mixins        map[string]*schema.Mixin

	// Sorted ID slices, rebuilt on write. Kept so suggestion ranking
	// and listing are deterministic regardless of map order.
	archIDs  []string
	mixinIDs []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		architectures: make(map[string]*schema.ArchitectureNode),
		mixins:        make(map[string]*schema.Mixin),
	}
}

// AddArchitecture registers or replaces an architecture node.
func (r *Registry) AddArchitecture(node *schema.ArchitectureNode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.architectures[node.ID]; !exists {
		r.archIDs = insertSorted(r.archIDs, node.ID)
	}
	r.architectures[node.ID] = node
}

// AddMixin registers or replaces a mixin.
func (r *Registry) AddMixin(m *schema.Mixin) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.mixins[m.ID]; !exists {
		r.mixinIDs = insertSorted(r.mixinIDs, m.ID)
	}
	r.mixins[m.ID] = m
}

// Architecture returns the node for id, or nil if unknown.
func (r *Registry) Architecture(id string) *schema.ArchitectureNode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.architectures[id]
}

// Mixin returns the mixin for id, or nil if unknown.
func (r *Registry) Mixin(id string) *schema.Mixin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mixins[id]
}

// ArchitectureIDs returns all architecture IDs in sorted order.
func (r *Registry) ArchitectureIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.archIDs...)
}

// MixinIDs returns all mixin IDs in sorted order.
func (r *Registry) MixinIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.mixinIDs...)
}

// Len returns the number of registered architectures.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.architectures)
}

// SuggestArchitectures returns up to n registered architecture IDs
// closest to the unknown id, best match first. Candidates further than
// half the query length in edit distance are not worth suggesting.
func (r *Registry) SuggestArchitectures(id string, n int) []string {
	return suggest(id, r.ArchitectureIDs(), n)
}

// SuggestMixins is SuggestArchitectures over mixin IDs.
func (r *Registry) SuggestMixins(id string, n int) []string {
	return suggest(id, r.MixinIDs(), n)
}

func suggest(query string, candidates []string, n int) []string {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	maxDist := len(query)/2 + 1

	type scored struct {
		id   string
		dist int
	}
	var matches []scored
	for _, c := range candidates {
		d := levenshtein.Distance(query, c, nil)
		if d <= maxDist {
			matches = append(matches, scored{c, d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].id < matches[j].id
	})

	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.id
	}
	return out
}

func insertSorted(ids []string, id string) []string {
	i := sort.SearchStrings(ids, id)
	ids = append(ids, "")
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}
