package feed

// Registry is the immutable set of configured sources. It is built once at
// startup from configuration and is read-only to every other component.
type Registry struct {
	sources []Source
	byID    map[string]int
}

// NewRegistry builds a registry from the given sources. The slice is copied;
// later mutation of the caller's slice does not affect the registry.
func NewRegistry(sources []Source) *Registry {
	r := &Registry{
		sources: make([]Source, len(sources)),
		byID:    make(map[string]int, len(sources)),
	}
	copy(r.sources, sources)
	for i, s := range r.sources {
		r.byID[s.ID] = i
	}
	return r
}

// All returns every configured source in registry order.
func (r *Registry) All() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Enabled returns the sources that participate in refresh cycles.
func (r *Registry) Enabled() []Source {
	var out []Source
	for _, s := range r.sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Get looks up a source by ID.
func (r *Registry) Get(id string) (Source, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Source{}, false
	}
	return r.sources[i], true
}

// Len returns the number of configured sources.
func (r *Registry) Len() int {
	return len(r.sources)
}
