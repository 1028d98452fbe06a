package validator

// Registry holds validators keyed by stage key, preserving registration order.
type Registry struct {
	validators map[string]Validator
	order      []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Register adds a validator. Registering an existing key replaces it in place.
func (r *Registry) Register(v Validator) {
	if _, exists := r.validators[v.Key()]; !exists {
		r.order = append(r.order, v.Key())
	}
	r.validators[v.Key()] = v
}

// Get returns the validator for a given key, or nil if not found.
func (r *Registry) Get(key string) Validator {
	return r.validators[key]
}

// All returns all registered validators in registration order.
func (r *Registry) All() []Validator {
	out := make([]Validator, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.validators[key])
	}
	return out
}
