package scanner

import (
	"context"
	"fmt"

	"intelhub/internal/domain"
)

// Request carries all parameters required to execute a collection pass.
// An empty Departments slice means every configured department.
type Request struct {
	Departments []domain.Department
}

// Source yields a bounded batch of candidates. Implementations swallow
// backend failures and return what they have; one failing source never
// blocks the others.
type Source interface {
	Name() string
	Collect(ctx context.Context, req Request) []domain.Candidate
}

// Registry keeps sources in registration order. The scan consumes
// candidates in that order, which is what the call budget observes.
type Registry struct {
	order []Source
	byKey map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(src Source) {
	if r.byKey == nil {
		r.byKey = map[string]Source{}
	}
	if _, ok := r.byKey[src.Name()]; !ok {
		r.order = append(r.order, src)
	} else {
		for i, existing := range r.order {
			if existing.Name() == src.Name() {
				r.order[i] = src
				break
			}
		}
	}
	r.byKey[src.Name()] = src
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.byKey[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}

// Sources returns all registered sources in registration order.
func (r *Registry) Sources() []Source {
	return r.order
}
