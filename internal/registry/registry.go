package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"codeberg.org/snonux/mediakit/internal/config"
	"codeberg.org/snonux/mediakit/internal/processor"
)

var (
	// ErrDuplicateName is returned when a name is registered twice.
	ErrDuplicateName = errors.New("registry: duplicate processor name")
	// ErrNotFound is returned when a processor name is unknown.
	ErrNotFound = errors.New("registry: processor not found")
)

// Factory constructs a fresh processor instance bound to the given
// configuration. Construction must be cheap; expensive backing resources
// are loaded lazily on first use (see internal/model).
type Factory func(cfg *config.Config) processor.Processor

type entry struct {
	kind    processor.Kind
	factory Factory
}

// Registry is a name → factory mapping safe for concurrent use. The zero
// value is not usable; call NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register installs a factory under name. Registering an already-present
// name fails with ErrDuplicateName; the existing entry is never replaced.
func (r *Registry) Register(name string, kind processor.Kind, factory Factory) error {
	if name == "" {
		return fmt.Errorf("registry: empty processor name")
	}
	if factory == nil {
		return fmt.Errorf("registry: nil factory for %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.entries[name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.entries[name] = entry{kind: kind, factory: factory}
	return nil
}

// MustRegister is Register for init()-time self-registration: a collision
// there is a programming error, so it panics.
func (r *Registry) MustRegister(name string, kind processor.Kind, factory Factory) {
	if err := r.Register(name, kind, factory); err != nil {
		panic(err)
	}
}

// Get returns the factory registered under name.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrNotFound, name, r.Names())
	}
	return e.factory, nil
}

// New resolves name and constructs a processor instance from its factory.
func (r *Registry) New(name string, cfg *config.Config) (processor.Processor, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return factory(cfg), nil
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamesByKind returns the sorted names of all processors of the given kind.
func (r *Registry) NamesByKind(kind processor.Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for name, e := range r.entries {
		if e.kind == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Default is the process-wide registry that built-in processors register
// into at import time.
var Default = NewRegistry()

// Register installs a factory into the default registry.
func Register(name string, kind processor.Kind, factory Factory) error {
	return Default.Register(name, kind, factory)
}

// MustRegister installs a factory into the default registry and panics on
// collision.
func MustRegister(name string, kind processor.Kind, factory Factory) {
	Default.MustRegister(name, kind, factory)
}

// Get returns a factory from the default registry.
func Get(name string) (Factory, error) {
	return Default.Get(name)
}

// New constructs a processor from the default registry.
func New(name string, cfg *config.Config) (processor.Processor, error) {
	return Default.New(name, cfg)
}

// Names lists the default registry.
func Names() []string {
	return Default.Names()
}

// NamesByKind lists the default registry filtered by kind.
func NamesByKind(kind processor.Kind) []string {
	return Default.NamesByKind(kind)
}
