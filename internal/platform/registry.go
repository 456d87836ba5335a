package platform

import (
	"strings"
	"sync"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/paths"
)

// Sentinel errors for registry construction.
var (
	// ErrPlatformAlreadyRegistered is returned when two entries share a key.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned for a key that is not a valid
	// platform identifier.
	ErrInvalidPlatformName = errors.New("invalid platform name")

	// ErrMissingLoader is returned for an entry without a module loader.
	ErrMissingLoader = errors.New("platform has no module loader")
)

// Entry is one row of the static platform table.
type Entry struct {
	Key            string
	DisplayName    string
	CommandCount   int
	CategoryCount  int
	DefaultBaseURL string
	Auth           api.Auth

	// HealthCommand is a cheap read used to check reachability.
	HealthCommand string

	// Load builds the platform's command module. It is called at most once.
	Load func() *command.Module
}

// Descriptor is the immutable, static metadata of a platform.
// Copies share the same memoized module.
type Descriptor struct {
	Key            string
	DisplayName    string
	CommandCount   int
	CategoryCount  int
	DefaultBaseURL string
	Auth           api.Auth
	HealthCommand  string

	module func() *command.Module
}

// Module returns the platform's command module, loading it on first use and
// returning the cached value afterwards.
func (d Descriptor) Module() *command.Module {
	return d.module()
}

// Registry is a fixed table of platforms. It performs no I/O and is safe for
// concurrent use; nothing in it changes after construction.
type Registry struct {
	order []string
	byKey map[string]Descriptor
}

// NewRegistry builds a Registry from entries, preserving their order.
// Returns an error if:
//   - A key is empty or invalid (per paths.ValidKey)
//   - Two entries share a key
//   - An entry has no loader
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(entries)),
		byKey: make(map[string]Descriptor, len(entries)),
	}

	for _, e := range entries {
		if !paths.ValidKey(e.Key) {
			return nil, errors.Wrapf(ErrInvalidPlatformName, "%q", e.Key)
		}
		if _, exists := r.byKey[e.Key]; exists {
			return nil, errors.Wrapf(ErrPlatformAlreadyRegistered, "%q", e.Key)
		}
		if e.Load == nil {
			return nil, errors.Wrapf(ErrMissingLoader, "%q", e.Key)
		}

		r.byKey[e.Key] = Descriptor{
			Key:            e.Key,
			DisplayName:    e.DisplayName,
			CommandCount:   e.CommandCount,
			CategoryCount:  e.CategoryCount,
			DefaultBaseURL: e.DefaultBaseURL,
			Auth:           e.Auth,
			HealthCommand:  e.HealthCommand,
			module:         sync.OnceValue(e.Load),
		}
		r.order = append(r.order, e.Key)
	}

	return r, nil
}

// Get returns the descriptor registered under key, or an *api.Error of kind
// KindNotFound naming the key and the known platforms.
func (r *Registry) Get(key string) (Descriptor, error) {
	d, ok := r.byKey[key]
	if !ok {
		return Descriptor{}, api.NotFound("unknown platform %q (available: %s)", key, strings.Join(r.order, ", "))
	}
	return d, nil
}

// List returns all descriptors in table order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.order))
	for i, key := range r.order {
		out[i] = r.byKey[key]
	}
	return out
}

// Keys returns all platform keys in table order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
