package happylog

import (
	stderrs "errors"
	"sort"
	"sync"
)

// Registry maps channel names to their single Channel. The first caller
// for a name builds the channel and its sinks under the registry lock;
// everyone else, concurrent or later, gets that same instance back.
type Registry struct {
	mu        sync.RWMutex
	channels  map[string]*Channel
	onFailure func(*EmitError)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithFailureHandler installs fn to be told about every failed emit on every
// channel the registry creates. fn runs after the channel lock is released.
func WithFailureHandler(fn func(*EmitError)) RegistryOption {
	return func(r *Registry) { r.onFailure = fn }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{channels: map[string]*Channel{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the channel registered under name, creating it with
// min and sinks built from specs if it does not exist yet. Specs passed for
// a name that already exists are ignored, so no sink is ever attached twice.
func (r *Registry) GetOrCreate(name string, min Severity, specs ...SinkSpec) (*Channel, error) {
	if name == emptyString {
		return nil, ErrEmptyChannelName
	}

	r.mu.RLock()
	ch, ok := r.channels[name]
	r.mu.RUnlock()
	if ok {
		return ch, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock
	if ch, ok = r.channels[name]; ok {
		return ch, nil
	}

	sinks, err := buildSinks(specs)
	if err != nil {
		return nil, err
	}
	ch = newChannel(name, min, sinks, r.onFailure)
	r.channels[name] = ch
	return ch, nil
}

// Lookup returns the channel registered under name without creating it.
func (r *Registry) Lookup(name string) (*Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ch, ok := r.channels[name]
	return ch, ok
}

// Names returns the registered channel names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of registered channels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// Close closes the sinks of every channel. Channels stay registered so a
// late emit reports a SinkIOError instead of silently creating new files.
func (r *Registry) Close() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var errs []error
	for _, ch := range r.channels {
		if err := ch.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrs.Join(errs...)
}
