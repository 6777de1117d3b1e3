package repr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/irkit-labs/irkit/pkg/object"
)

// HandlerFunc renders one object's contents into the printer. Handlers
// recurse into child objects via p.Print.
type HandlerFunc func(p *Printer, o object.Object) error

// ErrNoHandler is returned when dispatch exhausts an object's ancestor chain
// without finding a registered handler.
var ErrNoHandler = errors.New("no handler registered")

// Registry maps type tags to render handlers with ancestor-chain fallback.
//
// The expected lifecycle is populate-once during process initialization and
// read-mostly afterwards; mutation at any later point is still serialized by
// the registry's lock.
type Registry struct {
	mu       sync.RWMutex
	handlers map[object.Tag]HandlerFunc
	resolved map[object.Tag]HandlerFunc // fallback walk memoized per concrete tag
}

// defaultRegistry backs the package-level Register and the printers returned
// by New. Built-in handlers are installed into it by this package's init.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// NewRegistry returns an empty registry with no handlers installed.
// RegisterBuiltins seeds one with the built-in container and scalar
// handlers.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[object.Tag]HandlerFunc),
		resolved: make(map[object.Tag]HandlerFunc),
	}
}

// Register installs fn as the handler for tag in the default registry.
// Call this from init() functions in node-type packages.
func Register(tag object.Tag, fn HandlerFunc) {
	defaultRegistry.Register(tag, fn)
}

// Register installs fn as the handler for tag. Last write wins: an existing
// handler is replaced. A nil fn removes the entry.
func (r *Registry) Register(tag object.Tag, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.handlers, tag)
	} else {
		r.handlers[tag] = fn
	}
	// Any change can alter the fallback result of descendant tags.
	r.resolved = make(map[object.Tag]HandlerFunc)
}

// Handles reports whether tag has an exact-match handler.
func (r *Registry) Handles(tag object.Tag) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[tag]
	return ok
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Clear removes all handlers. Used for testing; RegisterBuiltins restores
// the built-in set.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[object.Tag]HandlerFunc)
	r.resolved = make(map[object.Tag]HandlerFunc)
}

// Invoke renders o through the handler registered for its concrete tag,
// falling back along the ancestor chain from most to least specific. The
// original object is passed to whichever handler is chosen.
func (r *Registry) Invoke(p *Printer, o object.Object) error {
	fn, err := r.resolve(object.TagOf(o))
	if err != nil {
		return err
	}
	return fn(p, o)
}

// resolve finds the handler for tag, consulting the memoized walk first.
// Failed lookups are never cached: a handler may be registered later.
func (r *Registry) resolve(tag object.Tag) (HandlerFunc, error) {
	r.mu.RLock()
	fn, ok := r.resolved[tag]
	r.mu.RUnlock()
	if ok {
		return fn, nil
	}

	// Walk and memoize under the write lock so a concurrent Register cannot
	// leave a stale entry behind.
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn, ok := r.resolved[tag]; ok {
		return fn, nil
	}
	for t := tag; t != object.TagInvalid; {
		if fn, ok := r.handlers[t]; ok {
			r.resolved[tag] = fn
			return fn, nil
		}
		parent, err := object.ParentOf(t)
		if err != nil {
			break
		}
		t = parent
	}
	return nil, fmt.Errorf("%w for type %s", ErrNoHandler, tagName(tag))
}

// tagName formats a tag for error messages, tolerating unregistered tags.
func tagName(tag object.Tag) string {
	name, err := object.NameOf(tag)
	if err != nil {
		return fmt.Sprintf("tag(%d)", tag)
	}
	return name
}
