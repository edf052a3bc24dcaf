package dispatcher

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/modalcore/internal/dispatcher/handler"
)

// Routes maps action names to handlers. An override bound to an exact
// name beats the namespace handlers, which are consulted in registration
// order by the prefix before the first dot.
type Routes struct {
	mu         sync.RWMutex
	overrides  map[string][]handler.Handler // highest priority first
	namespaces map[string][]handler.NamespaceHandler
}

func NewRoutes() *Routes {
	return &Routes{
		overrides:  make(map[string][]handler.Handler),
		namespaces: make(map[string][]handler.NamespaceHandler),
	}
}

// Override binds h to one action name. Overrides of equal priority keep
// the order they were added in.
func (r *Routes) Override(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs := append(r.overrides[actionName], h)
	slices.SortStableFunc(hs, func(a, b handler.Handler) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
	r.overrides[actionName] = hs
}

// RemoveOverride drops h from actionName, or every override of the name
// when h is nil.
func (r *Routes) RemoveOverride(actionName string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h == nil {
		delete(r.overrides, actionName)
		return
	}
	hs := slices.DeleteFunc(r.overrides[actionName], func(o handler.Handler) bool { return o == h })
	if len(hs) == 0 {
		delete(r.overrides, actionName)
		return
	}
	r.overrides[actionName] = hs
}

// AddNamespace appends h to the handlers of its namespace. "insert" is
// shared this way between the entry points and insert-mode typing.
func (r *Routes) AddNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ns := h.Namespace()
	r.namespaces[ns] = append(r.namespaces[ns], h)
}

// RemoveNamespace drops every handler of ns.
func (r *Routes) RemoveNamespace(ns string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, ns)
}

// Lookup returns the handler for actionName, or nil.
func (r *Routes) Lookup(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if hs := r.overrides[actionName]; len(hs) > 0 {
		return hs[0]
	}
	if h := r.namespaceFor(actionName); h != nil {
		return handler.ForNamespace(h)
	}
	return nil
}

func (r *Routes) namespaceFor(actionName string) handler.NamespaceHandler {
	ns, _, ok := strings.Cut(actionName, ".")
	if !ok {
		return nil
	}
	for _, h := range r.namespaces[ns] {
		if h.CanHandle(actionName) {
			return h
		}
	}
	return nil
}

// Has reports whether Lookup would find a handler.
func (r *Routes) Has(actionName string) bool {
	return r.Lookup(actionName) != nil
}

// Overridden lists the action names with an override, sorted.
func (r *Routes) Overridden() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.overrides))
}

// Namespaces lists the namespaces with at least one handler, sorted.
func (r *Routes) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.namespaces))
}
