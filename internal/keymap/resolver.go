package keymap

import (
	"slices"
	"strings"
)

// Resolver maps key strings to actions.
type Resolver struct {
	actions map[string]Action
}

// NewResolver builds a resolver from the bindings in the given contexts, or
// from all of them when no context is named. When a key is bound more than
// once, the first binding wins.
func NewResolver(bindings []Binding, contexts ...string) *Resolver {
	r := &Resolver{actions: make(map[string]Action)}
	for _, b := range inContexts(bindings, contexts) {
		for _, key := range b.Keys {
			if _, ok := r.actions[key]; !ok {
				r.actions[key] = b.Action
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or "" if the key is unbound.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// Conflicts returns the keys bound to different actions within the given
// contexts, sorted.
func Conflicts(bindings []Binding, contexts ...string) []string {
	seen := make(map[string]Action)
	var out []string
	for _, b := range inContexts(bindings, contexts) {
		for _, key := range b.Keys {
			prev, ok := seen[key]
			switch {
			case !ok:
				seen[key] = b.Action
			case prev != b.Action && !slices.Contains(out, key):
				out = append(out, key)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Label formats keys for display.
func Label(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return strings.Join(out, ", ")
}

func inContexts(bindings []Binding, contexts []string) []Binding {
	if len(contexts) == 0 {
		return bindings
	}
	return slices.DeleteFunc(slices.Clone(bindings), func(b Binding) bool {
		return !slices.Contains(contexts, b.Context)
	})
}
