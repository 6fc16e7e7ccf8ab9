// Package resolve merges variable values from the four precedence
// layers (profile defaults, task-derived, attachment-derived, caller
// overrides) and applies the template-specific augmentation rules.
package resolve

import "sort"

// VariableSet maps template variable names to values. Presence and
// emptiness are distinct: an absent key means "unresolved", a present
// empty value means "deliberately blank". Both render as a blank line,
// but only a present value participates in precedence decisions.
type VariableSet struct {
	m map[string]string
}

func NewVariableSet() *VariableSet {
	return &VariableSet{m: make(map[string]string)}
}

// Get returns the value and whether the key is present at all.
func (s *VariableSet) Get(name string) (string, bool) {
	v, ok := s.m[name]
	return v, ok
}

// Value returns the value or "" when absent.
func (s *VariableSet) Value(name string) string {
	return s.m[name]
}

// Set stores a value unconditionally, empty included. Used by the
// override layer, where an empty string is a deliberate blank.
func (s *VariableSet) Set(name, value string) {
	s.m[name] = value
}

// SetNonEmpty stores a value only when it is non-empty, so a weaker
// source can never blank out a stronger one.
func (s *VariableSet) SetNonEmpty(name, value string) {
	if value == "" {
		return
	}
	s.m[name] = value
}

// Overlay merges a higher-precedence layer: non-empty values win,
// empty or absent values never erase what a lower layer resolved.
func (s *VariableSet) Overlay(layer map[string]string) {
	for k, v := range layer {
		s.SetNonEmpty(k, v)
	}
}

// Delete removes a key entirely, returning it to "unresolved".
func (s *VariableSet) Delete(names ...string) {
	for _, n := range names {
		delete(s.m, n)
	}
}

// Names returns the present keys, sorted.
func (s *VariableSet) Names() []string {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Map returns a copy of the underlying mapping.
func (s *VariableSet) Map() map[string]string {
	out := make(map[string]string, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out
}
