package transit

import (
	"fmt"
	"maps"
)

// State is a named vertex in the transition graph. States are identified
// by name: two State values with equal names address the same vertex
// regardless of object identity. A state may carry arbitrary string
// properties and may be flagged final, which forbids outgoing transitions
// under the default validator.
type State struct {
	name       string
	properties map[string]string
	final      bool
}

// NewState creates a state with the given name.
func NewState(name string) *State {
	return &State{
		name:       name,
		properties: make(map[string]string),
	}
}

// NewFinalState creates a state flagged as final.
func NewFinalState(name string) *State {
	state := NewState(name)
	state.final = true

	return state
}

// Name retrieves the state name.
func (s *State) Name() string {
	return s.name
}

// IsFinal reports whether the state is flagged final.
func (s *State) IsFinal() bool {
	return s.final
}

// SetFinal sets the final flag.
func (s *State) SetFinal(final bool) {
	s.final = final
}

// WithProperty sets a property and returns the state for chaining.
func (s *State) WithProperty(name, value string) *State {
	s.properties[name] = value

	return s
}

// HasProperty checks the presence of the given property.
func (s *State) HasProperty(name string) bool {
	_, ok := s.properties[name]

	return ok
}

// Property retrieves the value of the given property.
func (s *State) Property(name string) (string, bool) {
	value, ok := s.properties[name]

	return value, ok
}

// Properties returns a copy of the state's properties.
func (s *State) Properties() map[string]string {
	return maps.Clone(s.properties)
}

// Equals reports whether both states address the same vertex, i.e. have
// equal names.
func (s *State) Equals(other *State) bool {
	if other == nil {
		return false
	}

	return s.name == other.name
}

// Merge folds the attributes of other into the receiver. Properties are
// unioned with newest-wins conflict resolution and the final flags are
// OR'd, so re-referencing a final state by bare name cannot silently
// clear the flag. Merging a differently-named state is a no-op.
func (s *State) Merge(other *State) {
	if other == nil || other.name != s.name || other == s {
		return
	}

	maps.Copy(s.properties, other.properties)
	s.final = s.final || other.final
}

func (s *State) String() string {
	if s.final {
		return fmt.Sprintf("State{name=%s, final}", s.name)
	}

	return fmt.Sprintf("State{name=%s}", s.name)
}
