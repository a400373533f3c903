package transit

import "fmt"

// Transition is an immutable (origin, message, target) edge. Equality is
// structural: origin and target compare by name, the message by its
// lookup key.
type Transition struct {
	origin  *State
	message *Message
	target  *State
}

// NewTransition creates a transition from origin to target triggered by
// the given message.
func NewTransition(origin *State, message *Message, target *State) *Transition {
	return &Transition{
		origin:  origin,
		message: message,
		target:  target,
	}
}

// NewSelfTransition creates a transition looping back to the origin.
func NewSelfTransition(origin *State, message *Message) *Transition {
	return NewTransition(origin, message, origin)
}

// Origin retrieves the source state of the transition.
func (t *Transition) Origin() *State {
	return t.origin
}

// Message retrieves the message triggering the transition.
func (t *Transition) Message() *Message {
	return t.message
}

// Target retrieves the destination state of the transition.
func (t *Transition) Target() *State {
	return t.target
}

// Equals reports structural equality of origin, message and target.
func (t *Transition) Equals(other *Transition) bool {
	if other == nil {
		return false
	}

	return t.origin.Equals(other.origin) &&
		t.message.Equals(other.message) &&
		t.target.Equals(other.target)
}

func (t *Transition) String() string {
	return fmt.Sprintf("%s --[%s]--> %s", t.origin.Name(), t.message, t.target.Name())
}
