package transit

import "github.com/google/uuid"

// MessageKind discriminates the reserved message variants from
// caller-defined named messages.
type MessageKind int

const (
	// KindNamed is a regular payload-bearing message.
	KindNamed MessageKind = iota
	// KindEmpty denotes an unlabeled transition.
	KindEmpty
	// KindAny is the wildcard matching any message not otherwise handled.
	KindAny
)

// Reserved lookup keys. Named messages are keyed by payload, so the
// reserved keys carry a prefix no payload key can collide with.
const (
	emptyKey = "\x00empty"
	anyKey   = "\x00any"
)

// Message is an event value driving a transition. Every message carries
// a unique identifier; equality for index lookups is by Key, so two
// named messages with the same payload address the same transition.
//
// Empty and Any are process-wide singletons and are never equal to each
// other or to any named message.
type Message struct {
	id      uuid.UUID
	kind    MessageKind
	payload string
}

var (
	emptyMessage = &Message{id: uuid.New(), kind: KindEmpty}
	anyMessage   = &Message{id: uuid.New(), kind: KindAny}
)

// Empty returns the singleton message denoting an unlabeled transition.
func Empty() *Message {
	return emptyMessage
}

// Any returns the singleton wildcard message.
func Any() *Message {
	return anyMessage
}

// NewMessage creates a named message with the given payload.
func NewMessage(payload string) *Message {
	return &Message{
		id:      uuid.New(),
		kind:    KindNamed,
		payload: payload,
	}
}

// ID retrieves the unique message identifier.
func (m *Message) ID() uuid.UUID {
	return m.id
}

// Kind retrieves the message kind.
func (m *Message) Kind() MessageKind {
	return m.kind
}

// Payload retrieves the payload of a named message. Empty and Any carry
// no payload.
func (m *Message) Payload() string {
	return m.payload
}

// Key returns the index lookup key for the message. Named messages are
// keyed by payload; Empty and Any use reserved keys.
func (m *Message) Key() string {
	switch m.kind {
	case KindEmpty:
		return emptyKey
	case KindAny:
		return anyKey
	default:
		return m.payload
	}
}

// Equals reports whether both messages address the same transition label.
func (m *Message) Equals(other *Message) bool {
	if other == nil {
		return false
	}

	return m.Key() == other.Key()
}

func (m *Message) String() string {
	switch m.kind {
	case KindEmpty:
		return "<empty>"
	case KindAny:
		return "*"
	default:
		return m.payload
	}
}
