package transit

import "context"

// FilterStatus is the verdict of a dispatch filter. Any value other
// than Proceed aborts the transition; callers may define their own
// non-proceed codes above Abort.
type FilterStatus int

const (
	// ProceedStatus approves the transition.
	ProceedStatus FilterStatus = iota
	// AbortStatus vetoes the transition.
	AbortStatus
)

func (s FilterStatus) String() string {
	switch s {
	case ProceedStatus:
		return "proceed"
	case AbortStatus:
		return "abort"
	default:
		return "custom"
	}
}

// FilterFunc observes or vetoes a resolved transition during dispatch.
// Filters run synchronously and must not mutate the dispatching machine.
type FilterFunc func(ctx context.Context, transition *Transition) FilterStatus

// FilterRegistry holds the departure and arrival hooks of a machine,
// keyed per state and optionally per message. For a given (state,
// message) the invocation order is deterministic: handlers registered
// for any message first, then message-scoped handlers, each group in
// registration order.
type FilterRegistry struct {
	leaving  map[string]*filterSet
	arriving map[string]*filterSet
}

// filterSet groups the hooks of one state and one direction.
type filterSet struct {
	global []FilterFunc
	byKey  map[string][]FilterFunc
}

func newFilterSet() *filterSet {
	return &filterSet{byKey: make(map[string][]FilterFunc)}
}

func (fs *filterSet) add(message *Message, fn FilterFunc) {
	if message == nil {
		fs.global = append(fs.global, fn)

		return
	}

	key := message.Key()
	fs.byKey[key] = append(fs.byKey[key], fn)
}

func (fs *filterSet) matching(message *Message) []FilterFunc {
	funcs := make([]FilterFunc, 0, len(fs.global))
	funcs = append(funcs, fs.global...)

	return append(funcs, fs.byKey[message.Key()]...)
}

// NewFilterRegistry creates an empty registry.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{
		leaving:  make(map[string]*filterSet),
		arriving: make(map[string]*filterSet),
	}
}

// OnLeaving registers a departure hook for the named state, invoked for
// any message.
func (r *FilterRegistry) OnLeaving(state string, fn FilterFunc) {
	r.set(r.leaving, state).add(nil, fn)
}

// OnLeavingMessage registers a departure hook scoped to the given message.
func (r *FilterRegistry) OnLeavingMessage(state string, message *Message, fn FilterFunc) {
	r.set(r.leaving, state).add(message, fn)
}

// OnArriving registers an arrival hook for the named state, invoked for
// any message.
func (r *FilterRegistry) OnArriving(state string, fn FilterFunc) {
	r.set(r.arriving, state).add(nil, fn)
}

// OnArrivingMessage registers an arrival hook scoped to the given message.
func (r *FilterRegistry) OnArrivingMessage(state string, message *Message, fn FilterFunc) {
	r.set(r.arriving, state).add(message, fn)
}

func (r *FilterRegistry) set(m map[string]*filterSet, state string) *filterSet {
	fs, ok := m[state]
	if !ok {
		fs = newFilterSet()
		m[state] = fs
	}

	return fs
}

// LeavingFilters returns the ordered departure hooks to invoke for the
// given state and message.
func (r *FilterRegistry) LeavingFilters(state string, message *Message) []FilterFunc {
	return r.filtersFor(r.leaving, state, message)
}

// ArrivingFilters returns the ordered arrival hooks to invoke for the
// given state and message.
func (r *FilterRegistry) ArrivingFilters(state string, message *Message) []FilterFunc {
	return r.filtersFor(r.arriving, state, message)
}

func (r *FilterRegistry) filtersFor(m map[string]*filterSet, state string, message *Message) []FilterFunc {
	fs, ok := m[state]
	if !ok {
		return nil
	}

	return fs.matching(message)
}
