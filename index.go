package transit

import (
	"iter"
)

// stateNode is the index record for a single vertex: the state itself
// plus its outgoing transitions keyed by message, in insertion order.
type stateNode struct {
	state   *State
	keys    []string
	targets map[string]*edge
}

// edge is a single outgoing transition entry.
type edge struct {
	message *Message
	target  *State
}

func newStateNode(state *State) *stateNode {
	return &stateNode{
		state:   state,
		targets: make(map[string]*edge),
	}
}

// put inserts or overwrites the entry for the message key, preserving
// the original insertion position on overwrite.
func (n *stateNode) put(message *Message, target *State) {
	key := message.Key()
	if _, ok := n.targets[key]; !ok {
		n.keys = append(n.keys, key)
	}

	n.targets[key] = &edge{message: message, target: target}
}

// remove deletes the entry for the message key, if present.
func (n *stateNode) remove(message *Message) {
	key := message.Key()
	if _, ok := n.targets[key]; !ok {
		return
	}

	delete(n.targets, key)

	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)

			break
		}
	}
}

// TransitionIndex stores the complete state and transition graph as an
// adjacency map keyed by state name, preserving insertion order of both
// states and per-state transitions. Every state referenced as origin or
// target of a transition is present as a top-level entry, and at most
// one target exists per (origin, message) pair.
//
// For example, after adding [ A --1--> B ] the index holds:
//
//	A | [ 1 -> B ]
//	B | []
//
// Adding [ A --1--> C ] afterwards silently overwrites the entry for
// (A, 1), possibly leaving B unreachable; Prune reclaims such orphans.
//
// The index is a plain mutable structure with no internal locking;
// concurrent use requires external synchronization.
type TransitionIndex struct {
	nodes     map[string]*stateNode
	order     []string
	validator TransitionValidator
	policy    FailurePolicy
	logger    Logger
}

// IndexOption configures a TransitionIndex.
type IndexOption func(*TransitionIndex)

// WithValidator substitutes the transition validator.
func WithValidator(validator TransitionValidator) IndexOption {
	return func(ti *TransitionIndex) {
		if validator != nil {
			ti.validator = validator
		}
	}
}

// WithFailurePolicy sets how rejected mutations are surfaced.
func WithFailurePolicy(policy FailurePolicy) IndexOption {
	return func(ti *TransitionIndex) {
		ti.policy = policy
	}
}

// WithIndexLogger sets the logger receiving index lifecycle events.
func WithIndexLogger(logger Logger) IndexOption {
	return func(ti *TransitionIndex) {
		ti.logger = logger
	}
}

// NewTransitionIndex creates an empty index with the default validator
// and the Proceed failure policy.
func NewTransitionIndex(opts ...IndexOption) *TransitionIndex {
	index := &TransitionIndex{
		nodes:     make(map[string]*stateNode),
		validator: NewDefaultValidator(),
		policy:    Proceed,
	}

	for _, opt := range opts {
		opt(index)
	}

	return index
}

// SetLogger sets the logger receiving index lifecycle events.
func (ti *TransitionIndex) SetLogger(logger Logger) {
	ti.logger = logger
}

// Validator retrieves the transition validator in use.
func (ti *TransitionIndex) Validator() TransitionValidator {
	return ti.validator
}

// Policy retrieves the failure policy in use.
func (ti *TransitionIndex) Policy() FailurePolicy {
	return ti.policy
}

// node returns the index record for the given state, by name.
func (ti *TransitionIndex) node(state *State) (*stateNode, bool) {
	n, ok := ti.nodes[state.Name()]

	return n, ok
}

// ensure returns the record for the state, creating it when absent and
// merging the incoming attributes when present.
func (ti *TransitionIndex) ensure(state *State) *stateNode {
	if n, ok := ti.nodes[state.Name()]; ok {
		n.state.Merge(state)

		return n
	}

	n := newStateNode(state)
	ti.nodes[state.Name()] = n
	ti.order = append(ti.order, state.Name())

	return n
}

// Add validates and inserts the transition. On approval the (origin,
// message) entry is inserted or overwritten, both endpoints are ensured
// as top-level entries, and state attributes are merged for endpoints
// matching an existing name. A rejected add is a silent no-op under
// Proceed and a ValidationError under FailOnError.
func (ti *TransitionIndex) Add(transition *Transition) error {
	return ti.validateAndRun(transition, OperationAdd, func() {
		origin := ti.ensure(transition.Origin())
		target := ti.ensure(transition.Target())
		origin.put(transition.Message(), target.state)

		if ti.logger != nil {
			ti.logger.TransitionAdded(transition)
		}

		transitionMutationsTotal.WithLabelValues(opAdd).Inc()
	})
}

// AddAll adds the supplied transitions in order. Under FailOnError the
// first rejection aborts and is returned.
func (ti *TransitionIndex) AddAll(transitions ...*Transition) error {
	for _, transition := range transitions {
		if err := ti.Add(transition); err != nil {
			return err
		}
	}

	return nil
}

// Remove validates and clears the (origin, message) entry if present.
// Removing an absent transition is a no-op. State vertices are kept.
func (ti *TransitionIndex) Remove(transition *Transition) error {
	return ti.validateAndRun(transition, OperationRemove, func() {
		n, ok := ti.node(transition.Origin())
		if !ok {
			return
		}

		n.remove(transition.Message())

		if ti.logger != nil {
			ti.logger.TransitionRemoved(transition)
		}

		transitionMutationsTotal.WithLabelValues(opRemove).Inc()
	})
}

// validateAndRun consults the validator before running the mutation,
// honoring the failure policy on rejection.
func (ti *TransitionIndex) validateAndRun(transition *Transition, op Operation, run func()) error {
	result := ti.validator.Validate(transition, ti, op)
	if result.Valid {
		run()

		return nil
	}

	if ti.policy == Proceed {
		return nil
	}

	return &ValidationError{
		Description: result.Description,
		Err:         result.Err,
	}
}

// RemoveState deletes the state as a top-level entry together with all
// its outgoing transitions, and clears any transition elsewhere in the
// index targeting it by name. Fails with ErrStateNotFound if absent.
func (ti *TransitionIndex) RemoveState(state *State) error {
	return ti.RemoveStateByName(state.Name())
}

// RemoveStateByName removes the named state, see RemoveState.
func (ti *TransitionIndex) RemoveStateByName(name string) error {
	if _, ok := ti.nodes[name]; !ok {
		return WrapStateError(name, ErrStateNotFound)
	}

	delete(ti.nodes, name)

	for i, stateName := range ti.order {
		if stateName == name {
			ti.order = append(ti.order[:i], ti.order[i+1:]...)

			break
		}
	}

	// Drop transitions elsewhere using the state as target.
	for _, n := range ti.nodes {
		for _, key := range append([]string(nil), n.keys...) {
			if n.targets[key].target.Name() == name {
				n.remove(n.targets[key].message)
			}
		}
	}

	return nil
}

// Next resolves the target of the exact (source, message) entry.
func (ti *TransitionIndex) Next(source *State, message *Message) (*State, bool) {
	n, ok := ti.node(source)
	if !ok {
		return nil, false
	}

	e, ok := n.targets[message.Key()]
	if !ok {
		return nil, false
	}

	return e.target, true
}

// Previous performs the reverse lookup: a state whose entry under the
// message resolves to source. When multiple predecessors exist the first
// in state insertion order is returned; callers must not rely on a
// specific match beyond that.
func (ti *TransitionIndex) Previous(source *State, message *Message) (*State, bool) {
	for _, name := range ti.order {
		n := ti.nodes[name]
		if e, ok := n.targets[message.Key()]; ok && e.target.Equals(source) {
			return n.state, true
		}
	}

	return nil, false
}

// Find locates a state by name.
func (ti *TransitionIndex) Find(name string) (*State, bool) {
	n, ok := ti.nodes[name]
	if !ok {
		return nil, false
	}

	return n.state, true
}

// Contains checks the presence of the state in the index, by name.
func (ti *TransitionIndex) Contains(state *State) bool {
	_, ok := ti.node(state)

	return ok
}

// ContainsTransition checks the presence of the exact transition.
func (ti *TransitionIndex) ContainsTransition(transition *Transition) bool {
	target, ok := ti.Next(transition.Origin(), transition.Message())

	return ok && target.Equals(transition.Target())
}

// First retrieves the first state inserted into the index.
func (ti *TransitionIndex) First() (*State, bool) {
	if len(ti.order) == 0 {
		return nil, false
	}

	return ti.nodes[ti.order[0]].state, true
}

// Size returns the number of states in the index, not the number of
// transitions.
func (ti *TransitionIndex) Size() int {
	return len(ti.nodes)
}

// Prune removes every state whose outgoing set is currently empty and
// which is not the target of any transition elsewhere, returning the
// removed orphans. The scan is a single pass: removing an orphan does
// not re-trigger detection of predecessors orphaned by that removal;
// call Prune repeatedly to cascade.
func (ti *TransitionIndex) Prune() []*State {
	var candidates []string

	for _, name := range ti.order {
		if len(ti.nodes[name].keys) == 0 {
			candidates = append(candidates, name)
		}
	}

	var orphans []*State

	for _, name := range candidates {
		if ti.isTarget(name) {
			continue
		}

		orphans = append(orphans, ti.nodes[name].state)
		delete(ti.nodes, name)

		for i, stateName := range ti.order {
			if stateName == name {
				ti.order = append(ti.order[:i], ti.order[i+1:]...)

				break
			}
		}
	}

	if len(orphans) > 0 {
		statesPrunedTotal.Add(float64(len(orphans)))

		if ti.logger != nil {
			ti.logger.StatesPruned(orphans)
		}
	}

	return orphans
}

// isTarget reports whether any transition in the index resolves to the
// named state.
func (ti *TransitionIndex) isTarget(name string) bool {
	for _, n := range ti.nodes {
		for _, key := range n.keys {
			if n.targets[key].target.Name() == name {
				return true
			}
		}
	}

	return false
}

// Transitions materializes the outgoing transitions of the named state
// in insertion order. Fails with ErrStateNotFound if the state is absent.
func (ti *TransitionIndex) Transitions(name string) ([]*Transition, error) {
	n, ok := ti.nodes[name]
	if !ok {
		return nil, WrapStateError(name, ErrStateNotFound)
	}

	return ti.transitionsOf(n), nil
}

func (ti *TransitionIndex) transitionsOf(n *stateNode) []*Transition {
	transitions := make([]*Transition, 0, len(n.keys))

	for _, key := range n.keys {
		e := n.targets[key]
		transitions = append(transitions, NewTransition(n.state, e.message, e.target))
	}

	return transitions
}

// AllTransitions materializes every transition in the index, ordered by
// state insertion order and per-state message insertion order.
func (ti *TransitionIndex) AllTransitions() []*Transition {
	var transitions []*Transition

	for _, name := range ti.order {
		transitions = append(transitions, ti.transitionsOf(ti.nodes[name])...)
	}

	return transitions
}

// States returns the states in insertion order.
func (ti *TransitionIndex) States() []*State {
	states := make([]*State, 0, len(ti.order))

	for _, name := range ti.order {
		states = append(states, ti.nodes[name].state)
	}

	return states
}

// Seq returns an iterator over the index as an ordered mapping from
// state to its outgoing transitions, for exporters and printers.
func (ti *TransitionIndex) Seq() iter.Seq2[*State, []*Transition] {
	return func(yield func(*State, []*Transition) bool) {
		for _, name := range ti.order {
			n := ti.nodes[name]
			if !yield(n.state, ti.transitionsOf(n)) {
				return
			}
		}
	}
}

// RemoveAllTransitions clears every transition while keeping the states.
func (ti *TransitionIndex) RemoveAllTransitions() {
	for _, n := range ti.nodes {
		n.keys = nil
		n.targets = make(map[string]*edge)
	}
}

// Clear removes all states and transitions.
func (ti *TransitionIndex) Clear() {
	ti.nodes = make(map[string]*stateNode)
	ti.order = nil
}
