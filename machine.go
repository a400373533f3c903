package transit

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// DispatchOutcome classifies the result of a single dispatch.
type DispatchOutcome int

const (
	// Dispatched means the transition committed and the cursor moved.
	Dispatched DispatchOutcome = iota
	// Missed means no exact or wildcard transition matched; the message
	// was silently ignored and the cursor did not move. This is not an
	// error condition.
	Missed
	// Aborted means a filter vetoed the transition; the cursor did not
	// move.
	Aborted
)

func (o DispatchOutcome) String() string {
	switch o {
	case Dispatched:
		return "dispatched"
	case Missed:
		return "missed"
	default:
		return "aborted"
	}
}

// DispatchResult reports what a single dispatch did. FilterStatus is
// meaningful only when Outcome is Aborted, carrying the vetoing filter's
// status.
type DispatchResult struct {
	Outcome      DispatchOutcome
	From         *State
	To           *State
	Message      *Message
	FilterStatus FilterStatus
}

// StateMachine is the traversal engine: a cursor over a TransitionIndex
// driven by message dispatch, with departure and arrival filters.
//
// The machine is single-threaded by design. A dispatch completes fully
// before its effects are observable; sharing one machine across
// goroutines requires external mutual exclusion.
type StateMachine struct {
	index   *TransitionIndex
	filters *FilterRegistry
	current *State
	logger  Logger
}

// MachineOption configures a StateMachine.
type MachineOption func(*StateMachine)

// WithIndex runs the machine over a pre-populated index.
func WithIndex(index *TransitionIndex) MachineOption {
	return func(m *StateMachine) {
		if index != nil {
			m.index = index
		}
	}
}

// WithMachineValidator substitutes the validator of the machine's index.
func WithMachineValidator(validator TransitionValidator) MachineOption {
	return func(m *StateMachine) {
		WithValidator(validator)(m.index)
	}
}

// WithMachineFailurePolicy sets the failure policy of the machine's index.
func WithMachineFailurePolicy(policy FailurePolicy) MachineOption {
	return func(m *StateMachine) {
		WithFailurePolicy(policy)(m.index)
	}
}

// WithLogger sets the logger receiving machine and index events.
func WithLogger(logger Logger) MachineOption {
	return func(m *StateMachine) {
		m.logger = logger
		m.index.SetLogger(logger)
	}
}

// NewStateMachine creates a machine over an empty index unless WithIndex
// is supplied. The cursor is unset until Init or SetCurrent.
func NewStateMachine(opts ...MachineOption) *StateMachine {
	machine := &StateMachine{
		index:   NewTransitionIndex(),
		filters: NewFilterRegistry(),
	}

	for _, opt := range opts {
		opt(machine)
	}

	return machine
}

// Index retrieves the underlying transition index.
func (m *StateMachine) Index() *TransitionIndex {
	return m.index
}

// Filters retrieves the filter registry.
func (m *StateMachine) Filters() *FilterRegistry {
	return m.filters
}

// SetLogger sets the logger receiving machine and index events.
func (m *StateMachine) SetLogger(logger Logger) {
	m.logger = logger
	m.index.SetLogger(logger)
}

// Add validates and inserts a transition into the underlying index.
func (m *StateMachine) Add(transition *Transition) error {
	return m.index.Add(transition)
}

// AddAll adds the supplied transitions in order.
func (m *StateMachine) AddAll(transitions ...*Transition) error {
	return m.index.AddAll(transitions...)
}

// Remove clears a transition from the underlying index.
func (m *StateMachine) Remove(transition *Transition) error {
	return m.index.Remove(transition)
}

// Init sets the cursor to the first state inserted into the index.
// Fails with ErrIndexEmpty if the index holds no states.
func (m *StateMachine) Init() error {
	first, ok := m.index.First()
	if !ok {
		return ErrIndexEmpty
	}

	m.current = first

	return nil
}

// SetCurrent sets the cursor to the named state. Fails with
// ErrStateNotFound if the state is not part of the index.
func (m *StateMachine) SetCurrent(name string) error {
	state, ok := m.index.Find(name)
	if !ok {
		return WrapStateError(name, ErrStateNotFound)
	}

	m.current = state

	return nil
}

// Current retrieves the cursor. The cursor is unset before Init or
// SetCurrent.
func (m *StateMachine) Current() (*State, bool) {
	return m.current, m.current != nil
}

// Send dispatches the message and returns the machine for chaining.
// The dispatch result is discarded; use Dispatch to inspect it.
func (m *StateMachine) Send(message *Message) *StateMachine {
	m.Dispatch(context.Background(), message)

	return m
}

// Next dispatches the Empty message, following the unlabeled transition
// of the current state if one exists.
func (m *StateMachine) Next() *StateMachine {
	return m.Send(Empty())
}

// Dispatch resolves and commits a single transition:
//
//  1. Exact lookup of (current, message).
//  2. On a miss, wildcard lookup of (current, Any) — unless the message
//     itself is Empty or Any, which never fall back.
//  3. Still absent: the message is ignored, no filter runs.
//  4. Departure filters of the current state run in order; any
//     non-proceed status aborts with the cursor unchanged.
//  5. Arrival filters of the target run the same way; a partially
//     approved transition never commits.
//  6. The cursor moves to the target.
func (m *StateMachine) Dispatch(ctx context.Context, message *Message) DispatchResult {
	ctx, span := startDispatchSpan(ctx, m.current, message)
	defer span.End()

	if m.current == nil {
		return m.finish(span, DispatchResult{Outcome: Missed, Message: message})
	}

	target, ok := m.index.Next(m.current, message)
	if !ok && message.Kind() == KindNamed {
		target, ok = m.index.Next(m.current, Any())
	}

	if !ok {
		if m.logger != nil {
			m.logger.DispatchMissed(m.current, message)
		}

		return m.finish(span, DispatchResult{Outcome: Missed, From: m.current, Message: message})
	}

	transition := NewTransition(m.current, message, target)

	if status := m.runFilters(ctx, m.filters.LeavingFilters(m.current.Name(), message), transition); status != ProceedStatus {
		return m.abort(span, transition, status)
	}

	if status := m.runFilters(ctx, m.filters.ArrivingFilters(target.Name(), message), transition); status != ProceedStatus {
		return m.abort(span, transition, status)
	}

	m.current = target

	if m.logger != nil {
		m.logger.Dispatched(transition)
	}

	return m.finish(span, DispatchResult{
		Outcome: Dispatched,
		From:    transition.Origin(),
		To:      target,
		Message: message,
	})
}

// runFilters invokes the hooks in order, stopping at the first
// non-proceed status.
func (m *StateMachine) runFilters(
	ctx context.Context,
	filters []FilterFunc,
	transition *Transition,
) FilterStatus {
	for _, filter := range filters {
		if status := filter(ctx, transition); status != ProceedStatus {
			return status
		}
	}

	return ProceedStatus
}

func (m *StateMachine) abort(span trace.Span, transition *Transition, status FilterStatus) DispatchResult {
	if m.logger != nil {
		m.logger.DispatchAborted(transition, status)
	}

	return m.finish(span, DispatchResult{
		Outcome:      Aborted,
		From:         transition.Origin(),
		To:           transition.Target(),
		Message:      transition.Message(),
		FilterStatus: status,
	})
}

// finish records the dispatch outcome on the span and metrics.
func (m *StateMachine) finish(span trace.Span, result DispatchResult) DispatchResult {
	endDispatchSpan(span, result)
	dispatchesTotal.WithLabelValues(result.Outcome.String()).Inc()

	return result
}
