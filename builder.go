package transit

// Builder provides a fluent API for constructing state machines.
//
//	machine, err := transit.NewBuilder().
//		From("locked").On("coin").To("unlocked").
//		From("unlocked").On("push").To("locked").
//		Build()
//
// Errors raised while adding transitions (for example a FailOnError
// validator rejection) are accumulated and surfaced by Build; the first
// error wins and later steps are no-ops.
type Builder struct {
	machine *StateMachine
	err     error
}

// NewBuilder creates a builder over a fresh machine.
func NewBuilder(opts ...MachineOption) *Builder {
	return &Builder{machine: NewStateMachine(opts...)}
}

// AddState inserts a state into the index without any transition, so
// properties and the final flag can be declared before the state is
// referenced by name.
func (b *Builder) AddState(state *State) *Builder {
	if b.err == nil {
		b.machine.Index().ensure(state)
	}

	return b
}

// From starts declaring a transition out of the named state.
func (b *Builder) From(name string) *TransitionBuilder {
	return &TransitionBuilder{builder: b, origin: name, message: Empty()}
}

// FromState starts declaring a transition out of the given state,
// merging its attributes into the index.
func (b *Builder) FromState(state *State) *TransitionBuilder {
	b.AddState(state)

	return b.From(state.Name())
}

// OnLeaving registers a departure filter for the named state.
func (b *Builder) OnLeaving(state string, fn FilterFunc) *Builder {
	b.machine.Filters().OnLeaving(state, fn)

	return b
}

// OnLeavingMessage registers a departure filter scoped to a message.
func (b *Builder) OnLeavingMessage(state string, message *Message, fn FilterFunc) *Builder {
	b.machine.Filters().OnLeavingMessage(state, message, fn)

	return b
}

// OnArriving registers an arrival filter for the named state.
func (b *Builder) OnArriving(state string, fn FilterFunc) *Builder {
	b.machine.Filters().OnArriving(state, fn)

	return b
}

// OnArrivingMessage registers an arrival filter scoped to a message.
func (b *Builder) OnArrivingMessage(state string, message *Message, fn FilterFunc) *Builder {
	b.machine.Filters().OnArrivingMessage(state, message, fn)

	return b
}

// Build returns the constructed machine, initializing the cursor to the
// first declared state. Building an empty machine leaves the cursor
// unset.
func (b *Builder) Build() (*StateMachine, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.machine.Index().Size() > 0 {
		if err := b.machine.Init(); err != nil {
			return nil, err
		}
	}

	return b.machine, nil
}

// TransitionBuilder declares a single transition of the fluent DSL.
// Without an On clause the transition is unlabeled.
type TransitionBuilder struct {
	builder *Builder
	origin  string
	message *Message
}

// On labels the transition with a named message.
func (tb *TransitionBuilder) On(payload string) *TransitionBuilder {
	tb.message = NewMessage(payload)

	return tb
}

// OnAny labels the transition as the wildcard fallback.
func (tb *TransitionBuilder) OnAny() *TransitionBuilder {
	tb.message = Any()

	return tb
}

// To completes the transition into the named state.
func (tb *TransitionBuilder) To(name string) *Builder {
	return tb.commit(name)
}

// ToSelf completes the transition looping back to the origin.
func (tb *TransitionBuilder) ToSelf() *Builder {
	return tb.commit(tb.origin)
}

func (tb *TransitionBuilder) commit(target string) *Builder {
	b := tb.builder
	if b.err != nil {
		return b
	}

	origin := tb.stateFor(tb.origin)
	b.err = b.machine.Add(NewTransition(origin, tb.message, tb.stateFor(target)))

	return b
}

// stateFor reuses the index record when the name is already known, so a
// bare name reference does not reset previously declared attributes.
func (tb *TransitionBuilder) stateFor(name string) *State {
	if state, ok := tb.builder.machine.Index().Find(name); ok {
		return state
	}

	return NewState(name)
}
