package transit

import "log/slog"

// Logger provides logging hooks for index mutations and dispatch.
type Logger interface {
	TransitionAdded(transition *Transition)
	TransitionRemoved(transition *Transition)
	Dispatched(transition *Transition)
	DispatchMissed(current *State, message *Message)
	DispatchAborted(transition *Transition, status FilterStatus)
	StatesPruned(states []*State)
}

// DefaultLogger implements Logger using slog.
type DefaultLogger struct {
	logger *slog.Logger
}

// NewDefaultLogger creates a logger backed by slog.Default.
func NewDefaultLogger() *DefaultLogger {
	return NewSlogLogger(slog.Default())
}

// NewSlogLogger creates a logger backed by the given slog.Logger.
func NewSlogLogger(logger *slog.Logger) *DefaultLogger {
	return &DefaultLogger{logger: logger}
}

func (l *DefaultLogger) TransitionAdded(transition *Transition) {
	l.logger.Debug("Transition added",
		"from", transition.Origin().Name(),
		"message", transition.Message().String(),
		"to", transition.Target().Name(),
	)
}

func (l *DefaultLogger) TransitionRemoved(transition *Transition) {
	l.logger.Debug("Transition removed",
		"from", transition.Origin().Name(),
		"message", transition.Message().String(),
		"to", transition.Target().Name(),
	)
}

func (l *DefaultLogger) Dispatched(transition *Transition) {
	l.logger.Info("Message dispatched",
		"from", transition.Origin().Name(),
		"message", transition.Message().String(),
		"to", transition.Target().Name(),
	)
}

func (l *DefaultLogger) DispatchMissed(current *State, message *Message) {
	currentName := ""
	if current != nil {
		currentName = current.Name()
	}

	l.logger.Debug("Message ignored, no transition",
		"current", currentName,
		"message", message.String(),
	)
}

func (l *DefaultLogger) DispatchAborted(transition *Transition, status FilterStatus) {
	l.logger.Info("Dispatch aborted by filter",
		"from", transition.Origin().Name(),
		"message", transition.Message().String(),
		"to", transition.Target().Name(),
		"status", status.String(),
	)
}

func (l *DefaultLogger) StatesPruned(states []*State) {
	names := make([]string, 0, len(states))
	for _, state := range states {
		names = append(names, state.Name())
	}

	l.logger.Info("Orphan states pruned", "states", names)
}
