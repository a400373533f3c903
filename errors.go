package transit

import (
	"errors"
	"fmt"
)

// Predefined error types.
var (
	// ErrStateNotFound indicates a lookup by state name failed.
	ErrStateNotFound = errors.New("state not found")
	// ErrIndexEmpty indicates an operation requiring at least one state
	// found an empty index.
	ErrIndexEmpty = errors.New("transition index is empty")
	// ErrValidationFailed indicates a mutation was rejected by the
	// transition validator.
	ErrValidationFailed = errors.New("transition validation failed")
	// ErrIllegalTransition indicates a transition departing a final state.
	ErrIllegalTransition = errors.New("illegal transition from final state")
	// ErrExportFailed indicates an exporter could not write its output.
	ErrExportFailed = errors.New("export failed")

	// ErrConfigNameRequired indicates that a configuration name is required.
	ErrConfigNameRequired = errors.New("config name is required")
	// ErrConfigStateRequired indicates that at least one state is required.
	ErrConfigStateRequired = errors.New("at least one state is required")
	// ErrConfigStateNameRequired indicates that a state name is required.
	ErrConfigStateNameRequired = errors.New("state name is required")
	// ErrConfigDuplicateState indicates that a duplicate state name was found.
	ErrConfigDuplicateState = errors.New("duplicate state name")
	// ErrConfigTransitionEndpoint indicates a transition is missing its
	// from or to state.
	ErrConfigTransitionEndpoint = errors.New("transition requires from and to states")
	// ErrConfigUnknownState indicates a transition references an
	// undeclared state.
	ErrConfigUnknownState = errors.New("transition references unknown state")
	// ErrConfigInitialStateNotFound indicates the initial state does not exist.
	ErrConfigInitialStateNotFound = errors.New("initial state does not exist")
)

// StateError wraps an error with state context.
type StateError struct {
	State string
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state %s: %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// ValidationError carries the validator's rejection of a mutation.
// It is surfaced only under the FailOnError policy.
type ValidationError struct {
	Description string
	Err         error
}

func (e *ValidationError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("validation failed: %s", e.Description)
	}

	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}

	return ErrValidationFailed
}

// ExportError wraps an underlying I/O failure during export without
// leaking lower-level error types to callers matching on ErrExportFailed.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return ErrExportFailed
}

// WrapStateError wraps an error with state context.
func WrapStateError(state string, err error) error {
	if err == nil {
		return nil
	}

	return &StateError{
		State: state,
		Err:   err,
	}
}
