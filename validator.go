package transit

// Operation identifies the index mutation being validated.
type Operation int

const (
	// OperationAdd is the insertion of a transition.
	OperationAdd Operation = iota
	// OperationRemove is the removal of a transition.
	OperationRemove
)

func (o Operation) String() string {
	if o == OperationRemove {
		return "remove"
	}

	return "add"
}

// FailurePolicy controls how the index reacts to a rejected mutation.
type FailurePolicy int

const (
	// Proceed silently drops invalid operations.
	Proceed FailurePolicy = iota
	// FailOnError surfaces invalid operations as a ValidationError.
	FailOnError
)

// ValidationResult is the validator's verdict on a candidate mutation.
// Err optionally carries a typed cause surfaced under FailOnError.
type ValidationResult struct {
	Valid       bool
	Description string
	Err         error
}

// Valid returns an approving result.
func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

// Invalid returns a rejecting result with a human-readable description.
func Invalid(description string) ValidationResult {
	return ValidationResult{Description: description}
}

// InvalidWithCause returns a rejecting result carrying a typed error cause.
func InvalidWithCause(description string, err error) ValidationResult {
	return ValidationResult{Description: description, Err: err}
}

// TransitionValidator approves or rejects index mutations. The index
// treats it as an opaque capability; callers substitute their own
// implementation to encode domain-specific legality rules.
type TransitionValidator interface {
	Validate(transition *Transition, index *TransitionIndex, operation Operation) ValidationResult
}

// ValidatorFunc adapts a function to the TransitionValidator interface.
type ValidatorFunc func(transition *Transition, index *TransitionIndex, operation Operation) ValidationResult

func (f ValidatorFunc) Validate(
	transition *Transition,
	index *TransitionIndex,
	operation Operation,
) ValidationResult {
	return f(transition, index, operation)
}

// DefaultValidator rejects transitions departing a final state and
// permits everything else. Removal is always permissive.
type DefaultValidator struct{}

// NewDefaultValidator creates the built-in validator.
func NewDefaultValidator() *DefaultValidator {
	return &DefaultValidator{}
}

// Validate checks the candidate transition against the current index.
// The origin's final flag is read from the index record when the origin
// is already known, so a bare re-reference by name cannot bypass the rule.
func (v *DefaultValidator) Validate(
	transition *Transition,
	index *TransitionIndex,
	operation Operation,
) ValidationResult {
	if operation != OperationAdd {
		return Valid()
	}

	origin := transition.Origin()
	if known, ok := index.Find(origin.Name()); ok {
		origin = known
	}

	if origin.IsFinal() {
		return InvalidWithCause(
			"state "+origin.Name()+" is final and cannot have outgoing transitions",
			ErrIllegalTransition,
		)
	}

	return Valid()
}
