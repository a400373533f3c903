package transit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidator(t *testing.T) {
	t.Parallel()

	validator := NewDefaultValidator()
	index := NewTransitionIndex()

	t.Run("add from regular state", func(t *testing.T) {
		t.Parallel()

		result := validator.Validate(
			NewTransition(NewState("A"), NewMessage("1"), NewState("B")), index, OperationAdd)
		assert.True(t, result.Valid)
	})

	t.Run("add from final state", func(t *testing.T) {
		t.Parallel()

		result := validator.Validate(
			NewTransition(NewFinalState("F"), NewMessage("1"), NewState("B")), index, OperationAdd)
		require.False(t, result.Valid)
		assert.ErrorIs(t, result.Err, ErrIllegalTransition)
		assert.Contains(t, result.Description, "F")
	})

	t.Run("remove is always permissive", func(t *testing.T) {
		t.Parallel()

		result := validator.Validate(
			NewTransition(NewFinalState("F"), NewMessage("1"), NewState("B")), index, OperationRemove)
		assert.True(t, result.Valid)
	})
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	withCause := &ValidationError{Description: "rejected", Err: ErrIllegalTransition}
	assert.ErrorIs(t, withCause, ErrIllegalTransition)
	assert.Equal(t, "validation failed: rejected", withCause.Error())

	errCause := errors.New("boom")
	withoutDescription := &ValidationError{Err: errCause}
	assert.Equal(t, "validation failed: boom", withoutDescription.Error())

	// Without a typed cause the error still matches ErrValidationFailed.
	descriptionOnly := &ValidationError{Description: "rejected"}
	assert.ErrorIs(t, descriptionOnly, ErrValidationFailed)
}

func TestOperationString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "add", OperationAdd.String())
	assert.Equal(t, "remove", OperationRemove.String())
}
