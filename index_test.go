package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addABBC populates an index with [ A --1--> B, B --2--> C ].
func addABBC(t *testing.T, index *TransitionIndex) {
	t.Helper()

	require.NoError(t, index.Add(NewTransition(NewState("A"), NewMessage("1"), NewState("B"))))
	require.NoError(t, index.Add(NewTransition(NewState("B"), NewMessage("2"), NewState("C"))))
}

func TestIndexAdd(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	addABBC(t, index)

	a, ok := index.Find("A")
	require.True(t, ok)

	next, ok := index.Next(a, NewMessage("1"))
	require.True(t, ok)
	assert.Equal(t, "B", next.Name())

	// Both endpoints are top-level entries, targets included.
	assert.True(t, index.Contains(NewState("A")))
	assert.True(t, index.Contains(NewState("B")))
	assert.True(t, index.Contains(NewState("C")))
	assert.Equal(t, 3, index.Size())
}

func TestIndexAddIsIdempotent(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	transition := NewTransition(NewState("A"), NewMessage("1"), NewState("B"))

	require.NoError(t, index.Add(transition))
	require.NoError(t, index.Add(NewTransition(NewState("A"), NewMessage("1"), NewState("B"))))

	assert.Len(t, index.AllTransitions(), 1)
	assert.Equal(t, 2, index.Size())
}

func TestIndexAddOverwritesTarget(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	require.NoError(t, index.Add(NewTransition(NewState("A"), NewMessage("1"), NewState("B"))))
	require.NoError(t, index.Add(NewTransition(NewState("A"), NewMessage("1"), NewState("C"))))

	a, _ := index.Find("A")
	next, ok := index.Next(a, NewMessage("1"))
	require.True(t, ok)
	assert.Equal(t, "C", next.Name())

	// B is now unreachable with no outgoing transitions.
	orphans := index.Prune()
	require.Len(t, orphans, 1)
	assert.Equal(t, "B", orphans[0].Name())
	assert.False(t, index.Contains(NewState("B")))
}

func TestIndexMergesStateAttributes(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	require.NoError(t, index.Add(NewTransition(
		NewState("A").WithProperty("shape", "box"), NewMessage("1"), NewState("B"))))
	require.NoError(t, index.Add(NewTransition(
		NewState("A").WithProperty("color", "red"), NewMessage("2"), NewState("C"))))

	require.Equal(t, 3, index.Size())

	a, ok := index.Find("A")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"shape": "box", "color": "red"}, a.Properties())
}

func TestIndexRejectsTransitionFromFinalState(t *testing.T) {
	t.Parallel()

	t.Run("fail on error", func(t *testing.T) {
		t.Parallel()

		index := NewTransitionIndex(WithFailurePolicy(FailOnError))
		require.NoError(t, index.Add(NewTransition(NewState("A"), NewMessage("1"), NewFinalState("F"))))

		err := index.Add(NewTransition(NewState("F"), NewMessage("2"), NewState("X")))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIllegalTransition)
		assert.False(t, index.Contains(NewState("X")))
	})

	t.Run("proceed", func(t *testing.T) {
		t.Parallel()

		index := NewTransitionIndex()
		require.NoError(t, index.Add(NewTransition(NewState("A"), NewMessage("1"), NewFinalState("F"))))

		require.NoError(t, index.Add(NewTransition(NewState("F"), NewMessage("2"), NewState("X"))))

		// Silent no-op: the index is unchanged.
		assert.False(t, index.Contains(NewState("X")))
		assert.Len(t, index.AllTransitions(), 1)
	})

	t.Run("final flag read from index record", func(t *testing.T) {
		t.Parallel()

		index := NewTransitionIndex(WithFailurePolicy(FailOnError))
		require.NoError(t, index.Add(NewTransition(NewState("A"), NewMessage("1"), NewFinalState("F"))))

		// Referencing F by a bare name does not bypass the rule.
		err := index.Add(NewTransition(NewState("F"), NewMessage("2"), NewState("X")))
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})
}

func TestIndexCustomValidator(t *testing.T) {
	t.Parallel()

	rejectAll := ValidatorFunc(func(*Transition, *TransitionIndex, Operation) ValidationResult {
		return Invalid("nothing is allowed")
	})

	index := NewTransitionIndex(WithValidator(rejectAll), WithFailurePolicy(FailOnError))

	err := index.Add(NewTransition(NewState("A"), NewMessage("1"), NewState("B")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "nothing is allowed")
}

func TestIndexRemoveTransition(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	addABBC(t, index)

	require.NoError(t, index.Remove(NewTransition(NewState("A"), NewMessage("1"), NewState("B"))))

	a, _ := index.Find("A")
	_, ok := index.Next(a, NewMessage("1"))
	assert.False(t, ok)

	// State vertices stay.
	assert.Equal(t, 3, index.Size())

	// Removing an absent transition is a no-op.
	require.NoError(t, index.Remove(NewTransition(NewState("Z"), NewMessage("9"), NewState("A"))))
}

func TestIndexRemoveState(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	addABBC(t, index)

	require.NoError(t, index.RemoveStateByName("B"))

	assert.Equal(t, 2, index.Size())
	assert.False(t, index.Contains(NewState("B")))

	// The transition A --1--> B went away with its target.
	a, _ := index.Find("A")
	_, ok := index.Next(a, NewMessage("1"))
	assert.False(t, ok)

	err := index.RemoveStateByName("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestIndexPreviousReturnsFirstMatch(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	require.NoError(t, index.Add(NewTransition(NewState("A"), NewMessage("go"), NewState("C"))))
	require.NoError(t, index.Add(NewTransition(NewState("B"), NewMessage("go"), NewState("C"))))

	c, _ := index.Find("C")
	previous, ok := index.Previous(c, NewMessage("go"))
	require.True(t, ok)
	assert.Equal(t, "A", previous.Name())

	_, ok = index.Previous(c, NewMessage("stop"))
	assert.False(t, ok)
}

func TestIndexFirstFollowsInsertionOrder(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()

	_, ok := index.First()
	assert.False(t, ok)

	addABBC(t, index)

	first, ok := index.First()
	require.True(t, ok)
	assert.Equal(t, "A", first.Name())
}

func TestIndexContainsTransition(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	addABBC(t, index)

	assert.True(t, index.ContainsTransition(NewTransition(NewState("A"), NewMessage("1"), NewState("B"))))
	assert.False(t, index.ContainsTransition(NewTransition(NewState("A"), NewMessage("1"), NewState("C"))))
	assert.False(t, index.ContainsTransition(NewTransition(NewState("A"), NewMessage("9"), NewState("B"))))
}

func TestIndexPruneIsNonCascading(t *testing.T) {
	t.Parallel()

	// X --m--> Y, Y has no outgoing transitions and X no incoming ones.
	index := NewTransitionIndex()
	require.NoError(t, index.Add(NewTransition(NewState("X"), NewMessage("m"), NewState("Y"))))

	// Y is referenced and X has a non-empty outgoing set, so neither is
	// an orphan in this pass.
	orphans := index.Prune()
	assert.Empty(t, orphans)

	require.NoError(t, index.Remove(NewTransition(NewState("X"), NewMessage("m"), NewState("Y"))))

	// Now both have empty outgoing sets and no incoming references.
	orphans = index.Prune()
	assert.Len(t, orphans, 2)
	assert.Equal(t, 0, index.Size())
}

func TestIndexTransitions(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	addABBC(t, index)

	transitions, err := index.Transitions("A")
	require.NoError(t, err)
	require.Len(t, transitions, 1)
	assert.Equal(t, "B", transitions[0].Target().Name())

	transitions, err = index.Transitions("C")
	require.NoError(t, err)
	assert.Empty(t, transitions)

	_, err = index.Transitions("missing")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestIndexAllTransitionsOrdering(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	require.NoError(t, index.AddAll(
		NewTransition(NewState("A"), NewMessage("1"), NewState("B")),
		NewTransition(NewState("A"), NewMessage("2"), NewState("C")),
		NewTransition(NewState("B"), NewMessage("3"), NewState("C")),
	))

	var rendered []string
	for _, transition := range index.AllTransitions() {
		rendered = append(rendered, transition.String())
	}

	assert.Equal(t, []string{
		"A --[1]--> B",
		"A --[2]--> C",
		"B --[3]--> C",
	}, rendered)
}

func TestIndexRoundTrip(t *testing.T) {
	t.Parallel()

	original := NewTransitionIndex()
	require.NoError(t, original.AddAll(
		NewTransition(NewState("A"), NewMessage("1"), NewState("B")),
		NewTransition(NewState("B"), Any(), NewState("C")),
		NewTransition(NewState("C"), Empty(), NewState("A")),
	))

	rebuilt := NewTransitionIndex()
	require.NoError(t, rebuilt.AddAll(original.AllTransitions()...))

	want := make(map[string]bool)
	for _, transition := range original.AllTransitions() {
		want[transition.String()] = true
	}

	got := make(map[string]bool)
	for _, transition := range rebuilt.AllTransitions() {
		got[transition.String()] = true
	}

	assert.Equal(t, want, got)
	assert.Equal(t, original.Size(), rebuilt.Size())
}

func TestIndexRemoveAllTransitionsAndClear(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	addABBC(t, index)

	index.RemoveAllTransitions()
	assert.Empty(t, index.AllTransitions())
	assert.Equal(t, 3, index.Size())

	index.Clear()
	assert.Equal(t, 0, index.Size())

	_, ok := index.First()
	assert.False(t, ok)
}

func TestIndexSeqOrdering(t *testing.T) {
	t.Parallel()

	index := NewTransitionIndex()
	addABBC(t, index)

	var names []string
	for state, transitions := range index.Seq() {
		names = append(names, state.Name())

		if state.Name() == "C" {
			assert.Empty(t, transitions)
		}
	}

	assert.Equal(t, []string{"A", "B", "C"}, names)
}
