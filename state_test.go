package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateEqualsByName(t *testing.T) {
	t.Parallel()

	a1 := NewState("A")
	a2 := NewState("A").WithProperty("color", "red")
	b := NewState("B")

	assert.True(t, a1.Equals(a2))
	assert.False(t, a1.Equals(b))
	assert.False(t, a1.Equals(nil))
}

func TestStateMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		receiver *State
		incoming *State
		want     map[string]string
		final    bool
	}{
		{
			name:     "union of properties",
			receiver: NewState("A").WithProperty("shape", "box"),
			incoming: NewState("A").WithProperty("color", "red"),
			want:     map[string]string{"shape": "box", "color": "red"},
		},
		{
			name:     "newest wins on conflict",
			receiver: NewState("A").WithProperty("color", "red"),
			incoming: NewState("A").WithProperty("color", "blue"),
			want:     map[string]string{"color": "blue"},
		},
		{
			name:     "final flag is sticky",
			receiver: NewFinalState("A"),
			incoming: NewState("A"),
			want:     map[string]string{},
			final:    true,
		},
		{
			name:     "final flag gained",
			receiver: NewState("A"),
			incoming: NewFinalState("A"),
			want:     map[string]string{},
			final:    true,
		},
		{
			name:     "different name is a no-op",
			receiver: NewState("A").WithProperty("color", "red"),
			incoming: NewState("B").WithProperty("color", "blue"),
			want:     map[string]string{"color": "red"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.receiver.Merge(tt.incoming)

			assert.Equal(t, tt.want, tt.receiver.Properties())
			assert.Equal(t, tt.final, tt.receiver.IsFinal())
		})
	}
}

func TestStatePropertyAccessors(t *testing.T) {
	t.Parallel()

	state := NewState("A").WithProperty("color", "red")

	assert.True(t, state.HasProperty("color"))
	assert.False(t, state.HasProperty("shape"))

	value, ok := state.Property("color")
	assert.True(t, ok)
	assert.Equal(t, "red", value)

	// Properties returns a copy, not the live map.
	state.Properties()["color"] = "blue"
	value, _ = state.Property("color")
	assert.Equal(t, "red", value)
}
