package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransitionHappyPath(t *testing.T) {
	next, err := Transition(StateIdle, EventPress)
	require.NoError(t, err)
	require.Equal(t, StateRecording, next)

	next, err = Transition(next, EventRelease)
	require.NoError(t, err)
	require.Equal(t, StateIdle, next)
}

func TestTransitionFailFromAnyStateGoesError(t *testing.T) {
	for _, state := range []State{StateIdle, StateRecording, StateError} {
		next, err := Transition(state, EventFail)
		require.NoError(t, err)
		require.Equal(t, StateError, next)
	}
}

func TestTransitionResetLeavesError(t *testing.T) {
	next, err := Transition(StateError, EventReset)
	require.NoError(t, err)
	require.Equal(t, StateIdle, next)
}

func TestTransitionMatrixInvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		state State
		event Event
	}{
		{name: "idle release", state: StateIdle, event: EventRelease},
		{name: "idle reset", state: StateIdle, event: EventReset},
		{name: "recording press", state: StateRecording, event: EventPress},
		{name: "recording reset", state: StateRecording, event: EventReset},
		{name: "error press", state: StateError, event: EventPress},
		{name: "error release", state: StateError, event: EventRelease},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Transition(tc.state, tc.event)
			require.Error(t, err)
			require.Equal(t, tc.state, next)
			require.Contains(t, err.Error(), "invalid transition")
		})
	}
}

func TestTransitionUnknownState(t *testing.T) {
	_, err := Transition(State("transcribing"), EventPress)
	require.ErrorContains(t, err, "unknown state")
}
