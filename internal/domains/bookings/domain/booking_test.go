package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking(t *testing.T) *Booking {
	t.Helper()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	booking, err := NewBooking(1, 10, 20, []int64{100}, start, start.AddDate(0, 0, 3), 120)
	require.NoError(t, err)
	return booking
}

func TestNewBooking_StartsPending(t *testing.T) {
	booking := validBooking(t)
	assert.Equal(t, StatusPending, booking.Status)
}

func TestNewBooking_RejectsSameParties(t *testing.T) {
	start := time.Now()
	_, err := NewBooking(1, 10, 10, []int64{100}, start, start.Add(time.Hour), 50)
	require.ErrorIs(t, err, ErrSameParties)
}

func TestNewBooking_RequiresPets(t *testing.T) {
	start := time.Now()
	_, err := NewBooking(1, 10, 20, nil, start, start.Add(time.Hour), 50)
	require.ErrorIs(t, err, ErrNoPets)
}

func TestNewBooking_RejectsInvertedInterval(t *testing.T) {
	start := time.Now()
	_, err := NewBooking(1, 10, 20, []int64{100}, start, start, 50)
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestNewBooking_RejectsNegativeAmount(t *testing.T) {
	start := time.Now()
	_, err := NewBooking(1, 10, 20, []int64{100}, start, start.Add(time.Hour), -1)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestTransitionTo_NonTerminalMovesAreFree(t *testing.T) {
	moves := [][2]Status{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusPending},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, move := range moves {
		booking := validBooking(t)
		booking.Status = move[0]
		require.NoError(t, booking.TransitionTo(move[1]), "%s -> %s", move[0], move[1])
		assert.Equal(t, move[1], booking.Status)
	}
}

func TestTransitionTo_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []Status{StatusCompleted, StatusCancelled} {
		booking := validBooking(t)
		booking.Status = terminal
		for _, next := range KnownStatuses {
			if next == terminal {
				continue
			}
			err := booking.TransitionTo(next)
			require.ErrorIs(t, err, ErrTerminalStatus, "%s -> %s", terminal, next)
			assert.Equal(t, terminal, booking.Status)
		}
	}
}

func TestTransitionTo_SelfTransitionOnTerminalIsNoop(t *testing.T) {
	booking := validBooking(t)
	booking.Status = StatusCompleted
	require.NoError(t, booking.TransitionTo(StatusCompleted))
	assert.Equal(t, StatusCompleted, booking.Status)
}

func TestTransitionTo_RejectsUnknownStatus(t *testing.T) {
	booking := validBooking(t)
	err := booking.TransitionTo("ARCHIVED")
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, StatusPending, booking.Status)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestReplacePets_CopiesInput(t *testing.T) {
	booking := validBooking(t)
	ids := []int64{1, 2}
	require.NoError(t, booking.ReplacePets(ids))
	ids[0] = 99
	assert.Equal(t, int64(1), booking.PetIDs[0])
}
