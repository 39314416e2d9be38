package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideLoanCreate(t *testing.T) {
	t.Run("new request starts pending", func(t *testing.T) {
		decision, err := DecideLoan(
			LoanOp{Kind: OpCreate},
			LoanSnapshot{BookAvailable: true},
		)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, decision.Status)
		assert.Equal(t, BookUnchanged, decision.Book)
		assert.False(t, decision.StampReturn)
	})

	t.Run("unavailable book may still be requested", func(t *testing.T) {
		decision, err := DecideLoan(
			LoanOp{Kind: OpCreate},
			LoanSnapshot{BookAvailable: false},
		)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, decision.Status)
	})

	t.Run("blocked requester is rejected", func(t *testing.T) {
		_, err := DecideLoan(
			LoanOp{Kind: OpCreate},
			LoanSnapshot{RequesterBlocked: true, BookAvailable: true},
		)
		assert.ErrorIs(t, err, ErrAccountBlocked)
	})

	t.Run("duplicate pending request is rejected", func(t *testing.T) {
		_, err := DecideLoan(
			LoanOp{Kind: OpCreate},
			LoanSnapshot{PendingDuplicate: true, BookAvailable: true},
		)
		assert.ErrorIs(t, err, ErrDuplicatePending)
	})

	t.Run("blocked wins over duplicate", func(t *testing.T) {
		_, err := DecideLoan(
			LoanOp{Kind: OpCreate},
			LoanSnapshot{RequesterBlocked: true, PendingDuplicate: true},
		)
		assert.ErrorIs(t, err, ErrAccountBlocked)
	})
}

func TestDecideLoanAccept(t *testing.T) {
	t.Run("accept holds the book", func(t *testing.T) {
		decision, err := DecideLoan(
			LoanOp{Kind: OpUpdateStatus, Target: StatusAccepted},
			LoanSnapshot{Status: StatusPending, BookAvailable: true},
		)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, decision.Status)
		assert.Equal(t, BookHeld, decision.Book)
		assert.False(t, decision.StampReturn)
	})

	t.Run("accept fails when book unavailable", func(t *testing.T) {
		_, err := DecideLoan(
			LoanOp{Kind: OpUpdateStatus, Target: StatusAccepted},
			LoanSnapshot{Status: StatusPending, BookAvailable: false},
		)
		assert.ErrorIs(t, err, ErrBookUnavailable)
	})
}

func TestDecideLoanRefuse(t *testing.T) {
	t.Run("refuse frees the book", func(t *testing.T) {
		decision, err := DecideLoan(
			LoanOp{Kind: OpUpdateStatus, Target: StatusRefused},
			LoanSnapshot{Status: StatusPending, BookAvailable: false},
		)
		require.NoError(t, err)
		assert.Equal(t, StatusRefused, decision.Status)
		assert.Equal(t, BookFreed, decision.Book)
	})

	t.Run("refuse on an available book keeps it available", func(t *testing.T) {
		decision, err := DecideLoan(
			LoanOp{Kind: OpUpdateStatus, Target: StatusRefused},
			LoanSnapshot{Status: StatusPending, BookAvailable: true},
		)
		require.NoError(t, err)
		assert.Equal(t, BookFreed, decision.Book)
	})
}

func TestDecideLoanReturn(t *testing.T) {
	decision, err := DecideLoan(
		LoanOp{Kind: OpUpdateStatus, Target: StatusReturned},
		LoanSnapshot{Status: StatusAccepted, BookAvailable: false},
	)
	require.NoError(t, err)
	assert.Equal(t, StatusReturned, decision.Status)
	assert.Equal(t, BookFreed, decision.Book)
	assert.True(t, decision.StampReturn)
}

func TestDecideLoanTransitions(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		err  error
	}{
		{"pending to accepted", StatusPending, StatusAccepted, nil},
		{"pending to refused", StatusPending, StatusRefused, nil},
		{"pending to returned", StatusPending, StatusReturned, ErrInvalidTransition},
		{"pending to pending", StatusPending, StatusPending, ErrInvalidTransition},
		{"accepted to returned", StatusAccepted, StatusReturned, nil},
		{"accepted to refused", StatusAccepted, StatusRefused, ErrInvalidTransition},
		{"accepted to accepted", StatusAccepted, StatusAccepted, ErrInvalidTransition},
		{"refused is terminal", StatusRefused, StatusAccepted, ErrInvalidTransition},
		{"returned is terminal", StatusReturned, StatusAccepted, ErrInvalidTransition},
		{"returned cannot be refused", StatusReturned, StatusRefused, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecideLoan(
				LoanOp{Kind: OpUpdateStatus, Target: tt.to},
				LoanSnapshot{Status: tt.from, BookAvailable: true},
			)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecideLoanUnknownStatus(t *testing.T) {
	_, err := DecideLoan(
		LoanOp{Kind: OpUpdateStatus, Target: Status("lost")},
		LoanSnapshot{Status: StatusPending, BookAvailable: true},
	)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRefused.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "accepted", "refused", "returned"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), status)
	}

	_, err := ParseStatus("Pending")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestEffectiveRoles(t *testing.T) {
	t.Run("empty stored set gets implicit user role", func(t *testing.T) {
		assert.Equal(t, []Role{RoleUser}, EffectiveRoles(nil))
	})

	t.Run("admin keeps both roles", func(t *testing.T) {
		assert.Equal(t, []Role{RoleUser, RoleAdmin}, EffectiveRoles([]Role{RoleAdmin}))
	})

	t.Run("stored user role is not duplicated", func(t *testing.T) {
		assert.Equal(t, []Role{RoleUser, RoleAdmin}, EffectiveRoles([]Role{RoleUser, RoleAdmin, RoleUser}))
	})
}
