package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"biblio-backend/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStatsService(db *gorm.DB) *StatsService {
	return NewStatsService(
		repositories.NewBookRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewLoanRequestRepository(db),
	)
}

func TestStatsServiceOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newStatsService(db)

		overview, err := svc.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), overview.BorrowedBooks)
		assert.Equal(t, int64(0), overview.Users)
		assert.Equal(t, int64(0), overview.PendingRequests)
	})

	t.Run("counters follow the loan lifecycle", func(t *testing.T) {
		db := setupTestDB(t)
		statsSvc := newStatsService(db)
		loanSvc := newLoanService(db)

		admin := createTestUser(t, db, "admin@biblio.com", []string{"ADMIN"}, false)
		reader := createTestUser(t, db, "reader@biblio.com", nil, false)
		borrowed := createTestBook(t, db, "Borrowed", true)
		createTestBook(t, db, "On Shelf", true)

		req, err := loanSvc.Create(ctx, reader.Actor(), &CreateLoanInput{Book: fmt.Sprintf("%d", borrowed.ID)})
		require.NoError(t, err)

		overview, err := statsSvc.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), overview.BorrowedBooks)
		assert.Equal(t, int64(2), overview.Users)
		assert.Equal(t, int64(1), overview.PendingRequests)

		_, err = loanSvc.UpdateStatus(ctx, admin.Actor(), req.ID, "accepted")
		require.NoError(t, err)

		overview, err = statsSvc.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), overview.BorrowedBooks)
		assert.Equal(t, int64(0), overview.PendingRequests)

		_, err = loanSvc.UpdateStatus(ctx, admin.Actor(), req.ID, "returned")
		require.NoError(t, err)

		overview, err = statsSvc.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), overview.BorrowedBooks)
	})
}

func TestStatsOverviewWireFormat(t *testing.T) {
	data, err := json.Marshal(&Overview{BorrowedBooks: 3, Users: 12, PendingRequests: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"livres_empruntes":3,"utilisateurs":12,"demandes_en_attente":2}`, string(data))
}
