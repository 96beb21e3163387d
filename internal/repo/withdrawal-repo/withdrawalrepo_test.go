package withdrawalrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func withdrawalRows(mock pgxmock.PgxPoolIface, wd *domain.Withdrawal) *pgxmock.Rows {
	return mock.NewRows([]string{
		"id", "user_id", "amount_cents", "method", "destination", "status",
		"rejection_reason", "created_at", "processing_at", "completed_at", "rejected_at",
	}).AddRow(
		wd.ID, wd.UserID, wd.AmountCents, wd.Method, wd.Destination, wd.Status,
		wd.RejectionReason, wd.CreatedAt, wd.ProcessingAt, wd.CompletedAt, wd.RejectedAt,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`INSERT INTO withdrawals (user_id, amount_cents, method, destination, status) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`)
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("inserted", func(t *testing.T) {
		wd := &domain.Withdrawal{UserID: 1, AmountCents: 1500, Method: "paypal", Destination: "user@example.com", Status: domain.WithdrawalPending}
		mock.ExpectQuery(query).
			WithArgs(1, int64(1500), "paypal", "user@example.com", domain.WithdrawalPending).
			WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow(5, createdAt))

		saved, err := repo.Create(context.Background(), wd)
		assert.NoError(t, err)
		assert.Equal(t, 5, saved.ID)
		assert.Equal(t, createdAt, saved.CreatedAt)
	})

	t.Run("database error", func(t *testing.T) {
		wd := &domain.Withdrawal{UserID: 1, AmountCents: 1500, Method: "paypal", Destination: "user@example.com", Status: domain.WithdrawalPending}
		mock.ExpectQuery(query).
			WithArgs(1, int64(1500), "paypal", "user@example.com", domain.WithdrawalPending).
			WillReturnError(errors.New("database error"))

		saved, err := repo.Create(context.Background(), wd)
		assert.Error(t, err)
		assert.Nil(t, saved)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByIDForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`SELECT id, user_id, amount_cents, method, destination, status, rejection_reason, created_at, processing_at, completed_at, rejected_at FROM withdrawals WHERE id = $1 FOR UPDATE`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Withdrawal
	}{
		{
			name: "existing withdrawal",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(5).
					WillReturnRows(withdrawalRows(mock, &domain.Withdrawal{ID: 5, UserID: 1, AmountCents: 1500, Method: "paypal", Destination: "user@example.com", Status: domain.WithdrawalPending}))
			},
			result: &domain.Withdrawal{ID: 5, UserID: 1, AmountCents: 1500, Method: "paypal", Destination: "user@example.com", Status: domain.WithdrawalPending},
		},
		{
			name: "missing withdrawal returns nil",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(5).WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(5).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByIDForUpdate(context.Background(), 5)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`SELECT id, user_id, amount_cents, method, destination, status, rejection_reason, created_at, processing_at, completed_at, rejected_at FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC`)

	t.Run("rows returned", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(1).
			WillReturnRows(withdrawalRows(mock, &domain.Withdrawal{ID: 5, UserID: 1, AmountCents: 1500, Method: "paypal", Destination: "user@example.com", Status: domain.WithdrawalPending}))

		withdrawals, err := repo.GetByUserID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Len(t, withdrawals, 1)
		assert.Equal(t, int64(1500), withdrawals[0].AmountCents)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(1).WillReturnError(errors.New("database error"))

		withdrawals, err := repo.GetByUserID(context.Background(), 1)
		assert.Error(t, err)
		assert.Nil(t, withdrawals)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountSince(t *testing.T) {
	repo, mock := NewMock(t)
	since := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`SELECT COUNT(*), MIN(created_at) FROM withdrawals WHERE user_id = $1 AND created_at > $2`)

	t.Run("non-empty window", func(t *testing.T) {
		first := since.Add(10 * time.Minute)
		mock.ExpectQuery(query).WithArgs(1, since).
			WillReturnRows(mock.NewRows([]string{"count", "min"}).AddRow(2, &first))

		count, oldest, err := repo.CountSince(context.Background(), 1, since)
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		if assert.NotNil(t, oldest) {
			assert.Equal(t, first, *oldest)
		}
	})

	t.Run("empty window has no oldest", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(1, since).
			WillReturnRows(mock.NewRows([]string{"count", "min"}).AddRow(0, (*time.Time)(nil)))

		count, oldest, err := repo.CountSince(context.Background(), 1, since)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Nil(t, oldest)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM withdrawals WHERE user_id = $1 AND status <> $2`)).
		WithArgs(1, domain.WithdrawalRejected).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	reason := "fraud suspected"

	t.Run("guarded transition applies", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals SET status = $1, rejection_reason = COALESCE($2, rejection_reason), processing_at = $3 WHERE id = $4 AND status = $5`)).
			WithArgs(domain.WithdrawalProcessing, (*string)(nil), at, 5, domain.WithdrawalPending).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		ok, err := repo.UpdateStatus(context.Background(), 5, domain.WithdrawalPending, domain.WithdrawalProcessing, nil, at)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("guard miss reports false", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE withdrawals SET status = $1, rejection_reason = COALESCE($2, rejection_reason), rejected_at = $3 WHERE id = $4 AND status = $5`)).
			WithArgs(domain.WithdrawalRejected, &reason, at, 5, domain.WithdrawalProcessing).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		ok, err := repo.UpdateStatus(context.Background(), 5, domain.WithdrawalProcessing, domain.WithdrawalRejected, &reason, at)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("pending has no timestamp column", func(t *testing.T) {
		ok, err := repo.UpdateStatus(context.Background(), 5, domain.WithdrawalProcessing, domain.WithdrawalPending, nil, at)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}
