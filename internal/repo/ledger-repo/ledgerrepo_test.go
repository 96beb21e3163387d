package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
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

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`INSERT INTO transactions (user_id, type, amount_cents, balance_after_cents, source, status) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`)
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("inserted", func(t *testing.T) {
		txn := &domain.Transaction{
			UserID:            1,
			Type:              domain.TransactionEarning,
			AmountCents:       150,
			BalanceAfterCents: 1150,
			Source:            "lootably",
			Status:            "completed",
		}
		mock.ExpectQuery(query).
			WithArgs(1, domain.TransactionEarning, int64(150), int64(1150), "lootably", "completed").
			WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow(7, createdAt))

		saved, err := repo.Create(context.Background(), txn)
		assert.NoError(t, err)
		assert.Equal(t, 7, saved.ID)
		assert.Equal(t, createdAt, saved.CreatedAt)
	})

	t.Run("database error", func(t *testing.T) {
		txn := &domain.Transaction{UserID: 1, Type: domain.TransactionEarning, AmountCents: 150, BalanceAfterCents: 1150, Source: "lootably", Status: "completed"}
		mock.ExpectQuery(query).
			WithArgs(1, domain.TransactionEarning, int64(150), int64(1150), "lootably", "completed").
			WillReturnError(errors.New("database error"))

		saved, err := repo.Create(context.Background(), txn)
		assert.Error(t, err)
		assert.Nil(t, saved)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`SELECT id, user_id, type, amount_cents, balance_after_cents, source, status, created_at FROM transactions WHERE user_id = $1 ORDER BY created_at DESC, id DESC`)
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "rows returned newest first",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).
					WillReturnRows(mock.NewRows([]string{
						"id", "user_id", "type", "amount_cents", "balance_after_cents", "source", "status", "created_at",
					}).
						AddRow(8, 1, domain.TransactionWithdrawal, int64(500), int64(650), "paypal", "completed", createdAt.Add(time.Hour)).
						AddRow(7, 1, domain.TransactionEarning, int64(150), int64(1150), "lootably", "completed", createdAt))
			},
			count: 2,
		},
		{
			name: "no rows",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).
					WillReturnRows(mock.NewRows([]string{
						"id", "user_id", "type", "amount_cents", "balance_after_cents", "source", "status", "created_at",
					}))
			},
			count: 0,
		},
		{
			name: "database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			txns, err := repo.FindByUserID(context.Background(), 1)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, txns, tt.count)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
