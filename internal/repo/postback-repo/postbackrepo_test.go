package postbackrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
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

func TestRepository_Exists(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM postbacks WHERE offerwall_id = $1 AND external_id = $2)`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		exists    bool
	}{
		{
			name: "already recorded",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("lootably", "txn-1").
					WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
			},
			exists: true,
		},
		{
			name: "not recorded",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("lootably", "txn-1").
					WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
			},
			exists: false,
		},
		{
			name: "database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("lootably", "txn-1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			exists, err := repo.Exists(context.Background(), "lootably", "txn-1")

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.exists, exists)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`INSERT INTO postbacks (offerwall_id, external_id, user_id, offer_id, offer_name, payout_cents, status, raw_payload, ip_address) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at`)
	createdAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	postback := func() *domain.Postback {
		return &domain.Postback{
			OfferwallID: "lootably",
			ExternalID:  "txn-1",
			UserID:      1,
			OfferID:     "offer-9",
			OfferName:   "Survey",
			PayoutCents: 150,
			Status:      domain.PostbackCredited,
			RawPayload:  `{"sub1":"1"}`,
			IPAddress:   "203.0.113.9",
		}
	}

	t.Run("inserted", func(t *testing.T) {
		pb := postback()
		mock.ExpectQuery(query).
			WithArgs("lootably", "txn-1", 1, "offer-9", "Survey", int64(150),
				domain.PostbackCredited, `{"sub1":"1"}`, "203.0.113.9").
			WillReturnRows(mock.NewRows([]string{"id", "created_at"}).AddRow(42, createdAt))

		saved, err := repo.Create(context.Background(), pb)
		assert.NoError(t, err)
		assert.Equal(t, 42, saved.ID)
		assert.Equal(t, createdAt, saved.CreatedAt)
	})

	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("lootably", "txn-1", 1, "offer-9", "Survey", int64(150),
				domain.PostbackCredited, `{"sub1":"1"}`, "203.0.113.9").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		saved, err := repo.Create(context.Background(), postback())
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.Nil(t, saved)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("lootably", "txn-1", 1, "offer-9", "Survey", int64(150),
				domain.PostbackCredited, `{"sub1":"1"}`, "203.0.113.9").
			WillReturnError(errors.New("database error"))

		saved, err := repo.Create(context.Background(), postback())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicate)
		assert.Nil(t, saved)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetCountry(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE postbacks SET country = $1 WHERE id = $2`)).
		WithArgs("US", 42).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SetCountry(context.Background(), 42, "US")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
