package accountservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/pg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

type mocks struct {
	txManager    *pg.MockTXManager
	accountRepo  *MockAccountRepo
	ledgerRepo   *MockLedgerRepo
	referralRepo *MockReferralRepo
	achievements *MockAchievements
}

func newMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		txManager:    pg.NewMockTXManager(ctrl),
		accountRepo:  NewMockAccountRepo(ctrl),
		ledgerRepo:   NewMockLedgerRepo(ctrl),
		referralRepo: NewMockReferralRepo(ctrl),
		achievements: NewMockAchievements(ctrl),
	}
	service := New(m.txManager, m.accountRepo, m.ledgerRepo, m.referralRepo, m.achievements)
	return service, m
}

func passthroughTx(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func TestGetAccount(t *testing.T) {
	t.Run("returns the account", func(t *testing.T) {
		service, m := newMock(t)

		m.accountRepo.EXPECT().GetByID(gomock.Any(), 1).
			Return(&domain.Account{ID: 1, BalanceCents: 300}, nil)

		account, err := service.GetAccount(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(300), account.BalanceCents)
	})

	t.Run("reports a missing account", func(t *testing.T) {
		service, m := newMock(t)

		m.accountRepo.EXPECT().GetByID(gomock.Any(), 404).Return(nil, nil)

		_, err := service.GetAccount(context.Background(), 404)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestClaimStreak(t *testing.T) {
	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	today := time.Now().UTC().Truncate(24 * time.Hour)
	lastWeek := today.AddDate(0, 0, -7)

	tests := []struct {
		name            string
		account         *domain.Account
		expectedCurrent int
		expectedLongest int
		expectedErr     error
	}{
		{
			name:            "first claim ever",
			account:         &domain.Account{ID: 1},
			expectedCurrent: 1,
			expectedLongest: 1,
		},
		{
			name:            "consecutive day extends the streak",
			account:         &domain.Account{ID: 1, CurrentStreak: 4, LongestStreak: 6, LastClaimAt: &yesterday},
			expectedCurrent: 5,
			expectedLongest: 6,
		},
		{
			name:            "extending past the record raises it",
			account:         &domain.Account{ID: 1, CurrentStreak: 6, LongestStreak: 6, LastClaimAt: &yesterday},
			expectedCurrent: 7,
			expectedLongest: 7,
		},
		{
			name:            "a gap restarts the streak",
			account:         &domain.Account{ID: 1, CurrentStreak: 9, LongestStreak: 9, LastClaimAt: &lastWeek},
			expectedCurrent: 1,
			expectedLongest: 9,
		},
		{
			name:        "second claim the same day fails",
			account:     &domain.Account{ID: 1, CurrentStreak: 2, LongestStreak: 2, LastClaimAt: &today},
			expectedErr: ErrAlreadyClaimed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newMock(t)
			passthroughTx(m)

			m.accountRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 1).Return(tt.account, nil)
			if tt.expectedErr == nil {
				m.accountRepo.EXPECT().
					UpdateStreak(gomock.Any(), 1, tt.expectedCurrent, tt.expectedLongest, gomock.Any()).
					Return(nil)
				m.achievements.EXPECT().Evaluate(gomock.Any(), 1).Return(nil, nil)
			}

			account, err := service.ClaimStreak(context.Background(), 1)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCurrent, account.CurrentStreak)
			assert.Equal(t, tt.expectedLongest, account.LongestStreak)
		})
	}

	t.Run("missing account", func(t *testing.T) {
		service, m := newMock(t)
		passthroughTx(m)

		m.accountRepo.EXPECT().GetByIDForUpdate(gomock.Any(), 404).Return(nil, nil)

		_, err := service.ClaimStreak(context.Background(), 404)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestBindReferral(t *testing.T) {
	t.Run("binds once and evaluates the referrer", func(t *testing.T) {
		service, m := newMock(t)

		m.accountRepo.EXPECT().GetByID(gomock.Any(), 3).Return(&domain.Account{ID: 3}, nil)
		m.accountRepo.EXPECT().SetReferrer(gomock.Any(), 7, 3).Return(true, nil)
		m.achievements.EXPECT().Evaluate(gomock.Any(), 3).Return(nil, nil)

		err := service.BindReferral(context.Background(), 7, 3)
		assert.NoError(t, err)
	})

	t.Run("rejects self referral", func(t *testing.T) {
		service, _ := newMock(t)

		err := service.BindReferral(context.Background(), 7, 7)
		assert.ErrorIs(t, err, ErrSelfReferral)
	})

	t.Run("rejects an unknown referrer", func(t *testing.T) {
		service, m := newMock(t)

		m.accountRepo.EXPECT().GetByID(gomock.Any(), 404).Return(nil, nil)

		err := service.BindReferral(context.Background(), 7, 404)
		assert.ErrorIs(t, err, ErrReferrerNotFound)
	})

	t.Run("rejects a second bind", func(t *testing.T) {
		service, m := newMock(t)

		m.accountRepo.EXPECT().GetByID(gomock.Any(), 3).Return(&domain.Account{ID: 3}, nil)
		m.accountRepo.EXPECT().SetReferrer(gomock.Any(), 7, 3).Return(false, nil)

		err := service.BindReferral(context.Background(), 7, 3)
		assert.ErrorIs(t, err, ErrAlreadyReferred)
	})

	t.Run("surfaces repository errors", func(t *testing.T) {
		service, m := newMock(t)

		m.accountRepo.EXPECT().GetByID(gomock.Any(), 3).Return(nil, errors.New("db down"))

		err := service.BindReferral(context.Background(), 7, 3)
		assert.Error(t, err)
	})
}

func TestGetTransactions(t *testing.T) {
	service, m := newMock(t)

	expected := []domain.Transaction{{ID: 1, AmountCents: 100}}
	m.ledgerRepo.EXPECT().FindByUserID(gomock.Any(), 1).Return(expected, nil)

	transactions, err := service.GetTransactions(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, expected, transactions)
}

func TestGetReferralEarnings(t *testing.T) {
	service, m := newMock(t)

	expected := []domain.ReferralEarning{{ID: 3, ReferrerID: 1, ReferredID: 17, AmountCents: 50}}
	m.referralRepo.EXPECT().FindByReferrerID(gomock.Any(), 1).Return(expected, nil)

	earnings, err := service.GetReferralEarnings(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, expected, earnings)
}
