package accountservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/pg"
	"go.uber.org/zap"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAlreadyClaimed   = errors.New("streak already claimed today")
	ErrAlreadyReferred  = errors.New("referrer already set")
	ErrSelfReferral     = errors.New("can't refer yourself")
	ErrReferrerNotFound = errors.New("referrer not found")
)

type AccountRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, userID int) (*domain.Account, error)
	UpdateStreak(ctx context.Context, userID, currentStreak, longestStreak int, claimedAt time.Time) error
	SetReferrer(ctx context.Context, userID, referrerID int) (bool, error)
}

type LedgerRepo interface {
	FindByUserID(ctx context.Context, userID int) ([]domain.Transaction, error)
}

type ReferralRepo interface {
	FindByReferrerID(ctx context.Context, referrerID int) ([]domain.ReferralEarning, error)
}

type Achievements interface {
	Evaluate(ctx context.Context, userID int) ([]domain.Achievement, error)
}

type Service struct {
	txManager    pg.TXManager
	accountRepo  AccountRepo
	ledgerRepo   LedgerRepo
	referralRepo ReferralRepo
	achievements Achievements
}

func New(txManager pg.TXManager, accountRepo AccountRepo, ledgerRepo LedgerRepo, referralRepo ReferralRepo, achievements Achievements) *Service {
	return &Service{
		txManager:    txManager,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		referralRepo: referralRepo,
		achievements: achievements,
	}
}

func (s *Service) GetAccount(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %d", ErrAccountNotFound, userID)
	}
	return account, nil
}

func (s *Service) GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error) {
	return s.ledgerRepo.FindByUserID(ctx, userID)
}

// GetReferralEarnings lists the commissions the user collected as a referrer,
// newest first.
func (s *Service) GetReferralEarnings(ctx context.Context, userID int) ([]domain.ReferralEarning, error) {
	return s.referralRepo.FindByReferrerID(ctx, userID)
}

// ClaimStreak records the daily login claim: one claim per UTC day, a claim on
// the day after the last one extends the streak, any later day restarts it.
func (s *Service) ClaimStreak(ctx context.Context, userID int) (*domain.Account, error) {
	var account *domain.Account

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		locked, err := s.accountRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: %d", ErrAccountNotFound, userID)
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		current := 1
		if locked.LastClaimAt != nil {
			last := locked.LastClaimAt.UTC().Truncate(24 * time.Hour)
			switch {
			case last.Equal(today):
				return ErrAlreadyClaimed
			case last.Equal(today.AddDate(0, 0, -1)):
				current = locked.CurrentStreak + 1
			}
		}

		longest := locked.LongestStreak
		if current > longest {
			longest = current
		}
		if err := s.accountRepo.UpdateStreak(ctx, userID, current, longest, today); err != nil {
			return err
		}

		locked.CurrentStreak = current
		locked.LongestStreak = longest
		locked.LastClaimAt = &today
		account = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.achievements.Evaluate(ctx, userID); err != nil {
		zap.L().Error("achievement evaluation after streak claim failed",
			zap.Int("userID", userID), zap.Error(err))
	}
	return account, nil
}

// BindReferral sets the referrer once, ever. The referred_by column is only
// written when still NULL, so a concurrent double bind loses cleanly.
func (s *Service) BindReferral(ctx context.Context, userID, referrerID int) error {
	if userID == referrerID {
		return ErrSelfReferral
	}

	referrer, err := s.accountRepo.GetByID(ctx, referrerID)
	if err != nil {
		return err
	}
	if referrer == nil {
		return fmt.Errorf("%w: %d", ErrReferrerNotFound, referrerID)
	}

	bound, err := s.accountRepo.SetReferrer(ctx, userID, referrerID)
	if err != nil {
		return err
	}
	if !bound {
		return ErrAlreadyReferred
	}

	if _, err := s.achievements.Evaluate(ctx, referrerID); err != nil {
		zap.L().Error("achievement evaluation after referral bind failed",
			zap.Int("referrerID", referrerID), zap.Error(err))
	}
	return nil
}
