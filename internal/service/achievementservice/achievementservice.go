package achievementservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/GlebRadaev/offermart/internal/domain"
	"go.uber.org/zap"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.Account, error)
	CountReferrals(ctx context.Context, referrerID int) (int, error)
}

type AchievementRepo interface {
	ListAll(ctx context.Context) ([]domain.Achievement, error)
	ListUnlockedIDs(ctx context.Context, userID int) (map[int]bool, error)
	Unlock(ctx context.Context, userID, achievementID int) (bool, error)
}

type WithdrawalRepo interface {
	CountByUserID(ctx context.Context, userID int) (int, error)
}

type Service struct {
	accountRepo     AccountRepo
	achievementRepo AchievementRepo
	withdrawalRepo  WithdrawalRepo
}

func New(accountRepo AccountRepo, achievementRepo AchievementRepo, withdrawalRepo WithdrawalRepo) *Service {
	return &Service{
		accountRepo:     accountRepo,
		achievementRepo: achievementRepo,
		withdrawalRepo:  withdrawalRepo,
	}
}

// Evaluate re-derives the user's totals and unlocks every achievement whose
// threshold is now met. Evaluation is naturally idempotent: the unique
// (user, achievement) constraint turns a concurrent double unlock into a
// no-op, so it is safe to trigger from any path any number of times.
func (s *Service) Evaluate(ctx context.Context, userID int) ([]domain.Achievement, error) {
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %d", ErrAccountNotFound, userID)
	}

	achievements, err := s.achievementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.achievementRepo.ListUnlockedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	withdrawalCount, err := s.withdrawalRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	referralCount, err := s.accountRepo.CountReferrals(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []domain.Achievement
	for _, achievement := range achievements {
		if unlocked[achievement.ID] {
			continue
		}
		if !s.met(achievement, account, withdrawalCount, referralCount) {
			continue
		}

		inserted, err := s.achievementRepo.Unlock(ctx, userID, achievement.ID)
		if err != nil {
			zap.L().Error("failed to unlock achievement",
				zap.Int("userID", userID), zap.String("slug", achievement.Slug), zap.Error(err))
			continue
		}
		if inserted {
			zap.L().Info("achievement unlocked",
				zap.Int("userID", userID), zap.String("slug", achievement.Slug))
			newlyUnlocked = append(newlyUnlocked, achievement)
		}
	}
	return newlyUnlocked, nil
}

func (s *Service) met(a domain.Achievement, account *domain.Account, withdrawalCount, referralCount int) bool {
	switch a.Category {
	case domain.CategoryEarning:
		return account.LifetimeCents >= a.Threshold
	case domain.CategoryWithdrawal:
		return int64(withdrawalCount) >= a.Threshold
	case domain.CategoryStreak:
		best := account.CurrentStreak
		if account.LongestStreak > best {
			best = account.LongestStreak
		}
		return int64(best) >= a.Threshold
	case domain.CategoryReferral:
		return int64(referralCount) >= a.Threshold
	case domain.CategoryMilestone:
		return s.milestoneMet(a.Slug, account)
	default:
		return false
	}
}

// Milestones don't follow a single threshold rule; each slug has its own test.
func (s *Service) milestoneMet(slug string, account *domain.Account) bool {
	switch slug {
	case "first-earning":
		return account.LifetimeCents > 0
	default:
		return false
	}
}
