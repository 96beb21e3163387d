package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownPeriod = errors.New("unknown leaderboard period")

type Repo interface {
	Increment(ctx context.Context, userID int, period string, deltaCents int64) error
	Top(ctx context.Context, period string, limit int) ([]domain.LeaderboardEntry, error)
}

type Service struct {
	repo    Repo
	topSize int
}

func New(repo Repo, topSize int) *Service {
	return &Service{
		repo:    repo,
		topSize: topSize,
	}
}

// WeekPeriod returns the ISO-week key, e.g. "2025-W07".
func WeekPeriod(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthPeriod returns the month key, e.g. "2025-02".
func MonthPeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Record adds credited cents to both the weekly and monthly accumulators. The
// two increments are independent; a failed one is logged and reported but does
// not undo the other.
func (s *Service) Record(ctx context.Context, userID int, earnedCents int64, at time.Time) error {
	var g errgroup.Group
	for _, period := range []string{WeekPeriod(at), MonthPeriod(at)} {
		period := period
		g.Go(func() error {
			if err := s.repo.Increment(ctx, userID, period, earnedCents); err != nil {
				zap.L().Error("failed to increment leaderboard",
					zap.Int("userID", userID), zap.String("period", period), zap.Error(err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// Top resolves "weekly"/"monthly" to the current period key and returns the
// leading entries.
func (s *Service) Top(ctx context.Context, kind string) ([]domain.LeaderboardEntry, error) {
	var period string
	switch kind {
	case "weekly":
		period = WeekPeriod(time.Now())
	case "monthly":
		period = MonthPeriod(time.Now())
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPeriod, kind)
	}
	return s.repo.Top(ctx, period, s.topSize)
}
