package leaderboardrepo

import (
	"context"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// Increment adds to the (user, period) accumulator atomically. Concurrent
// credits to the same user both land; there is no read-modify-write window.
func (r *Repository) Increment(ctx context.Context, userID int, period string, deltaCents int64) error {
	query := `
		INSERT INTO leaderboard (user_id, period, earned_cents)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, period)
		DO UPDATE SET earned_cents = leaderboard.earned_cents + EXCLUDED.earned_cents
	`
	_, err := r.db.Exec(ctx, query, userID, period, deltaCents)
	if err != nil {
		zap.L().Error("can't increment leaderboard", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Top(ctx context.Context, period string, limit int) ([]domain.LeaderboardEntry, error) {
	query := `
        SELECT user_id, period, earned_cents
        FROM leaderboard
        WHERE period = $1
        ORDER BY earned_cents DESC, user_id ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, period, limit)
	if err != nil {
		zap.L().Error("can't get leaderboard", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Period, &entry.EarnedCents); err != nil {
			zap.L().Error("can't scan leaderboard row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
