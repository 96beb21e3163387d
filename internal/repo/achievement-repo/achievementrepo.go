package achievementrepo

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

func (r *Repository) ListAll(ctx context.Context) ([]domain.Achievement, error) {
	query := `SELECT id, slug, name, category, threshold FROM achievements ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't list achievements", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.ID, &a.Slug, &a.Name, &a.Category, &a.Threshold); err != nil {
			zap.L().Error("can't scan achievement row", zap.Error(err))
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, nil
}

// ListUnlockedIDs returns the set of achievement ids the user already holds.
func (r *Repository) ListUnlockedIDs(ctx context.Context, userID int) (map[int]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT achievement_id FROM user_achievements WHERE user_id = $1`, userID)
	if err != nil {
		zap.L().Error("can't list user achievements", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	unlocked := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("can't scan user achievement row", zap.Error(err))
			return nil, err
		}
		unlocked[id] = true
	}
	return unlocked, nil
}

// Unlock inserts the (user, achievement) join row. Returns false when the row
// already existed; evaluation runs concurrently from several triggers, and
// the unique constraint makes a double unlock a no-op.
func (r *Repository) Unlock(ctx context.Context, userID, achievementID int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO user_achievements (user_id, achievement_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, achievementID)
	if err != nil {
		zap.L().Error("can't unlock achievement", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
