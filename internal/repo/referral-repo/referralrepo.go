package referralrepo

import (
	"context"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/pg"
	"go.uber.org/zap"
)

// Repository records referral commissions, one row per credited earning event.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, earning *domain.ReferralEarning) (*domain.ReferralEarning, error) {
	query := `
		INSERT INTO referral_earnings (referrer_id, referred_id, postback_id, amount_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		earning.ReferrerID, earning.ReferredID, earning.PostbackID, earning.AmountCents,
	).Scan(&earning.ID, &earning.CreatedAt)
	if err != nil {
		zap.L().Error("can't save referral earning", zap.Error(err))
		return nil, err
	}
	return earning, nil
}

func (r *Repository) FindByReferrerID(ctx context.Context, referrerID int) ([]domain.ReferralEarning, error) {
	query := `
        SELECT id, referrer_id, referred_id, postback_id, amount_cents, created_at
        FROM referral_earnings
        WHERE referrer_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, referrerID)
	if err != nil {
		zap.L().Error("can't get referral earnings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var earnings []domain.ReferralEarning
	for rows.Next() {
		var e domain.ReferralEarning
		if err := rows.Scan(&e.ID, &e.ReferrerID, &e.ReferredID, &e.PostbackID, &e.AmountCents, &e.CreatedAt); err != nil {
			zap.L().Error("can't scan referral earning row", zap.Error(err))
			return nil, err
		}
		earnings = append(earnings, e)
	}
	return earnings, nil
}
