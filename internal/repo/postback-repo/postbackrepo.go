package postbackrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/pg"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate means a postback with the same (offerwall, external id) was
// already recorded. The unique constraint is the real idempotency guarantee;
// callers must treat this as "already processed", not as a failure.
var ErrDuplicate = errors.New("postback already processed")

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Exists(ctx context.Context, offerwallID, externalID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM postbacks WHERE offerwall_id = $1 AND external_id = $2)`,
		offerwallID, externalID).Scan(&exists)
	if err != nil {
		zap.L().Error("can't check postback existence", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, postback *domain.Postback) (*domain.Postback, error) {
	query := `
		INSERT INTO postbacks (offerwall_id, external_id, user_id, offer_id, offer_name, payout_cents, status, raw_payload, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		postback.OfferwallID, postback.ExternalID, postback.UserID,
		postback.OfferID, postback.OfferName, postback.PayoutCents,
		postback.Status, postback.RawPayload, postback.IPAddress,
	).Scan(&postback.ID, &postback.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicate
		}
		zap.L().Error("can't save postback", zap.Error(err))
		return nil, err
	}
	return postback, nil
}

// SetCountry records the best-effort geolocation result after the fact.
func (r *Repository) SetCountry(ctx context.Context, postbackID int, country string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE postbacks SET country = $1 WHERE id = $2`, country, postbackID)
	if err != nil {
		zap.L().Error("can't set postback country", zap.Error(err))
		return err
	}
	return nil
}
