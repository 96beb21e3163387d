package withdrawalrepo

import (
	"context"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/pg"
	"github.com/jackc/pgx/v5"
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

const withdrawalColumns = `id, user_id, amount_cents, method, destination, status, rejection_reason, created_at, processing_at, completed_at, rejected_at`

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var wd domain.Withdrawal
	err := row.Scan(
		&wd.ID, &wd.UserID, &wd.AmountCents, &wd.Method, &wd.Destination,
		&wd.Status, &wd.RejectionReason, &wd.CreatedAt,
		&wd.ProcessingAt, &wd.CompletedAt, &wd.RejectedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

func (r *Repository) Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO withdrawals (user_id, amount_cents, method, destination, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		withdrawal.UserID, withdrawal.AmountCents, withdrawal.Method, withdrawal.Destination, withdrawal.Status,
	).Scan(&withdrawal.ID, &withdrawal.CreatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Withdrawal, error) {
	wd, err := scanWithdrawal(r.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal", zap.Error(err))
		return nil, err
	}
	return wd, nil
}

// GetByIDForUpdate locks the withdrawal row for a status transition. Meant to
// run inside TXManager.Begin.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int) (*domain.Withdrawal, error) {
	wd, err := scanWithdrawal(r.db.QueryRow(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock withdrawal", zap.Error(err))
		return nil, err
	}
	return wd, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var wd domain.Withdrawal
		err := rows.Scan(
			&wd.ID, &wd.UserID, &wd.AmountCents, &wd.Method, &wd.Destination,
			&wd.Status, &wd.RejectionReason, &wd.CreatedAt,
			&wd.ProcessingAt, &wd.CompletedAt, &wd.RejectedAt,
		)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, wd)
	}

	return withdrawals, nil
}

// CountSince counts withdrawal requests made by the user after the given
// moment, for the rolling rate limit. Also returns the creation time of the
// oldest request in the window (nil when the window is empty) so the caller
// can tell the user when a slot frees up.
func (r *Repository) CountSince(ctx context.Context, userID int, since time.Time) (int, *time.Time, error) {
	var count int
	var oldest *time.Time
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), MIN(created_at) FROM withdrawals WHERE user_id = $1 AND created_at > $2`,
		userID, since).Scan(&count, &oldest)
	if err != nil {
		zap.L().Error("can't count withdrawals", zap.Error(err))
		return 0, nil, err
	}
	return count, oldest, nil
}

func (r *Repository) CountByUserID(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM withdrawals WHERE user_id = $1 AND status <> $2`,
		userID, domain.WithdrawalRejected).Scan(&count)
	if err != nil {
		zap.L().Error("can't count user withdrawals", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// UpdateStatus performs a guarded transition: the row is only touched when it
// is still in the expected previous status. Returns false when the guard
// missed (concurrent transition or invalid state).
func (r *Repository) UpdateStatus(ctx context.Context, id int, from, to domain.WithdrawalStatus, reason *string, at time.Time) (bool, error) {
	var column string
	switch to {
	case domain.WithdrawalProcessing:
		column = "processing_at"
	case domain.WithdrawalCompleted:
		column = "completed_at"
	case domain.WithdrawalRejected:
		column = "rejected_at"
	default:
		return false, nil
	}

	query := `
		UPDATE withdrawals
		SET status = $1, rejection_reason = COALESCE($2, rejection_reason), ` + column + ` = $3
		WHERE id = $4 AND status = $5
	`
	tag, err := r.db.Exec(ctx, query, to, reason, at, id, from)
	if err != nil {
		zap.L().Error("can't update withdrawal status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
