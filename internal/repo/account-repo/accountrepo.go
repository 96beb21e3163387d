package accountrepo

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

const accountColumns = `id, balance_cents, lifetime_cents, current_streak, longest_streak, last_claim_at, referred_by_id, created_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.BalanceCents,
		&account.LifetimeCents,
		&account.CurrentStreak,
		&account.LongestStreak,
		&account.LastClaimAt,
		&account.ReferredByID,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (repo *Repository) GetByID(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := scanAccount(repo.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

// GetByIDForUpdate re-reads the account under a row lock. Meant to run inside
// TXManager.Begin; every balance mutation starts from a balance read here, not
// from one taken outside the transaction.
func (repo *Repository) GetByIDForUpdate(ctx context.Context, userID int) (*domain.Account, error) {
	account, err := scanAccount(repo.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock account", zap.Error(err))
		return nil, err
	}
	return account, nil
}

func (repo *Repository) UpdateBalance(ctx context.Context, userID int, balanceCents, lifetimeCents int64) error {
	_, err := repo.db.Exec(ctx,
		`UPDATE accounts SET balance_cents = $1, lifetime_cents = $2 WHERE id = $3`,
		balanceCents, lifetimeCents, userID)
	if err != nil {
		zap.L().Error("can't update account balance", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) UpdateStreak(ctx context.Context, userID, currentStreak, longestStreak int, claimedAt time.Time) error {
	_, err := repo.db.Exec(ctx,
		`UPDATE accounts SET current_streak = $1, longest_streak = $2, last_claim_at = $3 WHERE id = $4`,
		currentStreak, longestStreak, claimedAt, userID)
	if err != nil {
		zap.L().Error("can't update account streak", zap.Error(err))
		return err
	}
	return nil
}

// SetReferrer binds the referrer once. Returns false when the account already
// has a referrer (or does not exist).
func (repo *Repository) SetReferrer(ctx context.Context, userID, referrerID int) (bool, error) {
	tag, err := repo.db.Exec(ctx,
		`UPDATE accounts SET referred_by_id = $1 WHERE id = $2 AND referred_by_id IS NULL`,
		referrerID, userID)
	if err != nil {
		zap.L().Error("can't set referrer", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (repo *Repository) CountReferrals(ctx context.Context, referrerID int) (int, error) {
	var count int
	err := repo.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM accounts WHERE referred_by_id = $1`, referrerID).Scan(&count)
	if err != nil {
		zap.L().Error("can't count referrals", zap.Error(err))
		return 0, err
	}
	return count, nil
}
