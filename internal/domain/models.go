package domain

import "time"

type TransactionType string

const (
	TransactionEarning    TransactionType = "EARNING"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionBonus      TransactionType = "BONUS"
	TransactionAdjustment TransactionType = "ADJUSTMENT"
)

type PostbackStatus string

const (
	PostbackCredited PostbackStatus = "CREDITED"
	PostbackReversed PostbackStatus = "REVERSED"
	PostbackRejected PostbackStatus = "REJECTED"
)

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "PENDING"
	WithdrawalProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalCompleted  WithdrawalStatus = "COMPLETED"
	WithdrawalRejected   WithdrawalStatus = "REJECTED"
)

type AchievementCategory string

const (
	CategoryEarning    AchievementCategory = "earning"
	CategoryWithdrawal AchievementCategory = "withdrawal"
	CategoryStreak     AchievementCategory = "streak"
	CategoryReferral   AchievementCategory = "referral"
	CategoryMilestone  AchievementCategory = "milestone"
)

// Account balances are held in integer cents. BalanceCents is a cached value
// reconcilable by summing the account's transactions; LifetimeCents only grows.
type Account struct {
	ID            int        `db:"id"`
	BalanceCents  int64      `db:"balance_cents"`
	LifetimeCents int64      `db:"lifetime_cents"`
	CurrentStreak int        `db:"current_streak"`
	LongestStreak int        `db:"longest_streak"`
	LastClaimAt   *time.Time `db:"last_claim_at"`
	ReferredByID  *int       `db:"referred_by_id"`
	CreatedAt     time.Time  `db:"created_at"`
}

// Transaction is the append-only audit trail. AmountCents is a positive
// magnitude; the sign is implied by Type. BalanceAfterCents snapshots the
// account balance immediately after this entry was applied.
type Transaction struct {
	ID                int             `db:"id"`
	UserID            int             `db:"user_id"`
	Type              TransactionType `db:"type"`
	AmountCents       int64           `db:"amount_cents"`
	BalanceAfterCents int64           `db:"balance_after_cents"`
	Source            string          `db:"source"`
	Status            string          `db:"status"`
	CreatedAt         time.Time       `db:"created_at"`
}

// Postback is one received partner callback. (OfferwallID, ExternalID) is the
// idempotency key, enforced by a unique constraint.
type Postback struct {
	ID          int            `db:"id"`
	OfferwallID string         `db:"offerwall_id"`
	ExternalID  string         `db:"external_id"`
	UserID      int            `db:"user_id"`
	OfferID     string         `db:"offer_id"`
	OfferName   string         `db:"offer_name"`
	PayoutCents int64          `db:"payout_cents"`
	Status      PostbackStatus `db:"status"`
	RawPayload  string         `db:"raw_payload"`
	IPAddress   string         `db:"ip_address"`
	Country     *string        `db:"country"`
	CreatedAt   time.Time      `db:"created_at"`
}

type Withdrawal struct {
	ID              int              `db:"id"`
	UserID          int              `db:"user_id"`
	AmountCents     int64            `db:"amount_cents"`
	Method          string           `db:"method"`
	Destination     string           `db:"destination"`
	Status          WithdrawalStatus `db:"status"`
	RejectionReason *string          `db:"rejection_reason"`
	CreatedAt       time.Time        `db:"created_at"`
	ProcessingAt    *time.Time       `db:"processing_at"`
	CompletedAt     *time.Time       `db:"completed_at"`
	RejectedAt      *time.Time       `db:"rejected_at"`
}

type ReferralEarning struct {
	ID          int       `db:"id"`
	ReferrerID  int       `db:"referrer_id"`
	ReferredID  int       `db:"referred_id"`
	PostbackID  int       `db:"postback_id"`
	AmountCents int64     `db:"amount_cents"`
	CreatedAt   time.Time `db:"created_at"`
}

// LeaderboardEntry accumulates credited earnings per (user, period). Period is
// an ISO week ("2025-W07") or month ("2025-02") key; a rollover starts a new
// row on first write, no reset job needed.
type LeaderboardEntry struct {
	UserID      int    `db:"user_id"`
	Period      string `db:"period"`
	EarnedCents int64  `db:"earned_cents"`
}

type Achievement struct {
	ID        int                 `db:"id"`
	Slug      string              `db:"slug"`
	Name      string              `db:"name"`
	Category  AchievementCategory `db:"category"`
	Threshold int64               `db:"threshold"`
}

type UserAchievement struct {
	UserID        int       `db:"user_id"`
	AchievementID int       `db:"achievement_id"`
	UnlockedAt    time.Time `db:"unlocked_at"`
}
