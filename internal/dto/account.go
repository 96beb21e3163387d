package dto

import "time"

type BalanceResponseDTO struct {
	BalanceCents  int64 `json:"balance_cents" example:"2750"`
	LifetimeCents int64 `json:"lifetime_cents" example:"10400"`
	CurrentStreak int   `json:"current_streak" example:"4"`
	LongestStreak int   `json:"longest_streak" example:"11"`
}

type TransactionResponseDTO struct {
	ID                int       `json:"id" example:"301"`
	Type              string    `json:"type" example:"EARNING"`
	AmountCents       int64     `json:"amount_cents" example:"1500"`
	BalanceAfterCents int64     `json:"balance_after_cents" example:"2750"`
	Source            string    `json:"source" example:"lootably"`
	CreatedAt         time.Time `json:"created_at"`
}

type StreakClaimResponseDTO struct {
	CurrentStreak int `json:"current_streak" example:"5"`
	LongestStreak int `json:"longest_streak" example:"11"`
}

type ReferralRequestDTO struct {
	ReferrerID int `json:"referrer_id" example:"42"`
}

type ReferralEarningResponseDTO struct {
	ReferredID  int       `json:"referred_id" example:"17"`
	AmountCents int64     `json:"amount_cents" example:"50"`
	CreatedAt   time.Time `json:"created_at"`
}
