package dto

type LeaderboardEntryDTO struct {
	Rank        int   `json:"rank" example:"1"`
	UserID      int   `json:"user_id" example:"42"`
	EarnedCents int64 `json:"earned_cents" example:"125000"`
}
