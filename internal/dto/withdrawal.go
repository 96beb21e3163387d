package dto

import "time"

type WithdrawRequestDTO struct {
	AmountCents int64  `json:"amount_cents" example:"1500"`
	Method      string `json:"method" example:"paypal"`
	Destination string `json:"destination" example:"user@example.com"`
}

type WithdrawalResponseDTO struct {
	ID              int        `json:"id" example:"17"`
	AmountCents     int64      `json:"amount_cents" example:"1500"`
	Method          string     `json:"method" example:"paypal"`
	Destination     string     `json:"destination" example:"user@example.com"`
	Status          string     `json:"status" example:"PENDING"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ProcessingAt    *time.Time `json:"processing_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
}

type WithdrawalStatusRequestDTO struct {
	Status          string  `json:"status" example:"PROCESSING"`
	RejectionReason *string `json:"rejection_reason,omitempty" example:"destination account closed"`
}
