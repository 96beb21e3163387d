package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/dto"
	accountservice "github.com/GlebRadaev/offermart/internal/service/accountservice"
	"github.com/GlebRadaev/offermart/pkg/auth"
	"github.com/GlebRadaev/offermart/pkg/utils"
)

type Service interface {
	GetAccount(ctx context.Context, userID int) (*domain.Account, error)
	GetTransactions(ctx context.Context, userID int) ([]domain.Transaction, error)
	GetReferralEarnings(ctx context.Context, userID int) ([]domain.ReferralEarning, error)
	ClaimStreak(ctx context.Context, userID int) (*domain.Account, error)
	BindReferral(ctx context.Context, userID, referrerID int) error
}

type AccountHandler struct {
	accountService Service
}

func New(accountService Service) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// GetBalance godoc
//
//	@Summary		Get balance
//	@Description	Returns the current balance, lifetime earnings and streak counters.
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		404	{object}	map[string]string	"Account not found"
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/user/balance [get]
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), userID)
	if err != nil {
		if errors.Is(err, accountservice.ErrAccountNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "account not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		BalanceCents:  account.BalanceCents,
		LifetimeCents: account.LifetimeCents,
		CurrentStreak: account.CurrentStreak,
		LongestStreak: account.LongestStreak,
	})
}

// GetTransactions godoc
//
//	@Summary		List ledger transactions
//	@Description	Returns the user's ledger entries, newest first.
//	@Tags			Account
//	@Produce		json
//	@Success		200	{array}		dto.TransactionResponseDTO
//	@Success		204	{string}	string	"No transactions"
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/user/transactions [get]
func (h *AccountHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactions, err := h.accountService.GetTransactions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(transactions) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]dto.TransactionResponseDTO, 0, len(transactions))
	for _, txn := range transactions {
		resp = append(resp, dto.TransactionResponseDTO{
			ID:                txn.ID,
			Type:              string(txn.Type),
			AmountCents:       txn.AmountCents,
			BalanceAfterCents: txn.BalanceAfterCents,
			Source:            txn.Source,
			CreatedAt:         txn.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetReferrals godoc
//
//	@Summary		List referral earnings
//	@Description	Returns the commissions the user earned from referred users, newest first.
//	@Tags			Account
//	@Produce		json
//	@Success		200	{array}		dto.ReferralEarningResponseDTO
//	@Success		204	{string}	string	"No referral earnings"
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/user/referrals [get]
func (h *AccountHandler) GetReferrals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	earnings, err := h.accountService.GetReferralEarnings(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(earnings) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]dto.ReferralEarningResponseDTO, 0, len(earnings))
	for _, e := range earnings {
		resp = append(resp, dto.ReferralEarningResponseDTO{
			ReferredID:  e.ReferredID,
			AmountCents: e.AmountCents,
			CreatedAt:   e.CreatedAt,
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ClaimStreak godoc
//
//	@Summary		Claim the daily streak
//	@Description	One claim per UTC day. Consecutive days extend the streak, a gap resets it.
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	dto.StreakClaimResponseDTO
//	@Failure		404	{object}	map[string]string	"Account not found"
//	@Failure		409	{object}	map[string]string	"Already claimed today"
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/user/streak/claim [post]
func (h *AccountHandler) ClaimStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	account, err := h.accountService.ClaimStreak(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, accountservice.ErrAccountNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "account not found")
		case errors.Is(err, accountservice.ErrAlreadyClaimed):
			utils.RespondWithError(w, http.StatusConflict, "streak already claimed today")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.StreakClaimResponseDTO{
		CurrentStreak: account.CurrentStreak,
		LongestStreak: account.LongestStreak,
	})
}

// BindReferral godoc
//
//	@Summary		Bind a referrer
//	@Description	Links the account to the referrer who invited it. Works once, ever.
//	@Tags			Account
//	@Accept			json
//	@Success		200	{string}	string	"Referrer bound"
//	@Failure		400	{object}	map[string]string	"Invalid request"
//	@Failure		404	{object}	map[string]string	"Referrer not found"
//	@Failure		409	{object}	map[string]string	"Referrer already set"
//	@Failure		422	{object}	map[string]string	"Self referral"
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/user/referral [post]
func (h *AccountHandler) BindReferral(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.ReferralRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.accountService.BindReferral(r.Context(), userID, req.ReferrerID); err != nil {
		switch {
		case errors.Is(err, accountservice.ErrReferrerNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "referrer not found")
		case errors.Is(err, accountservice.ErrAlreadyReferred):
			utils.RespondWithError(w, http.StatusConflict, "referrer already set")
		case errors.Is(err, accountservice.ErrSelfReferral):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "can't refer yourself")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
