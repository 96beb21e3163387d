package withdrawal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/dto"
	withdrawalservice "github.com/GlebRadaev/offermart/internal/service/withdrawalservice"
	"github.com/GlebRadaev/offermart/pkg/auth"
	"github.com/GlebRadaev/offermart/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Service interface {
	Create(ctx context.Context, userID int, amountCents int64, method, destination string) (*domain.Withdrawal, error)
	Transition(ctx context.Context, withdrawalID int, to domain.WithdrawalStatus, reason *string) (*domain.Withdrawal, error)
	GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Debits the balance immediately and creates a pending withdrawal.
//	@Tags			Withdrawals
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	map[string]string	"Invalid request body"
//	@Failure		402		{object}	map[string]string	"Insufficient balance"
//	@Failure		422		{object}	map[string]string	"Below minimum, unknown method or bad destination"
//	@Failure		429		{object}	map[string]string	"Too many withdrawal requests"
//	@Failure		500		{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/user/balance/withdraw [post]
func (h *WithdrawalHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wd, err := h.withdrawalService.Create(r.Context(), userID, req.AmountCents, req.Method, req.Destination)
	if err != nil {
		var rateErr *withdrawalservice.RateLimitError
		switch {
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, "insufficient balance")
		case errors.Is(err, withdrawalservice.ErrBelowMinimum),
			errors.Is(err, withdrawalservice.ErrInvalidMethod),
			errors.Is(err, withdrawalservice.ErrInvalidDestination):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &rateErr):
			w.Header().Set("Retry-After", strconv.Itoa(int(rateErr.RetryAfter.Seconds())))
			utils.RespondWithError(w, http.StatusTooManyRequests, "too many withdrawal requests")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toDTO(wd))
}

// GetWithdrawals godoc
//
//	@Summary		List withdrawals
//	@Description	Returns the user's withdrawals, newest first.
//	@Tags			Withdrawals
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO
//	@Success		204	{string}	string	"No withdrawals"
//	@Failure		500	{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/user/withdrawals [get]
func (h *WithdrawalHandler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(auth.UserIDKey).(int)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	withdrawals, err := h.withdrawalService.GetWithdrawals(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(withdrawals) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]dto.WithdrawalResponseDTO, 0, len(withdrawals))
	for i := range withdrawals {
		resp = append(resp, toDTO(&withdrawals[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// UpdateStatus godoc
//
//	@Summary		Advance a withdrawal
//	@Description	Moves a withdrawal along pending -> processing -> completed/rejected. Rejection refunds the debited amount.
//	@Tags			Withdrawals
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Withdrawal ID"
//	@Param			request	body		dto.WithdrawalStatusRequestDTO	true	"Target status"
//	@Success		200		{object}	dto.WithdrawalResponseDTO
//	@Failure		400		{object}	map[string]string	"Invalid request"
//	@Failure		404		{object}	map[string]string	"Withdrawal not found"
//	@Failure		409		{object}	map[string]string	"Transition not allowed"
//	@Failure		500		{object}	map[string]string	"Internal server error"
//	@Security		ApiKeyAuth
//	@Router			/api/admin/withdrawals/{id}/status [post]
func (h *WithdrawalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid withdrawal id")
		return
	}

	var req dto.WithdrawalStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wd, err := h.withdrawalService.Transition(r.Context(), id, domain.WithdrawalStatus(req.Status), req.RejectionReason)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrWithdrawalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "withdrawal not found")
		case errors.Is(err, withdrawalservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, "transition not allowed")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, toDTO(wd))
}

func toDTO(wd *domain.Withdrawal) dto.WithdrawalResponseDTO {
	return dto.WithdrawalResponseDTO{
		ID:              wd.ID,
		AmountCents:     wd.AmountCents,
		Method:          wd.Method,
		Destination:     wd.Destination,
		Status:          string(wd.Status),
		RejectionReason: wd.RejectionReason,
		CreatedAt:       wd.CreatedAt,
		ProcessingAt:    wd.ProcessingAt,
		CompletedAt:     wd.CompletedAt,
		RejectedAt:      wd.RejectedAt,
	}
}
