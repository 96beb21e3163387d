package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/dto"
	accountservice "github.com/GlebRadaev/offermart/internal/service/accountservice"
	"github.com/GlebRadaev/offermart/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AccountHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authed(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
}

func TestGetBalanceHandler(t *testing.T) {
	t.Run("returns the balance", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().GetAccount(gomock.Any(), 1).
			Return(&domain.Account{ID: 1, BalanceCents: 2750, LifetimeCents: 10400, CurrentStreak: 4, LongestStreak: 11}, nil)

		r := authed(httptest.NewRequest(http.MethodGet, "/balance", nil))
		w := httptest.NewRecorder()
		handler.GetBalance(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body dto.BalanceResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Equal(t, dto.BalanceResponseDTO{
			BalanceCents:  2750,
			LifetimeCents: 10400,
			CurrentStreak: 4,
			LongestStreak: 11,
		}, body)
	})

	t.Run("account not found", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().GetAccount(gomock.Any(), 1).Return(nil, accountservice.ErrAccountNotFound)

		r := authed(httptest.NewRequest(http.MethodGet, "/balance", nil))
		w := httptest.NewRecorder()
		handler.GetBalance(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthorized without user context", func(t *testing.T) {
		handler, _ := NewMock(t)

		r := httptest.NewRequest(http.MethodGet, "/balance", nil)
		w := httptest.NewRecorder()
		handler.GetBalance(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetTransactionsHandler(t *testing.T) {
	t.Run("returns the ledger", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().GetTransactions(gomock.Any(), 1).
			Return([]domain.Transaction{
				{ID: 301, Type: domain.TransactionEarning, AmountCents: 1500, BalanceAfterCents: 2750, Source: "lootably"},
			}, nil)

		r := authed(httptest.NewRequest(http.MethodGet, "/transactions", nil))
		w := httptest.NewRecorder()
		handler.GetTransactions(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body []dto.TransactionResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Len(t, body, 1)
		assert.Equal(t, "EARNING", body[0].Type)
		assert.Equal(t, int64(2750), body[0].BalanceAfterCents)
	})

	t.Run("no content when empty", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().GetTransactions(gomock.Any(), 1).Return(nil, nil)

		r := authed(httptest.NewRequest(http.MethodGet, "/transactions", nil))
		w := httptest.NewRecorder()
		handler.GetTransactions(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestGetReferralsHandler(t *testing.T) {
	t.Run("returns referral earnings", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().GetReferralEarnings(gomock.Any(), 1).
			Return([]domain.ReferralEarning{
				{ID: 3, ReferrerID: 1, ReferredID: 17, AmountCents: 50},
			}, nil)

		r := authed(httptest.NewRequest(http.MethodGet, "/referrals", nil))
		w := httptest.NewRecorder()
		handler.GetReferrals(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body []dto.ReferralEarningResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Len(t, body, 1)
		assert.Equal(t, 17, body[0].ReferredID)
		assert.Equal(t, int64(50), body[0].AmountCents)
	})

	t.Run("no content when empty", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().GetReferralEarnings(gomock.Any(), 1).Return(nil, nil)

		r := authed(httptest.NewRequest(http.MethodGet, "/referrals", nil))
		w := httptest.NewRecorder()
		handler.GetReferrals(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestClaimStreakHandler(t *testing.T) {
	t.Run("claims the day", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().ClaimStreak(gomock.Any(), 1).
			Return(&domain.Account{ID: 1, CurrentStreak: 5, LongestStreak: 11}, nil)

		r := authed(httptest.NewRequest(http.MethodPost, "/streak/claim", nil))
		w := httptest.NewRecorder()
		handler.ClaimStreak(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body dto.StreakClaimResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Equal(t, 5, body.CurrentStreak)
	})

	t.Run("conflict when already claimed", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().ClaimStreak(gomock.Any(), 1).Return(nil, accountservice.ErrAlreadyClaimed)

		r := authed(httptest.NewRequest(http.MethodPost, "/streak/claim", nil))
		w := httptest.NewRecorder()
		handler.ClaimStreak(w, r)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestBindReferralHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		prepareMock  func(service *MockService)
		expectedCode int
	}{
		{
			name: "binds the referrer",
			body: `{"referrer_id":42}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().BindReferral(gomock.Any(), 1, 42).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "invalid body",
			body:         `{"referrer_id":`,
			prepareMock:  func(service *MockService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "referrer not found",
			body: `{"referrer_id":404}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().BindReferral(gomock.Any(), 1, 404).Return(accountservice.ErrReferrerNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "already referred",
			body: `{"referrer_id":42}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().BindReferral(gomock.Any(), 1, 42).Return(accountservice.ErrAlreadyReferred)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "self referral",
			body: `{"referrer_id":1}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().BindReferral(gomock.Any(), 1, 1).Return(accountservice.ErrSelfReferral)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "internal error",
			body: `{"referrer_id":42}`,
			prepareMock: func(service *MockService) {
				service.EXPECT().BindReferral(gomock.Any(), 1, 42).Return(errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)
			tt.prepareMock(service)

			r := authed(httptest.NewRequest(http.MethodPost, "/referral", bytes.NewBufferString(tt.body)))
			w := httptest.NewRecorder()
			handler.BindReferral(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
