package postback

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GlebRadaev/offermart/internal/partner"
	postbackservice "github.com/GlebRadaev/offermart/internal/service/postbackservice"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*PostbackHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func serve(handler *PostbackHandler, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/postback/network", handler.ReceiveNetwork)
	router.Get("/postback/{partnerSlug}", handler.Receive)

	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.RemoteAddr = "203.0.113.9:41000"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestReceive(t *testing.T) {
	tests := []struct {
		name         string
		serviceErr   error
		credited     bool
		expectedCode int
		expectedBody string
	}{
		{
			name:         "credited",
			credited:     true,
			expectedCode: http.StatusOK,
			expectedBody: "1",
		},
		{
			name:         "duplicate is still a success",
			credited:     false,
			expectedCode: http.StatusOK,
			expectedBody: "1",
		},
		{
			name:         "invalid signature",
			serviceErr:   partner.ErrInvalidSignature,
			expectedCode: http.StatusForbidden,
			expectedBody: "0",
		},
		{
			name:         "unknown partner",
			serviceErr:   partner.ErrUnknownPartner,
			expectedCode: http.StatusForbidden,
			expectedBody: "0",
		},
		{
			name:         "missing parameter",
			serviceErr:   partner.ErrMissingParam,
			expectedCode: http.StatusBadRequest,
			expectedBody: "0",
		},
		{
			name:         "invalid payout",
			serviceErr:   partner.ErrInvalidPayout,
			expectedCode: http.StatusBadRequest,
			expectedBody: "0",
		},
		{
			name:         "unknown user",
			serviceErr:   postbackservice.ErrUnknownUser,
			expectedCode: http.StatusNotFound,
			expectedBody: "0",
		},
		{
			name:         "internal failure",
			serviceErr:   errors.New("db down"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := NewMock(t)

			if tt.serviceErr != nil {
				service.EXPECT().
					HandlePostback(gomock.Any(), "lootably", gomock.Any(), "203.0.113.9").
					Return(nil, tt.serviceErr)
			} else {
				service.EXPECT().
					HandlePostback(gomock.Any(), "lootably", gomock.Any(), "203.0.113.9").
					Return(&postbackservice.Result{Credited: tt.credited}, nil)
			}

			w := serve(handler, "/postback/lootably?userID=7&transactionID=tx-1&revenue=1.5&sig=abc")
			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestReceiveNetwork(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().
			HandleNetworkPostback(gomock.Any(), gomock.Any(), "203.0.113.9").
			Return(&postbackservice.Result{Credited: true}, nil)

		w := serve(handler, "/postback/network?security_token=tok&sub1=9&transaction_id=ef-1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Body.String())
	})

	t.Run("bad token", func(t *testing.T) {
		handler, service := NewMock(t)

		service.EXPECT().
			HandleNetworkPostback(gomock.Any(), gomock.Any(), "203.0.113.9").
			Return(nil, postbackservice.ErrInvalidToken)

		w := serve(handler, "/postback/network?security_token=wrong&sub1=9&transaction_id=ef-1")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "0", w.Body.String())
	})
}
