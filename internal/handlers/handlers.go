package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/offermart/docs"
	accounthandlers "github.com/GlebRadaev/offermart/internal/handlers/account"
	leaderboardhandlers "github.com/GlebRadaev/offermart/internal/handlers/leaderboard"
	offershandlers "github.com/GlebRadaev/offermart/internal/handlers/offers"
	postbackhandlers "github.com/GlebRadaev/offermart/internal/handlers/postback"
	withdrawalhandlers "github.com/GlebRadaev/offermart/internal/handlers/withdrawal"
	"github.com/GlebRadaev/offermart/internal/service"
	"github.com/GlebRadaev/offermart/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type PostbackHandler interface {
	Receive(w http.ResponseWriter, r *http.Request)
	ReceiveNetwork(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	GetReferrals(w http.ResponseWriter, r *http.Request)
	ClaimStreak(w http.ResponseWriter, r *http.Request)
	BindReferral(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type LeaderboardHandler interface {
	Top(w http.ResponseWriter, r *http.Request)
}

type OffersHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	TrackingLink(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	PostbackHandler    PostbackHandler
	AccountHandler     AccountHandler
	WithdrawalHandler  WithdrawalHandler
	LeaderboardHandler LeaderboardHandler
	OffersHandler      OffersHandler
}

func New(s *service.Services, network offershandlers.Network) *Handlers {
	return &Handlers{
		PostbackHandler:    postbackhandlers.New(s.PostbackService),
		AccountHandler:     accounthandlers.New(s.AccountService),
		WithdrawalHandler:  withdrawalhandlers.New(s.WithdrawalService),
		LeaderboardHandler: leaderboardhandlers.New(s.LeaderboardService),
		OffersHandler:      offershandlers.New(network),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	// Server-to-server callbacks; authenticated by signature/token, not JWT.
	r.Route("/postback", func(r chi.Router) {
		r.Get("/network", h.PostbackHandler.ReceiveNetwork)
		r.Get("/{partnerSlug}", h.PostbackHandler.Receive)
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)

			r.Route("/user", func(r chi.Router) {
				r.Route("/balance", func(r chi.Router) {
					r.Get("/", h.AccountHandler.GetBalance)
					r.Post("/withdraw", h.WithdrawalHandler.Withdraw)
				})
				r.Get("/transactions", h.AccountHandler.GetTransactions)
				r.Get("/withdrawals", h.WithdrawalHandler.GetWithdrawals)
				r.Post("/streak/claim", h.AccountHandler.ClaimStreak)
				r.Post("/referral", h.AccountHandler.BindReferral)
				r.Get("/referrals", h.AccountHandler.GetReferrals)
			})
			r.Get("/leaderboard", h.LeaderboardHandler.Top)
			r.Route("/offers", func(r chi.Router) {
				r.Get("/", h.OffersHandler.List)
				r.Get("/{id}/link", h.OffersHandler.TrackingLink)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware, auth.AdminMiddleware)
			r.Post("/admin/withdrawals/{id}/status", h.WithdrawalHandler.UpdateStatus)
		})
	})

	return r
}
