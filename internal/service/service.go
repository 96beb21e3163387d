package service

import (
	"github.com/GlebRadaev/offermart/internal/config"
	"github.com/GlebRadaev/offermart/internal/geo"
	"github.com/GlebRadaev/offermart/internal/handlers/account"
	"github.com/GlebRadaev/offermart/internal/handlers/leaderboard"
	"github.com/GlebRadaev/offermart/internal/handlers/postback"
	"github.com/GlebRadaev/offermart/internal/handlers/withdrawal"
	"github.com/GlebRadaev/offermart/internal/notify"
	"github.com/GlebRadaev/offermart/internal/partner"
	"github.com/GlebRadaev/offermart/internal/pg"
	"github.com/GlebRadaev/offermart/internal/repo"
	accountservice "github.com/GlebRadaev/offermart/internal/service/accountservice"
	achievementservice "github.com/GlebRadaev/offermart/internal/service/achievementservice"
	leaderboardservice "github.com/GlebRadaev/offermart/internal/service/leaderboardservice"
	postbackservice "github.com/GlebRadaev/offermart/internal/service/postbackservice"
	withdrawalservice "github.com/GlebRadaev/offermart/internal/service/withdrawalservice"
)

type Services struct {
	PostbackService    postback.Service
	WithdrawalService  withdrawal.Service
	AccountService     account.Service
	LeaderboardService leaderboard.Service
}

func New(
	cfg *config.Config,
	repos *repo.Repositories,
	txManager pg.TXManager,
	runner notify.Runner,
	mailer *notify.Mailer,
	geoClient *geo.Client,
) *Services {
	registry := partner.NewRegistry(
		config.ParseKVList(cfg.PartnerSecrets),
		config.ParseMultipliers(cfg.PartnerMultipliers),
	)

	achievements := achievementservice.New(repos.Account, repos.Achievement, repos.Withdrawal)
	leaderboards := leaderboardservice.New(repos.Leaderboard, cfg.LeaderboardSize)

	postbacks := postbackservice.New(
		registry,
		txManager,
		repos.Account,
		repos.Postback,
		repos.Ledger,
		repos.Referral,
		leaderboards,
		achievements,
		runner,
		mailer,
		geoClient,
		postbackservice.NetworkConfig{
			Token:              cfg.EverflowPostbackToken,
			PassThroughPayout:  cfg.EverflowPassThroughPayout,
			DefaultPayoutCents: cfg.EverflowDefaultPayoutCents,
		},
	)

	withdrawals := withdrawalservice.New(
		txManager,
		repos.Account,
		repos.Withdrawal,
		repos.Ledger,
		runner,
		mailer,
		cfg.WithdrawalMinCents,
		cfg.WithdrawalHourlyMax,
	)

	accounts := accountservice.New(txManager, repos.Account, repos.Ledger, repos.Referral, achievements)

	return &Services{
		PostbackService:    postbacks,
		WithdrawalService:  withdrawals,
		AccountService:     accounts,
		LeaderboardService: leaderboards,
	}
}
