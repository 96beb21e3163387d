package repo

import (
	"github.com/GlebRadaev/offermart/internal/pg"
	accountrepo "github.com/GlebRadaev/offermart/internal/repo/account-repo"
	achievementrepo "github.com/GlebRadaev/offermart/internal/repo/achievement-repo"
	leaderboardrepo "github.com/GlebRadaev/offermart/internal/repo/leaderboard-repo"
	ledgerrepo "github.com/GlebRadaev/offermart/internal/repo/ledger-repo"
	postbackrepo "github.com/GlebRadaev/offermart/internal/repo/postback-repo"
	referralrepo "github.com/GlebRadaev/offermart/internal/repo/referral-repo"
	withdrawalrepo "github.com/GlebRadaev/offermart/internal/repo/withdrawal-repo"
)

type Repositories struct {
	Account     *accountrepo.Repository
	Ledger      *ledgerrepo.Repository
	Postback    *postbackrepo.Repository
	Withdrawal  *withdrawalrepo.Repository
	Leaderboard *leaderboardrepo.Repository
	Achievement *achievementrepo.Repository
	Referral    *referralrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		Account:     accountrepo.New(conn),
		Ledger:      ledgerrepo.New(conn),
		Postback:    postbackrepo.New(conn),
		Withdrawal:  withdrawalrepo.New(conn),
		Leaderboard: leaderboardrepo.New(conn),
		Achievement: achievementrepo.New(conn),
		Referral:    referralrepo.New(conn),
	}
}
