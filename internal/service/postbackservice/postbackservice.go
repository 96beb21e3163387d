package postbackservice

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/metrics"
	"github.com/GlebRadaev/offermart/internal/notify"
	"github.com/GlebRadaev/offermart/internal/partner"
	"github.com/GlebRadaev/offermart/internal/pg"
	postbackrepo "github.com/GlebRadaev/offermart/internal/repo/postback-repo"
	"go.uber.org/zap"
)

// NetworkSlug identifies the affiliate-network postback variant in the
// postbacks table.
const NetworkSlug = "everflow"

// Referral commission taken from every credited earning of a referred user.
const referralCommissionRate = 0.05

var (
	ErrUnknownUser  = errors.New("unknown user")
	ErrInvalidToken = errors.New("invalid security token")
)

type AccountRepo interface {
	GetByID(ctx context.Context, userID int) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, userID int) (*domain.Account, error)
	UpdateBalance(ctx context.Context, userID int, balanceCents, lifetimeCents int64) error
}

type PostbackRepo interface {
	Exists(ctx context.Context, offerwallID, externalID string) (bool, error)
	Create(ctx context.Context, postback *domain.Postback) (*domain.Postback, error)
	SetCountry(ctx context.Context, postbackID int, country string) error
}

type LedgerRepo interface {
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
}

type ReferralRepo interface {
	Create(ctx context.Context, earning *domain.ReferralEarning) (*domain.ReferralEarning, error)
}

type Leaderboard interface {
	Record(ctx context.Context, userID int, earnedCents int64, at time.Time) error
}

type Achievements interface {
	Evaluate(ctx context.Context, userID int) ([]domain.Achievement, error)
}

type Mailer interface {
	SendCreditEmail(userID int, amountCents int64, offerName string) error
	SendAchievementEmail(userID int, name string) error
}

type Geo interface {
	Lookup(ctx context.Context, ip string) (string, error)
}

// NetworkConfig controls the affiliate-network postback variant. When payout
// pass-through is off, every conversion credits DefaultPayoutCents flat; a
// flat payout is never multiplied.
type NetworkConfig struct {
	Token              string
	PassThroughPayout  bool
	DefaultPayoutCents int64
}

// Result of an accepted postback. Credited is false for an idempotent
// duplicate, which is still a success to the partner.
type Result struct {
	Credited bool
	Postback *domain.Postback
}

type Service struct {
	registry     *partner.Registry
	txManager    pg.TXManager
	accountRepo  AccountRepo
	postbackRepo PostbackRepo
	ledgerRepo   LedgerRepo
	referralRepo ReferralRepo
	leaderboard  Leaderboard
	achievements Achievements
	runner       notify.Runner
	mailer       Mailer
	geo          Geo
	network      NetworkConfig
}

func New(
	registry *partner.Registry,
	txManager pg.TXManager,
	accountRepo AccountRepo,
	postbackRepo PostbackRepo,
	ledgerRepo LedgerRepo,
	referralRepo ReferralRepo,
	leaderboard Leaderboard,
	achievements Achievements,
	runner notify.Runner,
	mailer Mailer,
	geo Geo,
	network NetworkConfig,
) *Service {
	return &Service{
		registry:     registry,
		txManager:    txManager,
		accountRepo:  accountRepo,
		postbackRepo: postbackRepo,
		ledgerRepo:   ledgerRepo,
		referralRepo: referralRepo,
		leaderboard:  leaderboard,
		achievements: achievements,
		runner:       runner,
		mailer:       mailer,
		geo:          geo,
		network:      network,
	}
}

// HandlePostback processes a generic per-partner callback: map parameters,
// verify the HMAC, then credit exactly once.
func (s *Service) HandlePostback(ctx context.Context, slug string, params url.Values, ip string) (*Result, error) {
	p, err := s.registry.Get(slug)
	if err != nil {
		return nil, err
	}
	if err := p.Verify(params); err != nil {
		zap.L().Warn("postback signature rejected",
			zap.String("partner", slug), zap.String("ip", ip), zap.String("params", params.Encode()))
		return nil, err
	}
	cb, err := p.Normalize(params)
	if err != nil {
		return nil, err
	}

	payoutCents := p.MultipliedPayout(cb.PayoutCents)
	return s.credit(ctx, slug, cb, payoutCents, params.Encode(), ip)
}

// HandleNetworkPostback processes the affiliate-network callback. The token is
// a shared secret compared in constant time, not an HMAC.
func (s *Service) HandleNetworkPostback(ctx context.Context, params url.Values, ip string) (*Result, error) {
	token := params.Get("security_token")
	if s.network.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.network.Token)) != 1 {
		zap.L().Warn("network postback token rejected", zap.String("ip", ip))
		return nil, ErrInvalidToken
	}

	userID, err := strconv.Atoi(params.Get("sub1"))
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: sub1=%q", partner.ErrMissingParam, params.Get("sub1"))
	}
	externalID := params.Get("transaction_id")
	if externalID == "" {
		return nil, fmt.Errorf("%w: transaction_id", partner.ErrMissingParam)
	}

	payoutCents := s.network.DefaultPayoutCents
	if s.network.PassThroughPayout {
		payoutCents, err = partner.ParseCents(params.Get("payout"))
		if err != nil {
			return nil, fmt.Errorf("payout=%q: %w", params.Get("payout"), err)
		}
	}

	cb := &partner.Callback{
		UserID:     userID,
		ExternalID: externalID,
		OfferID:    params.Get("offer_id"),
	}
	return s.credit(ctx, NetworkSlug, cb, payoutCents, params.Encode(), ip)
}

// credit is the atomic ledger write. Everything inside Begin commits or
// nothing does; the unique (offerwall, external id) constraint, not the
// Exists pre-check, is what guarantees exactly-once crediting.
func (s *Service) credit(ctx context.Context, offerwallID string, cb *partner.Callback, payoutCents int64, rawPayload, ip string) (*Result, error) {
	exists, err := s.postbackRepo.Exists(ctx, offerwallID, cb.ExternalID)
	if err != nil {
		return nil, err
	}
	if exists {
		metrics.PostbacksTotal.WithLabelValues(offerwallID, metrics.ResultDuplicate).Inc()
		zap.L().Info("duplicate postback short-circuited",
			zap.String("partner", offerwallID), zap.String("externalID", cb.ExternalID))
		return &Result{Credited: false}, nil
	}

	account, err := s.accountRepo.GetByID(ctx, cb.UserID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		metrics.PostbacksTotal.WithLabelValues(offerwallID, metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%w: %d", ErrUnknownUser, cb.UserID)
	}

	postback := &domain.Postback{
		OfferwallID: offerwallID,
		ExternalID:  cb.ExternalID,
		UserID:      cb.UserID,
		OfferID:     cb.OfferID,
		OfferName:   cb.OfferName,
		PayoutCents: payoutCents,
		Status:      domain.PostbackCredited,
		RawPayload:  rawPayload,
		IPAddress:   ip,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		locked, err := s.accountRepo.GetByIDForUpdate(ctx, cb.UserID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("%w: %d", ErrUnknownUser, cb.UserID)
		}

		if _, err := s.postbackRepo.Create(ctx, postback); err != nil {
			return err
		}

		newBalance := locked.BalanceCents + payoutCents
		if _, err := s.ledgerRepo.Create(ctx, &domain.Transaction{
			UserID:            cb.UserID,
			Type:              domain.TransactionEarning,
			AmountCents:       payoutCents,
			BalanceAfterCents: newBalance,
			Source:            offerwallID,
			Status:            "COMPLETED",
		}); err != nil {
			return err
		}

		return s.accountRepo.UpdateBalance(ctx, cb.UserID, newBalance, locked.LifetimeCents+payoutCents)
	})
	if err != nil {
		if errors.Is(err, postbackrepo.ErrDuplicate) {
			metrics.PostbacksTotal.WithLabelValues(offerwallID, metrics.ResultDuplicate).Inc()
			return &Result{Credited: false}, nil
		}
		if errors.Is(err, ErrUnknownUser) {
			metrics.PostbacksTotal.WithLabelValues(offerwallID, metrics.ResultRejected).Inc()
			return nil, err
		}
		metrics.PostbacksTotal.WithLabelValues(offerwallID, metrics.ResultError).Inc()
		zap.L().Error("postback credit transaction failed",
			zap.String("partner", offerwallID), zap.String("externalID", cb.ExternalID), zap.Error(err))
		return nil, err
	}

	metrics.PostbacksTotal.WithLabelValues(offerwallID, metrics.ResultCredited).Inc()
	metrics.CreditedCents.WithLabelValues(offerwallID).Add(float64(payoutCents))
	zap.L().Info("postback credited",
		zap.String("partner", offerwallID),
		zap.String("externalID", cb.ExternalID),
		zap.Int("userID", cb.UserID),
		zap.Int64("payoutCents", payoutCents))

	s.fanOut(ctx, postback)
	return &Result{Credited: true, Postback: postback}, nil
}

// fanOut runs the secondary effects of a committed credit, each in its own
// failure domain. Nothing here may undo the credit, and nothing here is
// retried through the postback mechanism.
func (s *Service) fanOut(ctx context.Context, postback *domain.Postback) {
	if err := s.leaderboard.Record(ctx, postback.UserID, postback.PayoutCents, time.Now()); err != nil {
		metrics.FanoutFailures.WithLabelValues("leaderboard").Inc()
	}

	unlocked, err := s.achievements.Evaluate(ctx, postback.UserID)
	if err != nil {
		metrics.FanoutFailures.WithLabelValues("achievements").Inc()
		zap.L().Error("achievement evaluation failed", zap.Int("userID", postback.UserID), zap.Error(err))
	}
	for _, achievement := range unlocked {
		achievement := achievement
		s.runner.Go("achievement-email", func(ctx context.Context) error {
			return s.mailer.SendAchievementEmail(postback.UserID, achievement.Name)
		})
	}

	if err := s.creditReferral(ctx, postback); err != nil {
		metrics.FanoutFailures.WithLabelValues("referral").Inc()
		zap.L().Error("referral commission failed", zap.Int("postbackID", postback.ID), zap.Error(err))
	}

	s.runner.Go("credit-email", func(ctx context.Context) error {
		return s.mailer.SendCreditEmail(postback.UserID, postback.PayoutCents, postback.OfferName)
	})
	s.runner.Go("geo-lookup", func(ctx context.Context) error {
		country, err := s.geo.Lookup(ctx, postback.IPAddress)
		if err != nil {
			return err
		}
		return s.postbackRepo.SetCountry(ctx, postback.ID, country)
	})
}

// creditReferral pays the referrer's commission in its own transaction.
// Best effort relative to the primary credit: a failure here is logged and
// dropped, the referred user's credit stands.
func (s *Service) creditReferral(ctx context.Context, postback *domain.Postback) error {
	account, err := s.accountRepo.GetByID(ctx, postback.UserID)
	if err != nil {
		return err
	}
	if account == nil || account.ReferredByID == nil {
		return nil
	}

	commission := int64(math.Round(float64(postback.PayoutCents) * referralCommissionRate))
	if commission <= 0 {
		return nil
	}
	referrerID := *account.ReferredByID

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		referrer, err := s.accountRepo.GetByIDForUpdate(ctx, referrerID)
		if err != nil {
			return err
		}
		if referrer == nil {
			return fmt.Errorf("%w: referrer %d", ErrUnknownUser, referrerID)
		}

		newBalance := referrer.BalanceCents + commission
		if _, err := s.ledgerRepo.Create(ctx, &domain.Transaction{
			UserID:            referrerID,
			Type:              domain.TransactionBonus,
			AmountCents:       commission,
			BalanceAfterCents: newBalance,
			Source:            fmt.Sprintf("referral:%d", postback.UserID),
			Status:            "COMPLETED",
		}); err != nil {
			return err
		}
		if err := s.accountRepo.UpdateBalance(ctx, referrerID, newBalance, referrer.LifetimeCents+commission); err != nil {
			return err
		}

		_, err = s.referralRepo.Create(ctx, &domain.ReferralEarning{
			ReferrerID:  referrerID,
			ReferredID:  postback.UserID,
			PostbackID:  postback.ID,
			AmountCents: commission,
		})
		return err
	})
}
