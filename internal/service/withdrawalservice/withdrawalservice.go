package withdrawalservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GlebRadaev/offermart/internal/domain"
	"github.com/GlebRadaev/offermart/internal/metrics"
	"github.com/GlebRadaev/offermart/internal/notify"
	"github.com/GlebRadaev/offermart/internal/pg"
	"github.com/GlebRadaev/offermart/pkg/validate"
	"go.uber.org/zap"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAccountNotFound     = errors.New("account not found")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrBelowMinimum        = errors.New("amount below minimum")
	ErrInvalidMethod       = errors.New("unsupported payout method")
	ErrInvalidDestination  = errors.New("invalid payout destination")
	ErrInvalidTransition   = errors.New("invalid withdrawal status transition")
)

// RateLimitError carries the earliest moment the next request can succeed.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("withdrawal rate limit exceeded, retry after %s", e.RetryAfter.Round(time.Second))
}

var validMethods = map[string]bool{
	"paypal":    true,
	"card":      true,
	"gift_card": true,
	"crypto":    true,
}

// Linear state machine: PENDING → PROCESSING → {COMPLETED, REJECTED}, with an
// early REJECTED allowed straight from PENDING. No cycles.
var validTransitions = map[domain.WithdrawalStatus][]domain.WithdrawalStatus{
	domain.WithdrawalPending:    {domain.WithdrawalProcessing, domain.WithdrawalRejected},
	domain.WithdrawalProcessing: {domain.WithdrawalCompleted, domain.WithdrawalRejected},
}

type AccountRepo interface {
	GetByIDForUpdate(ctx context.Context, userID int) (*domain.Account, error)
	UpdateBalance(ctx context.Context, userID int, balanceCents, lifetimeCents int64) error
}

type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	GetByIDForUpdate(ctx context.Context, id int) (*domain.Withdrawal, error)
	GetByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error)
	CountSince(ctx context.Context, userID int, since time.Time) (int, *time.Time, error)
	UpdateStatus(ctx context.Context, id int, from, to domain.WithdrawalStatus, reason *string, at time.Time) (bool, error)
}

type LedgerRepo interface {
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
}

type Mailer interface {
	SendWithdrawalEmail(userID int, status string, amountCents int64, reason string) error
}

type Service struct {
	txManager      pg.TXManager
	accountRepo    AccountRepo
	withdrawalRepo WithdrawalRepo
	ledgerRepo     LedgerRepo
	runner         notify.Runner
	mailer         Mailer
	minCents       int64
	hourlyMax      int
}

func New(
	txManager pg.TXManager,
	accountRepo AccountRepo,
	withdrawalRepo WithdrawalRepo,
	ledgerRepo LedgerRepo,
	runner notify.Runner,
	mailer Mailer,
	minCents int64,
	hourlyMax int,
) *Service {
	return &Service{
		txManager:      txManager,
		accountRepo:    accountRepo,
		withdrawalRepo: withdrawalRepo,
		ledgerRepo:     ledgerRepo,
		runner:         runner,
		mailer:         mailer,
		minCents:       minCents,
		hourlyMax:      hourlyMax,
	}
}

// Create debits the balance and opens a PENDING withdrawal atomically. The
// rate limit check runs before the transaction; the sufficiency check runs
// inside it, against the locked balance.
func (s *Service) Create(ctx context.Context, userID int, amountCents int64, method, destination string) (*domain.Withdrawal, error) {
	if amountCents < s.minCents {
		return nil, fmt.Errorf("%w: minimum is %d cents", ErrBelowMinimum, s.minCents)
	}
	if !validMethods[method] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMethod, method)
	}
	if destination == "" {
		return nil, fmt.Errorf("%w: destination required", ErrInvalidDestination)
	}
	if method == "card" && !validate.IsCardNumber(destination) {
		return nil, fmt.Errorf("%w: card number failed checksum", ErrInvalidDestination)
	}

	now := time.Now()
	count, oldest, err := s.withdrawalRepo.CountSince(ctx, userID, now.Add(-time.Hour))
	if err != nil {
		return nil, err
	}
	if count >= s.hourlyMax {
		// A slot frees up when the oldest request in the window ages out.
		retryAfter := time.Hour
		if oldest != nil {
			if wait := oldest.Add(time.Hour).Sub(now); wait > 0 && wait < retryAfter {
				retryAfter = wait
			}
		}
		return nil, &RateLimitError{RetryAfter: retryAfter}
	}

	withdrawal := &domain.Withdrawal{
		UserID:      userID,
		AmountCents: amountCents,
		Method:      method,
		Destination: destination,
		Status:      domain.WithdrawalPending,
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		account, err := s.accountRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("%w: %d", ErrAccountNotFound, userID)
		}
		if account.BalanceCents < amountCents {
			return ErrInsufficientBalance
		}

		newBalance := account.BalanceCents - amountCents
		if _, err := s.ledgerRepo.Create(ctx, &domain.Transaction{
			UserID:            userID,
			Type:              domain.TransactionWithdrawal,
			AmountCents:       amountCents,
			BalanceAfterCents: newBalance,
			Source:            method,
			Status:            "COMPLETED",
		}); err != nil {
			return err
		}
		if err := s.accountRepo.UpdateBalance(ctx, userID, newBalance, account.LifetimeCents); err != nil {
			return err
		}

		_, err = s.withdrawalRepo.Create(ctx, withdrawal)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalsTotal.WithLabelValues(string(domain.WithdrawalPending)).Inc()
	zap.L().Info("withdrawal created",
		zap.Int("userID", userID), zap.Int64("amountCents", amountCents), zap.String("method", method))
	return withdrawal, nil
}

// Transition moves a withdrawal along the admin state machine. Rejection
// refunds the exact debited amount as a fresh ADJUSTMENT credit; the original
// WITHDRAWAL transaction is never touched.
func (s *Service) Transition(ctx context.Context, id int, to domain.WithdrawalStatus, reason *string) (*domain.Withdrawal, error) {
	var result *domain.Withdrawal

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		withdrawal, err := s.withdrawalRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if withdrawal == nil {
			return fmt.Errorf("%w: %d", ErrWithdrawalNotFound, id)
		}

		if !transitionAllowed(withdrawal.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, withdrawal.Status, to)
		}

		now := time.Now()
		moved, err := s.withdrawalRepo.UpdateStatus(ctx, id, withdrawal.Status, to, reason, now)
		if err != nil {
			return err
		}
		if !moved {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, withdrawal.Status, to)
		}

		if to == domain.WithdrawalRejected {
			if err := s.refund(ctx, withdrawal); err != nil {
				return err
			}
		}

		withdrawal.Status = to
		if reason != nil {
			withdrawal.RejectionReason = reason
		}
		result = withdrawal
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalsTotal.WithLabelValues(string(to)).Inc()
	zap.L().Info("withdrawal transitioned",
		zap.Int("withdrawalID", id), zap.String("status", string(to)))

	s.runner.Go("withdrawal-email", func(ctx context.Context) error {
		var reasonText string
		if result.RejectionReason != nil {
			reasonText = *result.RejectionReason
		}
		return s.mailer.SendWithdrawalEmail(result.UserID, string(to), result.AmountCents, reasonText)
	})
	return result, nil
}

func transitionAllowed(from, to domain.WithdrawalStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// refund credits back the exact debited amount. Runs inside the transition's
// transaction so a failed refund also rolls back the status change.
func (s *Service) refund(ctx context.Context, withdrawal *domain.Withdrawal) error {
	account, err := s.accountRepo.GetByIDForUpdate(ctx, withdrawal.UserID)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("%w: %d", ErrAccountNotFound, withdrawal.UserID)
	}

	newBalance := account.BalanceCents + withdrawal.AmountCents
	if _, err := s.ledgerRepo.Create(ctx, &domain.Transaction{
		UserID:            withdrawal.UserID,
		Type:              domain.TransactionAdjustment,
		AmountCents:       withdrawal.AmountCents,
		BalanceAfterCents: newBalance,
		Source:            fmt.Sprintf("withdrawal-refund:%d", withdrawal.ID),
		Status:            "COMPLETED",
	}); err != nil {
		return err
	}
	// Refunds restore spendable balance only; lifetime earnings are unchanged.
	return s.accountRepo.UpdateBalance(ctx, withdrawal.UserID, newBalance, account.LifetimeCents)
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}
