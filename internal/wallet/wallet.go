// Package wallet exposes the prepaid in-app balance: reads, top-ups,
// order deductions and the paginated transaction history.
package wallet

import (
	"context"
	"fmt"
	"strconv"

	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/domain"
)

// TermsStore reads the locally persisted terms-accepted flag.
type TermsStore interface {
	TermsAccepted(ctx context.Context) (bool, error)
}

// GatePolicy controls which wallet reads require terms acceptance.
// Whether gating history is product policy or an accident of the first
// client is unsettled, so it stays configurable; the default preserves
// the observed behavior.
type GatePolicy struct {
	GateTransactions bool
}

func DefaultGatePolicy() GatePolicy {
	return GatePolicy{GateTransactions: true}
}

type Service struct {
	api    *api.Client
	terms  TermsStore
	policy GatePolicy
}

func NewService(client *api.Client, terms TermsStore, policy GatePolicy) *Service {
	return &Service{api: client, terms: terms, policy: policy}
}

func (s *Service) Balance(ctx context.Context) (*domain.Wallet, error) {
	var w domain.Wallet
	if err := s.api.Get(ctx, "/wallet", &w); err != nil {
		return nil, fmt.Errorf("fetch wallet: %w", err)
	}
	return &w, nil
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

type deductRequest struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
}

func (s *Service) AddMoney(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.api.Post(ctx, "/wallet/add-money", amountRequest{Amount: amount}, nil); err != nil {
		return fmt.Errorf("add money: %w", err)
	}
	return nil
}

// Deduct charges the wallet for an already created order.
func (s *Service) Deduct(ctx context.Context, orderID string, amount float64) error {
	if err := s.api.Post(ctx, "/wallet/deduct-money", deductRequest{OrderID: orderID, Amount: amount}, nil); err != nil {
		return fmt.Errorf("deduct money: %w", err)
	}
	return nil
}

// Transactions returns one page of history, optionally filtered by type
// client-side. typeFilter == "" returns everything.
func (s *Service) Transactions(ctx context.Context, page int, typeFilter domain.TransactionType) ([]domain.WalletTransaction, error) {
	if s.policy.GateTransactions {
		accepted, err := s.terms.TermsAccepted(ctx)
		if err != nil {
			return nil, fmt.Errorf("read terms flag: %w", err)
		}
		if !accepted {
			return nil, ErrTermsNotAccepted
		}
	}

	if page < 1 {
		page = 1
	}
	var txs []domain.WalletTransaction
	if err := s.api.Get(ctx, "/wallet/transactions?page="+strconv.Itoa(page), &txs); err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	if typeFilter == "" {
		return txs, nil
	}
	filtered := txs[:0]
	for _, tx := range txs {
		if tx.Type == typeFilter {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}
