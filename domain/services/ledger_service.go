package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"
)

// ledgerService implements the single choke point for balance mutations.
// The repositories it holds are expected to share one unit of work, so the
// balance update and the ledger append commit or roll back together.
type ledgerService struct {
	userRepo       interfaces.UserRepository
	ledgerRepo     interfaces.LedgerRepository
	eventPublisher interfaces.EventPublisher
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	userRepo interfaces.UserRepository,
	ledgerRepo interfaces.LedgerRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.LedgerService {
	return &ledgerService{
		userRepo:       userRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// ApplyBalanceDelta applies a signed amount to the user's balance and appends
// one ledger entry. The balance mutation happens as a conditional update at
// the storage layer, never as a read-then-write, so concurrent mutations to
// the same user serialize on the row and cannot overdraw.
func (s *ledgerService) ApplyBalanceDelta(ctx context.Context, userID uuid.UUID, amountILS int64, txType entities.TransactionType, description string) (*interfaces.LedgerResult, error) {
	if amountILS == 0 {
		return nil, errors.New("amount must be non-zero")
	}

	balanceBefore, balanceAfter, err := s.userRepo.ApplyBalanceDelta(ctx, userID, amountILS)
	if err != nil {
		return nil, err
	}

	entry := &entities.LedgerEntry{
		UserID:        userID,
		Type:          txType,
		AmountILS:     amountILS,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   description,
		CreatedAt:     time.Now(),
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger entry: %w", err)
	}

	if err := s.ledgerRepo.Record(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	event := events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      balanceBefore,
		NewBalance:      balanceAfter,
		TransactionType: txType,
		ChangeAmount:    amountILS,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"userID":          userID,
			"transactionType": txType,
		}).Error("Failed to publish balance change event")
	}

	return &interfaces.LedgerResult{
		Entry:         entry,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
	}, nil
}
