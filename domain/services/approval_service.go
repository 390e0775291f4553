package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
)

// approvalService implements admin decisions on deposits and withdrawals
type approvalService struct {
	depositRepo    interfaces.DepositRepository
	withdrawalRepo interfaces.WithdrawalRepository
	ledger         interfaces.LedgerService
}

// NewApprovalService creates a new approval service
func NewApprovalService(
	depositRepo interfaces.DepositRepository,
	withdrawalRepo interfaces.WithdrawalRepository,
	ledger interfaces.LedgerService,
) interfaces.ApprovalService {
	return &approvalService{
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
		ledger:         ledger,
	}
}

func validateDecision(decision entities.ApprovalStatus) error {
	if decision != entities.ApprovalStatusConfirmed && decision != entities.ApprovalStatusRejected {
		return fmt.Errorf("invalid decision: %q", decision)
	}
	return nil
}

// DecideDeposit confirms or rejects a pending deposit. The status flip is a
// conditional update keyed on the pending status, so two admins deciding the
// same deposit concurrently cannot both succeed.
func (s *approvalService) DecideDeposit(ctx context.Context, depositID int64, decision entities.ApprovalStatus, adminID uuid.UUID, notes string) (*entities.Deposit, error) {
	if err := validateDecision(decision); err != nil {
		return nil, err
	}

	deposit, err := s.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}
	if deposit == nil {
		return nil, &entities.NotFoundError{Kind: "deposit", ID: fmt.Sprint(depositID)}
	}
	if !deposit.IsPending() {
		return nil, &entities.AlreadyProcessedError{Kind: "deposit", ID: depositID, Status: deposit.Status}
	}

	decided, err := s.depositRepo.Decide(ctx, depositID, decision, adminID, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to decide deposit: %w", err)
	}
	if !decided {
		return nil, &entities.AlreadyProcessedError{Kind: "deposit", ID: depositID, Status: deposit.Status}
	}

	if decision == entities.ApprovalStatusConfirmed {
		if _, err := s.ledger.ApplyBalanceDelta(ctx, deposit.UserID, deposit.AmountILS,
			entities.TransactionTypeDeposit,
			fmt.Sprintf("Crypto deposit - %s", deposit.CryptoType)); err != nil {
			return nil, fmt.Errorf("failed to credit deposit %d: %w", depositID, err)
		}
	}

	updated, err := s.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload deposit: %w", err)
	}
	return updated, nil
}

// DecideWithdrawal confirms or rejects a pending withdrawal. On confirmation
// the debit runs in the same unit of work as the status flip: when the user
// cannot cover the amount the whole approval rolls back, the withdrawal stays
// pending, and the admin sees the insufficient-funds error.
func (s *approvalService) DecideWithdrawal(ctx context.Context, withdrawalID int64, decision entities.ApprovalStatus, adminID uuid.UUID, notes string) (*entities.Withdrawal, error) {
	if err := validateDecision(decision); err != nil {
		return nil, err
	}

	withdrawal, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}
	if withdrawal == nil {
		return nil, &entities.NotFoundError{Kind: "withdrawal", ID: fmt.Sprint(withdrawalID)}
	}
	if !withdrawal.IsPending() {
		return nil, &entities.AlreadyProcessedError{Kind: "withdrawal", ID: withdrawalID, Status: withdrawal.Status}
	}

	decided, err := s.withdrawalRepo.Decide(ctx, withdrawalID, decision, adminID, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to decide withdrawal: %w", err)
	}
	if !decided {
		return nil, &entities.AlreadyProcessedError{Kind: "withdrawal", ID: withdrawalID, Status: withdrawal.Status}
	}

	if decision == entities.ApprovalStatusConfirmed {
		if _, err := s.ledger.ApplyBalanceDelta(ctx, withdrawal.UserID, -withdrawal.AmountILS,
			entities.TransactionTypeWithdrawal,
			fmt.Sprintf("Crypto withdrawal - %s", withdrawal.CryptoType)); err != nil {
			return nil, err
		}
	}

	updated, err := s.withdrawalRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload withdrawal: %w", err)
	}
	return updated, nil
}
