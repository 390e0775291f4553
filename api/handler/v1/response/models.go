package response

import (
	"time"

	"github.com/shopspring/decimal"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
)

// UserResponse is the public view of a user. The password hash never
// leaves the server.
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	BalanceILS int64     `json:"balance_ils"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:         user.ID.String(),
		Email:      user.Email,
		Username:   user.Username,
		Role:       string(user.Role),
		BalanceILS: user.BalanceILS,
		CreatedAt:  user.CreatedAt,
	}
}

func NewUserListResponse(users []*entities.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, NewUserResponse(u))
	}
	return result
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type DrawResponse struct {
	ID             int64      `json:"id"`
	DrawDate       time.Time  `json:"draw_date"`
	JackpotAmount  int64      `json:"jackpot_amount"`
	WinningNumbers []int32    `json:"winning_numbers,omitempty"`
	Status         string     `json:"status"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

func NewDrawResponse(draw *entities.Draw) DrawResponse {
	return DrawResponse{
		ID:             draw.ID,
		DrawDate:       draw.DrawDate,
		JackpotAmount:  draw.JackpotAmount,
		WinningNumbers: draw.WinningNumbers,
		Status:         string(draw.Status),
		CompletedAt:    draw.CompletedAt,
	}
}

func NewDrawListResponse(draws []*entities.Draw) []DrawResponse {
	result := make([]DrawResponse, 0, len(draws))
	for _, d := range draws {
		result = append(result, NewDrawResponse(d))
	}
	return result
}

type TicketResponse struct {
	ID            int64      `json:"id"`
	DrawID        int64      `json:"draw_id"`
	Numbers       []int32    `json:"numbers"`
	CostILS       int64      `json:"cost_ils"`
	Matches       int32      `json:"matches"`
	WinningAmount int64      `json:"winning_amount"`
	IsWinner      bool       `json:"is_winner"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewTicketResponse(ticket *entities.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		DrawID:        ticket.DrawID,
		Numbers:       ticket.Numbers,
		CostILS:       ticket.CostILS,
		Matches:       ticket.Matches,
		WinningAmount: ticket.WinningAmount,
		IsWinner:      ticket.IsWinner,
		SettledAt:     ticket.SettledAt,
		CreatedAt:     ticket.CreatedAt,
	}
}

func NewTicketListResponse(tickets []*entities.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, NewTicketResponse(t))
	}
	return result
}

type PurchaseResponse struct {
	Ticket     TicketResponse `json:"ticket"`
	Draw       DrawResponse   `json:"draw"`
	TotalCost  int64          `json:"total_cost"`
	NewBalance int64          `json:"new_balance"`
}

func NewPurchaseResponse(result *interfaces.PurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		Ticket:     NewTicketResponse(result.Ticket),
		Draw:       NewDrawResponse(result.Draw),
		TotalCost:  result.TotalCost,
		NewBalance: result.NewBalance,
	}
}

type LedgerEntryResponse struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	AmountILS     int64     `json:"amount_ils"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewLedgerEntryListResponse(entries []*entities.LedgerEntry) []LedgerEntryResponse {
	result := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, LedgerEntryResponse{
			ID:            e.ID,
			Type:          string(e.Type),
			AmountILS:     e.AmountILS,
			BalanceBefore: e.BalanceBefore,
			BalanceAfter:  e.BalanceAfter,
			Description:   e.Description,
			CreatedAt:     e.CreatedAt,
		})
	}
	return result
}

type DepositResponse struct {
	ID           int64           `json:"id"`
	UserID       string          `json:"user_id"`
	CryptoType   string          `json:"crypto_type"`
	CryptoAmount decimal.Decimal `json:"crypto_amount"`
	AmountILS    int64           `json:"amount_ils"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	ValidatedAt  *time.Time      `json:"validated_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewDepositResponse(d *entities.Deposit) DepositResponse {
	return DepositResponse{
		ID:           d.ID,
		UserID:       d.UserID.String(),
		CryptoType:   d.CryptoType,
		CryptoAmount: d.CryptoAmount,
		AmountILS:    d.AmountILS,
		ExchangeRate: d.ExchangeRate,
		Status:       string(d.Status),
		Notes:        d.Notes,
		ValidatedAt:  d.ValidatedAt,
		CreatedAt:    d.CreatedAt,
	}
}

func NewDepositListResponse(deposits []*entities.Deposit) []DepositResponse {
	result := make([]DepositResponse, 0, len(deposits))
	for _, d := range deposits {
		result = append(result, NewDepositResponse(d))
	}
	return result
}

type WithdrawalResponse struct {
	ID            int64           `json:"id"`
	UserID        string          `json:"user_id"`
	CryptoType    string          `json:"crypto_type"`
	CryptoAmount  decimal.Decimal `json:"crypto_amount"`
	AmountILS     int64           `json:"amount_ils"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	WalletAddress string          `json:"wallet_address"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewWithdrawalResponse(w *entities.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:            w.ID,
		UserID:        w.UserID.String(),
		CryptoType:    w.CryptoType,
		CryptoAmount:  w.CryptoAmount,
		AmountILS:     w.AmountILS,
		ExchangeRate:  w.ExchangeRate,
		WalletAddress: w.WalletAddress,
		Status:        string(w.Status),
		Notes:         w.Notes,
		ProcessedAt:   w.ProcessedAt,
		CreatedAt:     w.CreatedAt,
	}
}

func NewWithdrawalListResponse(withdrawals []*entities.Withdrawal) []WithdrawalResponse {
	result := make([]WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		result = append(result, NewWithdrawalResponse(w))
	}
	return result
}

type SettlementFailureResponse struct {
	TicketID int64  `json:"ticket_id"`
	Reason   string `json:"reason"`
}

type SettlementResponse struct {
	DrawID           int64                       `json:"draw_id"`
	WinningNumbers   []int32                     `json:"winning_numbers"`
	JackpotAmount    int64                       `json:"jackpot_amount"`
	TicketsProcessed int                         `json:"tickets_processed"`
	WinnersPaid      int                         `json:"winners_paid"`
	TotalPayout      int64                       `json:"total_payout"`
	Failures         []SettlementFailureResponse `json:"failures,omitempty"`
}

func NewSettlementResponse(report *interfaces.SettlementReport) SettlementResponse {
	resp := SettlementResponse{
		DrawID:           report.DrawID,
		WinningNumbers:   report.WinningNumbers,
		JackpotAmount:    report.JackpotAmount,
		TicketsProcessed: report.TicketsProcessed,
		WinnersPaid:      report.WinnersPaid,
		TotalPayout:      report.TotalPayout,
	}
	for _, f := range report.Failures {
		resp.Failures = append(resp.Failures, SettlementFailureResponse{
			TicketID: f.TicketID,
			Reason:   f.Reason,
		})
	}
	return resp
}
