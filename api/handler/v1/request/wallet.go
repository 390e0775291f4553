package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// DepositRequest files a crypto deposit for admin validation
type DepositRequest struct {
	CryptoType   string          `json:"crypto_type"`
	CryptoAmount decimal.Decimal `json:"crypto_amount"`
	AmountILS    int64           `json:"amount_ils"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

func (req *DepositRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CryptoType, validation.Required, validation.Length(2, 10)),
		validation.Field(&req.AmountILS, validation.Required, validation.Min(int64(1))),
	)
}

// WithdrawalRequest files a crypto withdrawal for admin processing
type WithdrawalRequest struct {
	CryptoType    string          `json:"crypto_type"`
	CryptoAmount  decimal.Decimal `json:"crypto_amount"`
	AmountILS     int64           `json:"amount_ils"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate"`
	WalletAddress string          `json:"wallet_address"`
}

func (req *WithdrawalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CryptoType, validation.Required, validation.Length(2, 10)),
		validation.Field(&req.AmountILS, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.WalletAddress, validation.Required),
	)
}

// DecisionRequest confirms or rejects a pending transfer request
type DecisionRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

func (req *DecisionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Decision, validation.Required, validation.In("confirmed", "rejected")),
		validation.Field(&req.Notes, validation.Length(0, 500)),
	)
}
