package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// PurchaseTicketRequest buys one ticket with six chosen numbers.
// The domain validates range and distinctness; this only checks shape.
type PurchaseTicketRequest struct {
	Numbers []int32 `json:"numbers"`
}

func (req *PurchaseTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Numbers, validation.Required, validation.Length(6, 6)),
	)
}

// CreateDrawRequest schedules a draw. Both fields are optional; omitted
// values fall back to the next draw slot and the default jackpot.
type CreateDrawRequest struct {
	DrawDate      time.Time `json:"draw_date"`
	JackpotAmount int64     `json:"jackpot_amount"`
}

func (req *CreateDrawRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.JackpotAmount, validation.Min(int64(0))),
	)
}

// SettleDrawRequest settles a draw with manually supplied winning numbers
type SettleDrawRequest struct {
	WinningNumbers []int32 `json:"winning_numbers"`
}

func (req *SettleDrawRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WinningNumbers, validation.Required, validation.Length(6, 6)),
	)
}
