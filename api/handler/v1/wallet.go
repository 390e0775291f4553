package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lotto/api/handler/v1/request"
	"lotto/api/handler/v1/response"
	"lotto/application"
)

// WalletHandler serves balance, transaction history and the client side of
// the deposit and withdrawal flows
type WalletHandler struct {
	app *application.App
}

func NewWalletHandler(app *application.App) *WalletHandler {
	return &WalletHandler{app: app}
}

// HandleGetBalance returns the caller's account including its balance
func (h *WalletHandler) HandleGetBalance(ctx *gin.Context) {
	userID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.app.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewUserResponse(user))
}

// HandleGetTransactions returns the caller's ledger history, newest first
func (h *WalletHandler) HandleGetTransactions(ctx *gin.Context) {
	userID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entries, err := h.app.GetTransactionHistory(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewLedgerEntryListResponse(entries))
}

// HandleRequestDeposit files a crypto deposit for admin validation. The
// balance is not credited until an admin confirms.
func (h *WalletHandler) HandleRequestDeposit(ctx *gin.Context) {
	userID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DepositRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	deposit, err := h.app.RequestDeposit(ctx.Request.Context(), userID, req.CryptoType, req.CryptoAmount, req.AmountILS, req.ExchangeRate)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewDepositResponse(deposit))
}

// HandleRequestWithdrawal files a crypto withdrawal. The balance check at
// request time is advisory; the binding debit happens on admin confirmation.
func (h *WalletHandler) HandleRequestWithdrawal(ctx *gin.Context) {
	userID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.WithdrawalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	withdrawal, err := h.app.RequestWithdrawal(ctx.Request.Context(), userID, req.CryptoType, req.CryptoAmount, req.AmountILS, req.ExchangeRate, req.WalletAddress)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewWithdrawalResponse(withdrawal))
}

// HandleGetDeposits returns the caller's deposit requests, newest first
func (h *WalletHandler) HandleGetDeposits(ctx *gin.Context) {
	userID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	deposits, err := h.app.ListUserDeposits(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewDepositListResponse(deposits))
}

// HandleGetWithdrawals returns the caller's withdrawal requests, newest first
func (h *WalletHandler) HandleGetWithdrawals(ctx *gin.Context) {
	userID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	withdrawals, err := h.app.ListUserWithdrawals(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewWithdrawalListResponse(withdrawals))
}
