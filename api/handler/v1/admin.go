package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lotto/api/handler/v1/request"
	"lotto/api/handler/v1/response"
	"lotto/application"
	"lotto/domain/entities"
)

// AdminHandler serves the approval queue, draw settlement and user management
type AdminHandler struct {
	app *application.App
}

func NewAdminHandler(app *application.App) *AdminHandler {
	return &AdminHandler{app: app}
}

func parseID(ctx *gin.Context, name string) (int64, *response.Err) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s: %w", name, err))
	}
	return id, nil
}

func statusFilter(ctx *gin.Context) (entities.ApprovalStatus, *response.Err) {
	status := entities.ApprovalStatus(ctx.DefaultQuery("status", string(entities.ApprovalStatusPending)))
	switch status {
	case entities.ApprovalStatusPending, entities.ApprovalStatusConfirmed, entities.ApprovalStatusRejected:
		return status, nil
	default:
		return "", response.ErrBadRequest(fmt.Errorf("unknown status %q", status))
	}
}

// HandleListDeposits returns deposit requests in a status, pending by default
func (h *AdminHandler) HandleListDeposits(ctx *gin.Context) {
	status, respErr := statusFilter(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	deposits, err := h.app.ListDepositsByStatus(ctx.Request.Context(), status)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewDepositListResponse(deposits))
}

// HandleDecideDeposit confirms or rejects a pending deposit. Confirmation
// credits the owning user exactly once.
func (h *AdminHandler) HandleDecideDeposit(ctx *gin.Context) {
	adminID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	depositID, respErr := parseID(ctx, "depositID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	deposit, err := h.app.DecideDeposit(ctx.Request.Context(), depositID, entities.ApprovalStatus(req.Decision), adminID, req.Notes)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewDepositResponse(deposit))
}

// HandleListWithdrawals returns withdrawal requests in a status, pending by
// default
func (h *AdminHandler) HandleListWithdrawals(ctx *gin.Context) {
	status, respErr := statusFilter(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	withdrawals, err := h.app.ListWithdrawalsByStatus(ctx.Request.Context(), status)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewWithdrawalListResponse(withdrawals))
}

// HandleDecideWithdrawal confirms or rejects a pending withdrawal. An
// insufficient balance fails the confirmation and the request stays pending.
func (h *AdminHandler) HandleDecideWithdrawal(ctx *gin.Context) {
	adminID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	withdrawalID, respErr := parseID(ctx, "withdrawalID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	withdrawal, err := h.app.DecideWithdrawal(ctx.Request.Context(), withdrawalID, entities.ApprovalStatus(req.Decision), adminID, req.Notes)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewWithdrawalResponse(withdrawal))
}

// HandleCreateDraw schedules a draw with a custom date and jackpot. Fails
// while another draw is still scheduled.
func (h *AdminHandler) HandleCreateDraw(ctx *gin.Context) {
	var req request.CreateDrawRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	draw, err := h.app.CreateDraw(ctx.Request.Context(), req.DrawDate, req.JackpotAmount)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewDrawResponse(draw))
}

// HandleCancelDraw cancels a scheduled draw. Its tickets stay unsettled and
// no payouts occur.
func (h *AdminHandler) HandleCancelDraw(ctx *gin.Context) {
	drawID, respErr := parseID(ctx, "drawID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	draw, err := h.app.CancelDraw(ctx.Request.Context(), drawID)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewDrawResponse(draw))
}

// HandleSettleDraw settles a draw. Winning numbers may be supplied in the
// body; with no body the numbers are drawn randomly.
func (h *AdminHandler) HandleSettleDraw(ctx *gin.Context) {
	drawID, respErr := parseID(ctx, "drawID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var winningNumbers []int32
	if ctx.Request.ContentLength > 0 {
		var req request.SettleDrawRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		winningNumbers = req.WinningNumbers
	} else {
		numbers, err := (&entities.Draw{}).GenerateWinningNumbers()
		if err != nil {
			response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("failed to generate winning numbers: %w", err)))
			return
		}
		winningNumbers = numbers
	}

	report, err := h.app.SettleDraw(ctx.Request.Context(), drawID, winningNumbers)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSettlementResponse(report))
}

// HandleListUsers returns all user accounts
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	users, err := h.app.ListUsers(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewUserListResponse(users))
}

// HandleDeleteUser removes a user account; tickets, transfer requests and
// ledger entries cascade
func (h *AdminHandler) HandleDeleteUser(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("userID"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid userID: %w", err)))
		return
	}

	if err := h.app.DeleteUser(ctx.Request.Context(), userID); err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
