package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lotto/api/handler/v1/request"
	"lotto/api/handler/v1/response"
	"lotto/application"
)

// LotteryHandler serves draws and ticket purchases
type LotteryHandler struct {
	app *application.App
}

func NewLotteryHandler(app *application.App) *LotteryHandler {
	return &LotteryHandler{app: app}
}

// HandleGetCurrentDraw returns the scheduled draw new tickets attach to,
// plus the time it conducts
func (h *LotteryHandler) HandleGetCurrentDraw(ctx *gin.Context) {
	draw, err := h.app.CurrentDraw(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"draw":           response.NewDrawResponse(draw),
		"next_draw_time": h.app.NextDrawTime(time.Now()),
	})
}

// HandleListDraws returns all draws, newest first
func (h *LotteryHandler) HandleListDraws(ctx *gin.Context) {
	draws, err := h.app.ListDraws(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewDrawListResponse(draws))
}

// HandlePurchaseTicket buys one ticket for the caller against the current
// draw. The debit and the ticket commit together.
func (h *LotteryHandler) HandlePurchaseTicket(ctx *gin.Context) {
	userID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PurchaseTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.app.PurchaseTicket(ctx.Request.Context(), userID, req.Numbers)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewPurchaseResponse(result))
}

// HandleGetMyTickets returns the caller's tickets, newest first
func (h *LotteryHandler) HandleGetMyTickets(ctx *gin.Context) {
	userID, respErr := authUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tickets, err := h.app.GetUserTickets(ctx.Request.Context(), userID)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewTicketListResponse(tickets))
}
