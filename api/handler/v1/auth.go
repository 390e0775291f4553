package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lotto/api/handler/v1/request"
	"lotto/api/handler/v1/response"
	"lotto/api/jwthelper"
	"lotto/application"
)

// AuthHandler serves signup and login
type AuthHandler struct {
	app        *application.App
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthHandler(app *application.App, signingKey string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		app:        app,
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
	}
}

// HandleSignup creates a new client account and returns a token for it
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.app.Register(ctx.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	token, err := jwthelper.GenerateToken(h.signingKey, user, h.tokenTTL)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("HandleSignup -> jwthelper.GenerateToken -> %w", err)))
		return
	}

	ctx.JSON(http.StatusCreated, response.LoginResponse{
		Token: token,
		User:  response.NewUserResponse(user),
	})
}

// HandleLogin verifies credentials and returns a token
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.app.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RenderErr(ctx, mapDomainErr(err))
		return
	}

	token, err := jwthelper.GenerateToken(h.signingKey, user, h.tokenTTL)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("HandleLogin -> jwthelper.GenerateToken -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  response.NewUserResponse(user),
	})
}
