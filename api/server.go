package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	v1 "lotto/api/handler/v1"
	"lotto/api/middleware"
	"lotto/application"
	"lotto/config"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
}

func NewServer(conf *config.Config, app *application.App) *Server {
	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := v1.NewAuthHandler(app, conf.JWTSigningKey, conf.TokenTTL)
	walletHandler := v1.NewWalletHandler(app)
	lotteryHandler := v1.NewLotteryHandler(app)
	adminHandler := v1.NewAdminHandler(app)
	s.MountHandlers(authHandler, walletHandler, lotteryHandler, adminHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.AllowedOrigins))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, walletHandler *v1.WalletHandler, lotteryHandler *v1.LotteryHandler, adminHandler *v1.AdminHandler) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.JWTSigningKey)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		users.GET("/wallet", walletHandler.HandleGetBalance)
		users.GET("/wallet/transactions", walletHandler.HandleGetTransactions)
		users.POST("/wallet/deposits", walletHandler.HandleRequestDeposit)
		users.GET("/wallet/deposits", walletHandler.HandleGetDeposits)
		users.POST("/wallet/withdrawals", walletHandler.HandleRequestWithdrawal)
		users.GET("/wallet/withdrawals", walletHandler.HandleGetWithdrawals)

		users.GET("/draws/current", lotteryHandler.HandleGetCurrentDraw)
		users.GET("/draws", lotteryHandler.HandleListDraws)
		users.POST("/tickets", lotteryHandler.HandlePurchaseTicket)
		users.GET("/tickets", lotteryHandler.HandleGetMyTickets)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), authenticator.RequireApprover())
	{
		admin.GET("/deposits", adminHandler.HandleListDeposits)
		admin.PATCH("/deposits/:depositID", adminHandler.HandleDecideDeposit)
		admin.GET("/withdrawals", adminHandler.HandleListWithdrawals)
		admin.PATCH("/withdrawals/:withdrawalID", adminHandler.HandleDecideWithdrawal)
		admin.POST("/draws", adminHandler.HandleCreateDraw)
		admin.POST("/draws/:drawID/settle", adminHandler.HandleSettleDraw)
		admin.POST("/draws/:drawID/cancel", adminHandler.HandleCancelDraw)
		admin.GET("/users", adminHandler.HandleListUsers)
	}

	root := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), authenticator.RequireUserManager())
	{
		root.DELETE("/users/:userID", adminHandler.HandleDeleteUser)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
}
