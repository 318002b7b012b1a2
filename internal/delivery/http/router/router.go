// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	HealthHandler       *handler.HealthHandler
	UserHandler         *handler.UserHandler
	ProfileHandler      *handler.ProfileHandler
	BankHandler         *handler.BankHandler
	RequestHandler      *handler.RequestHandler
	DonationHandler     *handler.DonationHandler
	CampaignHandler     *handler.CampaignHandler
	NotificationHandler *handler.NotificationHandler
	StatsHandler        *handler.StatsHandler
	AuthMiddleware      *middleware.AuthMiddleware
	LoggerMiddleware    *middleware.LoggerMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.params.LoggerMiddleware.Inject)

	// Health check endpoint
	e.GET("/health", r.params.HealthHandler.Check)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.UserHandler.Register)
		authGroup.POST("/login", r.params.UserHandler.Login)
		authGroup.POST("/refresh", r.params.UserHandler.Refresh)
		authGroup.POST("/logout", r.params.UserHandler.Logout)
		authGroup.POST("/firebase", r.params.UserHandler.SignInWithIDToken)
	}

	// Sensitive account operations require a fresh session on top of auth.
	accountGroup := e.Group("/auth")
	accountGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		accountGroup.PUT("/password", r.params.UserHandler.ChangePassword)
		accountGroup.DELETE("/account", r.params.UserHandler.DeleteAccount)
	}

	// Routes scoped to the authenticated account
	meGroup := e.Group("/me")
	meGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		meGroup.GET("/profile", r.params.ProfileHandler.GetMe)
		meGroup.PUT("/profile", r.params.ProfileHandler.UpdateMe)
		meGroup.GET("/requests", r.params.RequestHandler.ListMine)
		meGroup.GET("/donations", r.params.DonationHandler.ListMine)
		meGroup.GET("/notifications", r.params.NotificationHandler.ListMine)
		meGroup.GET("/notifications/unread", r.params.NotificationHandler.CountUnread)
		meGroup.PUT("/notifications/read", r.params.NotificationHandler.MarkAllRead)
		meGroup.PUT("/notifications/:id/read", r.params.NotificationHandler.MarkRead)
	}

	// Public directory routes
	bankGroup := e.Group("/banks")
	{
		bankGroup.GET("", r.params.BankHandler.List)
		bankGroup.GET("/nearby", r.params.BankHandler.Nearby)
		bankGroup.GET("/:id", r.params.BankHandler.Get)
	}

	requestGroup := e.Group("/requests")
	{
		requestGroup.GET("", r.params.RequestHandler.List)
		requestGroup.GET("/:id", r.params.RequestHandler.Get)
	}
	authedRequestGroup := e.Group("/requests")
	authedRequestGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		authedRequestGroup.POST("", r.params.RequestHandler.Create)
	}

	campaignGroup := e.Group("/campaigns")
	{
		campaignGroup.GET("", r.params.CampaignHandler.List)
		campaignGroup.GET("/:id", r.params.CampaignHandler.Get)
	}
	authedCampaignGroup := e.Group("/campaigns")
	authedCampaignGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		authedCampaignGroup.POST("/:id/register", r.params.CampaignHandler.Register)
		authedCampaignGroup.GET("/:id/qr", r.params.CampaignHandler.CheckInQR)
	}

	donationGroup := e.Group("/donations")
	donationGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		donationGroup.POST("", r.params.DonationHandler.Record)
	}

	// Administrative routes require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.params.AuthMiddleware.Authenticate)
	adminGroup.Use(r.params.AuthMiddleware.RequireAdmin())
	{
		adminGroup.GET("/stats", r.params.StatsHandler.Dashboard)

		adminGroup.GET("/users", r.params.ProfileHandler.List)
		adminGroup.PUT("/users/:uid/role", r.params.ProfileHandler.ChangeRole)
		adminGroup.PUT("/users/:uid/eligibility", r.params.ProfileHandler.SetEligibility)

		adminGroup.POST("/banks", r.params.BankHandler.Create)
		adminGroup.PUT("/banks/:id", r.params.BankHandler.Update)
		adminGroup.DELETE("/banks/:id", r.params.BankHandler.Delete)
		adminGroup.PUT("/banks/:id/inventory", r.params.BankHandler.AdjustInventory)

		adminGroup.PUT("/requests/:id/status", r.params.RequestHandler.ChangeStatus)

		adminGroup.GET("/donations", r.params.DonationHandler.List)
		adminGroup.GET("/donations/:id", r.params.DonationHandler.Get)
		adminGroup.PUT("/donations/:id/verify", r.params.DonationHandler.Verify)
		adminGroup.PUT("/donations/:id/reject", r.params.DonationHandler.Reject)

		adminGroup.POST("/campaigns", r.params.CampaignHandler.Create)
		adminGroup.PUT("/campaigns/:id", r.params.CampaignHandler.Update)
		adminGroup.DELETE("/campaigns/:id", r.params.CampaignHandler.Delete)

		adminGroup.POST("/notifications/broadcast", r.params.NotificationHandler.Broadcast)
	}
}
