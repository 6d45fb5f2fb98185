package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/maxiwise/MF_Api.git/internal/middleware"
)

func RegisterRoutes(router *gin.Engine) {
	// Attribution runs on everything so UTM and visit markers are in
	// place before any handler reads them.
	router.Use(middleware.Attribution())

	// Local auth fallback
	router.POST("/signup", middleware.Signup)
	router.POST("/login", middleware.Login)
	router.POST("/logout", middleware.AuthMiddleware(), middleware.Logout)
	router.POST("/reset-password-request", middleware.RequestResetPassword)
	router.POST("/reset-password", middleware.ResetPassword)

	// Clerk
	router.POST("/webhook/clerk", middleware.ClerkWebhookHandler)
	router.GET("/me", middleware.ClerkAuthMiddleware(), middleware.GetUserFromClerk)

	// Public fund data, the surface the web frontend renders from
	mfData := router.Group("/api/mf-data")
	{
		mfData.GET("/fund-schemes", middleware.GetFundSchemes)
		mfData.GET("/chart-data/:id", middleware.GetChartData)
		mfData.GET("/nav/:isin", middleware.GetNav)
		mfData.GET("/nav-history/:id", middleware.GetNavHistory)
	}

	// Consent + marketing
	router.POST("/api/consent", middleware.SetConsent)
	router.POST("/api/leads", middleware.SubmitLead)

	// Share links resolve without a login
	router.GET("/shared/:token", middleware.ResolveSharedFund)

	// Gated actions: profile, watchlist, alerts
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.PUT("/users", middleware.UpdateUser)
		protected.DELETE("/users", middleware.DeleteUser)

		protected.POST("/watchlist", middleware.CreateWatchlistGroup)
		protected.GET("/watchlist", middleware.GetWatchlistGroups)
		protected.GET("/watchlist/:id", middleware.GetWatchlistGroupDetails)
		protected.DELETE("/watchlist/:id", middleware.DeleteWatchlistGroup)
		protected.POST("/watchlist/:id/items", middleware.AddWatchlistItem)
		protected.DELETE("/watchlist/:id/items/:isin", middleware.RemoveWatchlistItem)
		protected.POST("/watchlist/:id/rules", middleware.CreateAlertRule)
		protected.DELETE("/watchlist/:id/rules/:ruleId", middleware.DeleteAlertRule)

		protected.POST("/funds/:id/share", middleware.ShareFund)
		protected.GET("/funds/:id/download", middleware.DownloadNavHistory)
	}

	// Admin
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.GET("/users", middleware.GetUsers)
		admin.GET("/users/:id", middleware.GetUser)
		admin.GET("/users/email/:email", middleware.GetUserByEmail)
		admin.POST("/refresh-funds", middleware.RefreshFundData)
	}
}
