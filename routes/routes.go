package routes

import (
	"net/http"
	"time"

	"lablink/handlers"
	"lablink/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers dentist account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterUserHandler)
		api.POST("/login", hb.Users.LoginUserHandler)

		// Protected routes (require authentication).
		api.Use(middleware.JWTAuthDentistMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetMeHandler)
		api.PUT("/fcm-token", hb.Users.UpdateUserFCMTokenHandler)
		api.DELETE("/revoke", hb.Users.RevokeUserTokenHandler)
	}
}

// RegisterLabRoutes registers lab onboarding, profile and catalogue endpoints.
func RegisterLabRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/labs")
	{
		api.POST("/register", hb.Labs.RegisterLabHandler)
		api.POST("/login", hb.Labs.LoginLabHandler)

		// Dentist-facing lab views.
		dentist := api.Group("")
		dentist.Use(middleware.JWTAuthDentistMiddleware(hb.UserRepo))
		dentist.GET("", hb.Labs.ListLabsHandler)
		dentist.GET("/ranked", hb.Ranking.RankedLabsHandler)
		dentist.GET("/preferred", hb.Labs.GetPreferredLabsHandler)
		dentist.PUT("/preferred", hb.Labs.SetPreferredLabsHandler)
		dentist.DELETE("/preferred/:labId", hb.Labs.RemovePreferredLabHandler)
		dentist.POST("/reviews", hb.Labs.SubmitReviewHandler)
		dentist.GET("/:id", hb.Labs.GetLabHandler)
		dentist.GET("/:id/pricing", hb.Labs.ListPricingHandler)
		dentist.GET("/:id/specializations", hb.Labs.ListSpecializationsHandler)
		dentist.GET("/:id/reviews", hb.Labs.ListReviewsHandler)

		// Lab self-service endpoints.
		lab := api.Group("")
		lab.Use(middleware.JWTAuthLabMiddleware(hb.LabRepo))
		lab.PATCH("/profile", hb.Labs.UpdateLabProfileHandler)
		lab.DELETE("/profile", hb.Labs.DeactivateLabHandler)
		lab.PUT("/fcm-token", hb.Labs.UpdateLabFCMTokenHandler)
		lab.PUT("/pricing", hb.Labs.SetPricingHandler)
		lab.PUT("/specializations", hb.Labs.SetSpecializationHandler)
		lab.DELETE("/revoke", hb.Labs.RevokeLabTokenHandler)
	}
}

// RegisterOrderRoutes registers the case lifecycle endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/orders")
	{
		// Dentist-side order endpoints.
		dentist := api.Group("")
		dentist.Use(middleware.JWTAuthDentistMiddleware(hb.UserRepo))
		dentist.POST("", hb.Orders.CreateOrderHandler)
		dentist.GET("", hb.Orders.ListMyOrdersHandler)
		dentist.POST("/auto-assign", hb.Orders.AutoAssignHandler)
		dentist.GET("/:id", hb.Orders.GetOrderHandler)
		dentist.GET("/:id/bids", hb.Bids.ListOrderBidsHandler)
		dentist.POST("/:id/cancel", hb.Orders.CancelOrderHandler)
		dentist.POST("/:id/delivered", hb.Orders.ConfirmDeliveryHandler)
		dentist.POST("/:id/attachments", hb.Orders.UploadAttachmentHandler)

		// Lab-side order endpoints.
		lab := api.Group("")
		lab.Use(middleware.JWTAuthLabMiddleware(hb.LabRepo))
		lab.GET("/assigned", hb.Orders.ListLabOrdersHandler)
		lab.GET("/open", hb.Orders.ListOpenOrdersHandler)
		lab.PUT("/:id/status", hb.Orders.UpdateStatusHandler)
	}
}

// RegisterBidRoutes registers the marketplace bidding endpoints.
func RegisterBidRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bids")
	{
		lab := api.Group("")
		lab.Use(middleware.JWTAuthLabMiddleware(hb.LabRepo))
		lab.POST("", hb.Bids.SubmitBidHandler)
		lab.GET("", hb.Bids.ListMyBidsHandler)
		lab.POST("/:id/withdraw", hb.Bids.WithdrawBidHandler)

		dentist := api.Group("")
		dentist.Use(middleware.JWTAuthDentistMiddleware(hb.UserRepo))
		dentist.POST("/:id/accept", hb.Bids.AcceptBidHandler)
	}
}

// RegisterInvoiceRoutes registers the billing endpoints.
func RegisterInvoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/invoices")
	{
		lab := api.Group("")
		lab.Use(middleware.JWTAuthLabMiddleware(hb.LabRepo))
		lab.GET("/lab", hb.Invoices.ListLabInvoicesHandler)

		dentist := api.Group("")
		dentist.Use(middleware.JWTAuthDentistMiddleware(hb.UserRepo))
		dentist.GET("", hb.Invoices.ListMyInvoicesHandler)
		dentist.GET("/:id", hb.Invoices.GetInvoiceHandler)
		dentist.POST("/:id/pay", hb.Invoices.CreatePaymentIntentHandler)
		dentist.POST("/:id/paid", hb.Invoices.MarkPaidHandler)
	}
}

// RegisterAdminRoutes registers admin endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware(hb.UserRepo))
		api.GET("/users", hb.Users.ListUsersHandler)
		api.GET("/labs", hb.Labs.ListLabsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm LabLink"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterUserRoutes(r, hb)
	RegisterLabRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterBidRoutes(r, hb)
	RegisterInvoiceRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
