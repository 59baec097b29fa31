package routes

import (
	"homechef-api/handlers"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	r.POST("/auth/", handlers.Register)
	r.POST("/auth/token", handlers.Login)
	r.GET("/state-machine", handlers.GetStateMachineInfo)

	// ── Authenticated routes ───────────────────────────────────────
	me := r.Group("/me")
	me.Use(middleware.AuthRequired())
	{
		me.GET("/", handlers.GetMe)
	}

	// ── Kitchens & catalog ─────────────────────────────────────────
	kitchens := r.Group("/homekitchens")
	kitchens.Use(middleware.AuthRequired())
	{
		kitchens.GET("/", handlers.ListKitchens)
		kitchens.POST("/", middleware.RoleRequired(models.RoleOwner), handlers.CreateKitchen)

		kitchens.GET("/:id/mealplans", handlers.GetMealPlans)
		kitchens.GET("/:id/menuitems", handlers.GetMenuItems)
		kitchens.GET("/:id/mealplans/:mealplanId/items", handlers.GetMealPlanItems)

		// Ownership of :id is asserted inside the handlers
		kitchens.POST("/:id/mealplans", handlers.CreateMealPlan)
		kitchens.DELETE("/:id/mealplans/:mealplanId", handlers.DeleteMealPlan)
		kitchens.POST("/:id/menuitems", handlers.CreateMenuItem)
		kitchens.DELETE("/:id/menuitems/:itemId", handlers.DeleteMenuItem)
	}

	// ── Customer routes ────────────────────────────────────────────
	order := r.Group("/order")
	order.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		order.POST("/", handlers.PlaceOrder)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/driver")
	driver.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/orders", handlers.ListOrders)
		driver.POST("/orders/:id/claim", handlers.ClaimOrder)
		driver.POST("/orders/:id/complete", handlers.CompleteOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.PUT("/verify-driver/:id", handlers.VerifyDriver)
		admin.PUT("/approve-kitchen/:id", handlers.ApproveKitchen)
		admin.DELETE("/delete-user/:id", handlers.DeleteUser)
		admin.GET("/pending-drivers", handlers.GetPendingDrivers)
		admin.GET("/pending-kitchens", handlers.GetPendingKitchens)
		admin.GET("/all-users", handlers.GetAllUsers)
	}
}
