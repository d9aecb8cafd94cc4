package routes

import (
	"os"
	"strings"
	"time"

	"cafeorder-backend/config"
	"cafeorder-backend/controllers"
	"cafeorder-backend/services"
	"cafeorder-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires every controller with its dependencies and mounts the
// public storefront and the admin back-office.
func SetupRouter(db *gorm.DB, notifier services.Notifier) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins = append(origins, strings.Split(env, ",")...)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(config.PerformanceLogger())

	coupons := services.NewCouponService(db)
	orderStatus := services.NewOrderStatusService(db, notifier)

	authController := controllers.NewAuthController(db)
	cafeController := controllers.NewCafeController(db)
	categoryController := controllers.NewCategoryController(db)
	menuItemController := controllers.NewMenuItemController(db)
	couponController := controllers.NewCouponController(db, coupons)
	orderController := controllers.NewOrderController(db, coupons, orderStatus, notifier)
	customerController := controllers.NewCustomerController(db)
	dashboardController := controllers.NewDashboardController(db)
	settingsController := controllers.NewSettingsController(db)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	// Public storefront, tenant resolved from the slug
	cafes := r.Group("/cafes/:slug")
	{
		cafes.GET("", cafeController.GetCafe)
		cafes.GET("/menu", cafeController.GetMenu)
		cafes.POST("/coupons/validate", couponController.ValidateCoupon)
		cafes.POST("/orders", orderController.Checkout)
		cafes.GET("/orders/:orderNumber", orderController.TrackOrder)
		cafes.POST("/orders/:orderNumber/payment", orderController.ConfirmPayment)
	}

	// Admin back-office, tenant resolved from the session
	admin := r.Group("/admin")
	admin.Use(utils.AuthMiddleware())
	{
		categories := admin.Group("/menu/categories")
		{
			categories.GET("", categoryController.GetCategories)
			categories.POST("", categoryController.CreateCategory)
			categories.PATCH("/reorder", categoryController.ReorderCategories)
			categories.PATCH("/:id", categoryController.UpdateCategory)
			categories.DELETE("/:id", categoryController.DeleteCategory)
		}

		items := admin.Group("/menu/items")
		{
			items.GET("", menuItemController.GetMenuItems)
			items.POST("", menuItemController.CreateMenuItem)
			items.POST("/import", menuItemController.ImportMenuItems)
			items.PATCH("/reorder", menuItemController.ReorderMenuItems)
			items.PATCH("/:id", menuItemController.UpdateMenuItem)
			items.DELETE("/:id", menuItemController.DeleteMenuItem)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderController.GetOrders)
			orders.GET("/export", orderController.ExportOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.PATCH("/:id", orderController.UpdateOrderStatus)
		}

		couponsGroup := admin.Group("/coupons")
		{
			couponsGroup.GET("", couponController.GetCoupons)
			couponsGroup.POST("", couponController.CreateCoupon)
			couponsGroup.PATCH("/:id", couponController.UpdateCoupon)
			couponsGroup.DELETE("/:id", couponController.DeleteCoupon)
		}

		customers := admin.Group("/customers")
		{
			customers.GET("", customerController.GetCustomers)
			customers.GET("/:id", customerController.GetCustomer)
		}

		admin.GET("/dashboard", dashboardController.GetOverview)

		admin.GET("/settings", settingsController.GetSettings)
		admin.PUT("/settings", settingsController.UpdateSettings)
		admin.PUT("/profile", settingsController.UpdateCafeProfile)
	}

	return r
}
