package main

import (
	"fmt"
	"log"
	"os"

	"cafeorder-backend/config"
	"cafeorder-backend/models"
	"cafeorder-backend/routes"
	"cafeorder-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Cafe{},
		&models.Settings{},
		&models.Admin{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
		&models.Customer{},
		&models.NotificationLog{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Order events go to the browser relay and, when configured, to the
	// customer by SMS. Both degrade to no-ops without configuration.
	notifiers := services.MultiNotifier{services.NewPusherNotifier()}
	if sms := services.NewSMSNotifier(db); sms != nil {
		notifiers = append(notifiers, sms)
	}

	services.NewMaintenanceService(db).StartScheduler()

	r := routes.SetupRouter(db, notifiers)
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
