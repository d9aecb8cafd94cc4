package controllers

import (
	"net/http"
	"time"

	"cafeorder-backend/models"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type topItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// GetOverview returns today's headline numbers for the back-office
// dashboard.
func (dc *DashboardController) GetOverview(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	startOfDay := utils.BeginningOfDay(time.Now())

	var todayOrders int64
	dc.DB.Model(&models.Order{}).
		Where("cafe_id = ? AND created_at >= ?", cafeUUID, startOfDay).
		Count(&todayOrders)

	// Cancelled orders don't count toward revenue.
	var todayRevenue float64
	dc.DB.Model(&models.Order{}).
		Where("cafe_id = ? AND created_at >= ? AND status <> ?", cafeUUID, startOfDay, models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").Scan(&todayRevenue)

	var pendingOrders int64
	dc.DB.Model(&models.Order{}).
		Where("cafe_id = ? AND status = ?", cafeUUID, models.OrderStatusPending).
		Count(&pendingOrders)

	var totalCustomers int64
	dc.DB.Model(&models.Customer{}).
		Where("cafe_id = ?", cafeUUID).
		Count(&totalCustomers)

	var statusBreakdown []statusCount
	dc.DB.Model(&models.Order{}).
		Where("cafe_id = ? AND created_at >= ?", cafeUUID, startOfDay).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&statusBreakdown)

	var recentOrders []models.Order
	dc.DB.Preload("Items").
		Where("cafe_id = ?", cafeUUID).
		Order("created_at desc").
		Limit(5).
		Find(&recentOrders)

	// Top items over the last 7 days by quantity sold.
	weekAgo := startOfDay.AddDate(0, 0, -7)
	var topItems []topItem
	dc.DB.Raw(`
        SELECT oi.name, SUM(oi.quantity) AS quantity
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        WHERE o.cafe_id = ? AND o.created_at >= ? AND o.status <> ?
        GROUP BY oi.name
        ORDER BY quantity DESC
        LIMIT 5
    `, cafeUUID, weekAgo, models.OrderStatusCancelled).Scan(&topItems)

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"todayOrders":     todayOrders,
		"todayRevenue":    todayRevenue,
		"pendingOrders":   pendingOrders,
		"totalCustomers":  totalCustomers,
		"statusBreakdown": statusBreakdown,
		"recentOrders":    recentOrders,
		"topItems":        topItems,
	})
}
