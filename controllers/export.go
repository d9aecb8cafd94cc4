package controllers

import (
	"fmt"
	"net/http"
	"time"

	"cafeorder-backend/models"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportOrders streams the cafe's orders as an Excel workbook. The same
// date-range filter as GetOrders applies.
func (oc *OrderController) ExportOrders(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	query := oc.DB.Where("cafe_id = ?", cafeUUID)
	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		from, err := time.Parse("2006-01-02", dateFrom)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid dateFrom, expected YYYY-MM-DD")
			return
		}
		query = query.Where("created_at >= ?", utils.BeginningOfDay(from))
	}
	if dateTo := c.Query("dateTo"); dateTo != "" {
		to, err := time.Parse("2006-01-02", dateTo)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid dateTo, expected YYYY-MM-DD")
			return
		}
		query = query.Where("created_at <= ?", utils.EndOfDay(to))
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	xl := excelize.NewFile()
	defer xl.Close()
	sheet := xl.GetSheetName(0)

	headers := []string{"Order Number", "Date", "Customer", "Phone", "Type", "Status",
		"Payment Method", "Payment Status", "Subtotal", "Tax", "Delivery", "Discount", "Coupon", "Total"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xl.SetCellValue(sheet, cell, header)
	}

	for rowIndex, order := range orders {
		row := rowIndex + 2
		values := []interface{}{
			order.OrderNumber,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.CustomerName,
			order.CustomerPhone,
			order.OrderType,
			order.Status,
			order.PaymentMethod,
			order.PaymentStatus,
			order.Subtotal,
			order.Tax,
			order.DeliveryCharge,
			order.Discount,
			order.CouponCode,
			order.Total,
		}
		for colIndex, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIndex+1, row)
			xl.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := xl.Write(c.Writer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write Excel file")
		return
	}
}
