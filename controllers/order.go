package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cafeorder-backend/models"
	"cafeorder-backend/services"
	"cafeorder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type OrderController struct {
	DB       *gorm.DB
	Coupons  *services.CouponService
	Status   *services.OrderStatusService
	Notifier services.Notifier
}

func NewOrderController(db *gorm.DB, coupons *services.CouponService, status *services.OrderStatusService, notifier services.Notifier) *OrderController {
	return &OrderController{DB: db, Coupons: coupons, Status: status, Notifier: notifier}
}

type CheckoutItemInput struct {
	MenuItemID     uuid.UUID `json:"menuItemId" binding:"required"`
	Quantity       int       `json:"quantity" binding:"required,min=1"`
	Customizations string    `json:"customizations"`
}

type CheckoutInput struct {
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
	CustomerEmail string `json:"customerEmail"`

	OrderType       string   `json:"orderType" binding:"required"`
	TableNumber     string   `json:"tableNumber"`
	DeliveryAddress string   `json:"deliveryAddress"`
	DeliveryLat     *float64 `json:"deliveryLat"`
	DeliveryLng     *float64 `json:"deliveryLng"`

	PaymentMethod      string `json:"paymentMethod" binding:"required"`
	PaymentReferenceID string `json:"paymentReferenceId"`

	CouponCode string              `json:"couponCode"`
	Notes      string              `json:"notes"`
	Items      []CheckoutItemInput `json:"items" binding:"required,min=1"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}

type ConfirmPaymentInput struct {
	PaymentReferenceID string `json:"paymentReferenceId" binding:"required"`
}

// Checkout places an order: validates the request against the cafe's
// settings, snapshots menu prices, applies an optional coupon, and persists
// order, items and customer stats in one transaction.
func (oc *OrderController) Checkout(c *gin.Context) {
	cafe, ok := findCafeBySlug(c, oc.DB)
	if !ok {
		return
	}

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	settings, err := settingsForCafe(oc.DB, cafe.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := services.ValidateCheckout(services.CheckoutInput{
		OrderType:          input.OrderType,
		TableNumber:        input.TableNumber,
		DeliveryAddress:    input.DeliveryAddress,
		PaymentMethod:      input.PaymentMethod,
		PaymentReferenceID: input.PaymentReferenceID,
	}, settings); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	// Snapshot name and price from the live menu. Unknown, cross-tenant or
	// unavailable items reject the checkout.
	itemIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		itemIDs = append(itemIDs, item.MenuItemID)
	}
	var menuItems []models.MenuItem
	if err := oc.DB.Where("cafe_id = ? AND id IN ?", cafe.ID, itemIDs).Find(&menuItems).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	menuByID := make(map[uuid.UUID]models.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		menuByID[mi.ID] = mi
	}

	var orderItems []models.OrderItem
	var pricedItems []services.PricedItem
	for _, item := range input.Items {
		menuItem, found := menuByID[item.MenuItemID]
		if !found {
			utils.RespondWithError(c, http.StatusBadRequest, "Menu item not found: "+item.MenuItemID.String())
			return
		}
		if !menuItem.IsAvailable {
			utils.RespondWithError(c, http.StatusBadRequest, menuItem.Name+" is currently unavailable")
			return
		}
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:     menuItem.ID,
			Name:           menuItem.Name,
			Price:          menuItem.Price,
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
			Subtotal:       services.Round2(menuItem.Price * float64(item.Quantity)),
		})
		pricedItems = append(pricedItems, services.PricedItem{Price: menuItem.Price, Quantity: item.Quantity})
	}

	subtotal := services.ComputeSubtotal(pricedItems)
	if err := services.ValidateMinOrderValue(subtotal, settings); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var discount float64
	couponCode := ""
	if input.CouponCode != "" {
		result, err := oc.Coupons.Validate(cafe.ID, input.CouponCode, subtotal)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if !result.Valid {
			utils.RespondWithError(c, http.StatusBadRequest, result.Reason)
			return
		}
		discount = result.DiscountAmount
		couponCode = services.NormalizeCouponCode(input.CouponCode)
	}

	taxRate := 0.0
	if settings.TaxEnabled {
		taxRate = settings.TaxRate
	}
	deliveryCharge := 0.0
	if input.OrderType == models.OrderTypeDelivery && settings.DeliveryEnabled {
		deliveryCharge = settings.DeliveryCharge
	}
	totals := services.ComputeTotals(pricedItems, taxRate, deliveryCharge, discount)

	order := models.Order{
		ID:                 uuid.New(),
		CafeID:             cafe.ID,
		OrderNumber:        utils.GenerateOrderNumber(),
		CustomerName:       input.CustomerName,
		CustomerPhone:      input.CustomerPhone,
		OrderType:          input.OrderType,
		TableNumber:        input.TableNumber,
		DeliveryAddress:    input.DeliveryAddress,
		DeliveryLat:        input.DeliveryLat,
		DeliveryLng:        input.DeliveryLng,
		Status:             models.OrderStatusPending,
		PaymentMethod:      input.PaymentMethod,
		PaymentStatus:      models.PaymentStatusPending,
		PaymentReferenceID: input.PaymentReferenceID,
		Subtotal:           totals.Subtotal,
		Tax:                totals.Tax,
		DeliveryCharge:     totals.DeliveryCharge,
		Discount:           totals.Discount,
		CouponCode:         couponCode,
		Total:              totals.Total,
		Notes:              input.Notes,
		Items:              orderItems,
	}

	tx := oc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Upsert the customer record and bump repeat-customer stats.
	var customer models.Customer
	err = tx.Where("cafe_id = ? AND phone = ?", cafe.ID, input.CustomerPhone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			CafeID: cafe.ID,
			Name:   input.CustomerName,
			Phone:  input.CustomerPhone,
			Email:  input.CustomerEmail,
		}
		if err := tx.Create(&customer).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
			return
		}
	} else if err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	now := time.Now()
	if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"name":          input.CustomerName,
			"total_orders":  gorm.Expr("total_orders + ?", 1),
			"total_spent":   gorm.Expr("total_spent + ?", totals.Total),
			"last_order_at": now,
		}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
		return
	}
	order.CustomerID = &customer.ID

	// Redemption is counted here, at order creation, inside the same
	// transaction. The conditional increment loses (and fails the checkout)
	// if a concurrent order took the last remaining use.
	if couponCode != "" {
		if err := oc.Coupons.Redeem(tx, cafe.ID, couponCode); err != nil {
			tx.Rollback()
			if errors.Is(err, services.ErrCouponExhausted) {
				utils.RespondWithError(c, http.StatusBadRequest, "This coupon is no longer available")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to redeem coupon")
			}
			return
		}
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	if oc.Notifier != nil {
		oc.Notifier.OrderCreated(&order)
	}

	utils.RespondWithMessage(c, http.StatusCreated, order, "Order placed successfully")
}

// TrackOrder lets the storefront poll an order by its public number.
func (oc *OrderController) TrackOrder(c *gin.Context) {
	cafe, ok := findCafeBySlug(c, oc.DB)
	if !ok {
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").
		Where("cafe_id = ? AND order_number = ?", cafe.ID, c.Param("orderNumber")).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, order)
}

// ConfirmPayment is the second step of the online-payment flow: the customer
// submits the payment reference after paying. Payment stays PENDING until the
// order is completed; completion reconciles it.
func (oc *OrderController) ConfirmPayment(c *gin.Context) {
	cafe, ok := findCafeBySlug(c, oc.DB)
	if !ok {
		return
	}

	var input ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if err := services.ValidatePaymentReference(input.PaymentReferenceID); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var order models.Order
	if err := oc.DB.Where("cafe_id = ? AND order_number = ?", cafe.ID, c.Param("orderNumber")).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if order.PaymentMethod != models.PaymentMethodOnline {
		utils.RespondWithError(c, http.StatusBadRequest, "Order was not placed with online payment")
		return
	}
	if order.Status == models.OrderStatusCancelled {
		utils.RespondWithError(c, http.StatusBadRequest, "Order has been cancelled")
		return
	}
	if order.PaymentReferenceID != "" {
		utils.RespondWithError(c, http.StatusConflict, "Payment has already been confirmed for this order")
		return
	}

	// Conditional on the reference still being empty, so of two concurrent
	// confirmations only one lands; the loser gets the conflict.
	result := oc.DB.Model(&models.Order{}).
		Where("id = ? AND cafe_id = ? AND payment_reference_id = ''", order.ID, cafe.ID).
		Update("payment_reference_id", input.PaymentReferenceID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm payment")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusConflict, "Payment has already been confirmed for this order")
		return
	}

	order.PaymentReferenceID = input.PaymentReferenceID
	utils.RespondWithMessage(c, http.StatusOK, order, "Payment confirmed")
}

// GetOrders retrieves the cafe's orders with filtering and pagination.
// The total count is computed from the same predicate as the page.
func (oc *OrderController) GetOrders(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}

	query := oc.DB.Model(&models.Order{}).Where("cafe_id = ?", cafeUUID)

	if status := c.Query("status"); status != "" {
		statuses := strings.Split(status, ",")
		for i, s := range statuses {
			statuses[i] = strings.TrimSpace(s)
			if !services.IsValidStatus(statuses[i]) {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter: "+s)
				return
			}
		}
		query = query.Where("status IN ?", statuses)
	}
	if orderType := c.Query("orderType"); orderType != "" {
		query = query.Where("order_type = ?", orderType)
	}
	if paymentMethod := c.Query("paymentMethod"); paymentMethod != "" {
		query = query.Where("payment_method = ?", paymentMethod)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ? OR order_number ILIKE ?", like, like, like)
	}
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
		// dateTo is inclusive through end-of-day
		query = query.Where("created_at <= ?", utils.EndOfDay(to))
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 {
		limit = 1
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count orders")
		return
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// GetOrder retrieves a specific order by ID
func (oc *OrderController) GetOrder(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}
	orderUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").
		Where("cafe_id = ? AND id = ?", cafeUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, order)
}

// UpdateOrderStatus drives the order lifecycle state machine.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	cafeUUID, ok := requireCafeID(c)
	if !ok {
		return
	}
	orderUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !services.IsValidStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid order status: "+input.Status)
		return
	}

	order, err := oc.Status.Transition(cafeUUID, orderUUID, input.Status)
	if err != nil {
		var transitionErr *services.TransitionError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		case errors.As(err, &transitionErr):
			utils.RespondWithError(c, http.StatusConflict, transitionErr.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, order)
}
