package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafeorder-backend/models"
	"cafeorder-backend/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// authAs stands in for the auth middleware, resolving every request to the
// given tenant.
func authAs(cafeID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("adminId", uuid.New().String())
		c.Set("cafeId", cafeID.String())
	}
}

func newOrderRouter(db *gorm.DB, cafeID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	coupons := services.NewCouponService(db)
	status := services.NewOrderStatusService(db, services.NoopNotifier{})
	oc := NewOrderController(db, coupons, status, services.NoopNotifier{})

	r := gin.New()
	r.POST("/cafes/:slug/orders", oc.Checkout)
	r.GET("/cafes/:slug/orders/:orderNumber", oc.TrackOrder)
	r.POST("/cafes/:slug/orders/:orderNumber/payment", oc.ConfirmPayment)

	admin := r.Group("/admin", authAs(cafeID))
	admin.GET("/orders/:id", oc.GetOrder)
	admin.PATCH("/orders/:id", oc.UpdateOrderStatus)
	return r
}

func cafeRows(cafeID uuid.UUID, slug string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "slug", "name"}).
		AddRow(cafeID.String(), slug, "Bean There")
}

func TestGetOrderScopedToTenant(t *testing.T) {
	db, mock := newMockDB(t)
	cafeA := uuid.New()
	foreignOrderID := uuid.New()
	r := newOrderRouter(db, cafeA)

	// The only lookup is scoped by the session's cafe, so an id owned by
	// another cafe finds nothing.
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE cafe_id = \$1 AND id = \$2`).
		WithArgs(cafeA.String(), foreignOrderID.String(), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/orders/"+foreignOrderID.String(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutThenTrackOrderKeepsTotals(t *testing.T) {
	db, mock := newMockDB(t)
	cafeID := uuid.New()
	r := newOrderRouter(db, cafeID)

	espressoID := uuid.New()
	croissantID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "cafes" WHERE slug = \$1`).
		WillReturnRows(cafeRows(cafeID, "bean-there"))
	mock.ExpectQuery(`SELECT \* FROM "settings" WHERE cafe_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cafe_id", "delivery_enabled", "delivery_charge", "min_order_value", "tax_enabled", "tax_rate", "online_payment_enabled"}).
			AddRow(uuid.New().String(), cafeID.String(), false, 0.0, 0.0, true, 5.0, false))
	mock.ExpectQuery(`SELECT \* FROM "menu_items" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cafe_id", "category_id", "name", "price", "is_available"}).
			AddRow(espressoID.String(), cafeID.String(), uuid.New().String(), "Espresso", 180.0, true).
			AddRow(croissantID.String(), cafeID.String(), uuid.New().String(), "Croissant", 140.0, true))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO "customers"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "customers" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := fmt.Sprintf(`{
		"customerName": "Asha",
		"customerPhone": "+919876543210",
		"orderType": "TAKEAWAY",
		"paymentMethod": "CASH",
		"items": [
			{"menuItemId": %q, "quantity": 2},
			{"menuItemId": %q, "quantity": 1}
		]
	}`, espressoID, croissantID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cafes/bean-there/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 500.0, created.Data.Subtotal)
	assert.Equal(t, 25.0, created.Data.Tax)
	assert.Equal(t, 0.0, created.Data.Discount)
	assert.Equal(t, 525.0, created.Data.Total)
	require.NotEmpty(t, created.Data.OrderNumber)

	// Fetching the order returns the persisted totals untouched.
	mock.ExpectQuery(`SELECT \* FROM "cafes" WHERE slug = \$1`).
		WillReturnRows(cafeRows(cafeID, "bean-there"))
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE cafe_id = \$1 AND order_number = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cafe_id", "order_number", "status", "subtotal", "tax", "delivery_charge", "discount", "total"}).
			AddRow(created.Data.ID.String(), cafeID.String(), created.Data.OrderNumber, "PENDING",
				created.Data.Subtotal, created.Data.Tax, created.Data.DeliveryCharge, created.Data.Discount, created.Data.Total))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/cafes/bean-there/orders/"+created.Data.OrderNumber, nil)
	r.ServeHTTP(w2, req2)

	require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

	var fetched struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &fetched))
	assert.Equal(t, created.Data.Subtotal, fetched.Data.Subtotal)
	assert.Equal(t, created.Data.Tax, fetched.Data.Tax)
	assert.Equal(t, created.Data.Discount, fetched.Data.Discount)
	assert.Equal(t, created.Data.Total, fetched.Data.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentRaceAnswersConflict(t *testing.T) {
	db, mock := newMockDB(t)
	cafeID := uuid.New()
	orderID := uuid.New()
	r := newOrderRouter(db, cafeID)

	mock.ExpectQuery(`SELECT \* FROM "cafes" WHERE slug = \$1`).
		WillReturnRows(cafeRows(cafeID, "bean-there"))
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE cafe_id = \$1 AND order_number = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cafe_id", "order_number", "status", "payment_method", "payment_status", "payment_reference_id"}).
			AddRow(orderID.String(), cafeID.String(), "ORD-20260831-K7M2PQ", "PENDING", "ONLINE", "PENDING", ""))
	// A concurrent confirmation landed between our read and write.
	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cafes/bean-there/orders/ORD-20260831-K7M2PQ/payment",
		bytes.NewBufferString(`{"paymentReferenceId":"UPI998877"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already been confirmed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	db, mock := newMockDB(t)
	cafeID := uuid.New()
	r := newOrderRouter(db, cafeID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/orders/"+uuid.New().String(),
		bytes.NewBufferString(`{"status":"SHIPPED"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid order status")
	assert.NoError(t, mock.ExpectationsWereMet())
}
