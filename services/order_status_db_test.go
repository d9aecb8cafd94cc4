package services

import (
	"testing"

	"cafeorder-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
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

type recordingNotifier struct {
	statusUpdates []string
}

func (r *recordingNotifier) OrderCreated(order *models.Order) {}

func (r *recordingNotifier) OrderStatusUpdated(order *models.Order) {
	r.statusUpdates = append(r.statusUpdates, order.Status)
}

func orderRows(orderID, cafeID uuid.UUID, status, paymentMethod, paymentStatus string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "cafe_id", "order_number", "status", "payment_method", "payment_status"}).
		AddRow(orderID.String(), cafeID.String(), "ORD-20260831-K7M2PQ", status, paymentMethod, paymentStatus)
}

func TestTransitionAppliesConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &recordingNotifier{}
	service := NewOrderStatusService(db, notifier)

	cafeID := uuid.New()
	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows(orderID, cafeID, models.OrderStatusReady, models.PaymentMethodCash, models.PaymentStatusPaid))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WithArgs(models.OrderStatusCompleted, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), models.OrderStatusReady).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows(orderID, cafeID, models.OrderStatusCompleted, models.PaymentMethodCash, models.PaymentStatusPaid))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

	order, err := service.Transition(cafeID, orderID, models.OrderStatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, []string{models.OrderStatusCompleted}, notifier.statusUpdates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionCompletingUnpaidOnlineOrderMarksPaid(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewOrderStatusService(db, &recordingNotifier{})

	cafeID := uuid.New()
	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows(orderID, cafeID, models.OrderStatusReady, models.PaymentMethodOnline, models.PaymentStatusPending))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WithArgs(models.PaymentStatusPaid, models.OrderStatusCompleted, sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), models.OrderStatusReady).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows(orderID, cafeID, models.OrderStatusCompleted, models.PaymentMethodOnline, models.PaymentStatusPaid))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id"}))

	order, err := service.Transition(cafeID, orderID, models.OrderStatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionRaceLoserGetsTransitionError(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewOrderStatusService(db, &recordingNotifier{})

	cafeID := uuid.New()
	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows(orderID, cafeID, models.OrderStatusReady, models.PaymentMethodCash, models.PaymentStatusPaid))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows(orderID, cafeID, models.OrderStatusCancelled, models.PaymentMethodCash, models.PaymentStatusPaid))

	_, err := service.Transition(cafeID, orderID, models.OrderStatusCompleted)

	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.OrderStatusCancelled, transitionErr.From)
	assert.Equal(t, models.OrderStatusCompleted, transitionErr.To)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionRejectsIllegalRequestWithoutWriting(t *testing.T) {
	db, mock := newMockDB(t)
	notifier := &recordingNotifier{}
	service := NewOrderStatusService(db, notifier)

	cafeID := uuid.New()
	orderID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(orderRows(orderID, cafeID, models.OrderStatusPending, models.PaymentMethodCash, models.PaymentStatusPending))

	_, err := service.Transition(cafeID, orderID, models.OrderStatusPreparing)

	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.OrderStatusPending, transitionErr.From)
	assert.Empty(t, notifier.statusUpdates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionUnknownOrder(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewOrderStatusService(db, &recordingNotifier{})

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := service.Transition(uuid.New(), uuid.New(), models.OrderStatusConfirmed)

	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemCountsOneUse(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewCouponService(db)

	mock.ExpectExec(`UPDATE "coupons" SET "used_count"=used_count`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := service.Redeem(db, uuid.New(), "welcome10")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedeemExhaustedCoupon(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewCouponService(db)

	mock.ExpectExec(`UPDATE "coupons" SET "used_count"=used_count`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := service.Redeem(db, uuid.New(), "WELCOME10")

	assert.ErrorIs(t, err, ErrCouponExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateUnknownCouponCode(t *testing.T) {
	db, mock := newMockDB(t)
	service := NewCouponService(db)

	mock.ExpectQuery(`SELECT \* FROM "coupons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := service.Validate(uuid.New(), "nope", 500)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "Invalid coupon code", result.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}
