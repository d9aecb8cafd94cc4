package services

import (
	"errors"
	"fmt"
	"time"

	"cafeorder-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedTransitions is the full order lifecycle. COMPLETED and CANCELLED
// are terminal.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionError reports an illegal status change, naming the exact
// from/to pair for operator diagnosis.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

var ErrOrderNotFound = errors.New("order not found")

type OrderStatusService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewOrderStatusService(db *gorm.DB, notifier Notifier) *OrderStatusService {
	return &OrderStatusService{DB: db, Notifier: notifier}
}

// Transition moves an order to the requested status. The write is
// conditional on the status the order had when we read it, so of two racing
// updates only one commits; the loser gets a TransitionError. Completing an
// ONLINE order that is still unpaid marks the payment PAID in the same
// update.
func (s *OrderStatusService) Transition(cafeID, orderID uuid.UUID, requested string) (*models.Order, error) {
	if !IsValidStatus(requested) {
		return nil, &TransitionError{From: "?", To: requested}
	}

	var order models.Order
	if err := s.DB.Where("cafe_id = ? AND id = ?", cafeID, orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !CanTransition(order.Status, requested) {
		return nil, &TransitionError{From: order.Status, To: requested}
	}

	updates := map[string]interface{}{
		"status":     requested,
		"updated_at": time.Now(),
	}
	if requested == models.OrderStatusCompleted &&
		order.PaymentMethod == models.PaymentMethodOnline &&
		order.PaymentStatus == models.PaymentStatusPending {
		// Online payment is reconciled at completion, atomically with the
		// status change.
		updates["payment_status"] = models.PaymentStatusPaid
	}

	result := s.DB.Model(&models.Order{}).
		Where("id = ? AND cafe_id = ? AND status = ?", orderID, cafeID, order.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// A concurrent update changed the status between our read and write.
		var current models.Order
		if err := s.DB.Where("cafe_id = ? AND id = ?", cafeID, orderID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOrderNotFound
			}
			return nil, err
		}
		return nil, &TransitionError{From: current.Status, To: requested}
	}

	var updated models.Order
	if err := s.DB.Preload("Items").Where("cafe_id = ? AND id = ?", cafeID, orderID).First(&updated).Error; err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.OrderStatusUpdated(&updated)
	}

	return &updated, nil
}
