package services

import (
	"fmt"

	"cafeorder-backend/models"
)

// ValidationError identifies the offending field so the storefront can point
// the customer at it. These are client corrections, not system failures.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CheckoutInput is the orderType- and payment-dependent part of a checkout
// request that needs rule validation beyond binding tags.
type CheckoutInput struct {
	OrderType          string
	TableNumber        string
	DeliveryAddress    string
	PaymentMethod      string
	PaymentReferenceID string
}

// ValidateCheckout enforces the per-order-type required fields. Online
// orders may be created without a payment reference; the reference arrives
// in the separate payment-confirmation step.
func ValidateCheckout(input CheckoutInput, settings *models.Settings) error {
	switch input.OrderType {
	case models.OrderTypeDineIn:
		if input.TableNumber == "" {
			return &ValidationError{Field: "tableNumber", Message: "Table number is required for dine-in orders"}
		}
	case models.OrderTypeDelivery:
		if !settings.DeliveryEnabled {
			return &ValidationError{Field: "orderType", Message: "Delivery is not available for this cafe"}
		}
		if len(input.DeliveryAddress) < 10 {
			return &ValidationError{Field: "deliveryAddress", Message: "Delivery address must be at least 10 characters"}
		}
	case models.OrderTypeTakeaway:
		// nothing extra
	default:
		return &ValidationError{Field: "orderType", Message: "Invalid order type"}
	}

	switch input.PaymentMethod {
	case models.PaymentMethodCash:
	case models.PaymentMethodOnline:
		if !settings.OnlinePaymentEnabled {
			return &ValidationError{Field: "paymentMethod", Message: "Online payment is not available for this cafe"}
		}
		if input.PaymentReferenceID != "" && len(input.PaymentReferenceID) < 6 {
			return &ValidationError{Field: "paymentReferenceId", Message: "Payment reference must be at least 6 characters"}
		}
	default:
		return &ValidationError{Field: "paymentMethod", Message: "Invalid payment method"}
	}

	return nil
}

// ValidateMinOrderValue enforces the cafe's configured minimum.
func ValidateMinOrderValue(subtotal float64, settings *models.Settings) error {
	if settings.MinOrderValue > 0 && subtotal < settings.MinOrderValue {
		return &ValidationError{
			Field:   "items",
			Message: fmt.Sprintf("Minimum order value is %.2f", settings.MinOrderValue),
		}
	}
	return nil
}

// ValidatePaymentReference checks the reference submitted in the
// payment-confirmation step.
func ValidatePaymentReference(ref string) error {
	if len(ref) < 6 {
		return &ValidationError{Field: "paymentReferenceId", Message: "Payment reference must be at least 6 characters"}
	}
	return nil
}
