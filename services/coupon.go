package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cafeorder-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponResult is the outcome of validating a coupon code against a cart.
// Business-rule rejections are not errors; they come back as Valid=false
// with a customer-facing reason.
type CouponResult struct {
	Valid          bool                 `json:"valid"`
	DiscountAmount float64              `json:"discountAmount,omitempty"`
	Reason         string               `json:"error,omitempty"`
	Coupon         *models.PublicCoupon `json:"coupon,omitempty"`
}

// EvaluateCoupon applies the redemption rules in order, short-circuiting on
// the first failure, then computes the discount for the given subtotal.
// It is pure: no database access, the clock is a parameter.
func EvaluateCoupon(coupon *models.Coupon, subtotal float64, now time.Time) CouponResult {
	if !coupon.IsActive {
		return CouponResult{Valid: false, Reason: "This coupon is no longer active"}
	}
	if now.Before(coupon.ValidFrom) {
		return CouponResult{Valid: false, Reason: "This coupon is not yet valid"}
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return CouponResult{Valid: false, Reason: "This coupon has expired"}
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return CouponResult{Valid: false, Reason: "This coupon has reached its usage limit"}
	}
	if coupon.MinOrderValue > 0 && subtotal < coupon.MinOrderValue {
		return CouponResult{
			Valid:  false,
			Reason: fmt.Sprintf("Minimum order value of %.2f required to use this coupon", coupon.MinOrderValue),
		}
	}

	var discount float64
	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		discount = subtotal * coupon.DiscountValue / 100
		if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
			discount = *coupon.MaxDiscount
		}
	case models.DiscountTypeFixed:
		discount = coupon.DiscountValue
		if discount > subtotal {
			discount = subtotal
		}
	default:
		return CouponResult{Valid: false, Reason: "Invalid coupon code"}
	}

	public := coupon.Public()
	return CouponResult{
		Valid:          true,
		DiscountAmount: Round2(discount),
		Coupon:         &public,
	}
}

// NormalizeCouponCode upper-cases and trims a code before lookup.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CouponService struct {
	DB *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{DB: db}
}

// Validate looks up the code within the cafe and evaluates it against the
// subtotal. Read-only; redemption is counted separately at order creation.
func (s *CouponService) Validate(cafeID uuid.UUID, code string, subtotal float64) (CouponResult, error) {
	normalized := NormalizeCouponCode(code)

	var coupon models.Coupon
	if err := s.DB.Where("cafe_id = ? AND code = ?", cafeID, normalized).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CouponResult{Valid: false, Reason: "Invalid coupon code"}, nil
		}
		return CouponResult{}, err
	}

	return EvaluateCoupon(&coupon, subtotal, time.Now()), nil
}

// ErrCouponExhausted is returned when a redemption loses the race for the
// last remaining use of a limited coupon.
var ErrCouponExhausted = errors.New("coupon usage limit reached")

// Redeem counts one use of the coupon. The conditional increment keeps
// concurrent checkouts from redeeming past the usage limit; zero rows
// affected means the coupon ran out (or disappeared) between validation and
// checkout. Call inside the checkout transaction so a failed order does not
// consume a use.
func (s *CouponService) Redeem(tx *gorm.DB, cafeID uuid.UUID, code string) error {
	normalized := NormalizeCouponCode(code)

	result := tx.Model(&models.Coupon{}).
		Where("cafe_id = ? AND code = ? AND is_active = ? AND (usage_limit IS NULL OR used_count < usage_limit)",
			cafeID, normalized, true).
		Update("used_count", gorm.Expr("used_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCouponExhausted
	}
	return nil
}
