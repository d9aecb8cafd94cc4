package services

import (
	"testing"
	"time"

	"cafeorder-backend/models"

	"github.com/stretchr/testify/assert"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func activeCoupon() models.Coupon {
	return models.Coupon{
		Code:          "SAVE10",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 10,
		ValidFrom:     fixedNow().AddDate(0, -1, 0),
		IsActive:      true,
	}
}

func TestEvaluateCouponRejections(t *testing.T) {
	future := fixedNow().AddDate(0, 1, 0)
	past := fixedNow().AddDate(0, -1, 0)
	limit := 3

	tests := []struct {
		name   string
		mutate func(*models.Coupon)
		reason string
	}{
		{
			name:   "inactive",
			mutate: func(cp *models.Coupon) { cp.IsActive = false },
			reason: "This coupon is no longer active",
		},
		{
			name:   "not yet valid",
			mutate: func(cp *models.Coupon) { cp.ValidFrom = future },
			reason: "This coupon is not yet valid",
		},
		{
			name:   "expired",
			mutate: func(cp *models.Coupon) { cp.ValidUntil = &past },
			reason: "This coupon has expired",
		},
		{
			name: "usage limit reached",
			mutate: func(cp *models.Coupon) {
				cp.UsageLimit = &limit
				cp.UsedCount = 3
			},
			reason: "This coupon has reached its usage limit",
		},
		{
			name:   "below minimum order value",
			mutate: func(cp *models.Coupon) { cp.MinOrderValue = 1000 },
			reason: "Minimum order value of 1000.00 required to use this coupon",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			coupon := activeCoupon()
			testCase.mutate(&coupon)

			result := EvaluateCoupon(&coupon, 500, fixedNow())

			assert.False(t, result.Valid)
			assert.Equal(t, testCase.reason, result.Reason)
			assert.Nil(t, result.Coupon)
			assert.Zero(t, result.DiscountAmount)
		})
	}
}

func TestEvaluateCouponUsageLimitDominates(t *testing.T) {
	// An exhausted coupon is invalid no matter how generous its other fields.
	limit := 3
	coupon := activeCoupon()
	coupon.UsageLimit = &limit
	coupon.UsedCount = 3
	coupon.DiscountValue = 100

	result := EvaluateCoupon(&coupon, 1000000, fixedNow())

	assert.False(t, result.Valid)
}

func TestEvaluateCouponDiscounts(t *testing.T) {
	maxDiscount := 100.0

	tests := []struct {
		name     string
		mutate   func(*models.Coupon)
		subtotal float64
		want     float64
	}{
		{
			name:     "percentage",
			mutate:   func(cp *models.Coupon) {},
			subtotal: 500,
			want:     50,
		},
		{
			name: "percentage clamped by max discount",
			mutate: func(cp *models.Coupon) {
				cp.DiscountValue = 50
				cp.MaxDiscount = &maxDiscount
			},
			subtotal: 500,
			want:     100,
		},
		{
			name: "fixed",
			mutate: func(cp *models.Coupon) {
				cp.DiscountType = models.DiscountTypeFixed
				cp.DiscountValue = 75
			},
			subtotal: 500,
			want:     75,
		},
		{
			name: "fixed clamped to subtotal",
			mutate: func(cp *models.Coupon) {
				cp.DiscountType = models.DiscountTypeFixed
				cp.DiscountValue = 200
			},
			subtotal: 150,
			want:     150,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			coupon := activeCoupon()
			testCase.mutate(&coupon)

			result := EvaluateCoupon(&coupon, testCase.subtotal, fixedNow())

			assert.True(t, result.Valid)
			assert.Equal(t, testCase.want, result.DiscountAmount)
			assert.Empty(t, result.Reason)
		})
	}
}

func TestEvaluateCouponResultHidesBookkeeping(t *testing.T) {
	coupon := activeCoupon()
	coupon.Description = "Ten percent off"
	coupon.UsedCount = 2

	result := EvaluateCoupon(&coupon, 500, fixedNow())

	assert.True(t, result.Valid)
	if assert.NotNil(t, result.Coupon) {
		assert.Equal(t, "SAVE10", result.Coupon.Code)
		assert.Equal(t, "Ten percent off", result.Coupon.Description)
		assert.Equal(t, models.DiscountTypePercentage, result.Coupon.DiscountType)
	}
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCouponCode("  save10 "))
	assert.Equal(t, "SAVE10", NormalizeCouponCode("Save10"))
}
