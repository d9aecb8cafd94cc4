package services

import (
	"log"
	"time"

	"cafeorder-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// MaintenanceService runs periodic housekeeping that no request path should
// have to pay for.
type MaintenanceService struct {
	db *gorm.DB
}

func NewMaintenanceService(db *gorm.DB) *MaintenanceService {
	return &MaintenanceService{db: db}
}

// StartScheduler runs housekeeping daily just after midnight.
func (s *MaintenanceService) StartScheduler() {
	c := cron.New()

	c.AddFunc("5 0 * * *", func() {
		s.DeactivateExpiredCoupons()
	})

	c.Start()
	log.Println("Maintenance scheduler started")
}

// DeactivateExpiredCoupons flips is_active off for coupons whose validity
// window has passed. Validation already rejects expired coupons; this keeps
// the admin coupon list honest.
func (s *MaintenanceService) DeactivateExpiredCoupons() {
	result := s.db.Model(&models.Coupon{}).
		Where("is_active = ? AND valid_until IS NOT NULL AND valid_until < ?", true, time.Now()).
		Update("is_active", false)
	if result.Error != nil {
		log.Printf("maintenance: failed to deactivate expired coupons: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("maintenance: deactivated %d expired coupons", result.RowsAffected)
	}
}
