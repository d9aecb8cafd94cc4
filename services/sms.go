package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cafeorder-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// statusMessages are the lifecycle points worth texting the customer about.
var statusMessages = map[string]string{
	models.OrderStatusConfirmed: "your order %s has been confirmed.",
	models.OrderStatusReady:     "your order %s is ready!",
	models.OrderStatusCompleted: "your order %s is complete. Thank you!",
	models.OrderStatusCancelled: "your order %s has been cancelled.",
}

// SMSNotifier texts the customer on order status changes via Twilio.
// Best-effort: every attempt is logged to notification_logs, failures are
// swallowed.
type SMSNotifier struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

// NewSMSNotifier returns nil when Twilio is not configured; callers treat a
// nil notifier as disabled.
func NewSMSNotifier(db *gorm.DB) *SMSNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")
	if accountSid == "" || authToken == "" || from == "" {
		log.Println("Twilio not configured, customer SMS disabled")
		return nil
	}

	return &SMSNotifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *SMSNotifier) OrderCreated(order *models.Order) {
	// Creation is acknowledged on-screen; no SMS.
}

func (s *SMSNotifier) OrderStatusUpdated(order *models.Order) {
	template, ok := statusMessages[order.Status]
	if !ok {
		return
	}
	if !strings.HasPrefix(order.CustomerPhone, "+") {
		// Twilio needs E.164; skip local-format numbers.
		return
	}

	message := fmt.Sprintf("Hi %s, ", order.CustomerName) + fmt.Sprintf(template, order.OrderNumber)
	orderID := order.ID
	cafeID := order.CafeID
	to := order.CustomerPhone

	go func() {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(s.from)
		params.SetBody(message)

		status := "sent"
		errorMsg := ""
		if _, err := s.client.Api.CreateMessage(params); err != nil {
			log.Printf("twilio: failed to send status SMS to %s: %v", to, err)
			status = "failed"
			errorMsg = err.Error()
		}

		entry := models.NotificationLog{
			CafeID:       cafeID,
			OrderID:      &orderID,
			Channel:      "sms",
			Recipient:    to,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			SentAt:       time.Now(),
		}
		if err := s.db.Create(&entry).Error; err != nil {
			log.Printf("twilio: failed to log notification for order %s: %v", orderID, err)
		}
	}()
}
