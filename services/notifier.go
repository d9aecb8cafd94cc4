package services

import (
	"fmt"
	"log"
	"os"

	"cafeorder-backend/models"

	"github.com/google/uuid"
	"github.com/pusher/pusher-http-go/v5"
)

// Notifier relays order lifecycle events to whoever is listening.
// Implementations are fire-and-forget: they must return immediately and
// never surface a transport failure to the order path.
type Notifier interface {
	OrderCreated(order *models.Order)
	OrderStatusUpdated(order *models.Order)
}

// OrderEvent is the payload pushed to storefront and back-office sessions.
type OrderEvent struct {
	OrderID      uuid.UUID `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	CustomerName string    `json:"customerName"`
}

// ChannelForCafe names the tenant-scoped channel.
func ChannelForCafe(cafeID uuid.UUID) string {
	return fmt.Sprintf("cafe-%s", cafeID)
}

// PusherNotifier publishes order events over Pusher Channels.
type PusherNotifier struct {
	client *pusher.Client
}

// NewPusherNotifier builds the relay from PUSHER_* environment variables.
// Missing configuration degrades to a no-op relay instead of failing boot;
// the relay is a UX enhancement, not a correctness requirement.
func NewPusherNotifier() Notifier {
	appID := os.Getenv("PUSHER_APP_ID")
	key := os.Getenv("PUSHER_KEY")
	secret := os.Getenv("PUSHER_SECRET")
	if appID == "" || key == "" || secret == "" {
		log.Println("Pusher not configured, order notifications disabled")
		return NoopNotifier{}
	}

	return &PusherNotifier{
		client: &pusher.Client{
			AppID:   appID,
			Key:     key,
			Secret:  secret,
			Cluster: os.Getenv("PUSHER_CLUSTER"),
		},
	}
}

func (n *PusherNotifier) OrderCreated(order *models.Order) {
	n.publish("order-created", order)
}

func (n *PusherNotifier) OrderStatusUpdated(order *models.Order) {
	n.publish("order-status-updated", order)
}

func (n *PusherNotifier) publish(event string, order *models.Order) {
	payload := OrderEvent{
		OrderID:      order.ID,
		OrderNumber:  order.OrderNumber,
		Status:       order.Status,
		Total:        order.Total,
		CustomerName: order.CustomerName,
	}
	channel := ChannelForCafe(order.CafeID)

	go func() {
		if err := n.client.Trigger(channel, event, payload); err != nil {
			log.Printf("pusher: failed to publish %s to %s: %v", event, channel, err)
		}
	}()
}

// NoopNotifier is the relay used when no transport is configured.
type NoopNotifier struct{}

func (NoopNotifier) OrderCreated(order *models.Order)       {}
func (NoopNotifier) OrderStatusUpdated(order *models.Order) {}

// MultiNotifier fans an event out to several relays.
type MultiNotifier []Notifier

func (m MultiNotifier) OrderCreated(order *models.Order) {
	for _, n := range m {
		n.OrderCreated(order)
	}
}

func (m MultiNotifier) OrderStatusUpdated(order *models.Order) {
	for _, n := range m {
		n.OrderStatusUpdated(order)
	}
}
