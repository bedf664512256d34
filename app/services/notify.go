package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/fitsetup/app/models"
	"github.com/shashiranjanraj/fitsetup/pkg/logger"
	"github.com/shashiranjanraj/fitsetup/pkg/mail"
	"github.com/shashiranjanraj/fitsetup/pkg/ws"
)

// orderEvent is the payload pushed to websocket subscribers on /ws/orders.
type orderEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	OrderStatus string    `json:"orderStatus"`
	TotalAmount float64   `json:"totalAmount"`
	At          time.Time `json:"at"`
}

// EmailLookup resolves the order owner for confirmation mail.
type EmailLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// HubNotifier pushes order events to the websocket hub and sends order mail.
// Mail goes out on a goroutine; SMTP latency never sits on the checkout path.
type HubNotifier struct {
	hub   *ws.Hub
	users EmailLookup
}

func NewHubNotifier(hub *ws.Hub, users EmailLookup) *HubNotifier {
	return &HubNotifier{hub: hub, users: users}
}

func (n *HubNotifier) OrderPlaced(o *models.Order) {
	n.broadcast("order.placed", o)
	go n.sendMail(o, "Order confirmed",
		fmt.Sprintf("Your order %s has been placed. Total: %.2f.", o.ID.Hex(), o.TotalAmount))
}

func (n *HubNotifier) OrderStatusChanged(o *models.Order) {
	n.broadcast("order.status", o)
	if o.OrderStatus == models.OrderDelivered {
		go n.sendMail(o, "Order delivered",
			fmt.Sprintf("Your order %s has been delivered.", o.ID.Hex()))
	}
}

func (n *HubNotifier) broadcast(event string, o *models.Order) {
	if n.hub == nil {
		return
	}
	payload, err := json.Marshal(orderEvent{
		Event:       event,
		OrderID:     o.ID.Hex(),
		UserID:      o.UserID.Hex(),
		OrderStatus: o.OrderStatus,
		TotalAmount: o.TotalAmount,
		At:          time.Now().UTC(),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast <- payload
}

func (n *HubNotifier) sendMail(o *models.Order, subject, body string) {
	if n.users == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u, err := n.users.FindByID(ctx, o.UserID)
	if err != nil {
		logger.Warn("order mail: lookup user", "error", err, "order_id", o.ID.Hex())
		return
	}
	if err := mail.To(u.Email).Subject(subject).Text(body).Send(); err != nil {
		logger.Warn("order mail: send", "error", err, "order_id", o.ID.Hex())
	}
}
