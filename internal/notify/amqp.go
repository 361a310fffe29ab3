package notify

import (
	"context"

	"coffee-shop-bot/internal/messaging"
	"coffee-shop-bot/internal/models"
)

// AMQPNotifier publishes order notices to the orders fanout exchange,
// where the operator console picks them up
type AMQPNotifier struct {
	publisher *messaging.Publisher
}

// NewAMQPNotifier creates an AMQP-backed operator notifier
func NewAMQPNotifier(publisher *messaging.Publisher) *AMQPNotifier {
	return &AMQPNotifier{publisher: publisher}
}

func (n *AMQPNotifier) NotifyOrder(ctx context.Context, notice *models.OrderNotice) error {
	return n.publisher.PublishOrderNotice(ctx, notice)
}
