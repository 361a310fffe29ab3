// Package operator is the operator-side console: it subscribes to the
// orders fanout and prints incoming order notices in a human-readable
// form.
package operator

import (
	"context"
	"encoding/json"
	"fmt"

	"coffee-shop-bot/internal/logger"
	"coffee-shop-bot/internal/messaging"
	"coffee-shop-bot/internal/models"
)

// Subscriber consumes order notices and displays them
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a console subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes notices until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Operator console started", requestID, nil)

	return s.consumer.StartConsuming(ctx, s.handleNotice)
}

// handleNotice parses and displays one order notice
func (s *Subscriber) handleNotice(_ context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var notice models.OrderNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse order notice", requestID, err, nil)
		return fmt.Errorf("failed to parse order notice: %w", err)
	}

	fmt.Println(notice.Format())

	s.logger.Info("notice_displayed", "Order notice displayed", requestID, map[string]interface{}{
		"order_id":        notice.OrderID,
		"delivery_method": string(notice.DeliveryMethod),
		"line_count":      len(notice.Lines),
		"grand_total":     notice.GrandTotal,
	})

	return nil
}

// Close stops the underlying consumer
func (s *Subscriber) Close() error {
	return s.consumer.Close()
}
