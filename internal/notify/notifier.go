// Package notify carries the operator-notification implementations.
// Every notifier is best-effort: the checkout workflow logs failures and
// never lets them affect the customer-facing result.
package notify

import (
	"context"
	"errors"

	"coffee-shop-bot/internal/logger"
	"coffee-shop-bot/internal/models"
)

// Notifier delivers one operator notice
type Notifier interface {
	NotifyOrder(ctx context.Context, notice *models.OrderNotice) error
}

// LogNotifier is the fallback used when no operator channel is
// configured: the notice is logged and nothing is sent.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates the log-only notifier
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) NotifyOrder(_ context.Context, notice *models.OrderNotice) error {
	n.logger.Warn("notification_skipped", "No operator recipient configured, logging order notice", "", map[string]interface{}{
		"order_id":        notice.OrderID,
		"delivery_method": string(notice.DeliveryMethod),
		"grand_total":     notice.GrandTotal,
	})
	return nil
}

// Multi fans one notice out to several notifiers. Each notifier is
// attempted regardless of earlier failures.
type Multi []Notifier

func (m Multi) NotifyOrder(ctx context.Context, notice *models.OrderNotice) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.NotifyOrder(ctx, notice); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
