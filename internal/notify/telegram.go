package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coffee-shop-bot/internal/logger"
	"coffee-shop-bot/internal/models"
)

// TelegramNotifier sends order notices to the operator chat. An
// unconfigured chat id means the send is skipped with a warning, not an
// error.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *logger.Logger
}

// NewTelegramNotifier creates a Telegram operator notifier
func NewTelegramNotifier(api *tgbotapi.BotAPI, chatID int64, log *logger.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
		logger: log,
	}
}

func (n *TelegramNotifier) NotifyOrder(_ context.Context, notice *models.OrderNotice) error {
	if n.chatID == 0 {
		n.logger.Warn("notification_skipped", "Operator chat id not configured, skipping send", "", map[string]interface{}{
			"order_id": notice.OrderID,
		})
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, notice.Format())
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send operator notice to chat %d: %w", n.chatID, err)
	}

	return nil
}
