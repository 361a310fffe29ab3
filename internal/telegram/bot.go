// Package telegram binds the transport-neutral core to the Telegram Bot
// API: updates become action events, views become inline keyboards.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"coffee-shop-bot/internal/bot"
	"coffee-shop-bot/internal/logger"
	"coffee-shop-bot/internal/models"
)

// actionTimeout bounds the handling of a single update
const actionTimeout = 30 * time.Second

// Bot runs the Telegram long-poll loop against the dispatcher
type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *bot.Dispatcher
	logger     *logger.Logger
}

// New creates the Telegram transport
func New(api *tgbotapi.BotAPI, dispatcher *bot.Dispatcher, log *logger.Logger) *Bot {
	return &Bot{
		api:        api,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// Run polls for updates until the context is cancelled
func (b *Bot) Run(ctx context.Context) error {
	requestID := logger.GenerateRequestID()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	b.logger.Info("service_started", fmt.Sprintf("Bot @%s is polling for updates", b.api.Self.UserName), requestID, nil)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("service_stopped", "Bot stopped polling", requestID, nil)
			return nil
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, actionTimeout)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

// handleCommand maps the /start and /help commands onto actions
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	token := ""
	switch message.Command() {
	case "start":
		token = "menu_home"
	case "help":
		token = "help"
	default:
		return
	}

	view := b.dispatcher.Dispatch(ctx, models.ActionEvent{
		UserID:      strconv.FormatInt(message.From.ID, 10),
		Token:       token,
		DisplayName: fullName(message.From),
	})

	reply := tgbotapi.NewMessage(message.Chat.ID, view.Text)
	reply.ReplyMarkup = keyboard(view)
	if _, err := b.api.Send(reply); err != nil {
		b.logger.Error("send_failed", "Failed to send command reply", "", err, map[string]interface{}{
			"chat_id": message.Chat.ID,
		})
	}
}

// handleCallback answers a button tap by editing the message in place
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Error("callback_ack_failed", "Failed to acknowledge callback", "", err, nil)
	}

	view := b.dispatcher.Dispatch(ctx, models.ActionEvent{
		UserID:      strconv.FormatInt(callback.From.ID, 10),
		Token:       callback.Data,
		DisplayName: fullName(callback.From),
	})

	if callback.Message == nil {
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		callback.Message.Chat.ID,
		callback.Message.MessageID,
		view.Text,
		keyboard(view),
	)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("edit_failed", "Failed to edit message", "", err, map[string]interface{}{
			"chat_id":    callback.Message.Chat.ID,
			"message_id": callback.Message.MessageID,
		})
	}
}

// keyboard renders the view choices as an inline keyboard, one per row
func keyboard(view models.View) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(view.Choices))
	for _, choice := range view.Choices {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice.Label, choice.Action),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func fullName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
