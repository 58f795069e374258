// Package economy — handlers.go показывает историю операций.
package economy

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает кнопки экономики.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик экономики.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleTransactions показывает последние операции игрока.
func (h *Handler) HandleTransactions(ctx context.Context, chatID int64, messageID int, userID int64) {
	history, err := h.service.GetTransactionHistory(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения истории операций")
		return
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "main"),
		),
	)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, history, kb)
	if _, err := h.bot.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка показа истории операций")
	}
}
