// Package crypto — handlers.go обрабатывает кнопки биржи.
package crypto

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
)

// Handler обрабатывает кнопки криптобиржи.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик биржи.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// tradeAmounts — фиксированные объёмы сделок в кнопках.
var tradeAmounts = []float64{0.1, 1, 10}

// formatPrice печатает курс с точностью, уместной для его масштаба.
func formatPrice(p float64) string {
	if p < 1 {
		return strconv.FormatFloat(p, 'f', 4, 64)
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// formatAmount печатает объём без хвостовых нулей.
func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// HandleCryptoMenu показывает курсы и портфель игрока.
func (h *Handler) HandleCryptoMenu(ctx context.Context, chatID int64, messageID int, userID int64) {
	cryptos, err := h.service.ListCryptos(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения биржи")
		return
	}
	holdings, err := h.service.GetHoldings(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения портфеля")
		return
	}

	held := make(map[string]float64, len(holdings))
	for _, hd := range holdings {
		held[hd.Symbol] = hd.Amount
	}

	var sb strings.Builder
	sb.WriteString("₿ Криптобиржа\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range cryptos {
		sb.WriteString(fmt.Sprintf("%s (%s): %s$", c.Name, c.Symbol, formatPrice(c.Price)))
		if amt := held[c.Symbol]; amt > 0 {
			sb.WriteString(fmt.Sprintf(" | у вас %s", formatAmount(amt)))
		}
		sb.WriteString("\n")

		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Symbol, "coin_"+c.Symbol))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "main"),
	})

	h.editMessage(chatID, messageID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// HandleCoin показывает монету с кнопками покупки и продажи.
func (h *Handler) HandleCoin(ctx context.Context, chatID int64, messageID int, userID int64, symbol string) {
	c, err := h.service.GetCrypto(ctx, symbol)
	if err != nil {
		if errors.Is(err, common.ErrCryptoNotFound) {
			h.editMessage(chatID, messageID, "Монета не найдена.", backKeyboard("crypto"))
			return
		}
		log.WithError(err).Error("Ошибка чтения монеты")
		return
	}

	held := 0.0
	holdings, err := h.service.GetHoldings(ctx, userID)
	if err == nil {
		for _, hd := range holdings {
			if hd.Symbol == symbol {
				held = hd.Amount
			}
		}
	}

	text := fmt.Sprintf(
		"%s (%s)\n"+
			"Курс: %s$\n"+
			"У вас: %s",
		c.Name, c.Symbol, formatPrice(c.Price), formatAmount(held),
	)

	var buyRow, sellRow []tgbotapi.InlineKeyboardButton
	for _, amt := range tradeAmounts {
		a := formatAmount(amt)
		buyRow = append(buyRow, tgbotapi.NewInlineKeyboardButtonData(
			"🟢 +"+a, fmt.Sprintf("cbuy_%s_%s", symbol, a)))
		sellRow = append(sellRow, tgbotapi.NewInlineKeyboardButtonData(
			"🔴 -"+a, fmt.Sprintf("csell_%s_%s", symbol, a)))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		buyRow,
		sellRow,
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "crypto"),
		},
	)
	h.editMessage(chatID, messageID, text, kb)
}

// HandleBuy покупает монету на объём из callback-данных.
func (h *Handler) HandleBuy(ctx context.Context, cb *tgbotapi.CallbackQuery, symbol, amountStr string) {
	userID := cb.From.ID
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		h.answer(cb.ID, "Некорректный объём")
		return
	}

	cost, err := h.service.Buy(ctx, userID, symbol, amount)
	if err != nil {
		h.answerTradeError(cb.ID, userID, err)
		return
	}

	h.answer(cb.ID, fmt.Sprintf("Куплено %s %s за %s", formatAmount(amount), symbol, common.FormatMoney(cost)))
	h.HandleCoin(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, symbol)
}

// HandleSell продаёт монету на объём из callback-данных.
func (h *Handler) HandleSell(ctx context.Context, cb *tgbotapi.CallbackQuery, symbol, amountStr string) {
	userID := cb.From.ID
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		h.answer(cb.ID, "Некорректный объём")
		return
	}

	proceeds, err := h.service.Sell(ctx, userID, symbol, amount)
	if err != nil {
		h.answerTradeError(cb.ID, userID, err)
		return
	}

	h.answer(cb.ID, fmt.Sprintf("Продано %s %s за %s", formatAmount(amount), symbol, common.FormatMoney(proceeds)))
	h.HandleCoin(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, symbol)
}

func (h *Handler) answerTradeError(callbackID string, userID int64, err error) {
	switch {
	case errors.Is(err, common.ErrInsufficientFunds):
		h.answerAlert(callbackID, "Не хватает денег.")
	case errors.Is(err, common.ErrInsufficientHoldings):
		h.answerAlert(callbackID, "Недостаточно монет на балансе.")
	case errors.Is(err, common.ErrCryptoNotFound):
		h.answerAlert(callbackID, "Монета не найдена.")
	case errors.Is(err, common.ErrPlayerNotFound):
		h.answerAlert(callbackID, "Сначала отправьте /start")
	case errors.Is(err, common.ErrInvalidAmount):
		h.answerAlert(callbackID, "Объём должен быть положительным.")
	default:
		log.WithError(err).WithField("user_id", userID).Error("Ошибка сделки")
		h.answerAlert(callbackID, "❌ Ошибка, попробуйте позже")
	}
}

func backKeyboard(target string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", target),
		),
	)
}

func (h *Handler) editMessage(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if _, err := h.bot.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка редактирования сообщения")
	}
}

func (h *Handler) answer(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}

func (h *Handler) answerAlert(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}
