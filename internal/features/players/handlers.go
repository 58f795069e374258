// Package players — handlers.go обрабатывает /start, профиль и рефералку.
package players

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
)

// Handler обрабатывает команды игрока.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
	botName string // username бота для реферальной ссылки
}

// NewHandler создаёт обработчик команд игрока.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	botName := ""
	if bot != nil {
		botName = bot.Self.UserName
	}
	return &Handler{service: service, bot: bot, botName: botName}
}

// HandleStart обрабатывает /start [referrer_id]. Идемпотентно регистрирует
// игрока и показывает приветствие с главным меню.
func (h *Handler) HandleStart(ctx context.Context, chatID, userID int64, username, name string, referrer *int64, menu tgbotapi.InlineKeyboardMarkup) {
	p, err := h.service.Ensure(ctx, userID, username, name, referrer)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка регистрации игрока")
		h.sendMessage(chatID, "❌ Ошибка регистрации, попробуйте ещё раз")
		return
	}

	text := fmt.Sprintf(
		"Привет, %s!\n"+
			"Добро пожаловать в Level - Игровой бот.\n"+
			"💰 Баланс: %s\n"+
			"🔧 UP: %d\n"+
			"📊 Уровень: %d\n"+
			"🌾 Ферма: уровень %d",
		p.Name, common.FormatMoney(p.Dollars), p.UP, p.Level, p.FarmLevel,
	)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = menu
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки приветствия")
	}
}

// HandleProfile показывает профиль игрока (редактирует сообщение меню).
func (h *Handler) HandleProfile(ctx context.Context, chatID int64, messageID int, userID int64, back tgbotapi.InlineKeyboardMarkup) {
	p, err := h.service.Get(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка получения профиля")
		h.sendMessage(chatID, "❌ Профиль не найден, отправьте /start")
		return
	}

	h.editMessage(chatID, messageID, h.service.ProfileText(p), back)
}

// HandleReferral показывает реферальную ссылку и статистику.
func (h *Handler) HandleReferral(ctx context.Context, chatID int64, messageID int, userID int64, back tgbotapi.InlineKeyboardMarkup) {
	p, err := h.service.Get(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "❌ Профиль не найден, отправьте /start")
		return
	}

	text := fmt.Sprintf(
		"👥 Реферальная программа\n\n"+
			"Ваша ссылка:\nhttps://t.me/%s?start=%d\n\n"+
			"Приглашено: %d %s",
		h.botName, userID, p.Referrals, common.PluralizeReferrals(int64(p.Referrals)),
	)
	h.editMessage(chatID, messageID, text, back)
}

func (h *Handler) editMessage(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if _, err := h.bot.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка редактирования сообщения")
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
