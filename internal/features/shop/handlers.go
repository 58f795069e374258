// Package shop — handlers.go обрабатывает меню магазина, покупку и инвентарь.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
)

// Handler обрабатывает кнопки магазина.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик магазина.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// categoryNames — подписи категорий для меню.
var categoryNames = []struct {
	Title string
	Key   string
}{
	{"🌾 Семена", CategorySeed},
	{"🛠️ Инструменты", CategoryTool},
	{"⭐ Улучшения", CategoryUpgrade},
	{"🍖 Потребляемое", CategoryConsumable},
	{"🎨 Косметика", CategoryCosmetic},
	{"🎫 Услуги", CategoryService},
}

// ShopKeyboard строит клавиатуру категорий магазина.
func ShopKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(categoryNames); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(categoryNames[i].Title, "shopcat_"+categoryNames[i].Key),
		}
		if i+1 < len(categoryNames) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(categoryNames[i+1].Title, "shopcat_"+categoryNames[i+1].Key))
		}
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("📦 Инвентарь", "inv"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "main"),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// HandleShopMenu показывает категории.
func (h *Handler) HandleShopMenu(ctx context.Context, chatID int64, messageID int) {
	h.editMessage(chatID, messageID, "Выберите категорию товаров:", ShopKeyboard())
}

// HandleCategory показывает товары категории с ценами.
func (h *Handler) HandleCategory(ctx context.Context, chatID int64, messageID int, category string) {
	items, err := h.service.ListItems(ctx, category)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения каталога")
		return
	}

	title := "Товары"
	for _, c := range categoryNames {
		if c.Key == category {
			title = c.Title
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range items {
		label := fmt.Sprintf("%s %s — %s",
			RarityEmoji(it.Rarity), it.Name, common.FormatMoney(h.service.DisplayPrice(it)))
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("buy_%d", it.ID)),
		})
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "shop"),
	})

	h.editMessage(chatID, messageID, title+":", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// HandleBuy покупает предмет по ID из callback-данных.
func (h *Handler) HandleBuy(ctx context.Context, cb *tgbotapi.CallbackQuery, itemID int64) {
	userID := cb.From.ID

	text, err := h.service.Buy(ctx, userID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInsufficientFunds):
			h.answerAlert(cb.ID, "Не хватает денег.")
		case errors.Is(err, common.ErrItemNotFound):
			h.answerAlert(cb.ID, "Товар не найден.")
		case errors.Is(err, common.ErrPlayerNotFound):
			h.answerAlert(cb.ID, "Сначала отправьте /start")
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка покупки")
			h.answerAlert(cb.ID, "❌ Ошибка, попробуйте позже")
		}
		return
	}

	h.answer(cb.ID, text)
}

// HandleInventory показывает инвентарь игрока.
func (h *Handler) HandleInventory(ctx context.Context, chatID int64, messageID int, userID int64) {
	entries, err := h.service.GetInventory(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения инвентаря")
		return
	}

	var sb strings.Builder
	sb.WriteString("📦 Инвентарь\n\n")
	if len(entries) == 0 {
		sb.WriteString("Пусто. Загляните в магазин!")
	}
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s %s × %d\n", RarityEmoji(e.Item.Rarity), e.Item.Name, e.Qty))
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "shop"),
		),
	)
	h.editMessage(chatID, messageID, sb.String(), kb)
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
