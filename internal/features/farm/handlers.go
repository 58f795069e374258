// Package farm — handlers.go обрабатывает кнопки фермы: меню, посадка,
// сбор, улучшение и расширение.
package farm

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
	"levelbot.ru/game-bot/internal/features/players"
	"levelbot.ru/game-bot/internal/features/shop"
)

// Handler обрабатывает кнопки фермы.
type Handler struct {
	service       *Service
	playerService *players.Service
	shopService   *shop.Service
	bot           *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик фермы.
func NewHandler(service *Service, playerService *players.Service, shopService *shop.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service:       service,
		playerService: playerService,
		shopService:   shopService,
		bot:           bot,
	}
}

// farmKeyboard строит клавиатуру грядок: занятые показывают прогресс
// роста в процентах, пустые — номер слота. По три кнопки в ряд.
func farmKeyboard(plots []*Plot, maxSlots int, now time.Time) tgbotapi.InlineKeyboardMarkup {
	bySlot := make(map[int]*Plot, len(plots))
	for _, p := range plots {
		bySlot[p.Slot] = p
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for slot := 1; slot <= maxSlots; slot++ {
		var btn tgbotapi.InlineKeyboardButton
		if p, ok := bySlot[slot]; ok {
			progress := common.GrowthPercent(p.PlantedAt, SeedByName(p.SeedType).GrowTime(), now)
			btn = tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🌱%d(%d%%)", slot, progress),
				fmt.Sprintf("farm_harvest_%d", slot),
			)
		} else {
			btn = tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🟩%d", slot),
				fmt.Sprintf("farm_plant_%d", slot),
			)
		}
		row = append(row, btn)
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🛒 Купить семена", "shopcat_seed"),
		tgbotapi.NewInlineKeyboardButtonData("⚡ Улучшить ферму", "farm_upgrade"),
	})
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("📈 Расширить ферму", "farm_expand"),
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "main"),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// HandleFarmMenu показывает состояние фермы с грядками.
func (h *Handler) HandleFarmMenu(ctx context.Context, chatID int64, messageID int, userID int64, extra string) {
	p, err := h.playerService.Get(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения игрока для фермы")
		h.sendMessage(chatID, "❌ Профиль не найден, отправьте /start")
		return
	}

	plots, err := h.service.GetPlots(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения грядок")
		return
	}

	text := fmt.Sprintf(
		"🌾 Ваша ферма\n"+
			"Уровень: %d\n"+
			"Слотов: %d\n"+
			"Баланс: %s\n"+
			"Улучшение: %s",
		p.FarmLevel, p.FarmSlots,
		common.FormatMoney(p.Dollars),
		common.FormatMoney(h.service.NextUpgradeCost(p.FarmLevel)),
	)
	if extra != "" {
		text += "\n\n" + extra
	}

	h.editMessage(chatID, messageID, text, farmKeyboard(plots, p.FarmSlots, time.Now()))
}

// HandlePlantMenu показывает выбор семян из каталога для слота.
func (h *Handler) HandlePlantMenu(ctx context.Context, chatID int64, messageID int, slot int) {
	items, err := h.shopService.ListItems(ctx, shop.CategorySeed)
	if err != nil {
		log.WithError(err).Error("Ошибка чтения семян")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(items); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(items[i].Name, fmt.Sprintf("plant_%d_%d", slot, items[i].ID)),
		}
		if i+1 < len(items) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(items[i+1].Name, fmt.Sprintf("plant_%d_%d", slot, items[i+1].ID)))
		}
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "farm"),
	})

	h.editMessage(chatID, messageID, "Выберите семя для посадки:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// HandlePlant сажает семя itemID в слот.
func (h *Handler) HandlePlant(ctx context.Context, cb *tgbotapi.CallbackQuery, slot int, itemID int64) {
	userID := cb.From.ID

	seedName, err := h.service.Plant(ctx, userID, slot, itemID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSlotOccupied):
			h.answer(cb.ID, "Слот уже занят.")
		case errors.Is(err, common.ErrNoSeedInInventory):
			h.answer(cb.ID, "У вас нет этого семени")
		case errors.Is(err, common.ErrItemNotFound):
			h.answer(cb.ID, "Семя не найдено")
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка посадки")
			h.answer(cb.ID, "❌ Ошибка, попробуйте позже")
		}
		return
	}

	h.answer(cb.ID, fmt.Sprintf("Посажено: %s.", seedName))
	h.HandleFarmMenu(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, "")
}

// HandleHarvest собирает урожай со слота.
func (h *Handler) HandleHarvest(ctx context.Context, cb *tgbotapi.CallbackQuery, slot int) {
	userID := cb.From.ID

	out, err := h.service.Harvest(ctx, userID, slot)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotGrownYet):
			h.answer(cb.ID, "⏳ "+err.Error())
		case errors.Is(err, common.ErrPlotNotFound):
			h.answer(cb.ID, "На этом слоте ничего не растёт.")
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка сбора урожая")
			h.answer(cb.ID, "❌ Ошибка, попробуйте позже")
		}
		return
	}

	msg := fmt.Sprintf("Собрано: %s, +%d$", out.SeedType, out.Income)
	h.answer(cb.ID, msg)
	h.HandleFarmMenu(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, msg)
}

// HandleUpgrade улучшает ферму на уровень.
func (h *Handler) HandleUpgrade(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	userID := cb.From.ID

	newLevel, cost, err := h.service.Upgrade(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInsufficientFunds):
			h.answerAlert(cb.ID, fmt.Sprintf("Не хватает денег. Нужно %s.", common.FormatMoney(cost)))
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка улучшения фермы")
			h.answer(cb.ID, "❌ Ошибка, попробуйте позже")
		}
		return
	}

	msg := fmt.Sprintf("⚡ Ферма улучшена до уровня %d за %s!", newLevel, common.FormatMoney(cost))
	h.answer(cb.ID, msg)
	h.HandleFarmMenu(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, msg)
}

// HandleExpand добавляет грядку.
func (h *Handler) HandleExpand(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	userID := cb.From.ID

	newSlots, err := h.service.Expand(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInsufficientFunds):
			h.answerAlert(cb.ID, "Не хватает денег на расширение.")
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка расширения фермы")
			h.answer(cb.ID, "❌ Ошибка, попробуйте позже")
		}
		return
	}

	msg := fmt.Sprintf("📈 Ферма расширена! Теперь %d %s.", newSlots, common.PluralizeSlots(int64(newSlots)))
	h.answer(cb.ID, msg)
	h.HandleFarmMenu(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, msg)
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
