// Package admin — handlers.go обрабатывает взаимодействие с модераторской панелью.
// Панель работает через Reply Keyboard в личных сообщениях.
// Поток: аутентификация → клавиатура → выбор действия → пошаговый диалог.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
	"levelbot.ru/game-bot/internal/config"
)

// Handler обрабатывает команды модераторской панели.
type Handler struct {
	service *Service
	cfg     *config.Config
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик панели.
func NewHandler(service *Service, cfg *config.Config, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, cfg: cfg, bot: bot}
}

// HandleAdminMessage обрабатывает любое сообщение от модератора в DM.
// Определяет текущее состояние диалога и маршрутизирует сообщение.
// Возвращает true, если сообщение обработано панелью.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID int64, userID int64, text string) bool {
	if !h.cfg.IsAdmin(userID) {
		return false
	}

	state := h.service.GetState(userID)

	if state != nil && state.State == StateAwaitingPassword {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	if !h.service.HasActiveSession(ctx, userID) {
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к панели:")
		h.service.SetState(userID, StateAwaitingPassword, nil)
		return true
	}

	if err := h.service.repo.UpdateActivity(ctx, userID); err != nil {
		log.WithError(err).Warn("Ошибка обновления активности сессии")
	}

	if state != nil {
		switch state.State {
		case StateGiveMoneyTarget:
			h.handleTargetInput(ctx, chatID, userID, text, StateGiveMoneyAmount, "Введите сумму начисления:")
			return true
		case StateGiveMoneyAmount:
			h.handleGiveAmount(ctx, chatID, userID, state, text)
			return true
		case StateTakeMoneyTarget:
			h.handleTargetInput(ctx, chatID, userID, text, StateTakeMoneyAmount, "Введите сумму списания:")
			return true
		case StateTakeMoneyAmount:
			h.handleTakeAmount(ctx, chatID, userID, state, text)
			return true
		case StateBanTarget:
			h.handleBanTarget(ctx, chatID, userID, text, true)
			return true
		case StateUnbanTarget:
			h.handleBanTarget(ctx, chatID, userID, text, false)
			return true
		case StateVIPTarget:
			h.handleTargetInput(ctx, chatID, userID, text, StateVIPDays, "Введите срок VIP в днях:")
			return true
		case StateVIPDays:
			h.handleVIPDays(ctx, chatID, userID, state, text)
			return true
		}
	}

	switch text {
	case "Выдать деньги":
		h.sendMessage(chatID, "Введите ID игрока:")
		h.service.SetState(userID, StateGiveMoneyTarget, nil)
		return true
	case "Изъять деньги":
		h.sendMessage(chatID, "Введите ID игрока:")
		h.service.SetState(userID, StateTakeMoneyTarget, nil)
		return true
	case "Забанить":
		h.sendMessage(chatID, "Введите ID игрока для бана:")
		h.service.SetState(userID, StateBanTarget, nil)
		return true
	case "Разбанить":
		h.sendMessage(chatID, "Введите ID игрока для разбана:")
		h.service.SetState(userID, StateUnbanTarget, nil)
		return true
	case "Выдать VIP":
		h.sendMessage(chatID, "Введите ID игрока:")
		h.service.SetState(userID, StateVIPTarget, nil)
		return true
	case "Выйти":
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Warn("Ошибка выхода из панели")
		}
		h.sendMessage(chatID, "Сессия завершена.")
		return true
	case "Админ", "Панель", "админ", "панель":
		h.showKeyboard(chatID)
		return true
	}

	return false
}

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID int64, userID int64, password string) {
	err := h.service.VerifyPassword(ctx, userID, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTooManyAttempts):
			h.sendMessage(chatID, "❌ Слишком много попыток, подождите 1 час")
		case errors.Is(err, common.ErrWrongPassword):
			h.sendMessage(chatID, "❌ Неверный пароль")
		default:
			log.WithError(err).Error("Ошибка проверки пароля")
			h.sendMessage(chatID, "❌ Ошибка, попробуйте позже")
		}
		h.service.ClearState(userID)
		return
	}

	h.service.ClearState(userID)
	h.sendMessage(chatID, "✅ Аутентификация успешна!")
	h.showKeyboard(chatID)
}

// showKeyboard отображает клавиатуру панели.
func (h *Handler) showKeyboard(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Выдать деньги"),
			tgbotapi.NewKeyboardButton("Изъять деньги"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Забанить"),
			tgbotapi.NewKeyboardButton("Разбанить"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Выдать VIP"),
			tgbotapi.NewKeyboardButton("Выйти"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "✅ Панель модератора открыта")
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки клавиатуры")
	}
}

// handleTargetInput — общий шаг "введите ID игрока" с переходом дальше.
func (h *Handler) handleTargetInput(ctx context.Context, chatID int64, userID int64, text, nextState, prompt string) {
	targetID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || targetID <= 0 {
		h.sendMessage(chatID, "❌ Неверный ID. Попробуйте ещё раз.")
		return
	}

	h.sendMessage(chatID, prompt)
	h.service.SetState(userID, nextState, targetID)
}

func (h *Handler) handleGiveAmount(ctx context.Context, chatID int64, userID int64, state *State, text string) {
	targetID, ok := state.TargetID()
	if !ok {
		h.expireDialog(chatID, userID)
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || amount <= 0 {
		h.sendMessage(chatID, "❌ Сумма должна быть положительным числом")
		return
	}

	if err := h.service.GiveMoney(ctx, userID, targetID, amount); err != nil {
		h.reportActionError(chatID, err)
		h.service.ClearState(userID)
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Игроку %d начислено %s", targetID, common.FormatMoney(amount)))
	h.service.ClearState(userID)
}

func (h *Handler) handleTakeAmount(ctx context.Context, chatID int64, userID int64, state *State, text string) {
	targetID, ok := state.TargetID()
	if !ok {
		h.expireDialog(chatID, userID)
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || amount <= 0 {
		h.sendMessage(chatID, "❌ Сумма должна быть положительным числом")
		return
	}

	if err := h.service.TakeMoney(ctx, userID, targetID, amount); err != nil {
		h.reportActionError(chatID, err)
		h.service.ClearState(userID)
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ У игрока %d изъято %s", targetID, common.FormatMoney(amount)))
	h.service.ClearState(userID)
}

func (h *Handler) handleBanTarget(ctx context.Context, chatID int64, userID int64, text string, banned bool) {
	targetID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || targetID <= 0 {
		h.sendMessage(chatID, "❌ Неверный ID. Попробуйте ещё раз.")
		return
	}

	if err := h.service.SetBanned(ctx, userID, targetID, banned); err != nil {
		h.reportActionError(chatID, err)
		h.service.ClearState(userID)
		return
	}

	if banned {
		h.sendMessage(chatID, fmt.Sprintf("✅ Игрок %d забанен", targetID))
	} else {
		h.sendMessage(chatID, fmt.Sprintf("✅ Игрок %d разбанен", targetID))
	}
	h.service.ClearState(userID)
}

func (h *Handler) handleVIPDays(ctx context.Context, chatID int64, userID int64, state *State, text string) {
	targetID, ok := state.TargetID()
	if !ok {
		h.expireDialog(chatID, userID)
		return
	}

	days, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || days <= 0 {
		h.sendMessage(chatID, "❌ Срок должен быть положительным числом дней")
		return
	}

	if err := h.service.GrantVIP(ctx, userID, targetID, days); err != nil {
		h.reportActionError(chatID, err)
		h.service.ClearState(userID)
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Игроку %d выдан VIP на %d дн.", targetID, days))
	h.service.ClearState(userID)
}

// expireDialog сбрасывает устаревший диалог и просит начать действие заново.
func (h *Handler) expireDialog(chatID int64, userID int64) {
	h.service.ClearState(userID)
	h.sendMessage(chatID, "⏳ Диалог устарел, начните действие заново.")
}

func (h *Handler) reportActionError(chatID int64, err error) {
	switch {
	case errors.Is(err, common.ErrPlayerNotFound):
		h.sendMessage(chatID, "❌ Игрок не найден")
	case errors.Is(err, common.ErrInsufficientFunds):
		h.sendMessage(chatID, "❌ У игрока недостаточно денег")
	default:
		log.WithError(err).Error("Ошибка действия модератора")
		h.sendMessage(chatID, fmt.Sprintf("❌ Ошибка: %s", err.Error()))
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
