// Package work — handlers.go обрабатывает меню работ и выполнение работы.
package work

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
)

// Handler обрабатывает кнопки меню работ.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик работ.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// JobsKeyboard строит клавиатуру выбора профессии, по две кнопки в ряд.
func JobsKeyboard() tgbotapi.InlineKeyboardMarkup {
	jobs := AllJobs()
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(jobs); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(jobs[i].Name, "job_"+jobs[i].Key),
		}
		if i+1 < len(jobs) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(jobs[i+1].Name, "job_"+jobs[i+1].Key))
		}
		rows = append(rows, row)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "main"),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// HandleWorkMenu показывает список профессий.
func (h *Handler) HandleWorkMenu(ctx context.Context, chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "Выберите тип работы:", JobsKeyboard())
	if _, err := h.bot.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка показа меню работ")
	}
}

// HandleJob выполняет работу по ключу из callback-данных.
// Кулдаун проверяется атомарно с выплатой, поэтому повторное быстрое
// нажатие безопасно: второй запрос получит отказ по кулдауну.
func (h *Handler) HandleJob(ctx context.Context, cb *tgbotapi.CallbackQuery, jobKey string, menu tgbotapi.InlineKeyboardMarkup) {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	res, err := h.service.Work(ctx, userID, jobKey)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrCooldownActive):
			_, left, cerr := h.service.CanWork(ctx, userID)
			if cerr != nil {
				left = 0
			}
			h.answerAlert(cb.ID, fmt.Sprintf("Пауза. Подожди ещё %s.", common.FormatCooldown(left)))
		case errors.Is(err, common.ErrPlayerNotFound):
			h.answerAlert(cb.ID, "Сначала отправьте /start")
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка выполнения работы")
			h.answerAlert(cb.ID, "❌ Ошибка, попробуйте позже")
		}
		return
	}

	msg := fmt.Sprintf(
		"Работа \"%s\" завершена!\n"+
			"💵 Заработано: %d$\n"+
			"📈 XP: +%d\n",
		res.Job.Name, res.Earned, res.XPGain,
	)
	if res.Promoted {
		msg += fmt.Sprintf("🎉 Новый уровень: %d!\n", res.Level)
	}
	if res.Star {
		msg += "⭐ Вы получили шанс на звезду Telegram!"
	}

	h.answer(cb.ID, "")
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID, msg, menu)
	if _, err := h.bot.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка показа результата работы")
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
