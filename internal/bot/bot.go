// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go подключает обработчики фич и запускает polling.
package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/bot/filters"
	"levelbot.ru/game-bot/internal/bot/middleware"
	"levelbot.ru/game-bot/internal/config"
	"levelbot.ru/game-bot/internal/features/admin"
	"levelbot.ru/game-bot/internal/features/crypto"
	"levelbot.ru/game-bot/internal/features/economy"
	"levelbot.ru/game-bot/internal/features/farm"
	"levelbot.ru/game-bot/internal/features/players"
	"levelbot.ru/game-bot/internal/features/shop"
	"levelbot.ru/game-bot/internal/features/work"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	accessFilter *filters.AccessFilter
	rateLimiter  *middleware.RateLimiter

	playerHandler  *players.Handler
	workHandler    *work.Handler
	shopHandler    *shop.Handler
	farmHandler    *farm.Handler
	cryptoHandler  *crypto.Handler
	economyHandler *economy.Handler
	adminHandler   *admin.Handler

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	playerHandler *players.Handler,
	workHandler *work.Handler,
	shopHandler *shop.Handler,
	farmHandler *farm.Handler,
	cryptoHandler *crypto.Handler,
	economyHandler *economy.Handler,
	adminHandler *admin.Handler,
	accessFilter *filters.AccessFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:            api,
		cfg:            cfg,
		accessFilter:   accessFilter,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		playerHandler:  playerHandler,
		workHandler:    workHandler,
		shopHandler:    shopHandler,
		farmHandler:    farmHandler,
		cryptoHandler:  cryptoHandler,
		economyHandler: economyHandler,
		adminHandler:   adminHandler,
		inflight:       make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage обрабатывает текстовое сообщение.
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	middleware.LogMessage(message)

	if message.From == nil || message.Chat == nil {
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	if !b.accessFilter.CheckAccess(ctx, userID, message.Chat.IsPrivate()) {
		return
	}

	if !b.rateLimiter.Allow(userID) {
		log.WithField("user_id", userID).Debug("rate limited")
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(ctx, message)
			return
		case "help":
			b.sendMessage(chatID, "Отправьте /start, дальше всё по кнопкам.")
			return
		}
	}

	// Панель модератора работает через обычные текстовые сообщения в DM
	if b.cfg.FeatureAdminEnabled {
		if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
			return
		}
	}
}

// handleStart обрабатывает /start [referrer_id].
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	// Реферальный аргумент: /start 123456789
	var referrer *int64
	if arg := strings.TrimSpace(message.CommandArguments()); arg != "" {
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil && id > 0 {
			referrer = &id
		}
	}

	name := strings.TrimSpace(message.From.FirstName + " " + message.From.LastName)
	b.playerHandler.HandleStart(ctx, message.Chat.ID, userID,
		message.From.UserName, name, referrer, b.mainMenu(userID))
}

// handleCallback маршрутизирует нажатие inline-кнопки.
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	middleware.LogCallback(cb)

	if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	userID := cb.From.ID

	if !b.accessFilter.CheckAccess(ctx, userID, cb.Message.Chat.IsPrivate()) {
		b.answerCallback(cb.ID, "")
		return
	}

	if !b.rateLimiter.Allow(userID) {
		b.answerCallback(cb.ID, "Не так быстро!")
		return
	}

	data := cb.Data
	switch {
	case data == "main":
		b.showMainMenu(chatID, messageID, userID)
		b.answerCallback(cb.ID, "")

	case data == "profile":
		b.playerHandler.HandleProfile(ctx, chatID, messageID, userID, BackToMainKeyboard())
		b.answerCallback(cb.ID, "")

	case data == "ref":
		b.playerHandler.HandleReferral(ctx, chatID, messageID, userID, BackToMainKeyboard())
		b.answerCallback(cb.ID, "")

	case data == "history":
		b.economyHandler.HandleTransactions(ctx, chatID, messageID, userID)
		b.answerCallback(cb.ID, "")

	case data == "work":
		b.workHandler.HandleWorkMenu(ctx, chatID, messageID)
		b.answerCallback(cb.ID, "")

	case strings.HasPrefix(data, "job_"):
		b.workHandler.HandleJob(ctx, cb, strings.TrimPrefix(data, "job_"), b.mainMenu(userID))

	case data == "shop":
		b.shopHandler.HandleShopMenu(ctx, chatID, messageID)
		b.answerCallback(cb.ID, "")

	case strings.HasPrefix(data, "shopcat_"):
		b.shopHandler.HandleCategory(ctx, chatID, messageID, strings.TrimPrefix(data, "shopcat_"))
		b.answerCallback(cb.ID, "")

	case data == "inv":
		b.shopHandler.HandleInventory(ctx, chatID, messageID, userID)
		b.answerCallback(cb.ID, "")

	case strings.HasPrefix(data, "buy_"):
		if itemID, err := strconv.ParseInt(strings.TrimPrefix(data, "buy_"), 10, 64); err == nil {
			b.shopHandler.HandleBuy(ctx, cb, itemID)
		}

	case data == "farm":
		b.farmHandler.HandleFarmMenu(ctx, chatID, messageID, userID, "")
		b.answerCallback(cb.ID, "")

	case strings.HasPrefix(data, "farm_plant_"):
		if slot, err := strconv.Atoi(strings.TrimPrefix(data, "farm_plant_")); err == nil {
			b.farmHandler.HandlePlantMenu(ctx, chatID, messageID, slot)
		}
		b.answerCallback(cb.ID, "")

	case strings.HasPrefix(data, "plant_"):
		parts := strings.Split(data, "_")
		if len(parts) == 3 {
			slot, err1 := strconv.Atoi(parts[1])
			itemID, err2 := strconv.ParseInt(parts[2], 10, 64)
			if err1 == nil && err2 == nil {
				b.farmHandler.HandlePlant(ctx, cb, slot, itemID)
			}
		}

	case strings.HasPrefix(data, "farm_harvest_"):
		if slot, err := strconv.Atoi(strings.TrimPrefix(data, "farm_harvest_")); err == nil {
			b.farmHandler.HandleHarvest(ctx, cb, slot)
		}

	case data == "farm_upgrade":
		b.farmHandler.HandleUpgrade(ctx, cb)

	case data == "farm_expand":
		b.farmHandler.HandleExpand(ctx, cb)

	case data == "crypto":
		if b.cfg.FeatureCryptoEnabled {
			b.cryptoHandler.HandleCryptoMenu(ctx, chatID, messageID, userID)
		}
		b.answerCallback(cb.ID, "")

	case strings.HasPrefix(data, "coin_"):
		if b.cfg.FeatureCryptoEnabled {
			b.cryptoHandler.HandleCoin(ctx, chatID, messageID, userID, strings.TrimPrefix(data, "coin_"))
		}
		b.answerCallback(cb.ID, "")

	case strings.HasPrefix(data, "cbuy_"):
		if b.cfg.FeatureCryptoEnabled {
			if symbol, amount, ok := parseTrade(data, "cbuy_"); ok {
				b.cryptoHandler.HandleBuy(ctx, cb, symbol, amount)
			}
		}

	case strings.HasPrefix(data, "csell_"):
		if b.cfg.FeatureCryptoEnabled {
			if symbol, amount, ok := parseTrade(data, "csell_"); ok {
				b.cryptoHandler.HandleSell(ctx, cb, symbol, amount)
			}
		}

	case data == "admin_panel":
		if b.cfg.FeatureAdminEnabled {
			b.adminHandler.HandleAdminMessage(ctx, chatID, userID, "Панель")
		}
		b.answerCallback(cb.ID, "")

	default:
		b.answerCallback(cb.ID, "")
	}
}

// parseTrade разбирает "cbuy_BTC_0.1" на символ и объём.
func parseTrade(data, prefix string) (symbol, amount string, ok bool) {
	parts := strings.Split(strings.TrimPrefix(data, prefix), "_")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// mainMenu строит главное меню для конкретного игрока.
func (b *Bot) mainMenu(userID int64) tgbotapi.InlineKeyboardMarkup {
	return MainMenuKeyboard(b.cfg.IsAdmin(userID), b.cfg.FeatureCryptoEnabled)
}

// showMainMenu редактирует сообщение в главное меню.
func (b *Bot) showMainMenu(chatID int64, messageID int, userID int64) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "🏠 Главное меню", b.mainMenu(userID))
	if _, err := b.api.Send(edit); err != nil {
		log.WithError(err).Error("Ошибка показа главного меню")
	}
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.WithError(err).Debug("Ошибка ответа на callback")
	}
}
