// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/bot"
	"levelbot.ru/game-bot/internal/bot/filters"
	"levelbot.ru/game-bot/internal/config"
	"levelbot.ru/game-bot/internal/db/postgres"
	"levelbot.ru/game-bot/internal/features/admin"
	"levelbot.ru/game-bot/internal/features/crypto"
	"levelbot.ru/game-bot/internal/features/economy"
	"levelbot.ru/game-bot/internal/features/farm"
	"levelbot.ru/game-bot/internal/features/players"
	"levelbot.ru/game-bot/internal/features/shop"
	"levelbot.ru/game-bot/internal/features/work"
	"levelbot.ru/game-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	playerRepo := players.NewRepository(pool)
	economyRepo := economy.NewRepository(pool)
	workRepo := work.NewRepository(pool)
	shopRepo := shop.NewRepository(pool)
	farmRepo := farm.NewRepository(pool)
	cryptoRepo := crypto.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы ===
	playerService := players.NewService(playerRepo, cfg)
	economyService := economy.NewService(economyRepo)
	workService := work.NewService(workRepo, cfg)
	shopService := shop.NewService(shopRepo, cfg)
	farmService := farm.NewService(farmRepo, cfg)
	cryptoService := crypto.NewService(cryptoRepo)
	adminService := admin.NewService(adminRepo, playerService, economyService, cfg)

	// === 5. Стартовые данные ===
	if err := shopService.SeedCatalog(ctx); err != nil {
		return nil, fmt.Errorf("ошибка посева каталога: %w", err)
	}
	if cfg.FeatureCryptoEnabled {
		if err := cryptoService.SeedCryptos(ctx); err != nil {
			return nil, fmt.Errorf("ошибка посева биржи: %w", err)
		}
	}

	// === 6. Обработчики ===
	playerHandler := players.NewHandler(playerService, botAPI)
	workHandler := work.NewHandler(workService, botAPI)
	shopHandler := shop.NewHandler(shopService, botAPI)
	farmHandler := farm.NewHandler(farmService, playerService, shopService, botAPI)
	cryptoHandler := crypto.NewHandler(cryptoService, botAPI)
	economyHandler := economy.NewHandler(economyService, botAPI)
	adminHandler := admin.NewHandler(adminService, cfg, botAPI)

	// === 7. Фильтры ===
	accessFilter := filters.NewAccessFilter(playerService)

	// === 8. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		playerHandler,
		workHandler,
		shopHandler,
		farmHandler,
		cryptoHandler,
		economyHandler,
		adminHandler,
		accessFilter,
	)

	// === 9. Планировщик задач ===
	scheduler := jobs.NewScheduler(cfg, playerService, cryptoService)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.InitMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Players},
		{2, migration002Economy},
		{3, migration003Shop},
		{4, migration004Farm},
		{5, migration005Crypto},
		{6, migration006Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Players = `
CREATE TABLE IF NOT EXISTS players (
    user_id BIGINT PRIMARY KEY,
    username VARCHAR(255),
    name VARCHAR(255) NOT NULL DEFAULT '',
    dollars DOUBLE PRECISION NOT NULL DEFAULT 0,
    up BIGINT NOT NULL DEFAULT 0,
    xp INTEGER NOT NULL DEFAULT 0,
    lvl INTEGER NOT NULL DEFAULT 1,
    last_work TIMESTAMP NOT NULL DEFAULT 'epoch',
    vip BOOLEAN NOT NULL DEFAULT FALSE,
    vip_until TIMESTAMP NOT NULL DEFAULT 'epoch',
    role VARCHAR(64) NOT NULL DEFAULT 'player',
    referrer BIGINT,
    referrals INTEGER NOT NULL DEFAULT 0,
    banned BOOLEAN NOT NULL DEFAULT FALSE,
    prestige_count INTEGER NOT NULL DEFAULT 0,
    income_mult DOUBLE PRECISION NOT NULL DEFAULT 1.0,
    farm_level INTEGER NOT NULL DEFAULT 1,
    farm_slots INTEGER NOT NULL DEFAULT 3,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_players_username ON players(username);

CREATE TABLE IF NOT EXISTS referrals (
    id BIGSERIAL PRIMARY KEY,
    referrer BIGINT NOT NULL REFERENCES players(user_id),
    referred BIGINT NOT NULL UNIQUE,
    reward_referrer DOUBLE PRECISION NOT NULL DEFAULT 0,
    reward_referred DOUBLE PRECISION NOT NULL DEFAULT 0,
    paid_referrer BOOLEAN NOT NULL DEFAULT FALSE,
    paid_referred BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_referrals_referrer ON referrals(referrer);
`

var migration002Economy = `
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    type VARCHAR(50) NOT NULL,
    currency VARCHAR(10) NOT NULL DEFAULT 'USD',
    amount DOUBLE PRECISION NOT NULL,
    balance_after DOUBLE PRECISION,
    meta JSONB,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at DESC);
`

var migration003Shop = `
CREATE TABLE IF NOT EXISTS items (
    id BIGSERIAL PRIMARY KEY,
    sku VARCHAR(64) UNIQUE NOT NULL,
    name VARCHAR(255) NOT NULL,
    category VARCHAR(32) NOT NULL,
    effect JSONB,
    price DOUBLE PRECISION NOT NULL,
    rarity VARCHAR(32) NOT NULL DEFAULT 'common'
);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);

CREATE TABLE IF NOT EXISTS inventory (
    user_id BIGINT NOT NULL REFERENCES players(user_id),
    item_id BIGINT NOT NULL REFERENCES items(id),
    qty INTEGER NOT NULL DEFAULT 0 CHECK (qty >= 0),
    PRIMARY KEY (user_id, item_id)
);
`

var migration004Farm = `
CREATE TABLE IF NOT EXISTS farm_plots (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES players(user_id),
    slot INTEGER NOT NULL,
    seed_type VARCHAR(255) NOT NULL,
    planted_at TIMESTAMP NOT NULL DEFAULT NOW(),
    harvested BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_farm_plots_user_id ON farm_plots(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_farm_plots_active_slot
    ON farm_plots(user_id, slot) WHERE NOT harvested;
`

var migration005Crypto = `
CREATE TABLE IF NOT EXISTS cryptos (
    symbol VARCHAR(16) PRIMARY KEY,
    name VARCHAR(64) NOT NULL,
    price DOUBLE PRECISION NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS crypto_holds (
    user_id BIGINT NOT NULL REFERENCES players(user_id),
    symbol VARCHAR(16) NOT NULL REFERENCES cryptos(symbol),
    amount DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (amount >= 0),
    PRIMARY KEY (user_id, symbol)
);
`

var migration006Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMP,
    last_activity TIMESTAMP NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);

CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    attempt_time TIMESTAMP NOT NULL DEFAULT NOW(),
    success BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_admin_login_attempts_user ON admin_login_attempts(user_id, attempt_time DESC);
`
