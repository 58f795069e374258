// Package farm — repository.go выполняет операции с таблицей farm_plots.
// Посадка и сбор выполняются каждый в одной транзакции БД: семя не может
// быть посажено дважды, урожай не может быть собран дважды, доход
// считается по согласованному снимку строки игрока.
package farm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"levelbot.ru/game-bot/internal/common"
	"levelbot.ru/game-bot/internal/features/economy"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetPlots возвращает неубранные грядки игрока по порядку слотов.
func (r *Repository) GetPlots(ctx context.Context, userID int64) ([]*Plot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, slot, seed_type, planted_at, harvested
		FROM farm_plots
		WHERE user_id = $1 AND harvested = FALSE
		ORDER BY slot
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения грядок: %w", err)
	}
	defer rows.Close()

	var out []*Plot
	for rows.Next() {
		var p Plot
		if err := rows.Scan(&p.ID, &p.UserID, &p.Slot, &p.SeedType, &p.PlantedAt, &p.Harvested); err != nil {
			return nil, fmt.Errorf("ошибка сканирования грядки: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// Plant сажает семя из инвентаря в слот. Всё в одной транзакции:
// проверка занятости слота, списание семени из инвентаря (под FOR UPDATE)
// и вставка грядки. Слот занят — common.ErrSlotOccupied; семени нет —
// common.ErrNoSeedInInventory.
func (r *Repository) Plant(ctx context.Context, userID int64, slot int, itemID int64) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var occupied bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM farm_plots
			WHERE user_id = $1 AND slot = $2 AND harvested = FALSE
		)
	`, userID, slot).Scan(&occupied)
	if err != nil {
		return "", fmt.Errorf("ошибка проверки слота: %w", err)
	}
	if occupied {
		return "", common.ErrSlotOccupied
	}

	var seedName string
	err = tx.QueryRow(ctx, `SELECT name FROM items WHERE id = $1`, itemID).Scan(&seedName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", common.ErrItemNotFound
		}
		return "", fmt.Errorf("ошибка чтения семени: %w", err)
	}

	var qty int
	err = tx.QueryRow(ctx, `
		SELECT qty FROM inventory WHERE user_id = $1 AND item_id = $2 FOR UPDATE
	`, userID, itemID).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", common.ErrNoSeedInInventory
		}
		return "", fmt.Errorf("ошибка чтения инвентаря: %w", err)
	}
	if qty <= 0 {
		return "", common.ErrNoSeedInInventory
	}

	_, err = tx.Exec(ctx, `
		UPDATE inventory SET qty = qty - 1 WHERE user_id = $1 AND item_id = $2
	`, userID, itemID)
	if err != nil {
		return "", fmt.Errorf("ошибка списания семени: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO farm_plots (user_id, slot, seed_type, planted_at)
		VALUES ($1, $2, $3, NOW())
	`, userID, slot, seedName)
	if err != nil {
		return "", fmt.Errorf("ошибка посадки: %w", err)
	}

	return seedName, tx.Commit(ctx)
}

// HarvestOutcome — итог сбора урожая.
type HarvestOutcome struct {
	Income   int64
	SeedType string
	Balance  float64
}

// Harvest собирает урожай со слота. Одна транзакция: чтение грядки,
// проверка созревания, доход по снимку строки игрока (FOR UPDATE),
// пометка harvested и запись в журнал.
//
// Нет растения — common.ErrPlotNotFound. Не созрело —
// common.ErrNotGrownYet с остатком в минутах в тексте ошибки.
func (r *Repository) Harvest(ctx context.Context, userID int64, slot int, baseIncome float64, randFloat func() float64) (*HarvestOutcome, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var p Plot
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, slot, seed_type, planted_at, harvested
		FROM farm_plots
		WHERE user_id = $1 AND slot = $2 AND harvested = FALSE
	`, userID, slot).Scan(&p.ID, &p.UserID, &p.Slot, &p.SeedType, &p.PlantedAt, &p.Harvested)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPlotNotFound
		}
		return nil, fmt.Errorf("ошибка чтения грядки: %w", err)
	}

	now := time.Now()
	if !p.Ready(now) {
		mins := p.MinutesLeft(now)
		return nil, fmt.Errorf("%w, осталось: %d %s", common.ErrNotGrownYet, mins, common.PluralizeMinutes(mins))
	}

	var dollars float64
	var farmLevel int
	err = tx.QueryRow(ctx, `
		SELECT dollars, farm_level FROM players WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&dollars, &farmLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("ошибка чтения игрока: %w", err)
	}

	seed := SeedByName(p.SeedType)
	income := HarvestIncome(baseIncome, seed.Multiplier, farmLevel, randFloat)
	newBalance := dollars + float64(income)

	_, err = tx.Exec(ctx,
		`UPDATE players SET dollars = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, newBalance)
	if err != nil {
		return nil, fmt.Errorf("ошибка начисления дохода: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE farm_plots SET harvested = TRUE WHERE id = $1`, p.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка пометки грядки: %w", err)
	}

	meta := map[string]any{"seed_type": p.SeedType, "slot": slot}
	if err := economy.LogOperation(ctx, tx, userID, economy.TxTypeFarmIncome,
		economy.CurrencyUSD, float64(income), &newBalance, meta); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации: %w", err)
	}
	return &HarvestOutcome{Income: income, SeedType: p.SeedType, Balance: newBalance}, nil
}

// Upgrade улучшает ферму на один уровень. Стоимость растёт геометрически
// от уровня; при нехватке денег — common.ErrInsufficientFunds.
func (r *Repository) Upgrade(ctx context.Context, userID int64, baseCost, costMult float64) (int, float64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var dollars float64
	var farmLevel int
	err = tx.QueryRow(ctx, `
		SELECT dollars, farm_level FROM players WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&dollars, &farmLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, common.ErrPlayerNotFound
		}
		return 0, 0, fmt.Errorf("ошибка чтения игрока: %w", err)
	}

	cost := UpgradeCost(baseCost, costMult, farmLevel)
	if dollars < cost {
		return 0, cost, common.ErrInsufficientFunds
	}

	newBalance := dollars - cost
	newLevel := farmLevel + 1
	_, err = tx.Exec(ctx, `
		UPDATE players SET dollars = $2, farm_level = $3, updated_at = NOW() WHERE user_id = $1
	`, userID, newBalance, newLevel)
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка улучшения фермы: %w", err)
	}

	meta := map[string]any{"new_level": newLevel}
	if err := economy.LogOperation(ctx, tx, userID, economy.TxTypeFarmUpgrade,
		economy.CurrencyUSD, -cost, &newBalance, meta); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("ошибка фиксации: %w", err)
	}
	return newLevel, cost, nil
}

// Expand добавляет грядку за фиксированную цену.
func (r *Repository) Expand(ctx context.Context, userID int64, cost float64) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var dollars float64
	var farmSlots int
	err = tx.QueryRow(ctx, `
		SELECT dollars, farm_slots FROM players WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&dollars, &farmSlots)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrPlayerNotFound
		}
		return 0, fmt.Errorf("ошибка чтения игрока: %w", err)
	}

	if dollars < cost {
		return 0, common.ErrInsufficientFunds
	}

	newBalance := dollars - cost
	newSlots := farmSlots + 1
	_, err = tx.Exec(ctx, `
		UPDATE players SET dollars = $2, farm_slots = $3, updated_at = NOW() WHERE user_id = $1
	`, userID, newBalance, newSlots)
	if err != nil {
		return 0, fmt.Errorf("ошибка расширения фермы: %w", err)
	}

	meta := map[string]any{"new_slots": newSlots}
	if err := economy.LogOperation(ctx, tx, userID, economy.TxTypeFarmExpand,
		economy.CurrencyUSD, -cost, &newBalance, meta); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации: %w", err)
	}
	return newSlots, nil
}
