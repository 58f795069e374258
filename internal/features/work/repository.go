// Package work — repository.go выполняет рабочий цикл в одной транзакции БД.
// Обновление кулдауна, начисление денег, опыт и запись в журнал происходят
// под блокировкой строки игрока, поэтому параллельная двойная отправка
// одной и той же работы невозможна.
package work

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"levelbot.ru/game-bot/internal/common"
	"levelbot.ru/game-bot/internal/features/economy"
	"levelbot.ru/game-bot/internal/features/players"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Result — итог одной выполненной работы.
type Result struct {
	Earned   int64 // Заработано (после floor)
	XPGain   int   // Начислено опыта (до VIP-удвоения)
	Promoted bool  // Было ли повышение уровня
	Level    int   // Итоговый уровень
	Balance  float64
}

// Cooldown возвращает (можно ли работать, сколько секунд осталось).
// Проверка только информационная: атомарную защиту даёт Execute.
func (r *Repository) Cooldown(ctx context.Context, userID int64, base time.Duration) (bool, int64, error) {
	var lastWork, dbNow time.Time
	var vip bool
	err := r.db.QueryRow(ctx,
		`SELECT last_work, vip, NOW() FROM players WHERE user_id = $1`, userID,
	).Scan(&lastWork, &vip, &dbNow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, common.ErrPlayerNotFound
		}
		return false, 0, fmt.Errorf("ошибка чтения кулдауна: %w", err)
	}

	can, remaining := CooldownLeft(lastWork, dbNow, base, vip)
	return can, remaining, nil
}

// Execute выполняет работу целиком в одной транзакции:
// кулдаун проверяется и обновляется под FOR UPDATE, деньги и опыт
// начисляются, операция пишется в журнал. При активном кулдауне
// возвращается common.ErrCooldownActive и ничего не меняется.
func (r *Repository) Execute(ctx context.Context, userID int64, job Job, baseCooldown time.Duration, intn func(int64) int64) (*Result, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var dollars, incomeMult float64
	var lvl, xp int
	var lastWork, dbNow time.Time
	var vip bool
	err = tx.QueryRow(ctx, `
		SELECT dollars, lvl, xp, last_work, vip, income_mult, NOW()
		FROM players WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&dollars, &lvl, &xp, &lastWork, &vip, &incomeMult, &dbNow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("ошибка чтения игрока: %w", err)
	}

	// last_work пишется NOW() ниже, поэтому и сравниваем с NOW() той же БД:
	// часы приложения в проверке не участвуют.
	if can, _ := CooldownLeft(lastWork, dbNow, baseCooldown, vip); !can {
		return nil, common.ErrCooldownActive
	}

	if incomeMult == 0 {
		incomeMult = 1.0
	}
	multiplier := incomeMult
	if vip {
		multiplier *= 2
	}

	earned := Payout(job, lvl, multiplier, intn)
	// earned здесь всегда неотрицателен, но floor по нулю сохраняем
	newBalance := dollars + float64(earned)
	if newBalance < 0 {
		newBalance = 0
	}

	newXP, newLvl, promoted := players.ApplyXP(xp, lvl, job.XPGain, vip)

	_, err = tx.Exec(ctx, `
		UPDATE players
		SET dollars = $2, up = up + 1, last_work = NOW(),
		    xp = $3, lvl = $4, updated_at = NOW()
		WHERE user_id = $1
	`, userID, newBalance, newXP, newLvl)
	if err != nil {
		return nil, fmt.Errorf("ошибка начисления заработка: %w", err)
	}

	meta := map[string]any{"job": job.Name}
	if err := economy.LogOperation(ctx, tx, userID, economy.TxTypeWorkIncome,
		economy.CurrencyUSD, float64(earned), &newBalance, meta); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации: %w", err)
	}

	return &Result{
		Earned:   earned,
		XPGain:   job.XPGain,
		Promoted: promoted,
		Level:    newLvl,
		Balance:  newBalance,
	}, nil
}
