// Package economy — repository.go выполняет операции с журналом transactions
// и балансом игроков. Все денежные операции выполняются в транзакциях БД
// с блокировкой строки игрока (FOR UPDATE) для целостности данных.
package economy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"levelbot.ru/game-bot/internal/common"
)

// Repository предоставляет методы для работы с журналом и балансами.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий экономики.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// LogOperation добавляет запись в журнал внутри уже открытой транзакции.
// Экспортируется, чтобы репозитории других модулей (магазин, ферма, работа)
// могли писать в журнал атомарно со своими изменениями.
func LogOperation(ctx context.Context, tx pgx.Tx, userID int64, txType, currency string, amount float64, balanceAfter *float64, meta any) error {
	var metaJSON []byte
	if meta != nil {
		var err error
		metaJSON, err = json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("ошибка сериализации meta: %w", err)
		}
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO transactions (user_id, type, currency, amount, balance_after, meta)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, txType, currency, amount, balanceAfter, metaJSON)
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал: %w", err)
	}
	return nil
}

// Credit начисляет деньги игроку и пишет операцию в журнал.
// Атомарно: либо и баланс, и журнал, либо ничего.
func (r *Repository) Credit(ctx context.Context, userID int64, amount float64, txType string, meta any) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var balanceAfter float64
	err = tx.QueryRow(ctx, `
		UPDATE players
		SET dollars = dollars + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING dollars
	`, userID, amount).Scan(&balanceAfter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrPlayerNotFound
		}
		return fmt.Errorf("ошибка начисления: %w", err)
	}

	if err := LogOperation(ctx, tx, userID, txType, CurrencyUSD, amount, &balanceAfter, meta); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Debit списывает деньги со счёта игрока и пишет операцию в журнал.
// Строка игрока блокируется FOR UPDATE; списание отклоняется,
// если денег не хватает — баланс никогда не уходит в минус.
func (r *Repository) Debit(ctx context.Context, userID int64, amount float64, txType string, meta any) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance float64
	err = tx.QueryRow(ctx, `
		SELECT dollars FROM players WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrPlayerNotFound
		}
		return fmt.Errorf("ошибка получения баланса: %w", err)
	}

	if balance < amount {
		return common.ErrInsufficientFunds
	}

	balanceAfter := balance - amount
	_, err = tx.Exec(ctx, `
		UPDATE players SET dollars = $2, updated_at = NOW() WHERE user_id = $1
	`, userID, balanceAfter)
	if err != nil {
		return fmt.Errorf("ошибка списания: %w", err)
	}

	if err := LogOperation(ctx, tx, userID, txType, CurrencyUSD, -amount, &balanceAfter, meta); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetTransactions возвращает последние N операций игрока.
func (r *Repository) GetTransactions(ctx context.Context, userID int64, limit int) ([]*Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, type, currency, amount, balance_after, meta, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения транзакций: %w", err)
	}
	defer rows.Close()

	var out []*Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Type, &t.Currency,
			&t.Amount, &t.BalanceAfter, &t.Meta, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования транзакции: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}
