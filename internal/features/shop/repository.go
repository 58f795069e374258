// Package shop — repository.go выполняет операции с таблицами items
// и inventory. Покупка — единственная операция, обязанная быть атомарной
// от начала до конца: чтение баланса, списание и зачисление в инвентарь
// выполняются в одной транзакции под FOR UPDATE.
package shop

import (
	"context"
	"errors"
	"fmt"

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

// SeedCatalog заполняет каталог при первом запуске. Если в таблице
// уже есть товары — ничего не делает.
func (r *Repository) SeedCatalog(ctx context.Context) error {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return fmt.Errorf("ошибка проверки каталога: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, it := range initialCatalog {
		_, err := tx.Exec(ctx, `
			INSERT INTO items (sku, name, category, effect, price, rarity)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (sku) DO NOTHING
		`, it.SKU, it.Name, it.Category, []byte(it.Effect), it.Price, it.Rarity)
		if err != nil {
			return fmt.Errorf("ошибка посева товара %s: %w", it.SKU, err)
		}
	}
	return tx.Commit(ctx)
}

// ListItems возвращает товары, отсортированные по убыванию цены.
// category == "" означает весь каталог.
func (r *Repository) ListItems(ctx context.Context, category string) ([]*Item, error) {
	query := `SELECT id, sku, name, category, effect, price, rarity FROM items ORDER BY price DESC`
	args := []any{}
	if category != "" {
		query = `SELECT id, sku, name, category, effect, price, rarity FROM items WHERE category = $1 ORDER BY price DESC`
		args = append(args, category)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога: %w", err)
	}
	defer rows.Close()

	var out []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.Category, &it.Effect, &it.Price, &it.Rarity); err != nil {
			return nil, fmt.Errorf("ошибка сканирования товара: %w", err)
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// Buy атомарно покупает предмет: проверяет баланс, списывает цену,
// увеличивает количество в инвентаре и пишет операцию в журнал.
// Возвращает итоговую цену.
func (r *Repository) Buy(ctx context.Context, userID, itemID int64, priceCoef float64) (*Item, float64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var it Item
	err = tx.QueryRow(ctx,
		`SELECT id, sku, name, category, effect, price, rarity FROM items WHERE id = $1`, itemID,
	).Scan(&it.ID, &it.SKU, &it.Name, &it.Category, &it.Effect, &it.Price, &it.Rarity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, common.ErrItemNotFound
		}
		return nil, 0, fmt.Errorf("ошибка чтения товара: %w", err)
	}

	var dollars float64
	var vip bool
	err = tx.QueryRow(ctx,
		`SELECT dollars, vip FROM players WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&dollars, &vip)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, common.ErrPlayerNotFound
		}
		return nil, 0, fmt.Errorf("ошибка чтения игрока: %w", err)
	}

	price := FinalPrice(it.Price, vip, priceCoef)
	if dollars < price {
		return nil, price, common.ErrInsufficientFunds
	}

	newBalance := dollars - price
	_, err = tx.Exec(ctx,
		`UPDATE players SET dollars = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, newBalance)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка списания: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO inventory (user_id, item_id, qty) VALUES ($1, $2, 1)
		ON CONFLICT (user_id, item_id) DO UPDATE SET qty = inventory.qty + 1
	`, userID, itemID)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка зачисления в инвентарь: %w", err)
	}

	meta := map[string]any{
		"item_id":   it.ID,
		"item_name": it.Name,
		"rarity":    it.Rarity,
	}
	if err := economy.LogOperation(ctx, tx, userID, economy.TxTypePurchase,
		economy.CurrencyUSD, -price, &newBalance, meta); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("ошибка фиксации: %w", err)
	}
	return &it, price, nil
}

// GetInventory возвращает инвентарь игрока с данными товаров.
// Нулевые количества не показываем.
func (r *Repository) GetInventory(ctx context.Context, userID int64) ([]*InventoryEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT inv.user_id, inv.item_id, inv.qty,
		       i.id, i.sku, i.name, i.category, i.effect, i.price, i.rarity
		FROM inventory inv
		JOIN items i ON i.id = inv.item_id
		WHERE inv.user_id = $1 AND inv.qty > 0
		ORDER BY i.price DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения инвентаря: %w", err)
	}
	defer rows.Close()

	var out []*InventoryEntry
	for rows.Next() {
		var e InventoryEntry
		var it Item
		if err := rows.Scan(
			&e.UserID, &e.ItemID, &e.Qty,
			&it.ID, &it.SKU, &it.Name, &it.Category, &it.Effect, &it.Price, &it.Rarity,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования инвентаря: %w", err)
		}
		e.Item = &it
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}
