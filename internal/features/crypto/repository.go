// Package crypto — repository.go выполняет операции с таблицами cryptos
// и crypto_holds. Сделки атомарны: списание долларов, изменение позиции
// и запись в журнал происходят в одной транзакции БД по курсу,
// прочитанному внутри неё же.
package crypto

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

// initialCryptos — стартовый набор монет биржи.
var initialCryptos = []Crypto{
	{Symbol: "BTC", Name: "Bitcoin", Price: 30000},
	{Symbol: "ETH", Name: "Ethereum", Price: 2000},
	{Symbol: "DOGE", Name: "Dogecoin", Price: 0.08},
	{Symbol: "ADA", Name: "Cardano", Price: 0.5},
	{Symbol: "SOL", Name: "Solana", Price: 100},
	{Symbol: "DOT", Name: "Polkadot", Price: 5},
}

// SeedCryptos добавляет стартовые монеты, если их ещё нет.
// Повторный запуск не трогает текущие курсы.
func (r *Repository) SeedCryptos(ctx context.Context) error {
	for _, c := range initialCryptos {
		_, err := r.db.Exec(ctx, `
			INSERT INTO cryptos (symbol, name, price, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (symbol) DO NOTHING
		`, c.Symbol, c.Name, c.Price)
		if err != nil {
			return fmt.Errorf("ошибка заполнения биржи: %w", err)
		}
	}
	return nil
}

// ListCryptos возвращает все монеты по алфавиту символа.
func (r *Repository) ListCryptos(ctx context.Context) ([]*Crypto, error) {
	rows, err := r.db.Query(ctx, `
		SELECT symbol, name, price, updated_at FROM cryptos ORDER BY symbol
	`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения биржи: %w", err)
	}
	defer rows.Close()

	var out []*Crypto
	for rows.Next() {
		var c Crypto
		if err := rows.Scan(&c.Symbol, &c.Name, &c.Price, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования монеты: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// GetCrypto возвращает монету по символу.
func (r *Repository) GetCrypto(ctx context.Context, symbol string) (*Crypto, error) {
	var c Crypto
	err := r.db.QueryRow(ctx, `
		SELECT symbol, name, price, updated_at FROM cryptos WHERE symbol = $1
	`, symbol).Scan(&c.Symbol, &c.Name, &c.Price, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrCryptoNotFound
		}
		return nil, fmt.Errorf("ошибка чтения монеты: %w", err)
	}
	return &c, nil
}

// DriftAllPrices сдвигает курс каждой монеты на один тик случайного
// блуждания. Вызывается планировщиком.
func (r *Repository) DriftAllPrices(ctx context.Context, randFloat func() float64) error {
	cryptos, err := r.ListCryptos(ctx)
	if err != nil {
		return err
	}
	for _, c := range cryptos {
		next := DriftPrice(c.Price, randFloat)
		_, err := r.db.Exec(ctx, `
			UPDATE cryptos SET price = $2, updated_at = NOW() WHERE symbol = $1
		`, c.Symbol, next)
		if err != nil {
			return fmt.Errorf("ошибка обновления курса %s: %w", c.Symbol, err)
		}
	}
	return nil
}

// GetHoldings возвращает ненулевые позиции игрока.
func (r *Repository) GetHoldings(ctx context.Context, userID int64) ([]*Holding, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, symbol, amount FROM crypto_holds
		WHERE user_id = $1 AND amount > 0
		ORDER BY symbol
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения портфеля: %w", err)
	}
	defer rows.Close()

	var out []*Holding
	for rows.Next() {
		var h Holding
		if err := rows.Scan(&h.UserID, &h.Symbol, &h.Amount); err != nil {
			return nil, fmt.Errorf("ошибка сканирования позиции: %w", err)
		}
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения строк: %w", err)
	}
	return out, nil
}

// Buy покупает amount монет по текущему курсу. Одна транзакция:
// курс, блокировка строки игрока, проверка денег, списание, позиция, журнал.
func (r *Repository) Buy(ctx context.Context, userID int64, symbol string, amount float64) (float64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var price float64
	err = tx.QueryRow(ctx, `SELECT price FROM cryptos WHERE symbol = $1`, symbol).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrCryptoNotFound
		}
		return 0, fmt.Errorf("ошибка чтения курса: %w", err)
	}

	cost := price * amount

	var dollars float64
	err = tx.QueryRow(ctx, `
		SELECT dollars FROM players WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(&dollars)
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
	_, err = tx.Exec(ctx, `
		UPDATE players SET dollars = $2, updated_at = NOW() WHERE user_id = $1
	`, userID, newBalance)
	if err != nil {
		return 0, fmt.Errorf("ошибка списания: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO crypto_holds (user_id, symbol, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, symbol) DO UPDATE SET amount = crypto_holds.amount + $3
	`, userID, symbol, amount)
	if err != nil {
		return 0, fmt.Errorf("ошибка обновления позиции: %w", err)
	}

	meta := map[string]any{"symbol": symbol, "amount": amount, "price": price}
	if err := economy.LogOperation(ctx, tx, userID, economy.TxTypeCryptoBuy,
		economy.CurrencyUSD, -cost, &newBalance, meta); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации: %w", err)
	}
	return cost, nil
}

// Sell продаёт amount монет по текущему курсу. Позиция блокируется
// FOR UPDATE, продажа сверх позиции отклоняется.
func (r *Repository) Sell(ctx context.Context, userID int64, symbol string, amount float64) (float64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var price float64
	err = tx.QueryRow(ctx, `SELECT price FROM cryptos WHERE symbol = $1`, symbol).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrCryptoNotFound
		}
		return 0, fmt.Errorf("ошибка чтения курса: %w", err)
	}

	var held float64
	err = tx.QueryRow(ctx, `
		SELECT amount FROM crypto_holds
		WHERE user_id = $1 AND symbol = $2 FOR UPDATE
	`, userID, symbol).Scan(&held)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrInsufficientHoldings
		}
		return 0, fmt.Errorf("ошибка чтения позиции: %w", err)
	}
	if held < amount {
		return 0, common.ErrInsufficientHoldings
	}

	_, err = tx.Exec(ctx, `
		UPDATE crypto_holds SET amount = amount - $3
		WHERE user_id = $1 AND symbol = $2
	`, userID, symbol, amount)
	if err != nil {
		return 0, fmt.Errorf("ошибка изменения позиции: %w", err)
	}

	proceeds := price * amount
	var newBalance float64
	err = tx.QueryRow(ctx, `
		UPDATE players SET dollars = dollars + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING dollars
	`, userID, proceeds).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrPlayerNotFound
		}
		return 0, fmt.Errorf("ошибка начисления: %w", err)
	}

	meta := map[string]any{"symbol": symbol, "amount": amount, "price": price}
	if err := economy.LogOperation(ctx, tx, userID, economy.TxTypeCryptoSell,
		economy.CurrencyUSD, proceeds, &newBalance, meta); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации: %w", err)
	}
	return proceeds, nil
}
