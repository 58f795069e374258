// Package economy — журнал всех денежных операций.
// models.go описывает структуру таблицы transactions.
package economy

import (
	"encoding/json"
	"time"
)

// Transaction — одна запись журнала операций.
// Журнал append-only: записи никогда не изменяются и не удаляются,
// это аудиторский след всей экономики.
type Transaction struct {
	ID           int64           `db:"id"`
	UserID       int64           `db:"user_id"`       // Чья операция
	Type         string          `db:"type"`          // Тип операции (work_income, purchase, ...)
	Currency     string          `db:"currency"`      // Валюта ('USD' или символ криптовалюты)
	Amount       float64         `db:"amount"`        // Дельта (положительная — начисление, отрицательная — списание)
	BalanceAfter *float64        `db:"balance_after"` // Баланс после операции (nil, если не фиксировался)
	Meta         json.RawMessage `db:"meta"`          // Структурированные детали операции
	CreatedAt    time.Time       `db:"created_at"`
}

// Типы операций журнала.
const (
	TxTypeWorkIncome    = "work_income"    // Доход от работы
	TxTypeFarmIncome    = "farm_income"    // Доход с фермы
	TxTypeFarmUpgrade   = "farm_upgrade"   // Улучшение фермы
	TxTypeFarmExpand    = "farm_expand"    // Расширение фермы
	TxTypePurchase      = "purchase"       // Покупка в магазине
	TxTypeReferralBonus = "referral_bonus" // Реферальный бонус
	TxTypeCryptoBuy     = "crypto_buy"     // Покупка криптовалюты
	TxTypeCryptoSell    = "crypto_sell"    // Продажа криптовалюты
	TxTypeAdminGive     = "admin_give"     // Выдача админом
	TxTypeAdminTake     = "admin_take"     // Изъятие админом
)

// CurrencyUSD — основная игровая валюта.
const CurrencyUSD = "USD"
