// Package crypto реализует игровую криптобиржу: покупка и продажа
// монет за доллары по плавающему курсу. Курс дрейфует по расписанию
// случайным блужданием, истории свечей нет.
package crypto

import (
	"math"
	"time"
)

// Crypto — одна монета биржи.
type Crypto struct {
	Symbol    string    `db:"symbol"`
	Name      string    `db:"name"`
	Price     float64   `db:"price"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Holding — позиция игрока по монете.
type Holding struct {
	UserID int64   `db:"user_id"`
	Symbol string  `db:"symbol"`
	Amount float64 `db:"amount"`
}

// driftRange — максимальное относительное изменение курса за один тик.
const driftRange = 0.05

// minPrice — нижняя граница курса, чтобы монета не обнулилась навсегда.
const minPrice = 0.0001

// DriftPrice возвращает новый курс после одного тика случайного блуждания:
// текущая цена умножается на равномерный множитель из [0.95, 1.05).
// randFloat должен возвращать равномерное значение из [0, 1).
func DriftPrice(price float64, randFloat func() float64) float64 {
	next := price * (1 + (randFloat()*2-1)*driftRange)
	return math.Max(next, minPrice)
}
