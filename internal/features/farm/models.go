// Package farm — models.go описывает структуру таблицы farm_plots
// и чистые формулы доходов/стоимостей фермы.
package farm

import (
	"math"
	"time"
)

// Plot — одна грядка. Жизненный цикл: пусто → растёт → готово →
// собрано (терминальное состояние, строка остаётся для истории).
// Переход "растёт → готово" нигде не хранится: он вычисляется
// лениво из времени посадки при каждом чтении.
type Plot struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Slot      int       `db:"slot"`      // Номер грядки (с 1)
	SeedType  string    `db:"seed_type"` // Имя семени из каталога
	PlantedAt time.Time `db:"planted_at"`
	Harvested bool      `db:"harvested"`
}

// Ready сообщает, созрело ли растение к моменту now.
func (p *Plot) Ready(now time.Time) bool {
	return now.Sub(p.PlantedAt) >= SeedByName(p.SeedType).GrowTime()
}

// MinutesLeft возвращает, сколько целых минут осталось до созревания.
func (p *Plot) MinutesLeft(now time.Time) int64 {
	remaining := SeedByName(p.SeedType).GrowTime() - now.Sub(p.PlantedAt)
	if remaining <= 0 {
		return 0
	}
	return int64(remaining / time.Minute)
}

// HarvestIncome вычисляет доход с грядки:
//
//	floor(базовый доход * множитель семени * уровень фермы * (1 + U[0,1)))
//
// Случайный множитель непрерывный, из [1, 2). randFloat должен
// возвращать равномерное значение из [0, 1).
func HarvestIncome(baseIncome, seedMult float64, farmLevel int, randFloat func() float64) int64 {
	return int64(math.Floor(baseIncome * seedMult * float64(farmLevel) * (1 + randFloat())))
}

// UpgradeCost вычисляет стоимость улучшения фермы с уровня farmLevel:
//
//	floor(базовая стоимость * множитель^(уровень-1))
func UpgradeCost(baseCost, costMult float64, farmLevel int) float64 {
	return math.Floor(baseCost * math.Pow(costMult, float64(farmLevel-1)))
}
