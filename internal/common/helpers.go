// Package common содержит общие утилиты, используемые во всём проекте:
// форматирование денег, времени и прогресса роста.
package common

import (
	"fmt"
	"math"
	"time"
)

// FormatMoney форматирует сумму в долларах для показа игроку.
// Баланс хранится как вещественное число, но игроку всегда
// показываем целую часть. Пример: FormatMoney(150.7) → "150$".
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%d$", int64(math.Floor(amount)))
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется для отображения дат транзакций.
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatCooldown форматирует остаток кулдауна для сообщения игроку.
// Пример: FormatCooldown(5) → "5 секунд".
func FormatCooldown(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d %s", seconds, PluralizeSeconds(seconds))
}

// GrowthPercent возвращает прогресс роста растения в процентах (0..100).
// Рост вычисляется лениво из времени посадки, никакого фонового таймера нет.
func GrowthPercent(plantedAt time.Time, growTime time.Duration, now time.Time) int {
	if growTime <= 0 {
		return 100
	}
	elapsed := now.Sub(plantedAt)
	if elapsed <= 0 {
		return 0
	}
	p := int(elapsed * 100 / growTime)
	if p > 100 {
		p = 100
	}
	return p
}
