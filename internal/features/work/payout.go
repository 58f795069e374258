// Package work — payout.go содержит чистую формулу расчёта заработка.
// Случайность передаётся снаружи, чтобы тесты могли подставить
// детерминированную последовательность и проверить точные границы.
package work

import (
	"math"
	"time"
)

// Payout вычисляет заработок за одну работу:
//
//	floor((base + lvl*2 + U[0, lvl*3)) * multiplier)
//
// где U — равномерное целое, multiplier = (2 для VIP) * income_mult.
// intn(n) должен возвращать равномерное значение из [0, n).
func Payout(job Job, lvl int, multiplier float64, intn func(int64) int64) int64 {
	var bonus int64
	if n := int64(lvl * 3); n > 0 {
		bonus = intn(n)
	}
	raw := float64(job.BaseIncome+lvl*2) + float64(bonus)
	return int64(math.Floor(raw * multiplier))
}

// CooldownLeft проверяет кулдаун по двум меткам времени одних часов.
// Обе метки должны приходить из БД (last_work и NOW() одного запроса),
// иначе расхождение часов приложения и Postgres искажает короткие кулдауны.
// Возвращает (можно ли работать, секунд до конца паузы). VIP ждёт вдвое меньше.
func CooldownLeft(lastWork, now time.Time, base time.Duration, vip bool) (bool, int64) {
	cooldown := base
	if vip {
		cooldown /= 2
	}
	elapsed := now.Sub(lastWork)
	if elapsed >= cooldown {
		return true, 0
	}
	return false, int64((cooldown - elapsed).Seconds()) + 1
}

// starChance — шанс пометки "звёздной" награды: 1 к 50.
const starChance = 50

// RollStar возвращает true с вероятностью 1/50.
// Сама по себе пометка ничего не начисляет — доставку награды
// выполняет внешняя система.
func RollStar(intn func(int64) int64) bool {
	return intn(starChance) == 0
}
