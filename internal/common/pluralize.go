// Package common — pluralize.go содержит русскую плюрализацию игровых слов.
package common

// pluralRu выбирает форму слова по правилам русского языка:
//   - n%10==1 И n%100!=11 → one (1, 21, 31, 101, ...)
//   - n%10 в [2,4] И n%100 НЕ в [12,14] → few (2, 3, 4, 22, ...)
//   - остальные случаи → many (0, 5-20, 25-30, ...)
func pluralRu(n int64, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	lastDigit := n % 10
	lastTwo := n % 100

	if lastDigit == 1 && lastTwo != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwo < 12 || lastTwo > 14) {
		return few
	}
	return many
}

// PluralizeMinutes возвращает правильную форму слова «минута».
//
// Примеры:
//
//	PluralizeMinutes(1)  → "минута"
//	PluralizeMinutes(3)  → "минуты"
//	PluralizeMinutes(5)  → "минут"
//	PluralizeMinutes(21) → "минута"
func PluralizeMinutes(n int64) string {
	return pluralRu(n, "минута", "минуты", "минут")
}

// PluralizeSeconds возвращает правильную форму слова «секунда».
func PluralizeSeconds(n int64) string {
	return pluralRu(n, "секунда", "секунды", "секунд")
}

// PluralizeSlots возвращает правильную форму слова «слот».
func PluralizeSlots(n int64) string {
	return pluralRu(n, "слот", "слота", "слотов")
}

// PluralizeReferrals возвращает правильную форму слова «реферал».
func PluralizeReferrals(n int64) string {
	return pluralRu(n, "реферал", "реферала", "рефералов")
}
