// Package players — leveling.go описывает кривую уровней.
// Опыт хранится "внутри уровня": при повышении порог вычитается,
// поэтому xp игрока всегда меньше порога следующего уровня.
package players

// levelXP — таблица порогов опыта для уровней 1..14.
// levelXP[lvl] — сколько опыта нужно, чтобы перейти с уровня lvl на lvl+1.
var levelXP = []int{0, 10, 50, 100, 200, 400, 700, 1000, 1500, 2000, 3000, 5000, 7500, 10000, 15000}

// XPForNext возвращает порог опыта для перехода с уровня lvl на следующий.
// За пределами таблицы кривая растёт линейно: +2000 за уровень.
func XPForNext(lvl int) int {
	if lvl < len(levelXP) {
		return levelXP[lvl]
	}
	return levelXP[len(levelXP)-1] + (lvl-(len(levelXP)-1))*2000
}

// ApplyXP применяет прирост опыта к паре (xp, lvl) и возвращает новое
// состояние. VIP получает удвоенный прирост. За один вызов возможно
// несколько повышений подряд — цикл крутится, пока опыта хватает.
func ApplyXP(xp, lvl, gain int, vip bool) (newXP, newLvl int, promoted bool) {
	if vip {
		gain *= 2
	}
	xp += gain
	for xp >= XPForNext(lvl) {
		xp -= XPForNext(lvl)
		lvl++
		promoted = true
	}
	return xp, lvl, promoted
}
