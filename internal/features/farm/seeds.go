// Package farm реализует ферму: посадка, ленивый рост, сбор урожая,
// улучшение и расширение. seeds.go описывает каталог семян —
// неизменяемую таблицу свойств, загружаемую один раз.
package farm

import "time"

// Seed — свойства одного вида семян. Ферма использует только
// множитель и время роста; цена и редкость живут в каталоге магазина.
type Seed struct {
	Name       string  // Отображаемое имя (им же помечаются грядки)
	Price      float64 // Цена приобретения
	Multiplier float64 // Множитель дохода
	GrowMin    int     // Время роста в минутах
	Rarity     string  // Редкость
}

// seeds — каталог из девяти видов семян.
var seeds = []Seed{
	{Name: "Пшеница", Price: 50, Multiplier: 1.0, GrowMin: 5, Rarity: "обычное"},
	{Name: "Морковь", Price: 80, Multiplier: 1.2, GrowMin: 7, Rarity: "обычное"},
	{Name: "Помидор", Price: 120, Multiplier: 1.5, GrowMin: 10, Rarity: "обычное"},
	{Name: "Золотое семя", Price: 5000, Multiplier: 5.0, GrowMin: 60, Rarity: "золотое"},
	{Name: "Серебрянное семя", Price: 3000, Multiplier: 3.5, GrowMin: 45, Rarity: "серебрянное"},
	{Name: "Изумрудное семя", Price: 8000, Multiplier: 8.0, GrowMin: 90, Rarity: "изумрудное"},
	{Name: "Бриллиантовое семя", Price: 15000, Multiplier: 12.0, GrowMin: 120, Rarity: "бриллиантовое"},
	{Name: "Небесное семя", Price: 20000, Multiplier: 15.0, GrowMin: 150, Rarity: "небесное"},
	{Name: "Галактическое семя", Price: 50000, Multiplier: 25.0, GrowMin: 300, Rarity: "галактическое"},
}

// SeedByName возвращает семя по имени. Незнакомое имя — не ошибка:
// возвращается пшеница (множитель 1.0, рост 5 минут).
func SeedByName(name string) Seed {
	for _, s := range seeds {
		if s.Name == name {
			return s
		}
	}
	return seeds[0]
}

// GrowTime возвращает время роста семени как Duration.
func (s Seed) GrowTime() time.Duration {
	return time.Duration(s.GrowMin) * time.Minute
}

// AllSeeds возвращает копию каталога.
func AllSeeds() []Seed {
	out := make([]Seed, len(seeds))
	copy(out, seeds)
	return out
}
