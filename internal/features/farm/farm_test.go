package farm

import (
	"testing"
	"time"
)

func TestUpgradeCost(t *testing.T) {
	cases := []struct {
		level int
		want  float64
	}{
		{1, 5000},  // 5000 * 1.5^0
		{2, 7500},  // 5000 * 1.5^1
		{3, 11250}, // 5000 * 1.5^2
		{4, 16875},
	}
	for _, tc := range cases {
		if got := UpgradeCost(5000, 1.5, tc.level); got != tc.want {
			t.Errorf("UpgradeCost(уровень %d) = %v, ожидали %v", tc.level, got, tc.want)
		}
	}
}

func TestHarvestIncome(t *testing.T) {
	// randFloat = 0 даёт минимальный доход, ближе к 1 — почти двойной.
	if got := HarvestIncome(15, 1.0, 1, func() float64 { return 0 }); got != 15 {
		t.Errorf("минимальный доход = %d, ожидали 15", got)
	}
	if got := HarvestIncome(15, 1.0, 1, func() float64 { return 0.999 }); got != 29 {
		t.Errorf("почти максимальный доход = %d, ожидали 29", got)
	}
	// Множитель семени и уровень фермы перемножаются.
	if got := HarvestIncome(15, 5.0, 3, func() float64 { return 0 }); got != 225 {
		t.Errorf("золотое семя на ферме 3 уровня = %d, ожидали 225", got)
	}
	// floor дробного результата: 15 * 1.2 * 1 * 1.1 = 19.8 → 19.
	if got := HarvestIncome(15, 1.2, 1, func() float64 { return 0.1 }); got != 19 {
		t.Errorf("дробный доход = %d, ожидали 19", got)
	}
}

func TestPlotReady(t *testing.T) {
	now := time.Now()
	p := &Plot{SeedType: "Пшеница", PlantedAt: now}

	if p.Ready(now) {
		t.Error("только что посаженная пшеница не может быть готова")
	}
	if p.Ready(now.Add(4 * time.Minute)) {
		t.Error("пшеница растёт 5 минут, через 4 ещё не готова")
	}
	if !p.Ready(now.Add(5 * time.Minute)) {
		t.Error("через 5 минут пшеница должна быть готова")
	}
}

func TestPlotMinutesLeft(t *testing.T) {
	now := time.Now()
	p := &Plot{SeedType: "Золотое семя", PlantedAt: now}

	if got := p.MinutesLeft(now); got != 60 {
		t.Errorf("сразу после посадки осталось %d мин, ожидали 60", got)
	}
	if got := p.MinutesLeft(now.Add(45 * time.Minute)); got != 15 {
		t.Errorf("через 45 минут осталось %d мин, ожидали 15", got)
	}
	if got := p.MinutesLeft(now.Add(2 * time.Hour)); got != 0 {
		t.Errorf("после созревания осталось %d мин, ожидали 0", got)
	}
}

func TestSeedByNameFallback(t *testing.T) {
	s := SeedByName("Неизвестное семя")
	if s.Name != "Пшеница" {
		t.Errorf("незнакомое имя дало %q, ожидали пшеницу", s.Name)
	}
	if s.GrowTime() != 5*time.Minute {
		t.Errorf("время роста по умолчанию %v, ожидали 5 минут", s.GrowTime())
	}

	g := SeedByName("Галактическое семя")
	if g.Multiplier != 25.0 || g.GrowMin != 300 {
		t.Errorf("галактическое семя: множитель %v, рост %d", g.Multiplier, g.GrowMin)
	}
}

func TestAllSeedsIsCopy(t *testing.T) {
	all := AllSeeds()
	if len(all) != 9 {
		t.Fatalf("в каталоге %d семян, ожидали 9", len(all))
	}
	all[0].Multiplier = 999
	if SeedByName("Пшеница").Multiplier != 1.0 {
		t.Error("изменение копии каталога не должно влиять на оригинал")
	}
}
