package work

import (
	"math/rand"
	"testing"
	"time"
)

func TestJobByKey(t *testing.T) {
	j := JobByKey("farm")
	if j.BaseIncome != 12 || j.XPGain != 8 {
		t.Fatalf("ферма: получили (%d, %d), ожидали (12, 8)", j.BaseIncome, j.XPGain)
	}

	j = JobByKey("space")
	if j.BaseIncome != 25 || j.XPGain != 22 {
		t.Fatalf("космос: получили (%d, %d), ожидали (25, 22)", j.BaseIncome, j.XPGain)
	}

	// Незнакомый ключ — запасная профессия, а не ошибка
	j = JobByKey("unknown")
	if j.BaseIncome != 10 || j.XPGain != 5 {
		t.Fatalf("запасная профессия: получили (%d, %d), ожидали (10, 5)", j.BaseIncome, j.XPGain)
	}
}

func TestAllJobsCount(t *testing.T) {
	if n := len(AllJobs()); n != 10 {
		t.Fatalf("в каталоге %d профессий, ожидали 10", n)
	}
}

// Уровень 1, без VIP, ферма: floor((12 + 2 + U[0,3)) * 1) ∈ {14, 15, 16}.
func TestPayoutFarmLevel1Range(t *testing.T) {
	job := JobByKey("farm")
	seen := map[int64]bool{}
	for bonus := int64(0); bonus < 3; bonus++ {
		b := bonus
		earned := Payout(job, 1, 1.0, func(n int64) int64 {
			if n != 3 {
				t.Fatalf("intn вызван с %d, ожидали 3 (lvl*3)", n)
			}
			return b
		})
		if earned < 14 || earned > 16 {
			t.Errorf("заработок %d вне диапазона [14, 16]", earned)
		}
		seen[earned] = true
	}
	for _, want := range []int64{14, 15, 16} {
		if !seen[want] {
			t.Errorf("значение %d не достигается", want)
		}
	}
}

// VIP-множитель и income_mult перемножаются и применяются до floor.
func TestPayoutMultiplier(t *testing.T) {
	job := JobByKey("farm")
	zero := func(int64) int64 { return 0 }

	// (12 + 2 + 0) * 2 = 28
	if got := Payout(job, 1, 2.0, zero); got != 28 {
		t.Errorf("VIP: получили %d, ожидали 28", got)
	}
	// (12 + 2 + 0) * 3 (VIP * престиж 1.5) = 42
	if got := Payout(job, 1, 3.0, zero); got != 42 {
		t.Errorf("VIP+престиж: получили %d, ожидали 42", got)
	}
	// Дробный множитель отбрасывается floor: (14) * 1.5 = 21
	if got := Payout(job, 1, 1.5, zero); got != 21 {
		t.Errorf("floor: получили %d, ожидали 21", got)
	}
}

func TestPayoutNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, j := range AllJobs() {
		for lvl := 1; lvl <= 30; lvl++ {
			if got := Payout(j, lvl, 1.0, rng.Int63n); got < 0 {
				t.Fatalf("отрицательный заработок %d (%s, lvl %d)", got, j.Name, lvl)
			}
		}
	}
}

func TestCooldownLeft(t *testing.T) {
	base := 8 * time.Second
	last := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	if can, left := CooldownLeft(last, last.Add(3*time.Second), base, false); can || left != 6 {
		t.Errorf("через 3 сек: can=%v left=%d, ожидали false/6", can, left)
	}
	if can, left := CooldownLeft(last, last.Add(8*time.Second), base, false); !can || left != 0 {
		t.Errorf("ровно на границе: can=%v left=%d, ожидали true/0", can, left)
	}
	// VIP ждёт половину базового кулдауна
	if can, _ := CooldownLeft(last, last.Add(4*time.Second), base, true); !can {
		t.Error("VIP через 4 сек уже может работать")
	}
	if can, left := CooldownLeft(last, last.Add(1*time.Second), base, true); can || left != 4 {
		t.Errorf("VIP через 1 сек: can=%v left=%d, ожидали false/4", can, left)
	}
	// Обе метки из одного источника, поэтому "прошлое" не ломает проверку
	if can, _ := CooldownLeft(last, last, base, false); can {
		t.Error("в момент последней работы кулдаун активен")
	}
}

func TestRollStar(t *testing.T) {
	if !RollStar(func(n int64) int64 {
		if n != 50 {
			t.Fatalf("шанс звезды должен быть 1 к 50, intn вызван с %d", n)
		}
		return 0
	}) {
		t.Error("intn=0 должен давать звезду")
	}
	if RollStar(func(int64) int64 { return 1 }) {
		t.Error("intn=1 не должен давать звезду")
	}
}
