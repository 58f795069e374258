package players

import "testing"

func TestXPForNextTable(t *testing.T) {
	cases := []struct {
		lvl  int
		want int
	}{
		{1, 10},
		{2, 50},
		{5, 400},
		{14, 15000},
		// за пределами таблицы — линейный рост +2000 за уровень
		{15, 17000},
		{16, 19000},
		{20, 27000},
	}
	for _, tc := range cases {
		if got := XPForNext(tc.lvl); got != tc.want {
			t.Errorf("XPForNext(%d) = %d, ожидали %d", tc.lvl, got, tc.want)
		}
	}
}

func TestApplyXPSingleLevelUp(t *testing.T) {
	xp, lvl, promoted := ApplyXP(0, 1, 10, false)
	if !promoted || lvl != 2 || xp != 0 {
		t.Fatalf("получили xp=%d lvl=%d promoted=%v", xp, lvl, promoted)
	}
}

func TestApplyXPMultipleLevelUps(t *testing.T) {
	// 10 (1→2) + 50 (2→3) + 100 (3→4) = 160; остаток 40
	xp, lvl, promoted := ApplyXP(0, 1, 200, false)
	if !promoted || lvl != 4 || xp != 40 {
		t.Fatalf("получили xp=%d lvl=%d promoted=%v, ожидали xp=40 lvl=4", xp, lvl, promoted)
	}
}

func TestApplyXPVIPDoubles(t *testing.T) {
	xp, lvl, promoted := ApplyXP(0, 1, 5, true)
	if !promoted || lvl != 2 || xp != 0 {
		t.Fatalf("VIP-удвоение не сработало: xp=%d lvl=%d promoted=%v", xp, lvl, promoted)
	}
}

func TestApplyXPNoLevelUp(t *testing.T) {
	xp, lvl, promoted := ApplyXP(3, 1, 4, false)
	if promoted || lvl != 1 || xp != 7 {
		t.Fatalf("получили xp=%d lvl=%d promoted=%v", xp, lvl, promoted)
	}
}

// Уровень не убывает, а опыт после вызова всегда меньше порога следующего
// уровня — при любой последовательности начислений.
func TestApplyXPInvariants(t *testing.T) {
	xp, lvl := 0, 1
	gains := []int{1, 9, 40, 100, 3, 777, 15000, 2000, 1, 50000}
	for _, g := range gains {
		prevLvl := lvl
		var promoted bool
		xp, lvl, promoted = ApplyXP(xp, lvl, g, false)
		if lvl < prevLvl {
			t.Fatalf("уровень уменьшился: %d → %d", prevLvl, lvl)
		}
		if promoted && lvl == prevLvl {
			t.Fatal("promoted=true без роста уровня")
		}
		if xp >= XPForNext(lvl) {
			t.Fatalf("после начисления xp=%d >= порога %d (lvl=%d)", xp, XPForNext(lvl), lvl)
		}
	}
}
