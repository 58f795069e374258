package common

import (
	"testing"
	"time"
)

func TestPluralizeMinutes(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "минута"},
		{2, "минуты"},
		{5, "минут"},
		{11, "минут"},
		{12, "минут"},
		{21, "минута"},
		{22, "минуты"},
		{111, "минут"},
		{0, "минут"},
		{-3, "минуты"},
	}
	for _, tc := range cases {
		if got := PluralizeMinutes(tc.n); got != tc.want {
			t.Errorf("PluralizeMinutes(%d) = %q, ожидали %q", tc.n, got, tc.want)
		}
	}
}

func TestPluralizeSlots(t *testing.T) {
	if got := PluralizeSlots(3); got != "слота" {
		t.Errorf("PluralizeSlots(3) = %q", got)
	}
	if got := PluralizeSlots(14); got != "слотов" {
		t.Errorf("PluralizeSlots(14) = %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(150.7); got != "150$" {
		t.Errorf("FormatMoney(150.7) = %q", got)
	}
	if got := FormatMoney(0); got != "0$" {
		t.Errorf("FormatMoney(0) = %q", got)
	}
}

func TestFormatCooldown(t *testing.T) {
	if got := FormatCooldown(5); got != "5 секунд" {
		t.Errorf("FormatCooldown(5) = %q", got)
	}
	if got := FormatCooldown(21); got != "21 секунда" {
		t.Errorf("FormatCooldown(21) = %q", got)
	}
	if got := FormatCooldown(-3); got != "0 секунд" {
		t.Errorf("отрицательный остаток должен обнуляться: %q", got)
	}
}

func TestGrowthPercent(t *testing.T) {
	planted := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	grow := 10 * time.Minute

	if p := GrowthPercent(planted, grow, planted); p != 0 {
		t.Errorf("в момент посадки прогресс %d, ожидали 0", p)
	}
	if p := GrowthPercent(planted, grow, planted.Add(5*time.Minute)); p != 50 {
		t.Errorf("на половине прогресс %d, ожидали 50", p)
	}
	if p := GrowthPercent(planted, grow, planted.Add(time.Hour)); p != 100 {
		t.Errorf("после созревания прогресс %d, ожидали 100", p)
	}
}
