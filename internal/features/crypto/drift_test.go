package crypto

import (
	"math/rand"
	"testing"
)

func TestDriftPriceBounds(t *testing.T) {
	// randFloat = 0.5 даёт множитель ровно 1.0, курс не меняется.
	if got := DriftPrice(100, func() float64 { return 0.5 }); got != 100 {
		t.Errorf("нейтральный тик изменил курс: %v", got)
	}
	// randFloat = 0 даёт минимальный множитель 0.95.
	if got := DriftPrice(100, func() float64 { return 0 }); got != 95 {
		t.Errorf("минимальный тик дал %v, ожидали 95", got)
	}
	// randFloat близко к 1 даёт множитель близко к 1.05.
	got := DriftPrice(100, func() float64 { return 0.9999999 })
	if got <= 104.9 || got >= 105 {
		t.Errorf("максимальный тик дал %v, ожидали чуть меньше 105", got)
	}
}

func TestDriftPriceNeverBelowFloor(t *testing.T) {
	price := 0.0002
	for i := 0; i < 200; i++ {
		price = DriftPrice(price, func() float64 { return 0 })
	}
	if price < minPrice {
		t.Errorf("курс упал ниже пола: %v", price)
	}
}

func TestDriftPriceStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	price := 30000.0
	for i := 0; i < 1000; i++ {
		next := DriftPrice(price, rng.Float64)
		lo, hi := price*(1-driftRange), price*(1+driftRange)
		if next < lo && next != minPrice {
			t.Fatalf("тик %d: курс %v ниже границы %v", i, next, lo)
		}
		if next > hi {
			t.Fatalf("тик %d: курс %v выше границы %v", i, next, hi)
		}
		price = next
	}
}

func TestInitialCryptos(t *testing.T) {
	if len(initialCryptos) != 6 {
		t.Fatalf("на бирже %d монет, ожидали 6", len(initialCryptos))
	}
	want := map[string]float64{
		"BTC": 30000, "ETH": 2000, "DOGE": 0.08,
		"ADA": 0.5, "SOL": 100, "DOT": 5,
	}
	for _, c := range initialCryptos {
		if want[c.Symbol] != c.Price {
			t.Errorf("стартовый курс %s = %v, ожидали %v", c.Symbol, c.Price, want[c.Symbol])
		}
	}
}
