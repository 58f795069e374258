package shop

import "testing"

func TestFinalPrice(t *testing.T) {
	cases := []struct {
		name string
		base float64
		vip  bool
		coef float64
		want float64
	}{
		{"без скидок и коэффициента", 100, false, 1.0, 100},
		{"глобальный коэффициент", 100, false, 1.10, 110},
		{"VIP-скидка 20%", 100, true, 1.0, 80},
		{"VIP + коэффициент", 1000, true, 1.10, 880},
		{"floor дробной цены", 250, false, 1.10, 275},
		{"floor c VIP", 180, true, 1.10, 158}, // 180*0.8*1.1 = 158.4 → 158
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FinalPrice(tc.base, tc.vip, tc.coef); got != tc.want {
				t.Errorf("FinalPrice(%v, %v, %v) = %v, ожидали %v",
					tc.base, tc.vip, tc.coef, got, tc.want)
			}
		})
	}
}

func TestInitialCatalog(t *testing.T) {
	if len(initialCatalog) != 39 {
		t.Fatalf("в каталоге %d позиций, ожидали 39", len(initialCatalog))
	}

	skus := map[string]bool{}
	seeds := 0
	for _, it := range initialCatalog {
		if skus[it.SKU] {
			t.Errorf("дубликат SKU %s", it.SKU)
		}
		skus[it.SKU] = true
		if it.Price <= 0 {
			t.Errorf("товар %s с неположительной ценой %v", it.SKU, it.Price)
		}
		if it.Category == CategorySeed {
			seeds++
		}
	}
	if seeds != 9 {
		t.Errorf("в каталоге %d семян, ожидали 9", seeds)
	}
}

func TestRarityEmoji(t *testing.T) {
	if RarityEmoji("legendary") != "🟠" {
		t.Error("legendary должен быть 🟠")
	}
	if RarityEmoji("нечто") != "⚪" {
		t.Error("незнакомая редкость должна давать ⚪")
	}
}
