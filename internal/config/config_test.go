package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		BotToken:                "token",
		DBMaxConns:              25,
		DBMinConns:              5,
		BotMaxInflight:          64,
		BotUpdateTimeoutSeconds: 60,
		StartingBalance:         5000,
		PriceCoef:               1.10,
		WorkCooldown:            8 * time.Second,
		FarmUpgradeCostMult:     1.5,
	}
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("валидный конфиг не прошёл проверку: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"нулевой inflight", func(c *Config) { c.BotMaxInflight = 0 }},
		{"min > max conns", func(c *Config) { c.DBMinConns = 30 }},
		{"нулевой кулдаун", func(c *Config) { c.WorkCooldown = 0 }},
		{"нулевой коэффициент цен", func(c *Config) { c.PriceCoef = 0 }},
		{"отрицательный стартовый баланс", func(c *Config) { c.StartingBalance = -1 }},
		{"множитель апгрейда < 1", func(c *Config) { c.FarmUpgradeCostMult = 0.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("ожидалась ошибка валидации")
			}
		})
	}
}

func TestParseInt64CSV(t *testing.T) {
	ids, err := parseInt64CSV(" 1, 22 ,333 ")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 22 || ids[2] != 333 {
		t.Fatalf("неверный разбор: %v", ids)
	}

	if _, err := parseInt64CSV("1,abc"); err == nil {
		t.Fatal("ожидалась ошибка на нечисловом ID")
	}

	ids, err = parseInt64CSV("")
	if err != nil || ids != nil {
		t.Fatalf("пустая строка должна давать nil: %v %v", ids, err)
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{10, 20}}
	if !cfg.IsAdmin(10) {
		t.Error("10 должен быть админом")
	}
	if cfg.IsAdmin(30) {
		t.Error("30 не должен быть админом")
	}
}
