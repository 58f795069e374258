// Package shop управляет магазином и инвентарём игроков.
// models.go описывает структуры для таблиц items и inventory.
package shop

import (
	"encoding/json"
	"math"
)

// Item — позиция каталога. После первоначального посева каталог
// меняется только административно.
type Item struct {
	ID       int64           `db:"id"`
	SKU      string          `db:"sku"`      // Артикул (уникальный)
	Name     string          `db:"name"`     // Название для игрока
	Category string          `db:"category"` // seed / tool / upgrade / consumable / cosmetic / service
	Effect   json.RawMessage `db:"effect"`   // Структурированный эффект предмета
	Price    float64         `db:"price"`    // Базовая цена до коэффициентов
	Rarity   string          `db:"rarity"`   // Редкость (только информационная)
}

// InventoryEntry — количество предмета у игрока.
// Создаётся при первой покупке, дальше только меняется счётчик.
// Количество никогда не отрицательное.
type InventoryEntry struct {
	UserID int64 `db:"user_id"`
	ItemID int64 `db:"item_id"`
	Qty    int   `db:"qty"`

	Item *Item `db:"-"` // Заполняется join-ом при чтении инвентаря
}

// Категории каталога.
const (
	CategorySeed       = "seed"
	CategoryTool       = "tool"
	CategoryUpgrade    = "upgrade"
	CategoryConsumable = "consumable"
	CategoryCosmetic   = "cosmetic"
	CategoryService    = "service"
)

// FinalPrice вычисляет итоговую цену предмета:
//
//	floor(базовая цена * (0.8 для VIP) * глобальный коэффициент)
func FinalPrice(basePrice float64, vip bool, priceCoef float64) float64 {
	discount := 1.0
	if vip {
		discount = 0.8
	}
	return math.Floor(basePrice * discount * priceCoef)
}

// RarityEmoji возвращает эмодзи редкости для клавиатур магазина.
func RarityEmoji(rarity string) string {
	switch rarity {
	case "common":
		return "⚪"
	case "uncommon":
		return "🟢"
	case "rare":
		return "🔵"
	case "epic":
		return "🟣"
	case "legendary":
		return "🟠"
	case "mythic":
		return "🔴"
	case "divine":
		return "🌈"
	default:
		return "⚪"
	}
}
