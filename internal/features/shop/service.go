// Package shop — service.go содержит бизнес-логику магазина.
package shop

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
	"levelbot.ru/game-bot/internal/config"
)

// Service управляет магазином и инвентарём.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт сервис магазина.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// SeedCatalog заполняет каталог при первом запуске.
func (s *Service) SeedCatalog(ctx context.Context) error {
	return s.repo.SeedCatalog(ctx)
}

// ListItems возвращает товары категории (или весь каталог при "").
func (s *Service) ListItems(ctx context.Context, category string) ([]*Item, error) {
	return s.repo.ListItems(ctx, category)
}

// DisplayPrice возвращает цену товара для показа (без персональной VIP-скидки).
func (s *Service) DisplayPrice(it *Item) float64 {
	return FinalPrice(it.Price, false, s.cfg.PriceCoef)
}

// Buy покупает предмет и возвращает сообщение для игрока.
func (s *Service) Buy(ctx context.Context, userID, itemID int64) (string, error) {
	it, price, err := s.repo.Buy(ctx, userID, itemID, s.cfg.PriceCoef)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"item":    it.SKU,
		"price":   price,
	}).Info("Покупка выполнена")

	return fmt.Sprintf("Куплено %s за %s.", it.Name, common.FormatMoney(price)), nil
}

// GetInventory возвращает инвентарь игрока.
func (s *Service) GetInventory(ctx context.Context, userID int64) ([]*InventoryEntry, error) {
	return s.repo.GetInventory(ctx, userID)
}
