// Package crypto — service.go содержит бизнес-логику биржи.
package crypto

import (
	"context"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
)

// Service управляет игровой криптобиржей.
type Service struct {
	repo *Repository

	// Источник случайности для дрейфа курсов. В тестах подменяется.
	randFloat func() float64
}

// NewService создаёт сервис биржи.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, randFloat: rand.Float64}
}

// SeedCryptos заполняет биржу при первом запуске.
func (s *Service) SeedCryptos(ctx context.Context) error {
	return s.repo.SeedCryptos(ctx)
}

// ListCryptos возвращает все монеты с текущими курсами.
func (s *Service) ListCryptos(ctx context.Context) ([]*Crypto, error) {
	return s.repo.ListCryptos(ctx)
}

// GetCrypto возвращает монету по символу.
func (s *Service) GetCrypto(ctx context.Context, symbol string) (*Crypto, error) {
	return s.repo.GetCrypto(ctx, symbol)
}

// GetHoldings возвращает портфель игрока.
func (s *Service) GetHoldings(ctx context.Context, userID int64) ([]*Holding, error) {
	return s.repo.GetHoldings(ctx, userID)
}

// Buy покупает amount монет за доллары. Возвращает потраченную сумму.
func (s *Service) Buy(ctx context.Context, userID int64, symbol string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, common.ErrInvalidAmount
	}

	cost, err := s.repo.Buy(ctx, userID, symbol, amount)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"symbol":  symbol,
		"amount":  amount,
		"cost":    cost,
	}).Info("Покупка крипты")

	return cost, nil
}

// Sell продаёт amount монет за доллары. Возвращает вырученную сумму.
func (s *Service) Sell(ctx context.Context, userID int64, symbol string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, common.ErrInvalidAmount
	}

	proceeds, err := s.repo.Sell(ctx, userID, symbol, amount)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"symbol":   symbol,
		"amount":   amount,
		"proceeds": proceeds,
	}).Info("Продажа крипты")

	return proceeds, nil
}

// DriftPrices сдвигает курсы всех монет. Вызывается планировщиком.
func (s *Service) DriftPrices(ctx context.Context) error {
	if err := s.repo.DriftAllPrices(ctx, s.randFloat); err != nil {
		return err
	}
	log.Debug("Курсы криптовалют обновлены")
	return nil
}
