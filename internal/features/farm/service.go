// Package farm — service.go содержит бизнес-логику фермы.
package farm

import (
	"context"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/config"
)

// Service управляет фермой игрока.
type Service struct {
	repo *Repository
	cfg  *config.Config

	// Источник случайности для дохода с урожая. В тестах подменяется.
	randFloat func() float64
}

// NewService создаёт сервис фермы.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		cfg:       cfg,
		randFloat: rand.Float64,
	}
}

// GetPlots возвращает неубранные грядки игрока.
func (s *Service) GetPlots(ctx context.Context, userID int64) ([]*Plot, error) {
	return s.repo.GetPlots(ctx, userID)
}

// Plant сажает семя из инвентаря в слот.
func (s *Service) Plant(ctx context.Context, userID int64, slot int, itemID int64) (string, error) {
	seedName, err := s.repo.Plant(ctx, userID, slot, itemID)
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"slot":    slot,
		"seed":    seedName,
	}).Info("Семя посажено")

	return seedName, nil
}

// Harvest собирает урожай со слота.
func (s *Service) Harvest(ctx context.Context, userID int64, slot int) (*HarvestOutcome, error) {
	out, err := s.repo.Harvest(ctx, userID, slot, s.cfg.FarmBaseIncome, s.randFloat)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"slot":    slot,
		"seed":    out.SeedType,
		"income":  out.Income,
	}).Info("Урожай собран")

	return out, nil
}

// Upgrade улучшает ферму на один уровень.
func (s *Service) Upgrade(ctx context.Context, userID int64) (int, float64, error) {
	return s.repo.Upgrade(ctx, userID, s.cfg.FarmUpgradeBaseCost, s.cfg.FarmUpgradeCostMult)
}

// NextUpgradeCost возвращает стоимость улучшения с текущего уровня.
func (s *Service) NextUpgradeCost(farmLevel int) float64 {
	return UpgradeCost(s.cfg.FarmUpgradeBaseCost, s.cfg.FarmUpgradeCostMult, farmLevel)
}

// Expand добавляет грядку.
func (s *Service) Expand(ctx context.Context, userID int64) (int, error) {
	return s.repo.Expand(ctx, userID, s.cfg.FarmExpandCost)
}
