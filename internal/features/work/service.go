// Package work — service.go координирует рабочий цикл.
package work

import (
	"context"
	"math/rand"

	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/config"
)

// Service управляет работами.
type Service struct {
	repo *Repository
	cfg  *config.Config

	// intn — источник случайности, подменяемый в тестах.
	intn func(int64) int64
}

// NewService создаёт сервис работ.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
		intn: rand.Int63n,
	}
}

// CanWork возвращает (можно ли работать, сколько секунд осталось ждать).
func (s *Service) CanWork(ctx context.Context, userID int64) (bool, int64, error) {
	return s.repo.Cooldown(ctx, userID, s.cfg.WorkCooldown)
}

// WorkResult — итог работы вместе с флагом звёздной награды.
type WorkResult struct {
	Result
	Job  Job
	Star bool // Пометка на косметическую награду; доставка — не наша забота
}

// Work выполняет работу по ключу профессии. Нераспознанный ключ — не
// ошибка: игрок работает "подработку" за минимальную ставку.
func (s *Service) Work(ctx context.Context, userID int64, jobKey string) (*WorkResult, error) {
	job := JobByKey(jobKey)

	res, err := s.repo.Execute(ctx, userID, job, s.cfg.WorkCooldown, s.intn)
	if err != nil {
		return nil, err
	}

	star := RollStar(s.intn)

	log.WithFields(log.Fields{
		"user_id": userID,
		"job":     job.Name,
		"earned":  res.Earned,
		"lvl":     res.Level,
		"star":    star,
	}).Info("Работа выполнена")

	return &WorkResult{Result: *res, Job: job, Star: star}, nil
}
