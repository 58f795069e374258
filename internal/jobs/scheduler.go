// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: дрейф курсов криптовалют
// и снятие просроченных VIP-статусов.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/config"
	"levelbot.ru/game-bot/internal/features/crypto"
	"levelbot.ru/game-bot/internal/features/players"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron          *cron.Cron
	cfg           *config.Config
	playerService *players.Service
	cryptoService *crypto.Service
}

// NewScheduler создаёт планировщик задач с московским часовым поясом.
func NewScheduler(cfg *config.Config, playerService *players.Service, cryptoService *crypto.Service) *Scheduler {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		log.WithError(err).Warn("Не удалось загрузить Europe/Moscow, используем UTC+3")
		loc = time.FixedZone("MSK", 3*60*60)
	}

	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:          c,
		cfg:           cfg,
		playerService: playerService,
		cryptoService: cryptoService,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Дрейф курсов каждые 5 минут
	if s.cfg.FeatureCryptoEnabled {
		s.cron.AddFunc("*/5 * * * *", func() {
			log.Debug("[CRON] Дрейф курсов криптовалют")
			if err := s.cryptoService.DriftPrices(ctx); err != nil {
				log.WithError(err).Error("[CRON] Ошибка дрейфа курсов")
			}
		})
	}

	// Просроченные VIP снимаются каждый час
	s.cron.AddFunc("0 * * * *", func() {
		n, err := s.playerService.ClearExpiredVIPs(ctx)
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка снятия VIP")
			return
		}
		if n > 0 {
			log.WithField("count", n).Info("[CRON] Сняты просроченные VIP")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (Europe/Moscow)")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
