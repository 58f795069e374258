// Package players — service.go содержит бизнес-логику работы с игроками.
package players

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
	"levelbot.ru/game-bot/internal/config"
)

// Service управляет игроками.
type Service struct {
	repo *Repository
	cfg  *config.Config
}

// NewService создаёт новый сервис игроков.
func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Ensure идемпотентно регистрирует игрока при первом обращении.
func (s *Service) Ensure(ctx context.Context, userID int64, username, name string, referrer *int64) (*Player, error) {
	p, err := s.repo.Ensure(ctx, userID, username, name, referrer, EnsureParams{
		StartingBalance: s.cfg.StartingBalance,
		RewardReferrer:  s.cfg.ReferralRewardReferrer,
		RewardReferred:  s.cfg.ReferralRewardNew,
	})
	if err != nil {
		return nil, err
	}
	if p.CreatedAt.Equal(p.UpdatedAt) {
		log.WithFields(log.Fields{
			"user_id":  userID,
			"referrer": referrer,
		}).Info("Зарегистрирован новый игрок")
	}
	return p, nil
}

// Get возвращает игрока.
func (s *Service) Get(ctx context.Context, userID int64) (*Player, error) {
	return s.repo.Get(ctx, userID)
}

// IsBanned проверяет флаг бана. Незарегистрированный игрок не считается
// забаненным — он просто ещё не играл.
func (s *Service) IsBanned(ctx context.Context, userID int64) (bool, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		if err == common.ErrPlayerNotFound {
			return false, nil
		}
		return false, err
	}
	return p.Banned, nil
}

// AddXP начисляет опыт. Возвращает (было ли повышение, итоговый уровень).
func (s *Service) AddXP(ctx context.Context, userID int64, gain int) (bool, int, error) {
	return s.repo.AddXP(ctx, userID, gain)
}

// SetBanned ставит или снимает мягкий бан (запись игрока не удаляется).
func (s *Service) SetBanned(ctx context.Context, userID int64, banned bool) error {
	return s.repo.UpdateFields(ctx, userID, map[string]any{"banned": banned})
}

// GrantVIP выдаёт VIP на указанный срок.
func (s *Service) GrantVIP(ctx context.Context, userID int64, d time.Duration) error {
	return s.repo.SetVIP(ctx, userID, true, time.Now().Add(d))
}

// ClearExpiredVIPs снимает истёкшие VIP-статусы (вызывается по крону).
func (s *Service) ClearExpiredVIPs(ctx context.Context) (int64, error) {
	return s.repo.ClearExpiredVIPs(ctx)
}

// ProfileText собирает текст профиля игрока для показа в чате.
func (s *Service) ProfileText(p *Player) string {
	vipLine := ""
	if p.VIP {
		vipLine = fmt.Sprintf("⭐ VIP до %s\n", common.FormatDateTime(p.VIPUntil))
	}
	return fmt.Sprintf(
		"👤 %s\n"+
			"💰 Баланс: %s\n"+
			"🔧 UP: %d\n"+
			"📊 Уровень: %d (%d/%d XP)\n"+
			"🌾 Ферма: уровень %d, %d %s\n"+
			"👥 Рефералов: %d\n%s",
		p.Name,
		common.FormatMoney(p.Dollars),
		p.UP,
		p.Level, p.XP, XPForNext(p.Level),
		p.FarmLevel, p.FarmSlots, common.PluralizeSlots(int64(p.FarmSlots)),
		p.Referrals,
		vipLine,
	)
}
