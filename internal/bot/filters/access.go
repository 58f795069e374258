// Package filters отсекает обновления, которые бот не должен обрабатывать.
package filters

import (
	"context"

	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/features/players"
)

// AccessFilter решает, пускать ли игрока к боту.
// Игра живёт в личных сообщениях; забаненные игроки игнорируются
// молча, чтобы не кормить обиженных ответами.
type AccessFilter struct {
	playerService *players.Service
}

func NewAccessFilter(playerService *players.Service) *AccessFilter {
	return &AccessFilter{playerService: playerService}
}

// CheckAccess возвращает true, если обновление от userID можно обрабатывать.
func (f *AccessFilter) CheckAccess(ctx context.Context, userID int64, isPrivate bool) bool {
	if !isPrivate {
		return false
	}

	banned, err := f.playerService.IsBanned(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка проверки бана")
		return false
	}
	if banned {
		log.WithField("user_id", userID).Debug("deny: игрок забанен")
		return false
	}
	return true
}
