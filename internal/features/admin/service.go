// Package admin — service.go содержит логику аутентификации, управления сессиями
// и state-машину для пошаговых действий модератора.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"levelbot.ru/game-bot/internal/common"
	"levelbot.ru/game-bot/internal/config"
	"levelbot.ru/game-bot/internal/features/economy"
	"levelbot.ru/game-bot/internal/features/players"
)

// Service управляет модераторской панелью.
type Service struct {
	repo     *Repository
	players  *players.Service
	economy  *economy.Service
	cfg      *config.Config
	states   map[int64]*State // Состояния диалогов (in-memory)
	statesMu sync.RWMutex
}

// NewService создаёт сервис модераторской панели.
func NewService(repo *Repository, playerSvc *players.Service, economySvc *economy.Service, cfg *config.Config) *Service {
	return &Service{
		repo:    repo,
		players: playerSvc,
		economy: economySvc,
		cfg:     cfg,
		states:  make(map[int64]*State),
	}
}

// VerifyPassword проверяет пароль модератора с использованием Argon2id.
// Включает защиту от brute-force: 3 неудачные попытки = блокировка на 1 час.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	attempts, err := s.repo.GetRecentAttempts(ctx, userID, 1*time.Hour)
	if err != nil {
		return err
	}
	if attempts >= 3 {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)

	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).Error("Ошибка записи попытки входа")
	}

	if !match {
		return common.ErrWrongPassword
	}

	// Сессия живёт 24 часа
	token := generateSecureToken()
	session := &Session{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}

	return s.repo.CreateSession(ctx, session)
}

// HasActiveSession проверяет, есть ли у пользователя активная сессия.
func (s *Service) HasActiveSession(ctx context.Context, userID int64) bool {
	session, err := s.repo.GetActiveSession(ctx, userID)
	return err == nil && session != nil
}

// Logout деактивирует сессии пользователя.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	s.ClearState(userID)
	return s.repo.DeactivateSession(ctx, userID)
}

// GetState возвращает текущее состояние диалога.
func (s *Service) GetState(userID int64) *State {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil
	}
	if time.Now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// SetState устанавливает состояние диалога с 5-минутным таймаутом.
func (s *Service) SetState(userID int64, stateName string, data interface{}) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()

	s.states[userID] = &State{
		State:     stateName,
		Data:      data,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
}

// ClearState сбрасывает состояние диалога.
func (s *Service) ClearState(userID int64) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	delete(s.states, userID)
}

// GiveMoney начисляет игроку деньги от имени модератора.
func (s *Service) GiveMoney(ctx context.Context, adminID, targetID int64, amount float64) error {
	meta := map[string]any{"admin_id": adminID}
	if err := s.economy.Credit(ctx, targetID, amount, economy.TxTypeAdminGive, meta); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"admin_id":  adminID,
		"target_id": targetID,
		"amount":    amount,
	}).Warn("Модератор выдал деньги")

	return nil
}

// TakeMoney списывает у игрока деньги от имени модератора.
func (s *Service) TakeMoney(ctx context.Context, adminID, targetID int64, amount float64) error {
	meta := map[string]any{"admin_id": adminID}
	if err := s.economy.Debit(ctx, targetID, amount, economy.TxTypeAdminTake, meta); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"admin_id":  adminID,
		"target_id": targetID,
		"amount":    amount,
	}).Warn("Модератор изъял деньги")

	return nil
}

// SetBanned ставит или снимает бан игрока.
func (s *Service) SetBanned(ctx context.Context, adminID, targetID int64, banned bool) error {
	if err := s.players.SetBanned(ctx, targetID, banned); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"admin_id":  adminID,
		"target_id": targetID,
		"banned":    banned,
	}).Warn("Модератор изменил бан")

	return nil
}

// GrantVIP выдаёт игроку VIP на указанное число дней.
func (s *Service) GrantVIP(ctx context.Context, adminID, targetID int64, days int) error {
	if days <= 0 {
		return common.ErrInvalidAmount
	}
	if err := s.players.GrantVIP(ctx, targetID, time.Duration(days)*24*time.Hour); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"admin_id":  adminID,
		"target_id": targetID,
		"days":      days,
	}).Warn("Модератор выдал VIP")

	return nil
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени (защита от timing attack)
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

// generateSecureToken генерирует криптографически безопасный токен сессии.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
