// Package players — repository.go отвечает за все операции с таблицами
// players и referrals. Регистрация с реферальным бонусом выполняется
// в одной транзакции БД.
package players

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"levelbot.ru/game-bot/internal/common"
	"levelbot.ru/game-bot/internal/features/economy"
)

const playerColumns = `user_id, username, name, dollars, up, xp, lvl, last_work,
	vip, vip_until, role, referrer, referrals, banned, prestige_count,
	income_mult, farm_level, farm_slots, created_at, updated_at`

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanPlayer(row pgx.Row) (*Player, error) {
	var p Player
	err := row.Scan(
		&p.UserID, &p.Username, &p.Name, &p.Dollars, &p.UP, &p.XP, &p.Level,
		&p.LastWork, &p.VIP, &p.VIPUntil, &p.Role, &p.Referrer, &p.Referrals,
		&p.Banned, &p.PrestigeCount, &p.IncomeMult, &p.FarmLevel, &p.FarmSlots,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get возвращает игрока по Telegram user ID.
// Если игрок не найден — common.ErrPlayerNotFound.
func (r *Repository) Get(ctx context.Context, userID int64) (*Player, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE user_id = $1`, userID)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("ошибка чтения игрока (user_id=%d): %w", userID, err)
	}
	return p, nil
}

// EnsureParams — параметры регистрации нового игрока.
// Значения приходят из конфига, репозиторий конфиг не трогает.
type EnsureParams struct {
	StartingBalance float64
	RewardReferrer  float64
	RewardReferred  float64
}

// Ensure идемпотентно возвращает игрока, создавая его при первом обращении.
// Если передан валидный referrer (существующий игрок, не сам новичок),
// атомарно в одной транзакции:
//   - создаётся запись в referrals,
//   - пригласившему +1 к счётчику рефералов и его бонус,
//   - новичку его бонус,
//   - оба бонуса фиксируются в журнале операций.
//
// Повторный вызов для существующего игрока ничего не меняет — бонус
// выдаётся ровно один раз на приглашённого.
func (r *Repository) Ensure(ctx context.Context, userID int64, username, name string, referrer *int64, params EnsureParams) (*Player, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE user_id = $1 FOR UPDATE`, userID)
	p, err := scanPlayer(row)
	if err == nil {
		// Игрок уже есть — возвращаем как есть
		return p, tx.Commit(ctx)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("ошибка проверки игрока: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO players (user_id, username, name, dollars)
		VALUES ($1, $2, $3, $4)
	`, userID, username, name, params.StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания игрока: %w", err)
	}

	if referrer != nil && *referrer != userID {
		if err := r.applyReferral(ctx, tx, *referrer, userID, params); err != nil {
			return nil, err
		}
	}

	row = tx.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM players WHERE user_id = $1`, userID)
	p, err = scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения созданного игрока: %w", err)
	}
	return p, tx.Commit(ctx)
}

// applyReferral выдаёт реферальные бонусы внутри транзакции регистрации.
// Несуществующий referrer молча игнорируется, как в исходном поведении.
func (r *Repository) applyReferral(ctx context.Context, tx pgx.Tx, referrer, referred int64, params EnsureParams) error {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE user_id = $1)`, referrer,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("ошибка проверки пригласившего: %w", err)
	}
	if !exists {
		return nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO referrals (referrer, referred, reward_referrer, reward_referred, paid_referrer, paid_referred)
		VALUES ($1, $2, $3, $4, TRUE, TRUE)
		ON CONFLICT (referred) DO NOTHING
	`, referrer, referred, params.RewardReferrer, params.RewardReferred)
	if err != nil {
		return fmt.Errorf("ошибка записи реферала: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE players
		SET referrals = referrals + 1, dollars = dollars + $2, updated_at = NOW()
		WHERE user_id = $1
	`, referrer, params.RewardReferrer)
	if err != nil {
		return fmt.Errorf("ошибка начисления бонуса пригласившему: %w", err)
	}

	var referredBalance float64
	err = tx.QueryRow(ctx, `
		UPDATE players
		SET referrer = $2, dollars = dollars + $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING dollars
	`, referred, referrer, params.RewardReferred).Scan(&referredBalance)
	if err != nil {
		return fmt.Errorf("ошибка начисления бонуса новичку: %w", err)
	}

	meta := map[string]any{"referrer": referrer, "referred": referred}
	if err := economy.LogOperation(ctx, tx, referrer, economy.TxTypeReferralBonus,
		economy.CurrencyUSD, params.RewardReferrer, nil, meta); err != nil {
		return err
	}
	if err := economy.LogOperation(ctx, tx, referred, economy.TxTypeReferralBonus,
		economy.CurrencyUSD, params.RewardReferred, &referredBalance, meta); err != nil {
		return err
	}
	return nil
}

// allowedFields — колонки, которые разрешено менять через UpdateFields.
// Баланс намеренно исключён: деньги двигаются только через economy.
var allowedFields = map[string]bool{
	"username":       true,
	"name":           true,
	"vip":            true,
	"vip_until":      true,
	"role":           true,
	"banned":         true,
	"prestige_count": true,
	"income_mult":    true,
}

// UpdateFields применяет частичное обновление полей игрока.
// Автоматически обновляет updated_at. Неизвестные поля — ошибка,
// а не тихое игнорирование.
func (r *Repository) UpdateFields(ctx context.Context, userID int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !allowedFields[k] {
			return fmt.Errorf("поле %q нельзя менять через UpdateFields", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys) // детерминированный порядок для предсказуемого SQL

	sets := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)
	args = append(args, userID)
	for i, k := range keys {
		sets = append(sets, fmt.Sprintf("%s = $%d", k, i+2))
		args = append(args, fields[k])
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE players SET %s WHERE user_id = $1", strings.Join(sets, ", "))
	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления игрока: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return common.ErrPlayerNotFound
	}
	return nil
}

// AddXP начисляет опыт игроку с возможным повышением уровня.
// VIP получает удвоенный прирост; за один вызов возможно несколько
// повышений подряд. Возвращает (было ли повышение, итоговый уровень).
func (r *Repository) AddXP(ctx context.Context, userID int64, gain int) (bool, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var xp, lvl int
	var vip bool
	err = tx.QueryRow(ctx,
		`SELECT xp, lvl, vip FROM players WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&xp, &lvl, &vip)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, common.ErrPlayerNotFound
		}
		return false, 0, fmt.Errorf("ошибка чтения опыта: %w", err)
	}

	newXP, newLvl, promoted := ApplyXP(xp, lvl, gain, vip)

	_, err = tx.Exec(ctx,
		`UPDATE players SET xp = $2, lvl = $3, updated_at = NOW() WHERE user_id = $1`,
		userID, newXP, newLvl)
	if err != nil {
		return false, 0, fmt.Errorf("ошибка записи опыта: %w", err)
	}

	return promoted, newLvl, tx.Commit(ctx)
}

// SetVIP включает или выключает VIP-статус со сроком действия.
func (r *Repository) SetVIP(ctx context.Context, userID int64, vip bool, until time.Time) error {
	return r.UpdateFields(ctx, userID, map[string]any{"vip": vip, "vip_until": until})
}

// ClearExpiredVIPs снимает VIP у всех, чей срок истёк.
// Вызывается по крону; возвращает количество затронутых игроков.
func (r *Repository) ClearExpiredVIPs(ctx context.Context) (int64, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE players
		SET vip = FALSE, updated_at = NOW()
		WHERE vip = TRUE AND vip_until < NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("ошибка снятия просроченных VIP: %w", err)
	}
	return ct.RowsAffected(), nil
}
