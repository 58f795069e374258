// Package players управляет игроками: регистрацией, балансом, уровнями,
// рефералами. models.go описывает структуры для таблиц players и referrals.
package players

import "time"

// Player представляет игрока в базе данных.
// Создаётся при первом обращении к боту и никогда не удаляется
// (бан — это только флаг banned).
type Player struct {
	UserID        int64     `db:"user_id"`        // Telegram user ID (первичный ключ)
	Username      string    `db:"username"`       // @username (может быть пустым)
	Name          string    `db:"name"`           // Отображаемое имя
	Dollars       float64   `db:"dollars"`        // Баланс в долларах (никогда не отрицательный)
	UP            int       `db:"up"`             // Счётчик выполненных работ
	XP            int       `db:"xp"`             // Опыт внутри текущего уровня
	Level         int       `db:"lvl"`            // Уровень (с 1)
	LastWork      time.Time `db:"last_work"`      // Время последней работы (для кулдауна)
	VIP           bool      `db:"vip"`            // Флаг VIP-статуса
	VIPUntil      time.Time `db:"vip_until"`      // Срок действия VIP
	Role          string    `db:"role"`           // Роль ('player' по умолчанию)
	Referrer      *int64    `db:"referrer"`       // Кто пригласил (nil, если пришёл сам)
	Referrals     int       `db:"referrals"`      // Сколько игроков привёл
	Banned        bool      `db:"banned"`         // Флаг бана (мягкий, запись не удаляется)
	PrestigeCount int       `db:"prestige_count"` // Сколько раз делал престиж
	IncomeMult    float64   `db:"income_mult"`    // Персональный множитель дохода (1.0 по умолчанию)
	FarmLevel     int       `db:"farm_level"`     // Уровень фермы (с 1)
	FarmSlots     int       `db:"farm_slots"`     // Количество грядок (с 3)
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Multiplier возвращает итоговый множитель дохода от работы:
// VIP удваивает, поверх применяется персональный income_mult.
func (p *Player) Multiplier() float64 {
	mult := p.IncomeMult
	if mult == 0 {
		mult = 1.0
	}
	if p.VIP {
		mult *= 2
	}
	return mult
}

// Referral представляет одну реферальную связь.
// Создаётся ровно один раз на приглашённого игрока.
type Referral struct {
	ID             int64     `db:"id"`
	Referrer       int64     `db:"referrer"`        // Кто пригласил
	Referred       int64     `db:"referred"`        // Кого пригласили (уникально)
	RewardReferrer float64   `db:"reward_referrer"` // Бонус пригласившему
	RewardReferred float64   `db:"reward_referred"` // Бонус новичку
	PaidReferrer   bool      `db:"paid_referrer"`
	PaidReferred   bool      `db:"paid_referred"`
	CreatedAt      time.Time `db:"created_at"`
}
