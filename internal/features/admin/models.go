// Package admin реализует модераторскую панель с парольной аутентификацией.
// models.go описывает структуры сессий и попыток входа.
package admin

import "time"

// Session — активная сессия модератора.
type Session struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// State — состояние диалога с модератором (конечный автомат).
// Панель работает по шагам: выбор действия → ввод цели → ввод суммы.
type State struct {
	State     string      // Текущее состояние ("", "awaiting_password", ...)
	Data      interface{} // Данные контекста (ID выбранного игрока и т.п.)
	ExpiresAt time.Time   // Когда состояние истекает (5 минут)
}

// TargetID возвращает сохранённый на прошлом шаге ID игрока.
// Состояние могло истечь или быть сброшенным параллельным сообщением,
// поэтому метод безопасен для nil и для чужого типа данных.
func (st *State) TargetID() (int64, bool) {
	if st == nil {
		return 0, false
	}
	id, ok := st.Data.(int64)
	return id, ok
}

// Возможные состояния диалога
const (
	StateNone             = ""                  // Нет активного состояния
	StateAwaitingPassword = "awaiting_password" // Ждём пароль
	StateGiveMoneyTarget  = "give_money_target" // Ждём ID игрока для начисления
	StateGiveMoneyAmount  = "give_money_amount" // Ждём сумму начисления
	StateTakeMoneyTarget  = "take_money_target" // Ждём ID игрока для списания
	StateTakeMoneyAmount  = "take_money_amount" // Ждём сумму списания
	StateBanTarget        = "ban_target"        // Ждём ID игрока для бана
	StateUnbanTarget      = "unban_target"      // Ждём ID игрока для разбана
	StateVIPTarget        = "vip_target"        // Ждём ID игрока для выдачи VIP
	StateVIPDays          = "vip_days"          // Ждём срок VIP в днях
)
