// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять игроку понятные сообщения.
package common

import "errors"

// Ошибки "не найдено"
var (
	// ErrPlayerNotFound — игрок не найден в базе
	ErrPlayerNotFound = errors.New("игрок не найден")
	// ErrItemNotFound — товар не найден в каталоге
	ErrItemNotFound = errors.New("товар не найден")
	// ErrPlotNotFound — на грядке нечего собирать
	ErrPlotNotFound = errors.New("нет растения для сбора")
	// ErrCryptoNotFound — криптовалюта с таким символом не торгуется
	ErrCryptoNotFound = errors.New("такая криптовалюта не торгуется")
)

// Ошибки экономики
var (
	// ErrInsufficientFunds — не хватает денег на операцию
	ErrInsufficientFunds = errors.New("не хватает денег")
	// ErrInvalidAmount — некорректная сумма (ноль или отрицательная)
	ErrInvalidAmount = errors.New("сумма должна быть положительной")
)

// Ошибки предусловий
var (
	// ErrSlotOccupied — грядка уже занята неубранным растением
	ErrSlotOccupied = errors.New("слот уже занят")
	// ErrNotGrownYet — растение ещё не выросло
	ErrNotGrownYet = errors.New("ещё не выросло")
	// ErrCooldownActive — кулдаун работы ещё не истёк
	ErrCooldownActive = errors.New("пауза между работами ещё не закончилась")
	// ErrNoSeedInInventory — в инвентаре нет нужного семени
	ErrNoSeedInInventory = errors.New("у вас нет этого семени")
	// ErrInsufficientHoldings — на крипто-счёте меньше, чем продаётся
	ErrInsufficientHoldings = errors.New("недостаточно монет на счёте")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrPlayerBanned — игрок забанен и не может играть
	ErrPlayerBanned = errors.New("игрок заблокирован")
)
