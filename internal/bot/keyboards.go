// Package bot — keyboards.go строит главное меню игры.
// Клавиатуры отдельных разделов живут в обработчиках своих фич.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MainMenuKeyboard строит клавиатуру главного меню.
// Кнопка модератора показывается только админам из конфига.
func MainMenuKeyboard(isAdmin, cryptoEnabled bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("💼 Работать", "work"),
			tgbotapi.NewInlineKeyboardButtonData("🛒 Магазин", "shop"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("🌾 Ферма", "farm"),
			tgbotapi.NewInlineKeyboardButtonData("👤 Профиль", "profile"),
		},
	}

	if cryptoEnabled {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("₿ Крипто", "crypto"),
			tgbotapi.NewInlineKeyboardButtonData("📋 История", "history"),
		})
	} else {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📋 История", "history"),
		})
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("👥 Рефералка", "ref"),
	})

	if isAdmin {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Admin", "admin_panel"),
		})
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BackToMainKeyboard — единственная кнопка возврата в меню.
func BackToMainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "main"),
		),
	)
}
