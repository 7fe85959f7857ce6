package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mixmixailov/BRO247/internal/domain"
)

// T holds all user-facing texts per locale. Format placeholders: rem_save
// takes (when, body); reminder_alert takes the body.
var T = map[domain.Locale]map[string]string{
	domain.LocaleRU: {
		"welcome":          "👋 Привет! Я Bro 24/7 — всегда на связи.",
		"lang":             "🌐 Язык",
		"style":            "🎭 Стиль",
		"rem":              "⏰ Напоминание",
		"gen":              "🧬 Пол",
		"prof":             "🧠 Профиль",
		"clr":              "🧹 Сброс",
		"lang_set":         "Язык установлен ✅",
		"choose_style":     "Выбери стиль общения:",
		"style_ok":         "Стиль сохранён ✅",
		"q_gen":            "Кто ты по полу?",
		"saved":            "Запомнил! Ты %s.",
		"reset":            "Пол сброшен.",
		"male":             "мужчина",
		"female":           "женщина",
		"cleared":          "🗑️ Данные профиля удалены.",
		"rem_fmt":          "Формат: 'через 10 минут ...' / 'через 2 часа ...' / '21.07.2025 18:00 ...'",
		"rem_save":         "⏰ Напомню %s: %s",
		"rem_past":         "Это время уже прошло. Укажи момент в будущем.",
		"rem_min":          "%d МИН",
		"reminder_alert":   "⏰ %s",
		"reminders_list":   "📋 Твои напоминания:",
		"no_reminders":     "Напоминаний нет.",
		"delete_button":    "❌ Удалить",
		"reminder_deleted": "Напоминание удалено ✅",
		"err":              "Ошибка. Попробуй ещё или /start.",
	},
	domain.LocaleEN: {
		"welcome":          "👋 Hey! I'm Bro 24/7 — always online.",
		"lang":             "🌐 Language",
		"style":            "🎭 Style",
		"rem":              "⏰ Reminder",
		"gen":              "🧬 Gender",
		"prof":             "🧠 Profile",
		"clr":              "🧹 Clear",
		"lang_set":         "Language set ✅",
		"choose_style":     "Choose your style:",
		"style_ok":         "Style saved ✅",
		"q_gen":            "Your gender?",
		"saved":            "Got it! You're %s.",
		"reset":            "Gender cleared.",
		"male":             "male",
		"female":           "female",
		"cleared":          "🗑️ Profile data deleted.",
		"rem_fmt":          "Format: 'in 10 minutes ...' / 'in 2 hours ...' / '21.07.2025 18:00 ...'",
		"rem_save":         "⏰ I'll remind you %s: %s",
		"rem_past":         "That moment already passed. Pick a time in the future.",
		"rem_min":          "%d MIN",
		"reminder_alert":   "⏰ %s",
		"reminders_list":   "📋 Your reminders:",
		"no_reminders":     "No reminders yet.",
		"delete_button":    "❌ Delete",
		"reminder_deleted": "Reminder deleted ✅",
		"err":              "Error. Try again or /start.",
	},
}

// mainMenuKeyboard builds the main inline menu.
func mainMenuKeyboard(t map[string]string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t["lang"], "lang"),
			tgbotapi.NewInlineKeyboardButtonData(t["style"], "style"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t["rem"], "rem"),
			tgbotapi.NewInlineKeyboardButtonData(t["gen"], "gender"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t["prof"], "prof"),
			tgbotapi.NewInlineKeyboardButtonData(t["clr"], "clear"),
		),
	)
}

func langKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", "lang_RU"),
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", "lang_EN"),
		),
	)
}

func styleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧢 Street", "s_street"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧘 Psychologist", "s_psych"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧑‍💼 Coach", "s_coach"),
		),
	)
}

func genderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♂️ Male", "g_male"),
			tgbotapi.NewInlineKeyboardButtonData("♀️ Female", "g_female"),
			tgbotapi.NewInlineKeyboardButtonData("🏳️ Skip", "g_skip"),
		),
	)
}

// remindersKeyboard builds one delete button per reminder, keyed by id.
func remindersKeyboard(rems []domain.Reminder, t map[string]string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rems))
	for _, r := range rems {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t["delete_button"], "delete_reminder:"+r.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
