package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mixmixailov/BRO247/internal/domain"
	"github.com/mixmixailov/BRO247/internal/scheduler"
	"github.com/mixmixailov/BRO247/internal/store"
)

func (r *Router) handleStart(ctx context.Context, chatID int64) {
	t := r.texts(ctx, chatID)
	msg := tgbotapi.NewMessage(chatID, t["welcome"])
	msg.ReplyMarkup = mainMenuKeyboard(t)
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Warn("send /start failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

// handleFreeText is the main routing point: text with a recognizable time
// expression becomes a reminder, everything else goes to the AI collaborator.
func (r *Router) handleFreeText(ctx context.Context, chatID int64, text string) {
	loc := r.locale(ctx, chatID)
	if req, ok := domain.Parse(text, loc); ok {
		r.scheduleReminder(ctx, chatID, loc, req)
		return
	}

	var profile *store.Profile
	if p, err := r.profiles.Get(ctx, chatID); err == nil {
		profile = p
	}
	reply, err := r.ai.Reply(ctx, chatID, profile, text)
	if err != nil {
		r.log.Error("ai reply failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, T[loc]["err"])
		return
	}
	r.sendText(chatID, reply)
}

// handleAddReminder serves "/addreminder <time expression> <text>".
func (r *Router) handleAddReminder(ctx context.Context, chatID int64, args string) {
	loc := r.locale(ctx, chatID)
	req, ok := domain.Parse(args, loc)
	if !ok {
		r.sendText(chatID, T[loc]["rem_fmt"])
		return
	}
	r.scheduleReminder(ctx, chatID, loc, req)
}

func (r *Router) scheduleReminder(ctx context.Context, chatID int64, loc domain.Locale, req domain.Request) {
	t := T[loc]

	rem, err := r.sched.Schedule(ctx, chatID, req)
	if errors.Is(err, scheduler.ErrPastDeadline) {
		r.sendText(chatID, t["rem_past"])
		return
	}
	if err != nil {
		r.log.Error("schedule failed", zap.Int64("chatID", chatID), zap.Error(err))
		r.sendText(chatID, t["err"])
		return
	}

	var when string
	if req.Kind == domain.RelativeMinutes {
		when = fmt.Sprintf(t["rem_min"], req.Minutes)
	} else {
		when = rem.DueAt.Format("02.01.2006 15:04")
	}
	r.sendText(chatID, fmt.Sprintf(t["rem_save"], when, rem.Body))
}

func (r *Router) handleReminders(ctx context.Context, chatID int64) {
	t := r.texts(ctx, chatID)

	rems := r.sched.List(chatID)
	if len(rems) == 0 {
		r.sendText(chatID, t["no_reminders"])
		return
	}

	lines := make([]string, 0, len(rems)+1)
	lines = append(lines, t["reminders_list"])
	for _, rem := range rems {
		lines = append(lines, rem.DueAt.Format("02.01.2006 15:04")+" — "+rem.Body)
	}

	msg := tgbotapi.NewMessage(chatID, strings.Join(lines, "\n"))
	msg.ReplyMarkup = remindersKeyboard(rems, t)
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Warn("send reminders list failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	data := cb.Data
	r.answerCallback(cb.ID)

	t := r.texts(ctx, chatID)

	switch {
	case data == "lang":
		msg := tgbotapi.NewMessage(chatID, "🌐 Выбери язык | Choose language:")
		msg.ReplyMarkup = langKeyboard()
		_, _ = r.bot.Send(msg)

	case strings.HasPrefix(data, "lang_"):
		loc := domain.Locale(strings.TrimPrefix(data, "lang_"))
		if loc != domain.LocaleRU && loc != domain.LocaleEN {
			return
		}
		if err := r.updateProfile(ctx, chatID, func(p *store.Profile) { p.Language = loc }); err != nil {
			r.log.Error("set language failed", zap.Int64("chatID", chatID), zap.Error(err))
			r.sendText(chatID, t["err"])
			return
		}
		nt := T[loc]
		msg := tgbotapi.NewMessage(chatID, nt["lang_set"])
		msg.ReplyMarkup = mainMenuKeyboard(nt)
		_, _ = r.bot.Send(msg)

	case data == "style":
		msg := tgbotapi.NewMessage(chatID, t["choose_style"])
		msg.ReplyMarkup = styleKeyboard()
		_, _ = r.bot.Send(msg)

	case strings.HasPrefix(data, "s_"):
		style := strings.TrimPrefix(data, "s_")
		if err := r.updateProfile(ctx, chatID, func(p *store.Profile) { p.Style = style }); err != nil {
			r.log.Error("set style failed", zap.Int64("chatID", chatID), zap.Error(err))
			r.sendText(chatID, t["err"])
			return
		}
		r.sendText(chatID, t["style_ok"])

	case data == "gender":
		msg := tgbotapi.NewMessage(chatID, t["q_gen"])
		msg.ReplyMarkup = genderKeyboard()
		_, _ = r.bot.Send(msg)

	case strings.HasPrefix(data, "g_"):
		g := strings.TrimPrefix(data, "g_")
		if g == "skip" {
			if err := r.updateProfile(ctx, chatID, func(p *store.Profile) { p.Gender = "" }); err == nil {
				r.sendText(chatID, t["reset"])
			}
			return
		}
		if err := r.updateProfile(ctx, chatID, func(p *store.Profile) { p.Gender = g }); err != nil {
			r.log.Error("set gender failed", zap.Int64("chatID", chatID), zap.Error(err))
			r.sendText(chatID, t["err"])
			return
		}
		r.sendText(chatID, fmt.Sprintf(t["saved"], t[g]))

	case data == "prof":
		r.handleProfile(ctx, chatID)

	case data == "clear":
		if err := r.profiles.Clear(ctx, chatID); err != nil {
			r.log.Error("clear profile failed", zap.Int64("chatID", chatID), zap.Error(err))
			r.sendText(chatID, t["err"])
			return
		}
		r.sendText(chatID, t["cleared"])

	case data == "rem":
		r.sendText(chatID, t["rem_fmt"])

	case strings.HasPrefix(data, "delete_reminder:"):
		id := strings.TrimPrefix(data, "delete_reminder:")
		if r.sched.Cancel(ctx, chatID, id) {
			r.sendText(chatID, t["reminder_deleted"])
		} else {
			r.sendText(chatID, t["err"])
		}

	default:
		// Unknown callback — ignore silently
	}
}

func (r *Router) handleProfile(ctx context.Context, chatID int64) {
	t := r.texts(ctx, chatID)

	p, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		p = &store.Profile{ChatID: chatID}
	}

	dash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	gender := "-"
	if p.Gender != "" {
		gender = t[p.Gender]
	}
	r.sendText(chatID, fmt.Sprintf("🧑‍💼 %s: %s\n%s: %s\n%s: %s",
		t["lang"], dash(string(p.Language)),
		t["style"], dash(p.Style),
		t["gen"], gender,
	))
}

// updateProfile applies mutate to the existing profile (or a fresh one) and
// persists it.
func (r *Router) updateProfile(ctx context.Context, chatID int64, mutate func(*store.Profile)) error {
	p, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			return err
		}
		p = &store.Profile{ChatID: chatID, Language: domain.LocaleRU, Style: "street"}
	}
	mutate(p)
	return r.profiles.Upsert(ctx, p)
}
