package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mixmixailov/BRO247/internal/ai"
	"github.com/mixmixailov/BRO247/internal/domain"
	"github.com/mixmixailov/BRO247/internal/scheduler"
	"github.com/mixmixailov/BRO247/internal/store"
)

// Router wires Telegram updates to handlers. It also implements
// scheduler.Sink, so fired reminders go out through the same bot.
type Router struct {
	bot      *tgbotapi.BotAPI
	log      *zap.Logger
	profiles store.Profiles
	sched    *scheduler.Scheduler
	ai       *ai.Client
}

// NewRouter creates a Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, profiles store.Profiles, sched *scheduler.Scheduler, aiClient *ai.Client) *Router {
	return &Router{
		bot:      bot,
		log:      log,
		profiles: profiles,
		sched:    sched,
		ai:       aiClient,
	}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil && upd.Message.Text != "" {
		msg := upd.Message
		chatID := msg.Chat.ID
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.handleStart(ctx, chatID)
		case strings.HasPrefix(text, "/reminders"):
			r.handleReminders(ctx, chatID)
		case strings.HasPrefix(text, "/addreminder"):
			r.handleAddReminder(ctx, chatID, strings.TrimSpace(strings.TrimPrefix(text, "/addreminder")))
		default:
			r.handleFreeText(ctx, chatID, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		r.handleCallback(ctx, upd.CallbackQuery)
	}
}

// Send delivers a fired reminder body to the chat, wrapped in the localized
// alert format. This makes Router satisfy scheduler.Sink.
func (r *Router) Send(chatID int64, text string) error {
	t := r.texts(context.Background(), chatID)
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf(t["reminder_alert"], text)))
	return err
}

// locale returns the chat's configured language, defaulting to RU.
func (r *Router) locale(ctx context.Context, chatID int64) domain.Locale {
	p, err := r.profiles.Get(ctx, chatID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			r.log.Warn("profile lookup failed", zap.Int64("chatID", chatID), zap.Error(err))
		}
		return domain.LocaleRU
	}
	if p.Language == domain.LocaleEN {
		return domain.LocaleEN
	}
	return domain.LocaleRU
}

func (r *Router) texts(ctx context.Context, chatID int64) map[string]string {
	return T[r.locale(ctx, chatID)]
}

func (r *Router) sendText(chatID int64, text string) {
	if _, err := r.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		r.log.Warn("send failed", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (r *Router) answerCallback(id string) {
	if _, err := r.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		r.log.Warn("answer callback failed", zap.Error(err))
	}
}
