package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mixmixailov/BRO247/internal/ai"
	"github.com/mixmixailov/BRO247/internal/config"
	"github.com/mixmixailov/BRO247/internal/scheduler"
	"github.com/mixmixailov/BRO247/internal/store"
	"github.com/mixmixailov/BRO247/internal/telegram"
)

// App wires configuration, storage, the reminder scheduler and the Telegram
// transport together and runs the update loop.
type App struct {
	cfg      config.Config
	log      *zap.Logger
	bot      *tgbotapi.BotAPI
	httpSrv  *http.Server
	profiles store.Profiles
	sched    *scheduler.Scheduler
	router   *telegram.Router

	// webhookCh carries updates decoded by the HTTP handler in webhook mode.
	webhookCh chan tgbotapi.Update
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	a := &App{
		cfg:       cfg,
		log:       log,
		bot:       bot,
		webhookCh: make(chan tgbotapi.Update, 128),
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Post("/webhook", a.handleWebhook)
	a.httpSrv = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return a, nil
}

// handleWebhook decodes a Telegram update and queues it for the router.
func (a *App) handleWebhook(w http.ResponseWriter, req *http.Request) {
	var upd tgbotapi.Update
	if err := json.NewDecoder(req.Body).Decode(&upd); err != nil {
		a.log.Warn("bad webhook payload", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	select {
	case a.webhookCh <- upd:
		w.WriteHeader(http.StatusOK)
	default:
		a.log.Warn("webhook queue full, update dropped")
		w.WriteHeader(http.StatusServiceUnavailable)
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting bro247",
		zap.String("mode", a.cfg.RunMode),
		zap.String("http", a.cfg.HTTPAddr),
	)

	profiles, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.profiles = profiles
	a.log.Info("sqlite ready")

	reminders := store.NewFileStore(a.cfg.RemindersPath, a.log)
	aiClient := ai.New(a.cfg.OpenAIKey, a.cfg.OpenAIModel, a.log)

	// Router implements scheduler.Sink and also depends on the scheduler,
	// so the sink is attached after both exist.
	a.sched = scheduler.New(reminders, nil, a.log)
	a.router = telegram.NewRouter(a.bot, a.log, a.profiles, a.sched, aiClient)
	a.sched.SetSink(a.router)

	// Rebuild timers from durable state before accepting any updates.
	a.sched.Reconcile(ctx)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	updCh, err := a.updates()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.shutdown()
			return nil
		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

// updates returns the update source for the configured run mode.
func (a *App) updates() (<-chan tgbotapi.Update, error) {
	if a.cfg.RunMode == "webhook" {
		wh, err := tgbotapi.NewWebhook(a.cfg.WebhookURL)
		if err != nil {
			return nil, err
		}
		if _, err := a.bot.Request(wh); err != nil {
			return nil, err
		}
		a.log.Info("webhook registered", zap.String("url", a.cfg.WebhookURL))
		return a.webhookCh, nil
	}

	// Polling mode: make sure no stale webhook intercepts updates.
	if _, err := a.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		a.log.Warn("delete webhook failed", zap.Error(err))
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	return a.bot.GetUpdatesChan(u), nil
}

func (a *App) shutdown() {
	a.sched.Stop()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := a.httpSrv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}

	if a.profiles != nil {
		_ = a.profiles.Close()
	}
}
