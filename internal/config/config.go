package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken      string `envconfig:"BOT_TOKEN" required:"true"`
	OpenAIKey     string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	DBPath        string `envconfig:"DB_PATH" default:"./data/bro247.db"`
	RemindersPath string `envconfig:"REMINDERS_PATH" default:"./data/reminders.json"`
	RunMode       string `envconfig:"RUN_MODE" default:"polling"` // polling|webhook
	WebhookURL    string `envconfig:"WEBHOOK_URL"`                // required in webhook mode
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
}

// Load reads an optional .env file, then the environment, into Config.
func Load() (Config, error) {
	// .env is a local-dev convenience; absence is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.RunMode != "polling" && cfg.RunMode != "webhook" {
		return cfg, fmt.Errorf("invalid RUN_MODE %q", cfg.RunMode)
	}
	if cfg.RunMode == "webhook" && cfg.WebhookURL == "" {
		return cfg, fmt.Errorf("WEBHOOK_URL is required in webhook mode")
	}
	return cfg, nil
}
