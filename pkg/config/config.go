package config

import (
	"georeview/internal/ai"
	"georeview/internal/integration"
	"georeview/internal/repository"

	"github.com/caarlos0/env/v11"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Repo        repository.Config `envPrefix:"REPO_"`
	StoreDriver string            `env:"STORE_DRIVER" envDefault:"postgres"`

	DiscordToken   string `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID string `env:"DISCORD_GUILD_ID" envDefault:""`
	TelegramToken  string `env:"TELEGRAM_TOKEN" envDefault:""`
	LogLevel       string `env:"LOGGER_LEVEL" envDefault:"debug"`

	AdminUserIDs     []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`
	TelegramAdminIDs []int64  `env:"TELEGRAM_ADMIN_IDS" envSeparator:","`

	// GeminiKeys seeds the credential store on first start.
	GeminiKeys []string `env:"GEMINI_KEYS" envSeparator:","`

	// Sharing reviews as Google Sheets is enabled when a service account file is set.
	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:""`
	GoogleOwnerEmail      string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`

	Gemini     ai.Config                    `envPrefix:"GEMINI_"`
	StreetView integration.StreetViewConfig `envPrefix:"STREETVIEW_"`
	GeoGuessr  integration.GeoGuessrConfig  `envPrefix:"GEOGUESSR_"`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
