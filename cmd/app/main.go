package main

import (
	"context"
	"embed"

	"georeview/internal/ai"
	"georeview/internal/application"
	"georeview/internal/delivery/discord"
	"georeview/internal/delivery/telegram"
	"georeview/internal/integration"
	"georeview/internal/repository"
	"georeview/pkg/config"
	"georeview/pkg/logger"
	service "georeview/pkg/services"
	"georeview/pkg/sheets"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	repos, err := openRepository(&cfg, log)
	if err != nil {
		log.Error("failed to init store: %s", err.Error())
		return
	}
	defer repos.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	optimizer := ai.NewImageProcessor(cfg.StreetView.MaxWidth)
	streetView := integration.NewStreetViewClient(cfg.StreetView, optimizer, log)
	geoguessr := integration.NewGeoGuessrClient(cfg.GeoGuessr)
	gemini := ai.NewGeminiClient(cfg.Gemini)

	services := application.NewService(repos, geoguessr, streetView, gemini, cfg.GeoGuessr.PlayerID, log)

	if cfg.GoogleCredentialsFile != "" {
		client, err := sheets.NewGoogleSheetsClient(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			log.Warn("sheet sharing disabled: %s", err.Error())
		} else {
			services.Sheets = application.NewSheetPublisher(client, repos.Store, cfg.GoogleOwnerEmail, log)
		}
	}

	seeded, err := services.Credentials.Seed(ctx, cfg.GeminiKeys)
	if err != nil {
		log.Warn("failed to seed credentials from GEMINI_KEYS: %s", err.Error())
	} else if seeded {
		log.Info("seeded %d API keys from GEMINI_KEYS", len(cfg.GeminiKeys))
	}

	manager := service.NewManager(log)

	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(&cfg, services, log)
		if err != nil {
			log.Error("failed to init discord bot: %s", err.Error())
			return
		}
		manager.AddService(bot)
	}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAdminIDs, services, log)
		if err != nil {
			log.Error("failed to init telegram bot: %s", err.Error())
			return
		}
		manager.AddService(bot)
	}

	if err := manager.Run(ctx); err != nil {
		log.Error("service manager stopped: %s", err.Error())
	}
	log.Info("Bot Stopped")
}

func openRepository(cfg *config.Config, log *logger.Logger) (*repository.Repository, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("using in-memory store, reviews and keys are lost on restart")
		return repository.NewMemoryRepository(), nil
	}

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		return nil, err
	}

	log.Info("Running migrations...")
	if err := repository.RunMigrations(db, migrationFS, "migrations"); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("Migrations applied successfully")

	return repository.NewRepository(db), nil
}
