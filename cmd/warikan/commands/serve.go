package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/susu3304/warikan/internal/api"
	"github.com/susu3304/warikan/internal/bot"
	"github.com/susu3304/warikan/internal/config"
	"github.com/susu3304/warikan/internal/db"
	"github.com/susu3304/warikan/internal/logger"
	"github.com/susu3304/warikan/internal/render"
	"github.com/susu3304/warikan/internal/split"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the Discord bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, err := logger.New(cfg.LogMode)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	var recorder split.Recorder
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		recorder = database
	} else {
		log.Warn("DATABASE_URL not set; settlement history is disabled")
	}

	svc := split.NewService(log, recorder)
	botFormat := render.Formatter{Symbol: cfg.CurrencySymbol, Places: cfg.CurrencyPlaces, Messages: render.Japanese}

	if cfg.DiscordToken != "" {
		discordBot, err := bot.New(cfg.DiscordToken, svc, botFormat, log)
		if err != nil {
			return err
		}
		if err := discordBot.Start(); err != nil {
			return err
		}
		defer discordBot.Stop()
	}

	var apiServer *api.API
	errCh := make(chan error, 1)
	if cfg.WebEnabled {
		apiServer = api.New(cfg, svc, log)
		go func() {
			errCh <- apiServer.Start()
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("API server error: %w", err)
		}
		errCh = nil
	}

	log.Info("Shutting down...")
	if apiServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("API server shutdown", "error", err)
		}
		if errCh != nil {
			if err := <-errCh; err != nil {
				log.Warn("API server stopped", "error", err)
			}
		}
	}
	return nil
}
