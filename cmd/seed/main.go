package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"eventboard/internal/auth"
	"eventboard/internal/config"
	"eventboard/internal/db"
	"eventboard/internal/logging"
	"eventboard/internal/service"
	"eventboard/internal/validation"
)

func main() {
	cfg := config.Load()
	app := &cli.App{
		Name:  "eventboard-seed",
		Usage: "Load users and events from a JSON fixture",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "source",
				Aliases:  []string{"s"},
				Usage:    "Fixture file path or http(s) URL",
				EnvVars:  []string{"SEED_SOURCE"},
				Required: true,
			},
			&cli.StringFlag{
				Name:        "store",
				Usage:       "Store driver: mongo, mysql or memory",
				EnvVars:     []string{"STORE_DRIVER"},
				Value:       cfg.StoreDriver,
				Destination: &cfg.StoreDriver,
			},
		},
		Action: func(appCtx *cli.Context) error {
			ctx := logging.WithLogger(appCtx.Context, logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr))
			return run(ctx, cfg, appCtx.String("source"))
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
}

func run(ctx context.Context, cfg *config.Config, source string) error {
	logger := logging.FromContext(ctx)

	fx, err := loadFixture(ctx, source)
	if err != nil {
		return err
	}
	logger.Info().Str("source", source).Int("users", len(fx.Users)).Int("events", len(fx.Events)).Msg("Fixture loaded")

	store, err := db.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	s := &seeder{
		users:  service.NewUserService(store.Users, auth.NewPasswordHasher(cfg.BcryptCost), auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL, cfg.JWTIssuer), auth.NewMemoryTokenStore()),
		events: service.NewEventService(store.Events, nil),
		lookup:   store.Users,
		validate: validation.New(),
	}
	result, err := s.seed(ctx, fx)
	if err != nil {
		return err
	}

	logger.Info().
		Int("users_created", result.UsersCreated).
		Int("users_skipped", result.UsersSkipped).
		Int("events_created", result.EventsCreated).
		Msg("Seed completed")
	return nil
}
