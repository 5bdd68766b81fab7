package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"eventboard/docs"
	"eventboard/internal/auth"
	"eventboard/internal/cache"
	"eventboard/internal/config"
	"eventboard/internal/db"
	"eventboard/internal/handler"
	"eventboard/internal/logging"
	"eventboard/internal/router"
	"eventboard/internal/service"
)

// @title Eventboard API
// @version 1.0
// @description User registration, login and an authenticated event board.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	app := &cli.App{
		Name:  "eventboard",
		Usage: "Serve the eventboard JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "port",
				Usage:       "Port to listen on",
				EnvVars:     []string{"PORT"},
				Value:       cfg.ServerPort,
				Destination: &cfg.ServerPort,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Minimum log level (debug, info, warn, error)",
				EnvVars:     []string{"LOG_LEVEL"},
				Value:       cfg.LogLevel,
				Destination: &cfg.LogLevel,
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
			return run(appCtx.Context, cfg)
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx = logging.WithLogger(ctx, logger)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.InsecureSecret() {
		logger.Warn().Msg("JWT_SECRET is unset or uses the default value; tokens can be forged")
	}
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	store, err := db.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error().Err(err).Msg("Closing store")
		}
	}()
	logger.Info().Str("driver", cfg.StoreDriver).Msg("Store ready")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	var tokens auth.TokenStoreInterface
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Redis unreachable, revocations will fail open until it recovers")
		}
		tokens = auth.NewTokenStore(cacheClient)
	} else {
		logger.Info().Msg("REDIS_ADDR not set, using in-process revocation list and no event cache")
		tokens = auth.NewMemoryTokenStore()
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL, cfg.JWTIssuer)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	userService := service.NewUserService(store.Users, hasher, jwtService, tokens)
	eventService := service.NewEventService(store.Events, cacheClient)

	e := echo.New()
	router.Register(e, router.Handlers{
		Users:  handler.NewUserHandler(userService),
		Events: handler.NewEventHandler(eventService),
		Health: handler.NewHealthHandler(store),
	}, auth.NewMiddleware(jwtService, tokens))

	return serve(ctx, e, ":"+cfg.ServerPort)
}

// serve blocks until ctx is cancelled or the listener fails.
func serve(ctx context.Context, e *echo.Echo, addr string) error {
	logger := logging.FromContext(ctx).With().Str("server.addr", addr).Logger()
	e.Server.ReadHeaderTimeout = time.Minute
	e.Server.ReadTimeout = time.Minute
	e.Server.WriteTimeout = time.Minute
	e.Server.IdleTimeout = 5 * time.Minute

	errc := make(chan error, 1)
	go func() {
		logger.Info().Msg("Starting HTTP server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Initiating shutdown process")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("Shutdown completed")
	return <-errc
}
