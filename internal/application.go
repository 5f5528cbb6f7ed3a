package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/stackysides/internal/config"
	"github.com/rocketscienceinc/stackysides/internal/repository"
	"github.com/rocketscienceinc/stackysides/internal/repository/storage"
	"github.com/rocketscienceinc/stackysides/internal/rules"
	"github.com/rocketscienceinc/stackysides/internal/usecase"
	"github.com/rocketscienceinc/stackysides/transport/rest"
	"github.com/rocketscienceinc/stackysides/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	opts := []usecase.Option{
		usecase.WithBoardSize(conf.Game.BoardSize),
		usecase.WithRuleset(rules.Ruleset{
			SkipIsolation: !conf.Game.HorizontalIsolation,
			WinLength:     conf.Game.WinLength,
		}),
	}

	if conf.Postgres.DSN != "" {
		postgresStorage, pgErr := storage.NewPostgresStorage(conf.Postgres.DSN, repository.ArchiveModels()...)
		if pgErr != nil {
			return fmt.Errorf("could not connect to postgres storage: %w", pgErr)
		}

		defer func() {
			if err = postgresStorage.Close(); err != nil {
				log.Error("could not close postgres storage", "error", err)
			}
		}()

		opts = append(opts, usecase.WithArchive(repository.NewArchiveRepository(postgresStorage.Connection)))
		log.Info("Archiving finished games to postgres")
	}

	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	boardRepo := repository.NewBoardRepository(redisStorage.Connection)
	gameManager := usecase.NewGameManager(logger, gameRepo, boardRepo, opts...)

	restServer, err := rest.New(logger, gameManager, conf.BaseURL, conf.SocketPort)
	if err != nil {
		return fmt.Errorf("could not create HTTP server: %w", err)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
