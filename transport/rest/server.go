package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/rocketscienceinc/stackysides/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type gameService interface {
	CreateGame(ctx context.Context, creatorKey string, isAgainstAI bool) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, sessionKey string) (entity.PlayerNum, *entity.Game, error)
	Game(ctx context.Context, gameID string) (*entity.Game, error)
}

type Server struct {
	logger     *slog.Logger
	game       gameService
	baseURL    *url.URL
	socketPort string

	router *httprouter.Router
}

// New builds the HTTP API. Links handed to clients are resolved against baseURL; the WebSocket
// link uses the same host on socketPort.
func New(logger *slog.Logger, game gameService, baseURL, socketPort string) (*Server, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	server := &Server{
		logger:     logger.With("component", "rest"),
		game:       game,
		baseURL:    base,
		socketPort: socketPort,
		router:     httprouter.New(),
	}

	server.router.GET("/ping", handlers.PingHandler)
	server.router.POST("/game", server.createGame)
	server.router.GET("/game/:id/share", server.shareGame)
	server.router.GET("/game/:id/qr", server.qrCode)
	server.router.GET("/game/:id/play", server.playGame)

	return server, nil
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
