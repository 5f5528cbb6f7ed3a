package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/rocketscienceinc/stackysides/internal/protocol"
	"github.com/rocketscienceinc/stackysides/pkg/handlers"
	"github.com/rocketscienceinc/stackysides/pkg/session"
)

const shutdownTimeout = 5 * time.Second

type gameService interface {
	PlayerNum(ctx context.Context, gameID, sessionKey string) (entity.PlayerNum, error)
	Game(ctx context.Context, gameID string) (*entity.Game, error)
	Board(ctx context.Context, gameID string) (*entity.Board, error)
	Select(ctx context.Context, gameID string, player entity.PlayerNum, row, col int) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, client *client, message protocol.Message) error

type Server struct {
	logger   *slog.Logger
	game     gameService
	upgrader websocket.Upgrader

	handlers map[protocol.Kind]handlerFunc

	mu   sync.Mutex
	hubs map[string]*hub
}

func New(logger *slog.Logger, game gameService) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		game:   game,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},

		handlers: make(map[protocol.Kind]handlerFunc),
		hubs:     make(map[string]*hub),
	}

	server.handlers[protocol.KindSelection] = server.handleSelection

	return server
}

func (that *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/ping", handlers.PingHandler)
	router.GET("/game/:id/ws", that.serveGame)

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
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

		that.closeAll()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveGame upgrades the request and keeps the connection in the game's hub until it closes.
func (that *Server) serveGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("id")
	log := that.logger.With("method", "serveGame", "game_id", gameID)

	sessionKey := session.FromRequest(r)

	playerNum, err := that.game.PlayerNum(r.Context(), gameID, sessionKey)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to resolve player", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn, entity.Player{SessionKey: sessionKey, GameID: gameID, Num: playerNum})
	that.join(c)

	log.Info("WebSocket connection established", "player_num", playerNum, "spectator", c.player.IsSpectator())

	go c.writePump()

	ctx := r.Context()
	if err = that.sendSnapshot(ctx, c); err != nil {
		log.Error("failed to send snapshot", "error", err)
	}

	c.readPump(func(text string) {
		that.handleMessage(ctx, c, text)
	})

	that.leave(c)

	log.Info("WebSocket connection closed", "player_num", playerNum)
}

// handleMessage - processes a message from the client.
func (that *Server) handleMessage(ctx context.Context, c *client, text string) {
	log := that.logger.With("method", "handleMessage", "game_id", c.player.GameID)

	message, err := protocol.Parse(text)
	if err != nil {
		log.Warn("failed to parse message", "error", err)
		return
	}

	handler, ok := that.handlers[message.Kind]
	if !ok {
		log.Warn("unexpected message from client", "kind", message.Kind.String())
		return
	}

	if err = handler(ctx, c, message); err != nil {
		log.Error("error processing message", "error", err)
	}
}

func (that *Server) handleSelection(ctx context.Context, c *client, message protocol.Message) error {
	log := that.logger.With("method", "handleSelection", "game_id", c.player.GameID, "player_num", c.player.Num)

	game, err := that.game.Select(ctx, c.player.GameID, c.player.Num, message.Move.Row, message.Move.Col)
	if err != nil {
		log.Info("move rejected", "row", message.Move.Row, "col", message.Move.Col, "error", err)

		return that.sendSnapshot(ctx, c)
	}

	c.hub.broadcast(protocol.FormatBoard(game.Board))

	if game.IsFinished() && game.Outcome != nil {
		c.hub.broadcast(protocol.FormatEnd(*game.Outcome))
	}

	return nil
}

// sendSnapshot sends the latest board to one client, followed by the outcome when the game is over.
func (that *Server) sendSnapshot(ctx context.Context, c *client) error {
	board, err := that.game.Board(ctx, c.player.GameID)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}

	c.send(protocol.FormatBoard(board))

	game, err := that.game.Game(ctx, c.player.GameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	if game.IsFinished() && game.Outcome != nil {
		c.send(protocol.FormatEnd(*game.Outcome))
	}

	return nil
}

// join adds the client to its game's hub, creating the hub for the first connection.
func (that *Server) join(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	h, ok := that.hubs[c.player.GameID]
	if !ok {
		h = newHub()
		that.hubs[c.player.GameID] = h
	}

	h.register(c)
}

// leave removes the client and drops the hub once the game has no connection left.
func (that *Server) leave(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if c.hub.unregister(c) == 0 && that.hubs[c.player.GameID] == c.hub {
		delete(that.hubs, c.player.GameID)
	}
}

func (that *Server) connections(gameID string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	h, ok := that.hubs[gameID]
	if !ok {
		return 0
	}

	return h.size()
}

func (that *Server) closeAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for gameID, h := range that.hubs {
		h.close()
		delete(that.hubs, gameID)
	}
}
