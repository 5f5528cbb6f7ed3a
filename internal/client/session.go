// Package client runs the player side of a game: it keeps a move controller in sync with the
// server over a WebSocket and exposes selections and views to a rendering layer.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/stackysides/internal/controller"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/rocketscienceinc/stackysides/internal/protocol"
	"github.com/rocketscienceinc/stackysides/internal/rules"
	"github.com/rocketscienceinc/stackysides/transport/rest"
)

var ErrSessionClosed = errors.New("session closed")

const eventBuffer = 16

type Option func(*Session)

func WithRuleset(ruleset rules.Ruleset) Option {
	return func(that *Session) {
		that.ruleset = ruleset
	}
}

// WithOnUpdate registers a callback that receives a fresh view after every server message.
// It runs on the session goroutine.
func WithOnUpdate(onUpdate func(view controller.View)) Option {
	return func(that *Session) {
		that.onUpdate = onUpdate
	}
}

// Session owns the controller. Server messages and local requests are handled one at a time,
// in the order they arrive, on the goroutine running Run.
type Session struct {
	logger   *slog.Logger
	conn     *websocket.Conn
	ctrl     *controller.MoveController
	ruleset  rules.Ruleset
	onUpdate func(view controller.View)

	events   chan func()
	done     chan struct{}
	writeErr error
}

func NewSession(logger *slog.Logger, conn *websocket.Conn, play *rest.PlayResponse, opts ...Option) (*Session, error) {
	board, err := entity.NewBoardFromRows(play.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to read bootstrap board: %w", err)
	}

	that := &Session{
		logger:  logger.With("component", "client", "game_id", play.GameID),
		conn:    conn,
		ruleset: rules.Default,
		events:  make(chan func(), eventBuffer),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(that)
	}

	that.ctrl = controller.New(board, play.PlayerNum, controller.MoveSinkFunc(that.sendMove),
		controller.WithRuleset(that.ruleset),
		controller.WithAgainstAI(play.IsAgainstAI),
	)

	if play.Outcome != nil {
		that.ctrl.SetOutcome(*play.Outcome)
	}

	return that, nil
}

// Run processes events until ctx is done or the connection closes.
func (that *Session) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	defer close(that.done)
	defer that.conn.Close()

	readErr := make(chan error, 1)
	go that.readLoop(ctx, readErr)

	for {
		select {
		case <-ctx.Done():
			_ = that.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("server closed the connection")
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		case event := <-that.events:
			event()

			if that.writeErr != nil {
				return fmt.Errorf("failed to send move: %w", that.writeErr)
			}
		}
	}
}

// Select forwards a cell selection to the controller and reports whether it was sent.
func (that *Session) Select(ctx context.Context, row, col int) (bool, error) {
	reply := make(chan bool, 1)

	err := that.post(ctx, func() {
		_, ok := that.ctrl.AttemptSelect(row, col)
		reply <- ok
	})
	if err != nil {
		return false, err
	}

	return receive(ctx, that.done, reply)
}

// View returns what the rendering layer needs to paint the game.
func (that *Session) View(ctx context.Context) (controller.View, error) {
	reply := make(chan controller.View, 1)

	err := that.post(ctx, func() {
		reply <- that.ctrl.View()
	})
	if err != nil {
		return controller.View{}, err
	}

	return receive(ctx, that.done, reply)
}

func (that *Session) post(ctx context.Context, event func()) error {
	select {
	case that.events <- event:
		return nil
	case <-that.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func receive[T any](ctx context.Context, done <-chan struct{}, reply <-chan T) (T, error) {
	var zero T

	select {
	case value := <-reply:
		return value, nil
	case <-done:
		return zero, ErrSessionClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (that *Session) readLoop(ctx context.Context, readErr chan<- error) {
	for {
		_, data, err := that.conn.ReadMessage()
		if err != nil {
			readErr <- err
			return
		}

		text := string(data)
		select {
		case that.events <- func() { that.handleMessage(text) }:
		case <-ctx.Done():
			return
		case <-that.done:
			return
		}
	}
}

// handleMessage applies one server message. Messages that cannot be parsed are dropped.
func (that *Session) handleMessage(text string) {
	log := that.logger.With("method", "handleMessage")

	message, err := protocol.Parse(text)
	if err != nil {
		log.Warn("failed to parse message", "error", err)
		return
	}

	switch message.Kind {
	case protocol.KindBoard:
		if err = that.ctrl.ReplaceBoard(message.Board); err != nil {
			log.Warn("rejected board", "error", err)
			return
		}
	case protocol.KindEnd:
		that.ctrl.SetOutcome(message.Outcome)
	case protocol.KindSelection:
		log.Debug("ignoring selection echoed by server")
		return
	}

	if that.onUpdate != nil {
		that.onUpdate(that.ctrl.View())
	}
}

// sendMove runs on the session goroutine, which makes it the only writer on conn.
func (that *Session) sendMove(move entity.Move) {
	if that.writeErr != nil {
		return
	}

	if err := that.conn.WriteMessage(websocket.TextMessage, []byte(protocol.FormatSelection(move))); err != nil {
		that.writeErr = err
	}
}
