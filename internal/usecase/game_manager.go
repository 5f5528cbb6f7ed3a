package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/rocketscienceinc/stackysides/internal/rules"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type boardRepo interface {
	Push(ctx context.Context, gameID string, board *entity.Board) error
	History(ctx context.Context, gameID string) ([]*entity.Board, error)
}

type gameArchive interface {
	Save(ctx context.Context, game *entity.Game, history []*entity.Board) error
}

type Option func(*GameManager)

func WithRuleset(ruleset rules.Ruleset) Option {
	return func(that *GameManager) {
		that.ruleset = ruleset
	}
}

// WithArchive stores finished games with their board history.
func WithArchive(archive gameArchive) Option {
	return func(that *GameManager) {
		that.archive = archive
	}
}

func WithBoardSize(size int) Option {
	return func(that *GameManager) {
		if size > 0 {
			that.boardSize = size
		}
	}
}

// GameManager owns the authoritative state of every game. Moves on the same game are serialized.
type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	boardRepo boardRepo
	archive   gameArchive

	ruleset   rules.Ruleset
	boardSize int
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, boardRepo boardRepo, opts ...Option) *GameManager {
	manager := &GameManager{
		logger:    logger,
		gameRepo:  gameRepo,
		boardRepo: boardRepo,
		ruleset:   rules.Default,
		boardSize: entity.DefaultBoardSize,
		now:       func() time.Time { return time.Now().UTC() },
		locks:     make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

func (that *GameManager) Ruleset() rules.Ruleset {
	return that.ruleset
}

// CreateGame starts a game with the creator in the first seat.
func (that *GameManager) CreateGame(ctx context.Context, creatorKey string, isAgainstAI bool) (*entity.Game, error) {
	log := that.logger.With("method", "CreateGame")

	game := entity.NewGame(uuid.NewString(), creatorKey, isAgainstAI, that.boardSize)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := that.boardRepo.Push(ctx, game.ID, game.Board); err != nil {
		return nil, fmt.Errorf("failed to push initial board: %w", err)
	}

	log.Info("game created", "game_id", game.ID, "is_against_ai", isAgainstAI)

	return game, nil
}

// JoinGame seats the session in the game if a seat is free and reports the seat it holds.
func (that *GameManager) JoinGame(ctx context.Context, gameID, sessionKey string) (entity.PlayerNum, *entity.Game, error) {
	log := that.logger.With("method", "JoinGame")

	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return entity.Spectator, nil, err
	}

	seat, changed := game.AssignSeat(sessionKey)
	if changed {
		if err = that.updateGame(ctx, game); err != nil {
			return entity.Spectator, nil, err
		}

		log.Info("player seated", "game_id", gameID, "player_num", seat)
	}

	return seat, game, nil
}

// PlayerNum looks up the seat of a session without assigning one.
func (that *GameManager) PlayerNum(ctx context.Context, gameID, sessionKey string) (entity.PlayerNum, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return entity.Spectator, err
	}

	return game.SeatOf(sessionKey), nil
}

func (that *GameManager) Game(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.getGameByID(ctx, gameID)
}

// Board returns the board stored on the game record.
func (that *GameManager) Board(ctx context.Context, gameID string) (*entity.Board, error) {
	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return game.Board, nil
}

// Select places the player's stone and evaluates the outcome. The returned game reflects the move.
func (that *GameManager) Select(ctx context.Context, gameID string, player entity.PlayerNum, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "Select", "game_id", gameID, "player_num", player)

	unlock := that.lock(gameID)
	defer unlock()

	game, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = that.validate(game, player, row, col); err != nil {
		return game, err
	}

	if err = game.Board.Set(row, col, player.Cell()); err != nil {
		return game, fmt.Errorf("failed to place stone: %w", err)
	}

	outcome, over := that.ruleset.Outcome(game.Board)
	if over {
		game.Finish(outcome, that.now())
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	// The game record is authoritative; history only feeds the archive.
	if err = that.boardRepo.Push(ctx, gameID, game.Board); err != nil {
		log.Error("failed to push board history", "error", err)
	}

	log.Debug("stone placed", "row", row, "col", col)

	if over {
		log.Info("game finished", "outcome", outcome.String())
		that.archiveGame(ctx, game)
	}

	return game, nil
}

func (that *GameManager) validate(game *entity.Game, player entity.PlayerNum, row, col int) error {
	switch {
	case game.IsFinished():
		return apperror.ErrGameFinished
	case !player.IsPlayer():
		return apperror.ErrSpectator
	case that.ruleset.CurrentTurn(game.Board) != player:
		return apperror.ErrNotYourTurn
	case !that.ruleset.IsSelectable(game.Board, row, col):
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrIllegalCell, row, col)
	}

	return nil
}

func (that *GameManager) archiveGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "archiveGame", "game_id", game.ID)

	if that.archive == nil {
		return
	}

	history, err := that.boardRepo.History(ctx, game.ID)
	if err != nil {
		log.Error("failed to read board history", "error", err)
		return
	}

	if err = that.archive.Save(ctx, game, history); err != nil {
		log.Error("failed to archive game", "error", err)
		return
	}

	log.Info("game archived", "boards", len(history))
}

func (that *GameManager) lock(gameID string) func() {
	that.mu.Lock()
	gameLock, ok := that.locks[gameID]
	if !ok {
		gameLock = &sync.Mutex{}
		that.locks[gameID] = gameLock
	}
	that.mu.Unlock()

	gameLock.Lock()

	return gameLock.Unlock
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
