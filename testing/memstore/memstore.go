// Package memstore keeps games and boards in memory for tests that need a working game manager
// without Redis. Values are stored as JSON so readers never share state with writers.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
)

type Games struct {
	mu    sync.Mutex
	games map[string][]byte
}

func NewGames() *Games {
	return &Games{games: make(map[string][]byte)}
}

func (that *Games) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = data

	return nil
}

func (that *Games) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	data, ok := that.games[id]
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

type Boards struct {
	mu     sync.Mutex
	boards map[string][]string
}

func NewBoards() *Boards {
	return &Boards{boards: make(map[string][]string)}
}

func (that *Boards) Push(_ context.Context, gameID string, board *entity.Board) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.boards[gameID] = append(that.boards[gameID], board.String())

	return nil
}

func (that *Boards) History(_ context.Context, gameID string) ([]*entity.Board, error) {
	that.mu.Lock()
	items := append([]string(nil), that.boards[gameID]...)
	that.mu.Unlock()

	history := make([]*entity.Board, 0, len(items))
	for _, item := range items {
		var board entity.Board
		if err := json.Unmarshal([]byte(item), &board); err != nil {
			return nil, fmt.Errorf("failed to unmarshal board: %w", err)
		}
		history = append(history, &board)
	}

	return history, nil
}
