package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
)

// BoardRepository keeps every snapshot of a game in order, oldest first.
type BoardRepository interface {
	Push(ctx context.Context, gameID string, board *entity.Board) error
	Latest(ctx context.Context, gameID string) (*entity.Board, error)
	History(ctx context.Context, gameID string) ([]*entity.Board, error)
	DeleteByGameID(ctx context.Context, gameID string) error
}

type dbBoard struct {
	client *redis.Client
}

func NewBoardRepository(client *redis.Client) BoardRepository {
	return &dbBoard{
		client: client,
	}
}

func boardKey(gameID string) string {
	return "board:" + gameID
}

func (that *dbBoard) Push(ctx context.Context, gameID string, board *entity.Board) error {
	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	if err = that.client.RPush(ctx, boardKey(gameID), boardJSON).Err(); err != nil {
		return fmt.Errorf("failed to push board: %w", err)
	}

	return nil
}

func (that *dbBoard) Latest(ctx context.Context, gameID string) (*entity.Board, error) {
	response, err := that.client.LIndex(ctx, boardKey(gameID), -1).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get latest board: %w", err)
	}

	return decodeBoard(response)
}

func (that *dbBoard) History(ctx context.Context, gameID string) ([]*entity.Board, error) {
	response, err := that.client.LRange(ctx, boardKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get board history: %w", err)
	}

	history := make([]*entity.Board, 0, len(response))
	for _, item := range response {
		board, err := decodeBoard(item)
		if err != nil {
			return nil, err
		}
		history = append(history, board)
	}

	return history, nil
}

func (that *dbBoard) DeleteByGameID(ctx context.Context, gameID string) error {
	if err := that.client.Del(ctx, boardKey(gameID)).Err(); err != nil {
		return fmt.Errorf("failed to delete board history: %w", err)
	}

	return nil
}

func decodeBoard(data string) (*entity.Board, error) {
	var board entity.Board
	if err := json.Unmarshal([]byte(data), &board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}

	return &board, nil
}
