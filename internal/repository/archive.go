package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GameRecord is a finished game kept in Postgres.
type GameRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsAgainstAI bool      `gorm:"default:false"`
	Player1Key  string
	Player2Key  string
	WinnerKey   string
	Outcome     int
	CreatedAt   time.Time
	EndedAt     *time.Time
	Boards      []BoardRecord `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE;"`
}

// BoardRecord is one snapshot of a finished game, numbered from zero.
type BoardRecord struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;index"`
	Number    int
	State     string `gorm:"type:jsonb"`
	CreatedAt time.Time
}

// ArchiveModels lists the models the archive needs migrated.
func ArchiveModels() []any {
	return []any{&GameRecord{}, &BoardRecord{}}
}

// Archive stores finished games. A nil *Archive is valid and does nothing.
type Archive struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) *Archive {
	if db == nil {
		return nil
	}

	return &Archive{db: db}
}

// Save stores a finished game together with its board history in one transaction.
func (that *Archive) Save(ctx context.Context, game *entity.Game, history []*entity.Board) error {
	if that == nil {
		return nil
	}

	id, err := uuid.Parse(game.ID)
	if err != nil {
		return fmt.Errorf("failed to parse game id %q: %w", game.ID, err)
	}

	record := GameRecord{
		ID:          id,
		IsAgainstAI: game.IsAgainstAI,
		Player1Key:  game.Player1Key,
		Player2Key:  game.Player2Key,
		WinnerKey:   game.WinnerKey,
		CreatedAt:   game.CreatedAt,
		EndedAt:     game.EndedAt,
	}
	if game.Outcome != nil {
		record.Outcome = int(*game.Outcome)
	}

	for i, board := range history {
		record.Boards = append(record.Boards, BoardRecord{
			GameID: id,
			Number: i,
			State:  board.String(),
		})
	}

	err = that.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&BoardRecord{}).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&record).Error
	})
	if err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

// FindByID returns an archived game with its boards ordered by number.
func (that *Archive) FindByID(ctx context.Context, id string) (*GameRecord, error) {
	if that == nil {
		return nil, apperror.ErrGameNotFound
	}

	gameID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse game id %q: %w", id, err)
	}

	var record GameRecord
	err = that.db.WithContext(ctx).
		Preload("Boards", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		First(&record, "id = ?", gameID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find archived game: %w", err)
	}

	return &record, nil
}

// Replay decodes the archived boards back into snapshots.
func (that *GameRecord) Replay() ([]*entity.Board, error) {
	boards := make([]*entity.Board, 0, len(that.Boards))
	for _, record := range that.Boards {
		board, err := decodeBoard(record.State)
		if err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}

	return boards, nil
}
