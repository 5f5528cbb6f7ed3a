package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/rocketscienceinc/stackysides/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finishedGame(t *testing.T) (*entity.Game, []*entity.Board) {
	t.Helper()

	game := entity.NewGame(uuid.NewString(), "alice", false, 3)
	game.AssignSeat("bob")

	history := []*entity.Board{game.Board.Clone()}
	require.NoError(t, game.Board.Set(0, 0, entity.Player1))
	history = append(history, game.Board.Clone())
	require.NoError(t, game.Board.Set(0, 2, entity.Player2))
	history = append(history, game.Board.Clone())

	game.Finish(entity.Player2Wins, time.Now().UTC())

	return game, history
}

func TestArchive_SaveAndFindByID(t *testing.T) {
	ctx, st := suite.NewPostgres(t, ArchiveModels()...)

	archive := NewArchiveRepository(st.Postgres)

	// Given: a finished game with three snapshots
	game, history := finishedGame(t)

	// When: the game is archived
	err := archive.Save(ctx, game, history)

	// Then: it can be found again with its boards in order
	require.NoError(t, err)

	record, err := archive.FindByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", record.WinnerKey)
	assert.Equal(t, int(entity.Player2Wins), record.Outcome)
	require.Len(t, record.Boards, len(history))

	replay, err := record.Replay()
	require.NoError(t, err)
	for i := range history {
		assert.True(t, history[i].Equal(replay[i]), "snapshot %d", i)
	}
}

func TestArchive_SaveTwiceReplacesBoards(t *testing.T) {
	ctx, st := suite.NewPostgres(t, ArchiveModels()...)

	archive := NewArchiveRepository(st.Postgres)

	// Given: a game archived once
	game, history := finishedGame(t)
	require.NoError(t, archive.Save(ctx, game, history))

	// When: it is archived again with a shorter history
	require.NoError(t, archive.Save(ctx, game, history[:1]))

	// Then: only the new history is kept
	record, err := archive.FindByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Len(t, record.Boards, 1)
}

func TestArchive_FindByID_NotFound(t *testing.T) {
	ctx, st := suite.NewPostgres(t, ArchiveModels()...)

	archive := NewArchiveRepository(st.Postgres)

	// When: an unknown game is looked up
	_, err := archive.FindByID(ctx, uuid.NewString())

	// Then: ErrGameNotFound is returned
	require.ErrorIs(t, err, apperror.ErrGameNotFound)
}

func TestArchive_Nil(t *testing.T) {
	// Given: no database configured
	archive := NewArchiveRepository(nil)

	// When: a game is saved
	game, history := finishedGame(t)
	err := archive.Save(context.Background(), game, history)

	// Then: nothing happens
	require.NoError(t, err)

	_, err = archive.FindByID(context.Background(), game.ID)
	require.ErrorIs(t, err, apperror.ErrGameNotFound)
}
