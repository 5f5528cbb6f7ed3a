package protocol

import (
	"testing"

	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/controller"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Board(t *testing.T) {
	t.Run("Parses a snapshot case-insensitively", func(t *testing.T) {
		for _, text := range []string{"board [[1,0],[0,2]]", "BOARD [[1,0],[0,2]]", "Board  [[1,0],[0,2]] "} {
			msg, err := Parse(text)

			require.NoError(t, err, text)
			assert.Equal(t, KindBoard, msg.Kind)
			assert.Equal(t, [][]int{{1, 0}, {0, 2}}, msg.Board.IntRows())
		}
	})

	t.Run("Rejects ragged snapshots", func(t *testing.T) {
		_, err := Parse("board [[1,0],[0]]")

		assert.ErrorIs(t, err, apperror.ErrMalformedSnapshot)
	})

	t.Run("Rejects non-json payloads", func(t *testing.T) {
		_, err := Parse("board nope")

		assert.ErrorIs(t, err, apperror.ErrMalformedSnapshot)
	})
}

func TestParse_End(t *testing.T) {
	testCases := map[string]entity.Outcome{
		"end 0": entity.Tie,
		"end 1": entity.Player1Wins,
		"END 2": entity.Player2Wins,
	}

	for text, expected := range testCases {
		msg, err := Parse(text)

		require.NoError(t, err, text)
		assert.Equal(t, KindEnd, msg.Kind)
		assert.Equal(t, expected, msg.Outcome)
	}

	_, err := Parse("end 7")
	require.ErrorIs(t, err, ErrMalformedMessage)

	_, err = Parse("end")
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestParse_Selection(t *testing.T) {
	t.Run("Parses row and column", func(t *testing.T) {
		msg, err := Parse("Selection 3 4")

		require.NoError(t, err)
		assert.Equal(t, KindSelection, msg.Kind)
		assert.Equal(t, entity.Move{Row: 3, Col: 4}, msg.Move)
	})

	t.Run("Rejects missing or invalid coordinates", func(t *testing.T) {
		for _, text := range []string{"selection 1", "selection 1 2 3", "selection a 2", "selection -1 2"} {
			_, err := Parse(text)

			assert.ErrorIs(t, err, ErrMalformedMessage, text)
		}
	})
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("hello there")
	require.ErrorIs(t, err, ErrUnknownMessage)

	_, err = Parse("   ")
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestFormat(t *testing.T) {
	board, err := entity.NewBoardFromRows([][]int{{0, 1}, {2, 0}})
	require.NoError(t, err)

	assert.Equal(t, "Selection 1 2", FormatSelection(entity.Move{Row: 1, Col: 2}))
	assert.Equal(t, "board [[0,1],[2,0]]", FormatBoard(board))
	assert.Equal(t, "end 0", FormatEnd(entity.Tie))
	assert.Equal(t, "end 2", FormatEnd(entity.Player2Wins))
}

func TestSelectionThenPushedBoard(t *testing.T) {
	// Given: player 2 armed on a board where player 1 has one stone
	start, err := entity.NewBoardFromRows([][]int{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}})
	require.NoError(t, err)

	var sent string
	ctrl := controller.New(start, entity.Second, controller.MoveSinkFunc(func(move entity.Move) {
		sent = FormatSelection(move)
	}))

	// When: player 2 selects (0, 1) and the server echoes the resulting board
	_, ok := ctrl.AttemptSelect(0, 1)
	require.True(t, ok)
	require.Equal(t, "Selection 0 1", sent)

	selection, err := Parse(sent)
	require.NoError(t, err)

	pushed, err := Parse(FormatBoard(start))
	require.NoError(t, err)
	require.NoError(t, ctrl.ReplaceBoard(pushed.Board))

	// Then: the pushed snapshot holds the mover's stone at the selected cell
	cell, err := pushed.Board.Get(selection.Move.Row, selection.Move.Col)
	require.NoError(t, err)
	assert.Equal(t, entity.Player2, cell)
	assert.Equal(t, controller.AwaitingMyTurn, ctrl.State())
}
