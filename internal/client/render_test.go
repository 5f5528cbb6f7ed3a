package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/stackysides/internal/controller"
	"github.com/rocketscienceinc/stackysides/internal/entity"
)

func TestRender(t *testing.T) {
	t.Run("Marks stones and selectable cells", func(t *testing.T) {
		// Given: player 2 to move after player 1 took the corner
		view := controller.View{
			Board:      [][]int{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}},
			Me:         entity.Second,
			Turn:       entity.Second,
			CanPlay:    true,
			LegalCells: []entity.Position{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 0}},
		}

		// When: the view is rendered
		var sb strings.Builder
		require.NoError(t, Render(&sb, view))

		// Then: the grid and the status line are printed
		expected := "" +
			"   0 1 2 \n" +
			"0  X + + \n" +
			"1  + . . \n" +
			"2  . . . \n" +
			"you are player 2 (O); your turn\n"
		assert.Equal(t, expected, sb.String())
	})

	t.Run("Shows the outcome", func(t *testing.T) {
		// Given: a finished game watched by a spectator
		outcome := entity.Player1Wins
		view := controller.View{
			Board:   [][]int{{1, 2}},
			Me:      entity.Spectator,
			Outcome: &outcome,
		}

		// When: the view is rendered
		var sb strings.Builder
		require.NoError(t, Render(&sb, view))

		// Then: the status names the winner
		assert.Contains(t, sb.String(), "X O")
		assert.Contains(t, sb.String(), "you are watching; game over: player 1 wins")
	})

	t.Run("Mentions the AI and whose turn it is", func(t *testing.T) {
		// Given: player 1 waiting in a game against the AI
		view := controller.View{
			Board:     [][]int{{1, 0}},
			Me:        entity.First,
			Turn:      entity.Second,
			AgainstAI: true,
		}

		// When: the view is rendered
		var sb strings.Builder
		require.NoError(t, Render(&sb, view))

		// Then: the status line says so
		assert.Contains(t, sb.String(), "you are player 1 (X), playing against the AI; waiting for player 2")
	})
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		row, col int
		wantErr  bool
	}{
		{name: "plain", line: "2 3", row: 2, col: 3},
		{name: "extra spaces", line: "  0   6 ", row: 0, col: 6},
		{name: "one number", line: "4", wantErr: true},
		{name: "three numbers", line: "1 2 3", wantErr: true},
		{name: "not a number", line: "a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, err := ParseMove(tt.line)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadMove)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		})
	}
}
