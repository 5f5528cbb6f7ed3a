package rules

import (
	"slices"
	"testing"

	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board(t *testing.T, rows [][]int) *entity.Board {
	t.Helper()

	b, err := entity.NewBoardFromRows(rows)
	require.NoError(t, err)

	return b
}

func TestCurrentTurn(t *testing.T) {
	testCases := []struct {
		name     string
		rows     [][]int
		expected entity.PlayerNum
	}{
		{name: "empty board starts with player 1", rows: [][]int{{0, 0}, {0, 0}}, expected: entity.First},
		{name: "player 1 ahead gives player 2", rows: [][]int{{1, 0}, {0, 0}}, expected: entity.Second},
		{name: "equal counts give player 1", rows: [][]int{{1, 2}, {0, 0}}, expected: entity.First},
		{name: "player 2 ahead gives player 1", rows: [][]int{{2, 2}, {0, 1}}, expected: entity.First},
		{name: "depends only on counts", rows: [][]int{{0, 0}, {2, 1}}, expected: entity.First},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CurrentTurn(board(t, tc.rows)))
		})
	}
}

func TestIsSelectable(t *testing.T) {
	t.Run("Occupied cells are never selectable", func(t *testing.T) {
		// Given: a fully occupied row flanked by stones and empties
		b := board(t, [][]int{{0, 1, 0}, {1, 2, 1}})

		// Then: no occupied cell is selectable regardless of neighbours
		assert.False(t, IsSelectable(b, 0, 1))
		assert.False(t, IsSelectable(b, 1, 0))
		assert.False(t, IsSelectable(b, 1, 1))
		assert.False(t, IsSelectable(b, 1, 2))
	})

	t.Run("Cell between two stones is selectable", func(t *testing.T) {
		// Given: [[1,0,2],[0,0,0],[0,0,0]]
		b := board(t, [][]int{{1, 0, 2}, {0, 0, 0}, {0, 0, 0}})

		// Then: it is player 1's turn and (0, 1) can be taken
		assert.Equal(t, entity.First, CurrentTurn(b))
		assert.True(t, IsSelectable(b, 0, 1))
	})

	t.Run("Isolated interior cell is not selectable", func(t *testing.T) {
		b := entity.NewBoard(3, 3)

		assert.False(t, IsSelectable(b, 1, 1))
	})

	t.Run("Edge cells of an empty board are selectable", func(t *testing.T) {
		b := entity.NewBoard(3, 3)

		for row := 0; row < 3; row++ {
			assert.True(t, IsSelectable(b, row, 0))
			assert.True(t, IsSelectable(b, row, 2))
		}
	})

	t.Run("Out of bounds is not selectable", func(t *testing.T) {
		b := entity.NewBoard(3, 3)

		assert.False(t, IsSelectable(b, 3, 0))
		assert.False(t, IsSelectable(b, 0, -1))
	})

	t.Run("Without isolation every empty cell is selectable", func(t *testing.T) {
		b := entity.NewBoard(3, 3)
		ruleset := Ruleset{SkipIsolation: true}

		assert.True(t, ruleset.IsSelectable(b, 1, 1))
	})
}

func TestLegalCells(t *testing.T) {
	t.Run("Yields edges and neighbours of stones in row-major order", func(t *testing.T) {
		b := board(t, [][]int{
			{0, 0, 0, 0},
			{0, 1, 0, 0},
		})

		cells := slices.Collect(LegalCells(b))

		assert.Equal(t, []entity.Position{
			{Row: 0, Col: 0}, {Row: 0, Col: 3},
			{Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 1, Col: 3},
		}, cells)
	})

	t.Run("Sequence is restartable and reflects the current board", func(t *testing.T) {
		b := entity.NewBoard(1, 3)
		seq := LegalCells(b)

		first := slices.Collect(seq)
		second := slices.Collect(seq)
		assert.Equal(t, first, second)

		require.NoError(t, b.Set(0, 0, entity.Player1))
		assert.Equal(t, []entity.Position{{Row: 0, Col: 1}, {Row: 0, Col: 2}}, slices.Collect(seq))
	})

	t.Run("Stops early when the consumer stops", func(t *testing.T) {
		b := entity.NewBoard(3, 3)

		count := 0
		for range LegalCells(b) {
			count++
			break
		}

		assert.Equal(t, 1, count)
		assert.True(t, Default.HasLegalCell(b))
	})

	t.Run("Full board has no legal cells", func(t *testing.T) {
		b := board(t, [][]int{{1, 2}, {2, 1}})

		assert.Empty(t, slices.Collect(LegalCells(b)))
		assert.False(t, Default.HasLegalCell(b))
	})
}

func TestRuleset_Outcome(t *testing.T) {
	testCases := []struct {
		name     string
		rows     [][]int
		outcome  entity.Outcome
		finished bool
	}{
		{
			name:     "game goes on",
			rows:     [][]int{{1, 1, 1, 0}, {2, 2, 2, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			finished: false,
		},
		{
			name:     "horizontal line",
			rows:     [][]int{{1, 1, 1, 1}, {2, 2, 2, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
			outcome:  entity.Player1Wins,
			finished: true,
		},
		{
			name:     "vertical line",
			rows:     [][]int{{2, 1, 0, 0}, {2, 1, 0, 0}, {2, 1, 0, 1}, {2, 0, 0, 1}},
			outcome:  entity.Player2Wins,
			finished: true,
		},
		{
			name:     "diagonal line",
			rows:     [][]int{{1, 2, 0, 0}, {2, 1, 0, 0}, {2, 0, 1, 0}, {2, 0, 0, 1}},
			outcome:  entity.Player1Wins,
			finished: true,
		},
		{
			name:     "anti-diagonal line",
			rows:     [][]int{{1, 0, 0, 2}, {1, 0, 2, 0}, {1, 2, 0, 1}, {2, 0, 0, 1}},
			outcome:  entity.Player2Wins,
			finished: true,
		},
		{
			name:     "full board without a line is a tie",
			rows:     [][]int{{1, 1, 2, 2}, {2, 2, 1, 1}, {1, 1, 2, 2}, {2, 2, 1, 1}},
			outcome:  entity.Tie,
			finished: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, finished := Default.Outcome(board(t, tc.rows))

			assert.Equal(t, tc.finished, finished)
			if tc.finished {
				assert.Equal(t, tc.outcome, outcome)
			}
		})
	}
}
