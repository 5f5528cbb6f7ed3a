// Package rules derives whose turn it is and which cells may be selected from a board snapshot.
// Nothing here is stored: every answer is recomputed from the board it is given.
package rules

import (
	"iter"

	"github.com/rocketscienceinc/stackysides/internal/entity"
)

// Ruleset holds the knobs that differ between revisions of the game.
type Ruleset struct {
	// SkipIsolation turns off the horizontal-isolation check, so every empty cell is selectable.
	SkipIsolation bool
	// WinLength is the number of consecutive stones that wins the game.
	WinLength int
}

var Default = Ruleset{WinLength: entity.DefaultWinLength}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func CurrentTurn(board *entity.Board) entity.PlayerNum {
	return Default.CurrentTurn(board)
}

func IsSelectable(board *entity.Board, row, col int) bool {
	return Default.IsSelectable(board, row, col)
}

func LegalCells(board *entity.Board) iter.Seq[entity.Position] {
	return Default.LegalCells(board)
}

// CurrentTurn is player 2 when player 1 has strictly more stones, player 1 otherwise.
func (that Ruleset) CurrentTurn(board *entity.Board) entity.PlayerNum {
	first, second := board.CountPlayers()
	if first > second {
		return entity.Second
	}

	return entity.First
}

// IsSelectable reports whether (row, col) is empty and not excluded by the isolation heuristic.
func (that Ruleset) IsSelectable(board *entity.Board, row, col int) bool {
	cell, err := board.Get(row, col)
	if err != nil || cell != entity.Empty {
		return false
	}

	if that.SkipIsolation {
		return true
	}

	return !board.IsHorizontallyIsolated(row, col)
}

// LegalCells yields every selectable cell in row-major order. The sequence can be ranged over
// any number of times and reads the board afresh each time.
func (that Ruleset) LegalCells(board *entity.Board) iter.Seq[entity.Position] {
	return func(yield func(entity.Position) bool) {
		for row := 0; row < board.Rows(); row++ {
			for col := 0; col < board.Cols(); col++ {
				if !that.IsSelectable(board, row, col) {
					continue
				}

				if !yield(entity.Position{Row: row, Col: col}) {
					return
				}
			}
		}
	}
}

// HasLegalCell reports whether at least one cell can still be selected.
func (that Ruleset) HasLegalCell(board *entity.Board) bool {
	for range that.LegalCells(board) {
		return true
	}

	return false
}

// Outcome decides whether the game is over: a line of WinLength stones wins, a board with no
// selectable cell left is a tie. The second value is false while the game goes on.
func (that Ruleset) Outcome(board *entity.Board) (entity.Outcome, bool) {
	if winner := that.winner(board); winner != entity.Spectator {
		return entity.Outcome(winner), true
	}

	if !that.HasLegalCell(board) {
		return entity.Tie, true
	}

	return entity.Tie, false
}

func (that Ruleset) winner(board *entity.Board) entity.PlayerNum {
	length := that.WinLength
	if length <= 0 {
		length = entity.DefaultWinLength
	}

	for row := 0; row < board.Rows(); row++ {
		for col := 0; col < board.Cols(); col++ {
			cell, _ := board.Get(row, col)
			if cell == entity.Empty {
				continue
			}

			for _, dir := range directions {
				if countLine(board, row, col, dir, cell) >= length {
					return entity.PlayerNum(cell)
				}
			}
		}
	}

	return entity.Spectator
}

// countLine counts consecutive cells equal to cell starting at (row, col) along dir.
func countLine(board *entity.Board, row, col int, dir [2]int, cell entity.Cell) int {
	count := 0
	for {
		current, err := board.Get(row, col)
		if err != nil || current != cell {
			return count
		}

		count++
		row += dir[0]
		col += dir[1]
	}
}
