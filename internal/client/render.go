package client

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/stackysides/internal/controller"
	"github.com/rocketscienceinc/stackysides/internal/entity"
)

var ErrBadMove = errors.New(`a move is two numbers, "row col"`)

var symbols = map[int]byte{
	int(entity.Empty):   '.',
	int(entity.Player1): 'X',
	int(entity.Player2): 'O',
}

// Render paints the board as text. Cells the player may select are marked with '+'.
func Render(w io.Writer, view controller.View) error {
	legal := make(map[entity.Position]bool, len(view.LegalCells))
	for _, position := range view.LegalCells {
		legal[position] = true
	}

	var sb strings.Builder

	sb.WriteString("   ")
	for col := range boardCols(view.Board) {
		fmt.Fprintf(&sb, "%d ", col)
	}
	sb.WriteByte('\n')

	for row, cells := range view.Board {
		fmt.Fprintf(&sb, "%d  ", row)
		for col, cell := range cells {
			symbol := symbols[cell]
			if legal[entity.Position{Row: row, Col: col}] {
				symbol = '+'
			}
			sb.WriteByte(symbol)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(status(view))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())

	return err
}

func boardCols(board [][]int) int {
	if len(board) == 0 {
		return 0
	}

	return len(board[0])
}

func status(view controller.View) string {
	var who string
	switch view.Me {
	case entity.First:
		who = "you are player 1 (X)"
	case entity.Second:
		who = "you are player 2 (O)"
	default:
		who = "you are watching"
	}

	if view.AgainstAI {
		who += ", playing against the AI"
	}

	switch {
	case view.Outcome != nil:
		return who + "; game over: " + view.Outcome.String()
	case view.CanPlay:
		return who + "; your turn"
	default:
		return fmt.Sprintf("%s; waiting for player %d", who, view.Turn)
	}
}

// ParseMove reads a "row col" line.
func ParseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, ErrBadMove
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBadMove, err)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBadMove, err)
	}

	return row, col, nil
}
