package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/stackysides/internal/apperror"
)

// Cell is the occupancy of a single board square. The wire form is 0, 1 or 2.
type Cell int

const (
	Empty Cell = iota
	Player1
	Player2
)

// PlayerNum identifies a seat in a game. Zero is reserved for spectators.
type PlayerNum int

const (
	Spectator PlayerNum = 0
	First     PlayerNum = 1
	Second    PlayerNum = 2
)

// Cell returns the cell value a player's stone takes on the board.
func (that PlayerNum) Cell() Cell {
	return Cell(that)
}

// IsPlayer reports whether the seat can ever have a turn.
func (that PlayerNum) IsPlayer() bool {
	return that == First || that == Second
}

func (that Cell) valid() bool {
	return that == Empty || that == Player1 || that == Player2
}

// Position addresses a single cell.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Move is a committed selection, destined for the transport.
type Move Position

// Board is a rectangular grid of cells. Its dimensions never change after creation.
type Board struct {
	cells [][]Cell
}

// NewBoard returns an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}

	return &Board{cells: cells}
}

// NewBoardFromRows builds a board from its wire form. Ragged rows or values outside {0,1,2}
// are rejected with apperror.ErrMalformedSnapshot.
func NewBoardFromRows(rows [][]int) (*Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: board has no cells", apperror.ErrMalformedSnapshot)
	}

	width := len(rows[0])
	board := NewBoard(len(rows), width)

	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", apperror.ErrMalformedSnapshot, i, len(row), width)
		}

		for j, value := range row {
			cell := Cell(value)
			if !cell.valid() {
				return nil, fmt.Errorf("%w: cell (%d, %d) has value %d", apperror.ErrMalformedSnapshot, i, j, value)
			}
			board.cells[i][j] = cell
		}
	}

	return board, nil
}

func (that *Board) Rows() int {
	return len(that.cells)
}

func (that *Board) Cols() int {
	if len(that.cells) == 0 {
		return 0
	}
	return len(that.cells[0])
}

func (that *Board) inBounds(row, col int) bool {
	return row >= 0 && row < that.Rows() && col >= 0 && col < that.Cols()
}

// Get returns the cell at (row, col).
func (that *Board) Get(row, col int) (Cell, error) {
	if !that.inBounds(row, col) {
		return Empty, fmt.Errorf("%w: (%d, %d) on %dx%d board", apperror.ErrOutOfBounds, row, col, that.Rows(), that.Cols())
	}

	return that.cells[row][col], nil
}

// Set writes value into an empty cell. Overwriting a stone is refused with apperror.ErrCellOccupied.
func (that *Board) Set(row, col int, value Cell) error {
	current, err := that.Get(row, col)
	if err != nil {
		return err
	}

	if current != Empty && value != Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.cells[row][col] = value

	return nil
}

// CountPlayers returns the number of stones each player has on the board.
func (that *Board) CountPlayers() (int, int) {
	var first, second int

	for _, row := range that.cells {
		for _, cell := range row {
			switch cell {
			case Player1:
				first++
			case Player2:
				second++
			case Empty:
			}
		}
	}

	return first, second
}

func (that *Board) CountEmpty() int {
	first, second := that.CountPlayers()
	return that.Rows()*that.Cols() - first - second
}

// IsHorizontallyIsolated reports whether an empty, non-edge cell has empty cells on both its left
// and right. Vertical and diagonal neighbours are not considered.
func (that *Board) IsHorizontallyIsolated(row, col int) bool {
	if !that.inBounds(row, col) {
		return false
	}

	if col == 0 || col == that.Cols()-1 {
		return false
	}

	line := that.cells[row]

	return line[col] == Empty && line[col-1] == Empty && line[col+1] == Empty
}

func (that *Board) Clone() *Board {
	clone := NewBoard(that.Rows(), that.Cols())
	for i, row := range that.cells {
		copy(clone.cells[i], row)
	}

	return clone
}

func (that *Board) Equal(other *Board) bool {
	if other == nil || that.Rows() != other.Rows() || that.Cols() != other.Cols() {
		return false
	}

	for i, row := range that.cells {
		for j, cell := range row {
			if other.cells[i][j] != cell {
				return false
			}
		}
	}

	return true
}

// IntRows returns the wire form of the board.
func (that *Board) IntRows() [][]int {
	rows := make([][]int, that.Rows())
	for i, row := range that.cells {
		rows[i] = make([]int, len(row))
		for j, cell := range row {
			rows[i][j] = int(cell)
		}
	}

	return rows
}

func (that *Board) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(that.IntRows())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	return data, nil
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrMalformedSnapshot, err)
	}

	board, err := NewBoardFromRows(rows)
	if err != nil {
		return err
	}

	that.cells = board.cells

	return nil
}

// String renders the board in its wire form, e.g. [[0,1],[2,0]].
func (that *Board) String() string {
	data, err := that.MarshalJSON()
	if err != nil {
		return "[]"
	}

	return string(data)
}
