package controller

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
	"github.com/rocketscienceinc/stackysides/internal/rules"
)

type State int

const (
	AwaitingMyTurn State = iota
	ArmedForSelection
	GameOver
)

func (that State) String() string {
	switch that {
	case AwaitingMyTurn:
		return "awaiting_my_turn"
	case ArmedForSelection:
		return "armed_for_selection"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MoveSink receives committed moves, usually the transport that serializes them.
type MoveSink interface {
	SendMove(move entity.Move)
}

// MoveSinkFunc adapts a function to MoveSink.
type MoveSinkFunc func(move entity.Move)

func (that MoveSinkFunc) SendMove(move entity.Move) {
	that(move)
}

type Option func(*MoveController)

// WithRuleset replaces rules.Default.
func WithRuleset(ruleset rules.Ruleset) Option {
	return func(that *MoveController) {
		that.ruleset = ruleset
	}
}

// WithAgainstAI marks the session as played against an AI opponent. It only affects View.
func WithAgainstAI(againstAI bool) Option {
	return func(that *MoveController) {
		that.againstAI = againstAI
	}
}

// MoveController lets a player select at most one cell per turn. It is owned by a single
// goroutine and is not safe for concurrent use.
type MoveController struct {
	board     *entity.Board
	me        entity.PlayerNum
	sink      MoveSink
	ruleset   rules.Ruleset
	againstAI bool

	state   State
	outcome *entity.Outcome
}

func New(board *entity.Board, me entity.PlayerNum, sink MoveSink, opts ...Option) *MoveController {
	that := &MoveController{
		board:   board,
		me:      me,
		sink:    sink,
		ruleset: rules.Default,
	}

	for _, opt := range opts {
		opt(that)
	}

	that.recompute()

	return that
}

func (that *MoveController) State() State {
	return that.state
}

// ReplaceBoard installs an authoritative snapshot. This is the only way out of AwaitingMyTurn.
// A snapshot whose dimensions differ from the current board is refused and the prior board kept.
func (that *MoveController) ReplaceBoard(board *entity.Board) error {
	if board.Rows() != that.board.Rows() || board.Cols() != that.board.Cols() {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", apperror.ErrMalformedSnapshot,
			board.Rows(), board.Cols(), that.board.Rows(), that.board.Cols())
	}

	that.board = board
	that.recompute()

	return nil
}

// SetOutcome freezes the controller; no selection is accepted afterwards.
func (that *MoveController) SetOutcome(outcome entity.Outcome) {
	that.outcome = &outcome
	that.state = GameOver
}

// AttemptSelect commits a selection of (row, col) for this player. Attempts out of turn, on a
// cell that is not selectable or after the game ended do nothing and return false.
func (that *MoveController) AttemptSelect(row, col int) (entity.Move, bool) {
	if that.state != ArmedForSelection {
		return entity.Move{}, false
	}

	if !that.ruleset.IsSelectable(that.board, row, col) {
		return entity.Move{}, false
	}

	if err := that.board.Set(row, col, that.me.Cell()); err != nil {
		return entity.Move{}, false
	}

	that.state = AwaitingMyTurn

	move := entity.Move{Row: row, Col: col}
	if that.sink != nil {
		that.sink.SendMove(move)
	}

	return move, true
}

func (that *MoveController) recompute() {
	switch {
	case that.outcome != nil:
		that.state = GameOver
	case that.me.IsPlayer() && that.ruleset.CurrentTurn(that.board) == that.me:
		that.state = ArmedForSelection
	default:
		that.state = AwaitingMyTurn
	}
}

// View is what the rendering layer needs to paint the board.
type View struct {
	Board      [][]int           `json:"board"`
	Me         entity.PlayerNum  `json:"player_num"`
	Turn       entity.PlayerNum  `json:"turn"`
	State      string            `json:"state"`
	CanPlay    bool              `json:"can_play"`
	LegalCells []entity.Position `json:"legal_cells"`
	AgainstAI  bool              `json:"is_against_ai"`
	Outcome    *entity.Outcome   `json:"outcome,omitempty"`
}

func (that *MoveController) View() View {
	view := View{
		Board:     that.board.IntRows(),
		Me:        that.me,
		Turn:      that.ruleset.CurrentTurn(that.board),
		State:     that.state.String(),
		CanPlay:   that.state == ArmedForSelection,
		AgainstAI: that.againstAI,
	}

	if that.outcome != nil {
		outcome := *that.outcome
		view.Outcome = &outcome
	}

	if view.CanPlay {
		view.LegalCells = slices.Collect(that.ruleset.LegalCells(that.board))
	}

	return view
}
