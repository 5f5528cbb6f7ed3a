// Package protocol implements the text messages exchanged over the game WebSocket:
//
//	Selection <row> <col>   client -> server
//	board <json rows>       server -> client, full snapshot
//	end <winner>            server -> client, 0 for a tie
//
// Keywords are matched case-insensitively.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/stackysides/internal/apperror"
	"github.com/rocketscienceinc/stackysides/internal/entity"
)

const (
	keywordBoard     = "board"
	keywordEnd       = "end"
	keywordSelection = "selection"
)

var (
	ErrEmptyMessage     = errors.New("empty message")
	ErrUnknownMessage   = errors.New("could not parse message")
	ErrMalformedMessage = errors.New("malformed message")
)

type Kind int

const (
	KindBoard Kind = iota + 1
	KindEnd
	KindSelection
)

func (that Kind) String() string {
	switch that {
	case KindBoard:
		return keywordBoard
	case KindEnd:
		return keywordEnd
	case KindSelection:
		return keywordSelection
	default:
		return "unknown"
	}
}

// Message is a decoded protocol message. Only the field matching Kind is set.
type Message struct {
	Kind    Kind
	Board   *entity.Board
	Outcome entity.Outcome
	Move    entity.Move
}

// Parse decodes one text frame. A malformed board payload wraps apperror.ErrMalformedSnapshot.
func Parse(text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	keyword, payload, _ := strings.Cut(text, " ")
	payload = strings.TrimSpace(payload)

	switch strings.ToLower(keyword) {
	case keywordBoard:
		return parseBoard(payload)
	case keywordEnd:
		return parseEnd(payload)
	case keywordSelection:
		return parseSelection(payload)
	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownMessage, keyword)
	}
}

func parseBoard(payload string) (Message, error) {
	var rows [][]int
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return Message{}, fmt.Errorf("%w: %w", apperror.ErrMalformedSnapshot, err)
	}

	board, err := entity.NewBoardFromRows(rows)
	if err != nil {
		return Message{}, fmt.Errorf("failed to parse board message: %w", err)
	}

	return Message{Kind: KindBoard, Board: board}, nil
}

func parseEnd(payload string) (Message, error) {
	var winner int
	if err := json.Unmarshal([]byte(payload), &winner); err != nil {
		return Message{}, fmt.Errorf("%w: end payload %q", ErrMalformedMessage, payload)
	}

	outcome, err := entity.ParseOutcome(winner)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return Message{Kind: KindEnd, Outcome: outcome}, nil
}

func parseSelection(payload string) (Message, error) {
	parts := strings.Fields(payload)
	if len(parts) != 2 {
		return Message{}, fmt.Errorf("%w: selection needs a row and a column", ErrMalformedMessage)
	}

	row, rowErr := strconv.ParseUint(parts[0], 10, 16)
	col, colErr := strconv.ParseUint(parts[1], 10, 16)
	if rowErr != nil || colErr != nil {
		return Message{}, fmt.Errorf("%w: could not parse selection %q", ErrMalformedMessage, payload)
	}

	return Message{Kind: KindSelection, Move: entity.Move{Row: int(row), Col: int(col)}}, nil
}

func FormatSelection(move entity.Move) string {
	return fmt.Sprintf("Selection %d %d", move.Row, move.Col)
}

func FormatBoard(board *entity.Board) string {
	return keywordBoard + " " + board.String()
}

func FormatEnd(outcome entity.Outcome) string {
	return fmt.Sprintf("%s %d", keywordEnd, int(outcome))
}
