package entity

import (
	"errors"
	"fmt"
	"time"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

const (
	DefaultBoardSize = 7
	DefaultWinLength = 4
)

var ErrUnknownOutcome = errors.New("unknown game outcome")

// Outcome is the terminal result of a game. The wire form names the winner, 0 for a tie.
type Outcome int

const (
	Tie Outcome = iota
	Player1Wins
	Player2Wins
)

// ParseOutcome converts the wire integer of an `end` message.
func ParseOutcome(value int) (Outcome, error) {
	outcome := Outcome(value)
	switch outcome {
	case Tie, Player1Wins, Player2Wins:
		return outcome, nil
	default:
		return Tie, fmt.Errorf("%w: %d", ErrUnknownOutcome, value)
	}
}

// Winner returns the winning seat, or Spectator for a tie.
func (that Outcome) Winner() PlayerNum {
	return PlayerNum(that)
}

func (that Outcome) String() string {
	switch that {
	case Player1Wins:
		return "player 1 wins"
	case Player2Wins:
		return "player 2 wins"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}

// Game is the server-side record of a single match.
type Game struct {
	ID          string     `json:"id"`
	IsAgainstAI bool       `json:"is_against_ai"`
	Player1Key  string     `json:"player1_key,omitempty"`
	Player2Key  string     `json:"player2_key,omitempty"`
	WinnerKey   string     `json:"winner_key,omitempty"`
	Status      string     `json:"status"`
	Outcome     *Outcome   `json:"outcome,omitempty"`
	Board       *Board     `json:"board"`
	CreatedAt   time.Time  `json:"created_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// NewGame creates an ongoing game with an empty square board; the creator takes the first seat.
func NewGame(id, creatorKey string, isAgainstAI bool, size int) *Game {
	return &Game{
		ID:          id,
		IsAgainstAI: isAgainstAI,
		Player1Key:  creatorKey,
		Status:      StatusOngoing,
		Board:       NewBoard(size, size),
		CreatedAt:   time.Now().UTC(),
	}
}

// SeatOf returns the seat held by the session key without changing anything.
func (that *Game) SeatOf(sessionKey string) PlayerNum {
	switch {
	case sessionKey == "":
		return Spectator
	case that.Player1Key == sessionKey:
		return First
	case that.Player2Key == sessionKey:
		return Second
	default:
		return Spectator
	}
}

// AssignSeat seats a newcomer in the first free seat. Known keys keep their seat and anybody
// arriving after both seats are taken watches as a spectator. The second return value reports
// whether the game changed.
func (that *Game) AssignSeat(sessionKey string) (PlayerNum, bool) {
	if seat := that.SeatOf(sessionKey); seat != Spectator || sessionKey == "" {
		return seat, false
	}

	switch {
	case that.Player1Key == "":
		that.Player1Key = sessionKey
		return First, true
	case that.Player2Key == "":
		that.Player2Key = sessionKey
		return Second, true
	default:
		return Spectator, false
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// Finish freezes the game with the given outcome.
func (that *Game) Finish(outcome Outcome, at time.Time) {
	that.Status = StatusFinished
	that.Outcome = &outcome
	that.EndedAt = &at

	switch outcome.Winner() {
	case First:
		that.WinnerKey = that.Player1Key
	case Second:
		that.WinnerKey = that.Player2Key
	case Spectator:
		that.WinnerKey = ""
	}
}
