package apperror

import "errors"

var (
	ErrOutOfBounds       = errors.New("cell is out of bounds")
	ErrMalformedSnapshot = errors.New("malformed board snapshot")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrIllegalCell       = errors.New("cell is not selectable")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrSpectator         = errors.New("spectators can't make a turn")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotFound      = errors.New("game not found")
)
