package apperror

import "errors"

var (
	ErrInvalidMarkers = errors.New("invalid markers")
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrIllegalMove    = errors.New("illegal move")
)
