package entity

const (
	StatusFinished = "finished"
	StatusTie      = "tie"
	StatusOngoing  = "ongoing"
)

// Result is the outcome of a grid at a point in time. Winner is set only when Status is StatusFinished.
type Result struct {
	Status string `json:"status"`
	Winner string `json:"winner,omitempty"`
}

// DetermineResult - a winner ends the game even on a full grid; a full grid without one is a tie.
func (that *Grid) DetermineResult() Result {
	if winner, ok := that.WinningPlayer(); ok {
		return Result{Status: StatusFinished, Winner: winner}
	}

	// the game will continue until all the squares are full
	if that.IsFull() {
		return Result{Status: StatusTie}
	}

	return Result{Status: StatusOngoing}
}

// IsFinished reports whether the game is over, by a win or a tie.
func (that Result) IsFinished() bool {
	return that.Status == StatusFinished || that.Status == StatusTie
}

func (that Result) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Result) IsTie() bool {
	return that.Status == StatusTie
}
