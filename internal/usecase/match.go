package usecase

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type bot interface {
	PlayOnGrid(grid *entity.Grid, own, opponent string) (entity.Position, bool)
}

// TurnResult describes one committed move and the state of the grid after it.
type TurnResult struct {
	Marker   string          `json:"marker"`
	Position entity.Position `json:"position"`
	Board    string          `json:"board"`
	Result   entity.Result   `json:"result"`
}

// Match is one human versus computer game. All methods are safe for concurrent use;
// the grid is only touched while holding mu.
type Match struct {
	logger *slog.Logger
	bot    bot

	mu       sync.Mutex
	grid     *entity.Grid
	human    string
	computer string
}

// NewMatch - the human plays humanMarker, which must be one of the grid's markers.
func NewMatch(logger *slog.Logger, bot bot, grid *entity.Grid, humanMarker string) (*Match, error) {
	match := &Match{
		logger: logger.With("component", "match"),
		bot:    bot,
	}

	if err := match.Reset(grid, humanMarker); err != nil {
		return nil, err
	}

	return match, nil
}

// Reset - replaces the grid to start another game.
func (that *Match) Reset(grid *entity.Grid, humanMarker string) error {
	first, second := grid.Markers()

	var computer string
	switch humanMarker {
	case first:
		computer = second
	case second:
		computer = first
	default:
		return fmt.Errorf("%w: %q is not one of %q and %q", apperror.ErrInvalidMarkers, humanMarker, first, second)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.grid = grid
	that.human = humanMarker
	that.computer = computer

	that.logger.Debug("new game", "human", that.human, "computer", that.computer, "board", grid.Cells())

	return nil
}

// HumanTurn - plays the cell with the given label for the human.
func (that *Match) HumanTurn(label string) (*TurnResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "HumanTurn", "position", label)

	if err := that.confirmTurn(that.human); err != nil {
		return nil, err
	}

	pos, err := entity.ParsePosition(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	marker, ok := that.grid.PlayAt(pos)
	if !ok {
		log.Debug("move rejected", "board", that.grid.Cells())
		return nil, fmt.Errorf("%w: %s is already occupied", apperror.ErrIllegalMove, pos)
	}

	return that.turnResult(log, marker, pos), nil
}

// ComputerTurn - lets the bot play for the computer.
func (that *Match) ComputerTurn() (*TurnResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "ComputerTurn")

	if err := that.confirmTurn(that.computer); err != nil {
		return nil, err
	}

	pos, ok := that.bot.PlayOnGrid(that.grid, that.computer, that.human)
	if !ok {
		return nil, fmt.Errorf("%w: bot found no open cell", apperror.ErrIllegalMove)
	}

	return that.turnResult(log.With("position", pos.String()), that.computer, pos), nil
}

func (that *Match) confirmTurn(marker string) error {
	if that.grid.DetermineResult().IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.grid.NextMarker() != marker {
		return fmt.Errorf("%w: next marker is %q", apperror.ErrNotYourTurn, that.grid.NextMarker())
	}

	return nil
}

func (that *Match) turnResult(log *slog.Logger, marker string, pos entity.Position) *TurnResult {
	result := &TurnResult{
		Marker:   marker,
		Position: pos,
		Board:    that.grid.Cells(),
		Result:   that.grid.DetermineResult(),
	}

	log.Debug("turn played", "marker", marker, "board", result.Board)

	if result.Result.IsFinished() {
		log.Info("game finished", "winner", result.Result.Winner, "moves", that.grid.Moves())
	}

	return result
}

// Result reports whether the game is still ongoing and who won.
func (that *Match) Result() entity.Result {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.grid.DetermineResult()
}

// Board returns the textual grid.
func (that *Match) Board() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.grid.Cells()
}

// IsComputerTurn reports whether the computer should move next in an ongoing game.
func (that *Match) IsComputerTurn() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.grid.DetermineResult().IsOngoing() && that.grid.NextMarker() == that.computer
}

func (that *Match) Markers() (human, computer string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.human, that.computer
}

// GridMarkers returns the markers of the current grid in play order.
func (that *Match) GridMarkers() (string, string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.grid.Markers()
}

func (that *Match) OpenPositions() []entity.Position {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.grid.OpenPositions()
}
