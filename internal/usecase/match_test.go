package usecase

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
)

type mockBot struct {
	mock.Mock
}

func (that *mockBot) PlayOnGrid(grid *entity.Grid, own, opponent string) (entity.Position, bool) {
	args := that.Called(grid, own, opponent)

	pos := args.Get(0).(entity.Position)
	ok := args.Bool(1)
	if ok {
		grid.PlayAt(pos)
	}

	return pos, ok
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMatch(t *testing.T, bot bot, humanMarker string) *Match {
	t.Helper()

	match, err := NewMatch(discardLogger(), bot, entity.NewDefaultGrid(), humanMarker)
	require.NoError(t, err)

	return match
}

func TestNewMatch(t *testing.T) {
	t.Run("Human plays first marker", func(t *testing.T) {
		// When: a match is created for X
		match := newMatch(t, service.NewAutoPlayer(), "X")

		// Then: the computer plays O and the human moves first
		human, computer := match.Markers()
		assert.Equal(t, "X", human)
		assert.Equal(t, "O", computer)
		assert.False(t, match.IsComputerTurn())
		assert.True(t, match.Result().IsOngoing())
	})

	t.Run("Human plays second marker", func(t *testing.T) {
		match := newMatch(t, service.NewAutoPlayer(), "O")

		assert.True(t, match.IsComputerTurn())
	})

	t.Run("Unknown human marker", func(t *testing.T) {
		// When: the human marker is not on the grid
		match, err := NewMatch(discardLogger(), service.NewAutoPlayer(), entity.NewDefaultGrid(), "Z")

		// Then: ErrInvalidMarkers is returned
		require.ErrorIs(t, err, apperror.ErrInvalidMarkers)
		assert.Nil(t, match)
	})
}

func TestMatch_HumanTurn(t *testing.T) {
	t.Run("Successful turn", func(t *testing.T) {
		// Given: a new match where the human plays X
		match := newMatch(t, service.NewAutoPlayer(), "X")

		// When: the human plays the center
		turn, err := match.HumanTurn("center")

		// Then: X is placed and the computer is next
		require.NoError(t, err)
		assert.Equal(t, &TurnResult{
			Marker:   "X",
			Position: entity.Center,
			Board:    "    X    ",
			Result:   entity.Result{Status: entity.StatusOngoing},
		}, turn)
		assert.True(t, match.IsComputerTurn())
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: the human already moved
		match := newMatch(t, service.NewAutoPlayer(), "X")
		_, err := match.HumanTurn("center")
		require.NoError(t, err)

		// When: the human tries again before the computer
		_, err = match.HumanTurn("top_left")

		// Then: ErrNotYourTurn is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, "    X    ", match.Board())
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: the computer took the center after the human opened
		match := newMatch(t, service.NewAutoPlayer(), "X")
		_, err := match.HumanTurn("top_left")
		require.NoError(t, err)
		_, err = match.ComputerTurn()
		require.NoError(t, err)

		// When: the human plays the center
		_, err = match.HumanTurn("center")

		// Then: ErrIllegalMove is returned
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.False(t, match.IsComputerTurn())
	})

	t.Run("Error on unknown position", func(t *testing.T) {
		match := newMatch(t, service.NewAutoPlayer(), "X")

		_, err := match.HumanTurn("middle")

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		require.ErrorIs(t, err, entity.ErrUnknownPosition)
		assert.Equal(t, "         ", match.Board())
	})
}

func TestMatch_ComputerTurn(t *testing.T) {
	t.Run("Bot receives computer and human markers", func(t *testing.T) {
		// Given: a match where the human plays O and a mocked bot
		bot := &mockBot{}
		match := newMatch(t, bot, "O")

		bot.On("PlayOnGrid", mock.AnythingOfType("*entity.Grid"), "X", "O").
			Return(entity.TopRight, true).
			Once()

		// When: the computer moves
		turn, err := match.ComputerTurn()

		// Then: the bot's choice is reported
		require.NoError(t, err)
		assert.Equal(t, "X", turn.Marker)
		assert.Equal(t, entity.TopRight, turn.Position)
		assert.Equal(t, "  X      ", turn.Board)
		bot.AssertExpectations(t)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: the human moves first
		bot := &mockBot{}
		match := newMatch(t, bot, "X")

		// When: the computer is asked to move
		_, err := match.ComputerTurn()

		// Then: the bot is never consulted
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		bot.AssertNotCalled(t, "PlayOnGrid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bot finds no move", func(t *testing.T) {
		bot := &mockBot{}
		match := newMatch(t, bot, "O")

		bot.On("PlayOnGrid", mock.Anything, "X", "O").
			Return(entity.Position(0), false).
			Once()

		_, err := match.ComputerTurn()

		require.ErrorIs(t, err, apperror.ErrIllegalMove)
	})

	t.Run("Computer wins", func(t *testing.T) {
		// Given: the human plays X badly against the auto player
		match := newMatch(t, service.NewAutoPlayer(), "X")

		var turn *TurnResult
		for _, label := range []string{"top_middle", "bottom_middle", "middle_right"} {
			_, err := match.HumanTurn(label)
			require.NoError(t, err)

			turn, err = match.ComputerTurn()
			require.NoError(t, err)
		}

		// Then: O completes the diagonal from top_left to bottom_right
		require.NotNil(t, turn)
		assert.Equal(t, entity.Result{Status: entity.StatusFinished, Winner: "O"}, turn.Result)
		assert.Equal(t, entity.Result{Status: entity.StatusFinished, Winner: "O"}, match.Result())

		// When: the human keeps playing
		_, err := match.HumanTurn("bottom_left")

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.False(t, match.IsComputerTurn())
	})
}

func TestMatch_Reset(t *testing.T) {
	// Given: a match in progress
	match := newMatch(t, service.NewAutoPlayer(), "X")
	_, err := match.HumanTurn("center")
	require.NoError(t, err)

	// When: it is reset with a new pair where the human moves second
	grid, err := entity.NewGridFromPair("AB")
	require.NoError(t, err)
	require.NoError(t, match.Reset(grid, "B"))

	// Then: the board is empty and the computer opens
	assert.Equal(t, "         ", match.Board())
	assert.True(t, match.IsComputerTurn())
	first, second := match.GridMarkers()
	assert.Equal(t, "A", first)
	assert.Equal(t, "B", second)
	assert.Len(t, match.OpenPositions(), entity.BoardSize)

	// When: a reset names a marker that is not on the grid
	err = match.Reset(entity.NewDefaultGrid(), "B")

	// Then: the previous game is kept
	require.ErrorIs(t, err, apperror.ErrInvalidMarkers)
	human, _ := match.Markers()
	assert.Equal(t, "B", human)
}

func TestMatch_Concurrent(t *testing.T) {
	// Given: one match shared by many goroutines trying to play for the human
	match := newMatch(t, service.NewAutoPlayer(), "X")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	for _, pos := range entity.AllPositions {
		wg.Add(1)
		go func(label string) {
			defer wg.Done()

			if _, err := match.HumanTurn(label); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(pos.String())
	}

	wg.Wait()

	// Then: exactly one move was accepted
	assert.Equal(t, 1, successes)
	assert.True(t, match.IsComputerTurn())
}
