package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
)

const (
	orderFirst  = "first"
	orderSecond = "second"
)

// Controller drives a Match from text commands.
type Controller struct {
	logger *slog.Logger
	out    io.Writer
	match  *usecase.Match
}

func New(logger *slog.Logger, match *usecase.Match, out io.Writer) *Controller {
	return &Controller{
		logger: logger.With("component", "shell"),
		out:    out,
		match:  match,
	}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func completer() *readline.PrefixCompleter {
	positions := lo.Map(entity.AllPositions, func(pos entity.Position, _ int) readline.PrefixCompleterInterface {
		return readline.PcItem(pos.String())
	})

	return readline.NewPrefixCompleter(
		readline.PcItem("play", positions...),
		readline.PcItem("new", readline.PcItem(orderFirst), readline.PcItem(orderSecond)),
		readline.PcItem("show"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Loop - reads commands until quit, end of input or ctx is done.
func (that *Controller) Loop(ctx context.Context, conf config.Shell) error {
	log := that.logger.With("method", "Loop")

	l, err := readline.NewEx(&readline.Config{
		Prompt:          conf.Prompt,
		HistoryFile:     conf.HistoryFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    completer(),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}

	var closeOnce sync.Once
	closeReadline := func() {
		closeOnce.Do(func() {
			if err := l.Close(); err != nil {
				log.Error("could not close readline", "error", err)
			}
		})
	}
	defer closeReadline()

	loopDone := make(chan struct{})
	defer close(loopDone)

	go func() {
		select {
		case <-ctx.Done():
			closeReadline()
		case <-loopDone:
		}
	}()

	that.out = l.Stdout()

	that.usage()
	that.show()
	if err = that.computerMoves(); err != nil {
		that.showError(err)
	}

	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		quit, err := that.Execute(line)
		if err != nil {
			log.Debug("command failed", "line", line, "error", err)
			that.showError(err)
			continue
		}

		if quit {
			log.Debug("exiting readline loop")
			return nil
		}
	}
}

// Execute - runs one command line and reports whether the session should end.
func (that *Controller) Execute(line string) (bool, error) {
	fields, err := shellquote.Split(strings.TrimSpace(line))
	if err != nil {
		return false, fmt.Errorf("failed to parse command: %w", err)
	}

	if len(fields) == 0 {
		return false, nil
	}

	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "play", "p":
		return false, that.play(args)
	case "new", "n":
		return false, that.newGame(args)
	case "show", "s":
		that.show()
		return false, nil
	case "help", "h", "?":
		that.usage()
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (that *Controller) play(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: play <position>", ErrMissingArgument)
	}

	label, err := resolveLabel(args[0])
	if err != nil {
		return err
	}

	turn, err := that.match.HumanTurn(label)
	if err != nil {
		return fmt.Errorf("failed to play %s: %w", label, err)
	}

	that.showTurn("you", turn)

	return that.computerMoves()
}

// resolveLabel accepts a cell label or its index.
func resolveLabel(arg string) (string, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return strings.ToLower(arg), nil
	}

	pos, err := entity.PositionAt(index)
	if err != nil {
		return "", fmt.Errorf("failed to resolve position: %w", err)
	}

	return pos.String(), nil
}

func (that *Controller) newGame(args []string) error {
	first, second := that.match.GridMarkers()
	markers := first + second
	order := orderFirst

	for _, arg := range args {
		switch strings.ToLower(arg) {
		case orderFirst, orderSecond:
			order = strings.ToLower(arg)
		default:
			markers = arg
		}
	}

	grid, err := entity.NewGridFromPair(markers)
	if err != nil {
		return fmt.Errorf("failed to create grid: %w", err)
	}

	first, second = grid.Markers()
	human := first
	if order == orderSecond {
		human = second
	}

	if err = that.match.Reset(grid, human); err != nil {
		return fmt.Errorf("failed to start new game: %w", err)
	}

	that.showMessage(fmt.Sprintf("new game, you play %s", human))
	that.show()

	return that.computerMoves()
}

func (that *Controller) computerMoves() error {
	for that.match.IsComputerTurn() {
		turn, err := that.match.ComputerTurn()
		if err != nil {
			return fmt.Errorf("computer failed to play: %w", err)
		}

		that.showTurn("computer", turn)
	}

	return nil
}

func (that *Controller) showTurn(who string, turn *usecase.TurnResult) {
	that.showMessage(fmt.Sprintf("%s played %s at %s", who, turn.Marker, turn.Position))
	that.showMessage(RenderBoard(turn.Board))

	if turn.Result.IsFinished() {
		that.showMessage(that.describe(turn.Result))
	}
}

func (that *Controller) show() {
	that.showMessage(RenderBoard(that.match.Board()))
	that.showMessage(that.describe(that.match.Result()))
}

func (that *Controller) describe(result entity.Result) string {
	human, computer := that.match.Markers()

	switch {
	case result.IsTie():
		return "game over: tie"
	case result.IsFinished() && result.Winner == human:
		return fmt.Sprintf("game over: you win with %s", human)
	case result.IsFinished():
		return fmt.Sprintf("game over: computer wins with %s", computer)
	case that.match.IsComputerTurn():
		return fmt.Sprintf("computer (%s) to move", computer)
	}

	open := lo.Map(that.match.OpenPositions(), func(pos entity.Position, _ int) string {
		return pos.String()
	})

	return fmt.Sprintf("you (%s) to move, open: %s", human, strings.Join(open, ", "))
}

func (that *Controller) usage() {
	that.showMessage("commands:")
	that.showMessage("play <position|index> - play a cell, e.g. play top_left or play 0")
	that.showMessage("new [markers] [first|second] - start a new game, e.g. new OX second")
	that.showMessage("show - print the board")
	that.showMessage("help - print this message")
	that.showMessage("quit - leave")
	that.showMessage("cell indexes:")
	that.showMessage(RenderIndexes())
}

func (that *Controller) showMessage(msg string) {
	if _, err := fmt.Fprintln(that.out, msg); err != nil {
		that.logger.Warn("could not write message", "error", err)
	}
}

func (that *Controller) showError(err error) {
	that.showMessage("Error: " + err.Error())
}
