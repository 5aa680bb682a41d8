package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/shell"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	match, err := NewMatch(logger, conf.Game)
	if err != nil {
		return err
	}

	controller := shell.New(logger, match, os.Stdout)

	// run console session
	shellErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console session", "markers", conf.Game.Markers, "computer-first", conf.Game.ComputerFirst)
		shellErrCh <- controller.Loop(ctx, conf.Shell)
	}()

	select {
	case err = <-shellErrCh:
		if err != nil {
			return fmt.Errorf("console session error: %w", err)
		}
		log.Info("Console session ended")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// NewMatch - builds the grid, auto player and match described by the game config.
func NewMatch(logger *slog.Logger, conf config.Game) (*usecase.Match, error) {
	grid, err := entity.NewGridFromPair(conf.Markers)
	if err != nil {
		return nil, fmt.Errorf("could not create grid: %w", err)
	}

	match, err := usecase.NewMatch(logger, service.NewAutoPlayer(), grid, conf.HumanMarker())
	if err != nil {
		return nil, fmt.Errorf("could not create match: %w", err)
	}

	return match, nil
}
