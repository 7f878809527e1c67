package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/msgcat"
	"github.com/rocketscienceinc/tictactoe-engine/internal/render"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/transport/snapshot"
)

// RunApp - runs the game on the process's stdin and stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, shutting down", "component", "app", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - wires the engine to its observers and runs the console until it stops.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	catalog, err := msgcat.New(conf.Console.Locale, conf.Console.MessagesDir)
	if err != nil {
		return fmt.Errorf("could not load messages: %w", err)
	}

	gameController := tictactoe.NewGameController(logger)

	if conf.Snapshot.Enabled() {
		renderer, err := render.NewBoardRenderer(conf.Snapshot.CellSize)
		if err != nil {
			return fmt.Errorf("could not create board renderer: %w", err)
		}

		unsubscribe := gameController.Subscribe(snapshot.New(logger, renderer, conf.Snapshot.Path))
		defer unsubscribe()

		log.Info("Board snapshots enabled", "path", conf.Snapshot.Path)
	}

	consoleServer := console.New(logger, gameController, catalog, in, out, !conf.Console.NoColor)
	unsubscribe := gameController.Subscribe(consoleServer)
	defer unsubscribe()

	gameController.NewGame()

	log.Info("Starting console", "locale", conf.Console.Locale)
	if err = consoleServer.Run(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}
