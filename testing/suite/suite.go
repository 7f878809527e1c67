package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/msgcat"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Messages   *msgcat.Catalog
	Controller *tictactoe.GameController
}

// New - builds a fresh controller and the English catalog for a test.
// The context is canceled when the test ends.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	catalog, err := msgcat.New(msgcat.DefaultLocale, "")
	if err != nil {
		t.Fatalf("could not load messages: %v", err)
	}

	return ctx, &Suite{
		T:          t,
		Logger:     logger,
		Messages:   catalog,
		Controller: tictactoe.NewGameController(logger),
	}
}
