package snapshot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type boardRenderer interface {
	RenderPNG(board entity.Board) ([]byte, error)
}

// Writer keeps a PNG picture of the latest board at path.
type Writer struct {
	logger   *slog.Logger
	renderer boardRenderer
	path     string
}

func New(logger *slog.Logger, renderer boardRenderer, path string) *Writer {
	return &Writer{
		logger:   logger.With("component", "snapshot", "path", path),
		renderer: renderer,
		path:     path,
	}
}

// BoardChanged - failures are logged, the game goes on without a picture.
func (that *Writer) BoardChanged(board entity.Board) {
	if err := that.Write(board); err != nil {
		that.logger.Error("failed to write snapshot", "error", err)
	}
}

func (that *Writer) GameEnded(result entity.Result) {
	that.logger.Debug("game ended", "result", result.String())
}

// Write - renders the board and replaces the file at path in one rename.
func (that *Writer) Write(board entity.Board) error {
	data, err := that.renderer.RenderPNG(board)
	if err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}

	dir := filepath.Dir(that.path)
	tmp, err := os.CreateTemp(dir, ".board-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), that.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
