package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errQuit = errors.New("quit")

type gameEngine interface {
	ApplyMove(cell int) (entity.Result, error)
	NewGame()
	Turn() entity.Mark
}

type messages interface {
	Render(key string, data any) (string, error)
}

// Server is the terminal front end of the game. It reads commands from in, drives
// the engine and prints what the engine publishes to out.
type Server struct {
	logger   *slog.Logger
	engine   gameEngine
	messages messages
	colors   aurora.Aurora

	in  io.Reader
	out io.Writer

	handlers map[string]func(ctx context.Context) error
}

func New(logger *slog.Logger, engine gameEngine, messages messages, in io.Reader, out io.Writer, color bool) *Server {
	server := &Server{
		logger:   logger.With("component", "console"),
		engine:   engine,
		messages: messages,
		colors:   aurora.NewAurora(color),

		in:  in,
		out: out,

		handlers: make(map[string]func(context.Context) error),
	}

	server.handlers["new"] = server.handleNewGame
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Run - processes commands until quit, end of input or cancellation of ctx.
func (that *Server) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
		close(lines)
	}()

	if err := that.handleHelp(ctx); err != nil {
		return err
	}

	for {
		that.prompt()

		select {
		case <-ctx.Done():
			log.Info("context canceled, console stopped")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read command: %w", err)
				}
				log.Info("end of input, console stopped")
				return nil
			}

			err := that.handleCommand(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// handleCommand - dispatches a single line of input.
func (that *Server) handleCommand(ctx context.Context, line string) error {
	command := strings.ToLower(strings.TrimSpace(line))
	if command == "" {
		return nil
	}

	if number, err := strconv.Atoi(command); err == nil {
		return that.handleMove(number)
	}

	handler, ok := that.handlers[command]
	if !ok {
		that.logger.Debug("unknown command", "error", fmt.Errorf("%w: %s", apperror.ErrUnknownCommand, command))
		that.say("console.unknown", map[string]any{"Command": command})
		return nil
	}

	return handler(ctx)
}

// handleMove - cells are numbered 1-9 for humans.
func (that *Server) handleMove(number int) error {
	_, err := that.engine.ApplyMove(number - 1)
	if errors.Is(err, apperror.ErrInvalidIndex) {
		that.say("console.invalid_cell", map[string]any{"Cell": number})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	return nil
}

func (that *Server) handleNewGame(_ context.Context) error {
	that.engine.NewGame()
	that.say("game.new", map[string]any{"Turn": that.engine.Turn()})

	return nil
}

func (that *Server) handleHelp(_ context.Context) error {
	that.say("console.help", nil)
	return nil
}

func (that *Server) handleQuit(_ context.Context) error {
	that.say("console.bye", nil)
	return errQuit
}

func (that *Server) prompt() {
	text, err := that.messages.Render("console.prompt", map[string]any{"Turn": that.paintMark(that.engine.Turn())})
	if err != nil {
		that.logger.Error("failed to render prompt", "error", err)
		return
	}

	that.write(text)
}

func (that *Server) say(key string, data any) {
	text, err := that.messages.Render(key, data)
	if err != nil {
		that.logger.Error("failed to render message", "key", key, "error", err)
		return
	}

	that.write(text + "\n")
}

func (that *Server) write(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write to console", "error", err)
	}
}
