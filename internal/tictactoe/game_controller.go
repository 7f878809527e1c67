package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Observer is notified by the GameController about everything a UI needs to render.
type Observer interface {
	BoardChanged(board entity.Board)
	GameEnded(result entity.Result)
}

// GameController owns the board and the turn. It is not safe for concurrent use:
// it is driven from the single goroutine that dispatches UI events.
type GameController struct {
	logger *slog.Logger

	board   entity.Board
	turn    entity.Mark
	roundID string

	observers []*subscription
}

type subscription struct {
	observer Observer
}

func NewGameController(logger *slog.Logger) *GameController {
	that := &GameController{
		logger: logger.With("component", "game_controller"),
	}
	that.reset()

	return that
}

// Subscribe - registers an observer and returns the function that removes it.
func (that *GameController) Subscribe(observer Observer) func() {
	sub := &subscription{observer: observer}
	that.observers = append(that.observers, sub)

	return func() {
		for i, s := range that.observers {
			if s == sub {
				that.observers = append(that.observers[:i], that.observers[i+1:]...)
				return
			}
		}
	}
}

// NewGame - clears the board, gives the first turn to X and publishes the empty board.
func (that *GameController) NewGame() {
	that.reset()
	that.notifyBoard()
}

// ApplyMove - places the mark of the current turn on the cell.
// A move on an occupied cell is ignored. A move that ends the game resets the
// controller before observers hear about the result.
func (that *GameController) ApplyMove(cell int) (entity.Result, error) {
	log := that.logger.With("method", "ApplyMove", "round", that.roundID, "cell", cell)

	if !entity.IsValidIndex(cell) {
		return entity.InProgress(), fmt.Errorf("%w: cell %d", apperror.ErrInvalidIndex, cell)
	}

	if !that.board[cell].IsEmpty() {
		log.Debug("cell is already occupied, move ignored")
		return entity.InProgress(), nil
	}

	mark := that.turn
	that.board[cell] = mark
	that.turn = mark.Opponent()
	log.Debug("mark placed", "mark", mark)

	that.notifyBoard()

	result := that.board.DetermineResult()
	if result.IsTerminal() {
		log.Info("game finished", "result", result.String())
		that.finish(result)
	}

	return result, nil
}

// Board - returns a copy of the current board.
func (that *GameController) Board() entity.Board {
	return that.board
}

// Turn - returns the mark that moves next.
func (that *GameController) Turn() entity.Mark {
	return that.turn
}

// RoundID - identifies the current game in logs.
func (that *GameController) RoundID() string {
	return that.roundID
}

func (that *GameController) finish(result entity.Result) {
	that.reset()

	for _, sub := range that.snapshotObservers() {
		sub.observer.GameEnded(result)
	}

	that.notifyBoard()
}

func (that *GameController) reset() {
	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.roundID = uuid.NewString()

	that.logger.Debug("new game", "round", that.roundID)
}

func (that *GameController) notifyBoard() {
	board := that.board
	for _, sub := range that.snapshotObservers() {
		sub.observer.BoardChanged(board)
	}
}

// snapshotObservers lets an observer unsubscribe while being notified.
func (that *GameController) snapshotObservers() []*subscription {
	observers := make([]*subscription, len(that.observers))
	copy(observers, that.observers)
	return observers
}
