package tictactoe

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	board  *entity.Board
	result *entity.Result
}

type recorder struct {
	events []event
}

func (that *recorder) BoardChanged(board entity.Board) {
	that.events = append(that.events, event{board: &board})
}

func (that *recorder) GameEnded(result entity.Result) {
	that.events = append(that.events, event{result: &result})
}

func (that *recorder) results() []entity.Result {
	var results []entity.Result
	for _, e := range that.events {
		if e.result != nil {
			results = append(results, *e.result)
		}
	}
	return results
}

func newController(t *testing.T) (*GameController, *recorder) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	controller := NewGameController(logger)

	rec := &recorder{}
	controller.Subscribe(rec)

	return controller, rec
}

func play(t *testing.T, controller *GameController, cells ...int) entity.Result {
	t.Helper()

	var result entity.Result
	for _, cell := range cells {
		var err error
		result, err = controller.ApplyMove(cell)
		require.NoError(t, err)
	}
	return result
}

func TestNewGameController(t *testing.T) {
	// When: create a new controller
	controller, rec := newController(t)

	// Then: the board is empty, X moves first and nothing has been published yet
	assert.Equal(t, entity.Board{}, controller.Board())
	assert.Equal(t, entity.PlayerX, controller.Turn())
	assert.NotEmpty(t, controller.RoundID())
	assert.Empty(t, rec.events)
}

func TestGameController_ApplyMove(t *testing.T) {
	t.Run("Every first move succeeds and passes the turn to O", func(t *testing.T) {
		for cell := 0; cell < entity.BoardSize; cell++ {
			// Given: a new game
			controller, rec := newController(t)

			// When: X plays the cell
			result, err := controller.ApplyMove(cell)
			require.NoError(t, err)

			// Then: the mark is placed and the turn flips
			expected := entity.Board{}
			expected[cell] = entity.PlayerX

			assert.Equal(t, entity.InProgress(), result)
			assert.Equal(t, expected, controller.Board())
			assert.Equal(t, entity.PlayerO, controller.Turn())

			require.Len(t, rec.events, 1)
			assert.Equal(t, expected, *rec.events[0].board)
		}
	})

	t.Run("Move on an occupied cell is ignored", func(t *testing.T) {
		// Given: a game where X has played cell 4
		controller, rec := newController(t)
		play(t, controller, 4)

		board, turn := controller.Board(), controller.Turn()

		// When: O tries the same cell
		result, err := controller.ApplyMove(4)

		// Then: nothing changes and nothing is published
		require.NoError(t, err)
		assert.Equal(t, entity.InProgress(), result)
		assert.Equal(t, board, controller.Board())
		assert.Equal(t, turn, controller.Turn())
		assert.Len(t, rec.events, 1)
	})

	t.Run("Invalid cell index is rejected", func(t *testing.T) {
		for _, cell := range []int{-1, 9, 20} {
			// Given: a game in progress
			controller, rec := newController(t)
			play(t, controller, 0)

			board, turn := controller.Board(), controller.Turn()

			// When: an index outside the board is passed
			_, err := controller.ApplyMove(cell)

			// Then: ErrInvalidIndex is returned and the state is untouched
			require.ErrorIs(t, err, apperror.ErrInvalidIndex)
			assert.Equal(t, board, controller.Board())
			assert.Equal(t, turn, controller.Turn())
			assert.Len(t, rec.events, 1)
		}
	})
}

func TestGameController_Win(t *testing.T) {
	tests := []struct {
		name  string
		moves []int
		line  entity.Line
		mark  entity.Mark
	}{
		{name: "top row", moves: []int{0, 3, 1, 4, 2}, line: entity.Line{0, 1, 2}, mark: entity.PlayerX},
		{name: "middle row", moves: []int{3, 0, 4, 1, 5}, line: entity.Line{3, 4, 5}, mark: entity.PlayerX},
		{name: "bottom row", moves: []int{6, 0, 7, 1, 8}, line: entity.Line{6, 7, 8}, mark: entity.PlayerX},
		{name: "left column", moves: []int{0, 1, 3, 2, 6}, line: entity.Line{0, 3, 6}, mark: entity.PlayerX},
		{name: "middle column", moves: []int{1, 0, 4, 2, 7}, line: entity.Line{1, 4, 7}, mark: entity.PlayerX},
		{name: "right column", moves: []int{2, 0, 5, 1, 8}, line: entity.Line{2, 5, 8}, mark: entity.PlayerX},
		{name: "main diagonal", moves: []int{0, 1, 4, 2, 8}, line: entity.Line{0, 4, 8}, mark: entity.PlayerX},
		{name: "anti-diagonal", moves: []int{2, 0, 4, 1, 6}, line: entity.Line{2, 4, 6}, mark: entity.PlayerX},
		{name: "O on the middle row", moves: []int{0, 3, 1, 4, 8, 5}, line: entity.Line{3, 4, 5}, mark: entity.PlayerO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a new game
			controller, rec := newController(t)
			firstRound := controller.RoundID()

			// When: the moves complete the line
			result := play(t, controller, tt.moves...)

			// Then: the win is reported with its line
			assert.Equal(t, entity.Win(tt.mark, tt.line), result)
			assert.Equal(t, []entity.Result{entity.Win(tt.mark, tt.line)}, rec.results())

			// Then: the game has already restarted
			assert.Equal(t, entity.Board{}, controller.Board())
			assert.Equal(t, entity.PlayerX, controller.Turn())
			assert.NotEqual(t, firstRound, controller.RoundID())
		})
	}
}

func TestGameController_RowBeatsColumn(t *testing.T) {
	// Given: X holds 1, 2, 3 and 6 so that cell 0 completes the top row and the left column
	controller, rec := newController(t)
	play(t, controller, 1, 4, 2, 5, 3, 7, 6, 8)

	// When: X plays cell 0
	result := play(t, controller, 0)

	// Then: the row is reported, never the column
	assert.Equal(t, entity.Win(entity.PlayerX, entity.Line{0, 1, 2}), result)
	assert.Equal(t, []entity.Result{result}, rec.results())
}

func TestGameController_Draw(t *testing.T) {
	// Given: X on 0, 1, 5, 6, 7 and O on 2, 3, 4, 8
	controller, rec := newController(t)
	result := play(t, controller, 0, 2, 1, 3, 5, 4, 6, 8)
	require.Equal(t, entity.InProgress(), result)
	require.Empty(t, rec.results())

	// When: the last cell is filled
	result = play(t, controller, 7)

	// Then: a draw is reported and the game restarts
	assert.Equal(t, entity.Draw(), result)
	assert.Equal(t, []entity.Result{entity.Draw()}, rec.results())
	assert.Equal(t, entity.Board{}, controller.Board())
	assert.Equal(t, entity.PlayerX, controller.Turn())
}

type resetProbe struct {
	controller *GameController
	boardAtEnd entity.Board
	turnAtEnd  entity.Mark
}

func (that *resetProbe) BoardChanged(entity.Board) {}

func (that *resetProbe) GameEnded(entity.Result) {
	that.boardAtEnd = that.controller.Board()
	that.turnAtEnd = that.controller.Turn()
}

func TestGameController_TerminalNotificationOrder(t *testing.T) {
	// Given: a game one move away from a win
	controller, rec := newController(t)
	probe := &resetProbe{controller: controller, turnAtEnd: entity.PlayerO}
	controller.Subscribe(probe)
	play(t, controller, 0, 3, 1, 4)
	rec.events = nil

	// When: X completes the top row
	play(t, controller, 2)

	// Then: the winning board is published, then the result, then the cleared board
	require.Len(t, rec.events, 3)
	assert.Equal(t, entity.Board{
		entity.PlayerX, entity.PlayerX, entity.PlayerX,
		entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}, *rec.events[0].board)
	assert.Equal(t, entity.Win(entity.PlayerX, entity.Line{0, 1, 2}), *rec.events[1].result)
	assert.Equal(t, entity.Board{}, *rec.events[2].board)

	// Then: the controller was already reset when the result was delivered
	assert.Equal(t, entity.Board{}, probe.boardAtEnd)
	assert.Equal(t, entity.PlayerX, probe.turnAtEnd)
}

func TestGameController_NewGame(t *testing.T) {
	// Given: a game in progress
	controller, rec := newController(t)
	play(t, controller, 0, 4, 8)
	require.Equal(t, entity.PlayerO, controller.Turn())

	// When: a new game is requested
	controller.NewGame()

	// Then: the board is cleared, X moves first and the empty board is published
	assert.Equal(t, entity.Board{}, controller.Board())
	assert.Equal(t, entity.PlayerX, controller.Turn())
	assert.Equal(t, entity.Board{}, *rec.events[len(rec.events)-1].board)
	assert.Empty(t, rec.results())
}

func TestGameController_Subscribe(t *testing.T) {
	// Given: two observers
	controller, first := newController(t)
	second := &recorder{}
	unsubscribe := controller.Subscribe(second)

	// When: the second one unsubscribes before a move
	unsubscribe()
	play(t, controller, 0)

	// Then: only the first observer hears about it
	assert.Len(t, first.events, 1)
	assert.Empty(t, second.events)
}
