package entity

import "fmt"

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

type ResultKind string

const (
	ResultInProgress ResultKind = "in-progress"
	ResultWin        ResultKind = "win"
	ResultDraw       ResultKind = "draw"
)

// Line is an index triple on the board.
type Line [3]int

// WinLines - every line that wins the game, in the order they are evaluated:
// rows top to bottom, columns left to right, main diagonal, anti-diagonal.
var WinLines = []Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board holds the cells in row-major order.
type Board [BoardSize]Mark

// Result is the outcome of the board after a move.
type Result struct {
	Kind ResultKind `json:"kind"`
	Mark Mark       `json:"mark,omitempty"`
	Line Line       `json:"line,omitempty"`
}

func InProgress() Result {
	return Result{Kind: ResultInProgress}
}

func Win(mark Mark, line Line) Result {
	return Result{Kind: ResultWin, Mark: mark, Line: line}
}

func Draw() Result {
	return Result{Kind: ResultDraw}
}

func (that Result) IsTerminal() bool {
	return that.Kind == ResultWin || that.Kind == ResultDraw
}

func (that Result) String() string {
	switch that.Kind {
	case ResultWin:
		return fmt.Sprintf("%s wins on %v", that.Mark, that.Line)
	case ResultDraw:
		return "draw"
	default:
		return string(ResultInProgress)
	}
}

// Row - returns the zero-based row of the cell index.
func Row(index int) int {
	return index / BoardSide
}

// Column - returns the zero-based column of the cell index.
func Column(index int) int {
	return index % BoardSide
}

// IsValidIndex - reports whether index addresses a cell of the board.
func IsValidIndex(index int) bool {
	return index >= 0 && index < BoardSize
}

// DetermineResult - checks the win lines in order and returns the first complete one.
// A full board without a complete line is a draw.
func (that Board) DetermineResult() Result {
	for _, line := range WinLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if !a.IsEmpty() && a == b && b == c {
			return Win(a, line)
		}
	}

	// the game will continue until all the squares are full
	if !that.IsFull() {
		return InProgress()
	}

	return Draw()
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}
	return true
}

func (that Board) IsEmpty() bool {
	for _, cell := range that {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}
