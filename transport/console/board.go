package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const rowSeparator = "---+---+---"

// BoardChanged - prints the board, empty cells show the number that selects them.
func (that *Server) BoardChanged(board entity.Board) {
	that.write(that.formatBoard(board))
}

// GameEnded - announces the result. The engine has already started the next game.
func (that *Server) GameEnded(result entity.Result) {
	switch result.Kind {
	case entity.ResultWin:
		that.say("game.win", map[string]any{"Mark": that.paintMark(result.Mark)})
	case entity.ResultDraw:
		that.say("game.draw", nil)
	case entity.ResultInProgress:
	}
}

func (that *Server) formatBoard(board entity.Board) string {
	var b strings.Builder

	b.WriteString("\n")
	for row := 0; row < entity.BoardSide; row++ {
		if row > 0 {
			b.WriteString(rowSeparator + "\n")
		}

		cells := make([]string, 0, entity.BoardSide)
		for col := 0; col < entity.BoardSide; col++ {
			index := row*entity.BoardSide + col
			cells = append(cells, " "+that.paintCell(index, board[index])+" ")
		}
		b.WriteString(strings.Join(cells, "|") + "\n")
	}
	b.WriteString("\n")

	return b.String()
}

func (that *Server) paintCell(index int, mark entity.Mark) string {
	if mark.IsEmpty() {
		return fmt.Sprint(that.colors.Faint(strconv.Itoa(index + 1)))
	}
	return that.paintMark(mark)
}

func (that *Server) paintMark(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return fmt.Sprint(that.colors.Red(mark.String()))
	case entity.PlayerO:
		return fmt.Sprint(that.colors.Blue(mark.String()))
	default:
		return mark.String()
	}
}
