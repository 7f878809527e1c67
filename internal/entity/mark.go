package entity

// Mark is the symbol a player places on the board.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// IsEmpty - reports whether no player owns the cell.
func (that Mark) IsEmpty() bool {
	return that == EmptyCell
}

// Opponent - returns the mark that plays after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) String() string {
	if that.IsEmpty() {
		return " "
	}
	return string(that)
}
