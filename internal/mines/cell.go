package mines

// Cell is one board position. The mine flag and the adjacent mine count are
// fixed when the board is generated; only revealed and flagged change during
// play, and never both at once.
type Cell struct {
	mine     bool
	revealed bool
	flagged  bool
	adjacent int
}

// IsMine reports whether the cell is a mine. It is always false for cells
// that have not been revealed.
func (c Cell) IsMine() bool {
	return c.revealed && c.mine
}

func (c Cell) IsRevealed() bool {
	return c.revealed
}

func (c Cell) IsFlagged() bool {
	return c.flagged
}

// AdjacentMines returns the number of mines around the cell, or 0 if the cell
// has not been revealed.
func (c Cell) AdjacentMines() int {
	if !c.revealed {
		return 0
	}
	return c.adjacent
}
