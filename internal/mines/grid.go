package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellView is the player-visible state of a cell. Mine and AdjacentMines are
// only set for revealed cells.
type CellView struct {
	Revealed      bool `json:"revealed"`
	Flagged       bool `json:"flagged"`
	Mine          bool `json:"mine"`
	AdjacentMines int  `json:"adjacent_mines"`
}

func (v CellView) String() string {
	switch {
	case v.Flagged:
		return "F"
	case !v.Revealed:
		return "."
	case v.Mine:
		return "*"
	default:
		return strconv.Itoa(v.AdjacentMines)
	}
}

// Snapshot is a consistent copy of everything a presentation layer needs to
// draw the game. It shares no memory with the [Game].
type Snapshot struct {
	Settings
	Status         Status       `json:"status"`
	FlaggedCount   int          `json:"flagged_count"`
	RemainingMines int          `json:"remaining_mines"`
	Seconds        int          `json:"seconds"`
	Cells          [][]CellView `json:"cells"`
}

func (g *Game) Snapshot() Snapshot {
	w, h, _ := g.settings.Unpack()
	cells := make([][]CellView, h)
	for y := range h {
		row := make([]CellView, w)
		for x := range w {
			c := g.board[y*w+x]
			row[x] = CellView{
				Revealed:      c.IsRevealed(),
				Flagged:       c.IsFlagged(),
				Mine:          c.IsMine(),
				AdjacentMines: c.AdjacentMines(),
			}
		}
		cells[y] = row
	}
	return Snapshot{
		Settings:       g.settings,
		Status:         g.status,
		FlaggedCount:   g.flaggedCount,
		RemainingMines: g.RemainingMines(),
		Seconds:        g.SecondsRunning(),
		Cells:          cells,
	}
}

// String renders the snapshot for debug output:
//
//	.  hidden
//	F  flagged
//	*  revealed mine
//	0-8 revealed count
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "|%s\n", s.Status)
	fmt.Fprintf(&b, "|mc: %d\n", s.MineCount)
	fmt.Fprintf(&b, "|fc: %d\n", s.FlaggedCount)
	border := "|" + strings.Repeat("-", s.Width*2+1) + "|\n"
	b.WriteString(border)
	for _, row := range s.Cells {
		b.WriteString("| ")
		for _, v := range row {
			b.WriteString(v.String() + " ")
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}
