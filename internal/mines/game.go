package mines

import (
	"encoding"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"time"

	"github.com/gammazero/deque"
)

type Status int

const (
	Running Status = iota
	Win
	GameOver
)

var (
	_ encoding.TextMarshaler   = Status(0)
	_ encoding.TextUnmarshaler = (*Status)(nil)
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Win:
		return "win"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Running, Win, GameOver:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("unknown game status %d", int(s))
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "running":
		*s = Running
	case "win":
		*s = Win
	case "game_over":
		*s = GameOver
	default:
		return fmt.Errorf("unknown game status %q", text)
	}
	return nil
}

// Game is the state of one minesweeper board. A Game is not safe for
// concurrent use; callers serialize access to it.
type Game struct {
	settings Settings
	board    []Cell // row-major, Height rows of Width cells
	status   Status

	startedAt time.Time

	revealedCount    int
	flaggedCount     int
	flaggedMineCount int

	rnd *rand.Rand
	now func() time.Time
}

type Option func(*Game)

// WithRand sets the source mines are placed from.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.rnd = r
	}
}

// WithClock sets the source of the game's start time and elapsed time.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// New validates settings and returns a running game with freshly placed
// mines.
func New(settings Settings, opts ...Option) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	g := &Game{settings: settings}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = NewRand()
	}
	if g.now == nil {
		g.now = time.Now
	}
	g.Restart()
	return g, nil
}

// Restart discards the board, places new mines and resets the status, the
// counters and the timer. Settings are kept.
func (g *Game) Restart() {
	g.layMines(sampleMines(g.settings.Cells(), g.settings.MineCount, g.rnd))
	g.status = Running
	g.startedAt = g.now()
	g.revealedCount = 0
	g.flaggedCount = 0
	g.flaggedMineCount = 0
}

func (g *Game) Settings() Settings {
	return g.settings
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) MineCount() int {
	return g.settings.MineCount
}

func (g *Game) FlaggedCount() int {
	return g.flaggedCount
}

func (g *Game) RevealedCount() int {
	return g.revealedCount
}

// RemainingMines is the mine counter shown to the player. It goes negative
// when more cells are flagged than there are mines.
func (g *Game) RemainingMines() int {
	return g.settings.MineCount - g.flaggedCount
}

func (g *Game) StartedAt() time.Time {
	return g.startedAt
}

// SecondsRunning returns the whole seconds since the game was (re)started.
// It keeps counting after the game has been won or lost.
func (g *Game) SecondsRunning() int {
	return int(g.now().Sub(g.startedAt) / time.Second)
}

func (g *Game) InBounds(x, y int) bool {
	return g.settings.InBounds(x, y)
}

// Cell returns the cell at x:y. ok is false if x:y is off the board.
func (g *Game) Cell(x, y int) (c Cell, ok bool) {
	if !g.InBounds(x, y) {
		return Cell{}, false
	}
	return g.board[y*g.settings.Width+x], true
}

func (g *Game) cell(x, y int) *Cell {
	return &g.board[y*g.settings.Width+x]
}

// Reveal opens the cell at x:y. Opening a mine ends the game; opening a cell
// with no adjacent mines opens its whole empty region. Calls on a finished
// game, off the board, or on a revealed or flagged cell do nothing.
func (g *Game) Reveal(x, y int) {
	if g.status != Running || !g.InBounds(x, y) {
		return
	}

	c := g.cell(x, y)
	if c.revealed || c.flagged {
		return
	}

	switch {
	case c.mine:
		c.revealed = true
		g.revealedCount++
		g.status = GameOver
	case c.adjacent == 0:
		g.revealZeros(x, y)
	default:
		c.revealed = true
		g.revealedCount++
	}

	/* If the player has already lost, don't let them win as well. */
	if g.status == Running {
		g.checkWin()
	}
}

// revealZeros opens the connected region of zero cells around x:y together
// with its numbered border.
func (g *Game) revealZeros(x, y int) {
	w := g.settings.Width

	var todo deque.Deque[int]
	todo.PushBack(y*w + x)

	for todo.Len() > 0 {
		i := todo.PopBack()
		c := &g.board[i]
		if c.revealed || c.flagged {
			continue
		}

		c.revealed = true
		g.revealedCount++
		if c.adjacent != 0 {
			continue
		}

		g.settings.neighbours(i%w, i/w, func(xx, yy int) {
			if n := g.cell(xx, yy); !n.revealed && !n.flagged {
				todo.PushBack(yy*w + xx)
			}
		})
	}
}

// Flag toggles the flag on the cell at x:y. Calls on a finished game, off the
// board, or on a revealed cell do nothing.
func (g *Game) Flag(x, y int) {
	if g.status != Running || !g.InBounds(x, y) {
		return
	}

	c := g.cell(x, y)
	if c.revealed {
		return
	}

	if c.flagged {
		c.flagged = false
		g.flaggedCount--
		if c.mine {
			g.flaggedMineCount--
		}
	} else {
		c.flagged = true
		g.flaggedCount++
		if c.mine {
			g.flaggedMineCount++
		}
	}

	g.checkWin()
}

// checkWin applies both win conditions: every safe cell revealed, or every
// mine flagged.
func (g *Game) checkWin() {
	if g.revealedCount == g.settings.Cells()-g.settings.MineCount {
		g.status = Win
	}
	if g.flaggedMineCount == g.settings.MineCount {
		g.status = Win
	}
}
