package mines

import (
	"fmt"
	"strings"
)

// Settings is the per-game board configuration. It does not change for the
// lifetime of a [Game].
type Settings struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

var (
	Beginner     = Settings{Width: 8, Height: 8, MineCount: 10}
	Intermediate = Settings{Width: 16, Height: 16, MineCount: 40}
	Expert       = Settings{Width: 30, Height: 16, MineCount: 99}
)

var presets = map[string]Settings{
	"beginner":     Beginner,
	"intermediate": Intermediate,
	"expert":       Expert,
}

// Preset looks up a named preset, case-insensitively.
func Preset(name string) (Settings, bool) {
	s, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

func (s Settings) Unpack() (w int, h int, mc int) {
	return s.Width, s.Height, s.MineCount
}

// Cells returns the total number of cells on the board.
func (s Settings) Cells() int {
	return s.Width * s.Height
}

// Validate reports whether a board can be generated from s. A board needs at
// least one safe cell, so MineCount must stay below Width*Height.
func (s Settings) Validate() error {
	switch {
	case s.Width < 1:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidSettings, s.Width)
	case s.Height < 1:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidSettings, s.Height)
	case s.MineCount < 0:
		return fmt.Errorf("%w: mine count must not be negative, got %d", ErrInvalidSettings, s.MineCount)
	case s.MineCount >= s.Cells():
		return fmt.Errorf(
			"%w: %d mines do not fit a %dx%d board",
			ErrInvalidSettings, s.MineCount, s.Width, s.Height,
		)
	}
	return nil
}

func (s Settings) InBounds(x, y int) bool {
	return 0 <= x && x < s.Width && 0 <= y && y < s.Height
}

func (s Settings) String() string {
	return fmt.Sprintf("%dx%d(%d)", s.Width, s.Height, s.MineCount)
}
