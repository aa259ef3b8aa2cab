package session

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newSession(t *testing.T, settings mines.Settings) (*Session, *fakeClock, *test.Hook) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	s, err := New(
		settings, log,
		mines.WithRand(rand.New(rand.NewPCG(1, 2))),
		mines.WithClock(clock.Now),
	)
	require.NoError(t, err)
	return s, clock, hook
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	log, _ := test.NewNullLogger()
	s, err := New(mines.Settings{Width: 2, Height: 2, MineCount: 4}, log)
	assert.ErrorIs(t, err, mines.ErrInvalidSettings)
	assert.Nil(t, s)
}

func TestViewHidesBoard(t *testing.T) {
	s, _, _ := newSession(t, mines.Beginner)

	v := s.View()
	assert.NotEmpty(t, v.GameID)
	assert.Equal(t, mines.Beginner, v.Settings)
	assert.Equal(t, mines.Running, v.Status)
	assert.Equal(t, 10, v.RemainingMines)
	require.Len(t, v.Cells, 8)
	for _, row := range v.Cells {
		require.Len(t, row, 8)
		for _, c := range row {
			assert.Equal(t, mines.CellView{}, c)
		}
	}
}

func TestTimerFreezesWhenGameEnds(t *testing.T) {
	s, clock, hook := newSession(t, mines.Settings{Width: 3, Height: 3, MineCount: 0})

	clock.Advance(3 * time.Second)
	tick := s.Tick()
	assert.Equal(t, 3, tick.Seconds)
	assert.True(t, tick.Running)

	clock.Advance(2 * time.Second)
	v := s.Reveal(1, 1)
	assert.Equal(t, mines.Win, v.Status)
	assert.Equal(t, 5, v.Seconds)

	clock.Advance(time.Minute)
	tick = s.Tick()
	assert.Equal(t, 5, tick.Seconds)
	assert.False(t, tick.Running)
	assert.Equal(t, mines.Win, tick.Status)
	assert.Equal(t, 5, s.View().Seconds)

	var finished *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "game finished" {
			finished = e
		}
	}
	require.NotNil(t, finished)
	assert.Equal(t, "win", finished.Data["status"])
	assert.Equal(t, 5, finished.Data["seconds"])
}

func TestGameEndsEitherWay(t *testing.T) {
	// one safe cell and one mine: the first reveal always decides the game
	s, _, _ := newSession(t, mines.Settings{Width: 2, Height: 1, MineCount: 1})
	v := s.Reveal(0, 0)
	assert.NotEqual(t, mines.Running, v.Status)
	assert.True(t, v.Cells[0][0].Revealed)

	after := s.Reveal(1, 0)
	assert.Equal(t, v, after)
	assert.False(t, s.Tick().Running)
}

func TestRestart(t *testing.T) {
	s, clock, _ := newSession(t, mines.Beginner)
	first := s.View()

	s.Flag(0, 0)
	clock.Advance(7 * time.Second)

	v, err := s.Restart(nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.GameID, v.GameID)
	assert.Equal(t, mines.Beginner, v.Settings)
	assert.Zero(t, v.FlaggedCount)
	assert.Zero(t, v.Seconds)
	assert.Equal(t, mines.Running, v.Status)

	v, err = s.Restart(&mines.Expert)
	require.NoError(t, err)
	assert.Equal(t, mines.Expert, v.Settings)
	require.Len(t, v.Cells, 16)
	assert.Len(t, v.Cells[0], 30)

	current := v.GameID
	_, err = s.Restart(&mines.Settings{Width: 0, Height: 3, MineCount: 1})
	assert.ErrorIs(t, err, mines.ErrInvalidSettings)
	assert.Equal(t, current, s.View().GameID)
	assert.Equal(t, mines.Expert, s.View().Settings)
}

func TestFlagUpdatesCounter(t *testing.T) {
	s, _, hook := newSession(t, mines.Beginner)

	v := s.Flag(2, 3)
	assert.True(t, v.Cells[3][2].Flagged)
	assert.Equal(t, 1, v.FlaggedCount)
	assert.Equal(t, 9, v.RemainingMines)

	v = s.Flag(2, 3)
	assert.False(t, v.Cells[3][2].Flagged)
	assert.Equal(t, 10, v.RemainingMines)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "flag", entry.Data["move"])
}

func TestConcurrentUse(t *testing.T) {
	s, _, _ := newSession(t, mines.Expert)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewPCG(uint64(w), 7))
			for range 200 {
				x, y := r.IntN(30), r.IntN(16)
				var v View
				switch r.IntN(4) {
				case 0:
					v = s.Reveal(x, y)
				case 1:
					v = s.Flag(x, y)
				case 2:
					v = s.View()
				default:
					s.Tick()
					continue
				}
				flagged := 0
				for _, row := range v.Cells {
					for _, c := range row {
						if c.Flagged {
							flagged++
						}
						assert.False(t, c.Flagged && c.Revealed)
					}
				}
				assert.Equal(t, v.FlaggedCount, flagged)
			}
		}()
	}
	wg.Wait()
}
