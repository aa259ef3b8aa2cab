package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

// View is what the presentation layer draws after an operation.
type View struct {
	GameID string `json:"game_id"`
	mines.Snapshot
}

// Tick carries the timer readout. Running is false once the game is over and
// the client should stop its timer.
type Tick struct {
	GameID  string       `json:"game_id"`
	Seconds int          `json:"seconds"`
	Status  mines.Status `json:"status"`
	Running bool         `json:"running"`
}

// Session owns a single game. Every method locks for the whole operation
// including the snapshot, so callers never see a half-applied move.
type Session struct {
	mu     sync.Mutex
	log    logrus.FieldLogger
	opts   []mines.Option
	game   *mines.Game
	gameID string
	// finalSeconds is the timer reading at the move that ended the game.
	finalSeconds int
}

func New(settings mines.Settings, log logrus.FieldLogger, opts ...mines.Option) (*Session, error) {
	game, err := mines.New(settings, opts...)
	if err != nil {
		return nil, err
	}
	s := &Session{
		log:    log,
		opts:   opts,
		game:   game,
		gameID: uuid.NewString(),
	}
	s.log.WithFields(logrus.Fields{
		"game_id":  s.gameID,
		"settings": settings.String(),
	}).Info("new game")
	return s, nil
}

// Restart starts a new game. With nil settings the current ones are kept;
// otherwise they are validated and the old game is only replaced on success.
func (s *Session) Restart(settings *mines.Settings) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings == nil {
		s.game.Restart()
	} else {
		game, err := mines.New(*settings, s.opts...)
		if err != nil {
			return View{}, err
		}
		s.game = game
	}
	s.gameID = uuid.NewString()
	s.finalSeconds = 0

	s.log.WithFields(logrus.Fields{
		"game_id":  s.gameID,
		"settings": s.game.Settings().String(),
	}).Info("new game")

	return s.view(), nil
}

type move int

const (
	reveal move = iota
	flag
)

func (m move) String() string {
	if m == reveal {
		return "reveal"
	}
	return "flag"
}

func (s *Session) Reveal(x, y int) View {
	return s.apply(reveal, x, y)
}

func (s *Session) Flag(x, y int) View {
	return s.apply(flag, x, y)
}

func (s *Session) apply(m move, x, y int) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.game.Status()
	switch m {
	case reveal:
		s.game.Reveal(x, y)
	case flag:
		s.game.Flag(x, y)
	}
	after := s.game.Status()

	log := s.log.WithFields(logrus.Fields{
		"game_id": s.gameID,
		"move":    m.String(),
		"x":       x,
		"y":       y,
	})
	if before == mines.Running && after != mines.Running {
		s.finalSeconds = s.game.SecondsRunning()
		log.WithFields(logrus.Fields{
			"status":  after.String(),
			"seconds": s.finalSeconds,
		}).Info("game finished")
	}

	v := s.view()
	log.Debug("\n" + v.Snapshot.String())
	return v
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) Settings() mines.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Settings()
}

func (s *Session) Tick() Tick {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.game.Status()
	return Tick{
		GameID:  s.gameID,
		Seconds: s.seconds(),
		Status:  status,
		Running: status == mines.Running,
	}
}

func (s *Session) view() View {
	v := View{GameID: s.gameID, Snapshot: s.game.Snapshot()}
	v.Seconds = s.seconds()
	return v
}

func (s *Session) seconds() int {
	if s.game.Status() != mines.Running {
		return s.finalSeconds
	}
	return s.game.SecondsRunning()
}
