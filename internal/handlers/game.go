package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/session"
)

type GameHandler struct {
	log          logrus.FieldLogger
	session      *session.Session
	ws           *config.WebSocket
	tickInterval time.Duration
}

func NewGameHandler(
	log logrus.FieldLogger,
	s *session.Session,
	ws *config.WebSocket,
	tickInterval time.Duration,
) *GameHandler {
	return &GameHandler{
		log:          log,
		session:      s,
		ws:           ws,
		tickInterval: tickInterval,
	}
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, g.session.View())
}

// NewGame restarts the session. Settings missing from the query keep their
// current values.
func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	settings, err := config.SettingsFromValues(g.session.Settings(), r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	view, err := g.session.Restart(&settings)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	sendJSONOrLog(w, g.log, view)
}

func (g *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	sendJSONOrLog(w, g.log, g.session.Reveal(pos.X, pos.Y))
}

func (g *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	sendJSONOrLog(w, g.log, g.session.Flag(pos.X, pos.Y))
}

func (g *GameHandler) Tick(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, g.session.Tick())
}
