package app

import (
	"github.com/vancomm/minesweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.session, a.ws, a.cfg.TickInterval,
	)

	a.router.HandleFunc("GET /status", handlers.Status)
	a.router.HandleFunc("GET /game", game.Fetch)
	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("POST /game/reveal", game.Reveal)
	a.router.HandleFunc("POST /game/flag", game.Flag)
	a.router.HandleFunc("GET /game/tick", game.Tick)
	a.router.HandleFunc("GET /game/connect", game.ConnectWS)
}
