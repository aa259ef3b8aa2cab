package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/session"
)

const (
	messageGame  = "game"
	messageTick  = "tick"
	messageError = "error"
)

type wsMessage struct {
	Type  string        `json:"type"`
	Game  *session.View `json:"game,omitempty"`
	Tick  *session.Tick `json:"tick,omitempty"`
	Error string        `json:"error,omitempty"`
}

var errUnknownCommand = errors.New("unknown command")

var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"n": 0,
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func (g *GameHandler) executeCommand(c string) (session.View, error) {
	parts := strings.Fields(c)

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return session.View{}, fmt.Errorf("%w %q", errUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return session.View{}, fmt.Errorf("invalid number of arguments for %q", parts[0])
	}

	switch parts[0] {
	case "o", "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return session.View{}, err
		}
		if parts[0] == "o" {
			return g.session.Reveal(x, y), nil
		}
		return g.session.Flag(x, y), nil
	case "n":
		return g.session.Restart(nil)
	}
	return g.session.View(), nil
}

// ConnectWS serves one player connection. Every text frame is a list of
// newline-separated commands and is answered with the resulting game view;
// timer ticks are pushed in between.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithField("remote_addr", r.RemoteAddr)
	log.Debug("ws connected")

	out := make(chan wsMessage)
	eg, ctx := errgroup.WithContext(r.Context())
	eg.Go(func() error {
		defer close(out)
		return g.readCommands(ctx, c, out, log)
	})
	eg.Go(func() error {
		return g.writeMessages(ctx, c, out, log)
	})

	if err := eg.Wait(); err != nil {
		log.WithError(err).Warn("abnormal ws break")
		return
	}
	log.Debug("ws disconnected")
}

func send(ctx context.Context, out chan<- wsMessage, m wsMessage) error {
	select {
	case out <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *GameHandler) readCommands(
	ctx context.Context,
	c *websocket.Conn,
	out chan<- wsMessage,
	log logrus.FieldLogger,
) error {
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		if mt != websocket.TextMessage {
			return errors.New("read: unexpected binary message")
		}

		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)

		var view *session.View
		for _, line := range byPiece(text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			v, err := g.executeCommand(line)
			if err != nil {
				log.WithError(err).Debug("rejected command")
				if err := send(ctx, out, wsMessage{Type: messageError, Error: err.Error()}); err != nil {
					return err
				}
				continue
			}
			view = &v
		}
		if view == nil {
			v := g.session.View()
			view = &v
		}
		if err := send(ctx, out, wsMessage{Type: messageGame, Game: view}); err != nil {
			return err
		}
	}
}

func (g *GameHandler) writeMessages(
	ctx context.Context,
	c *websocket.Conn,
	out <-chan wsMessage,
	log logrus.FieldLogger,
) error {
	ticker := time.NewTicker(g.tickInterval)
	defer ticker.Stop()

	for {
		var m wsMessage
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-out:
			if !ok {
				return nil
			}
			m = msg
		case <-ticker.C:
			tick := g.session.Tick()
			m = wsMessage{Type: messageTick, Tick: &tick}
		}

		if err := c.WriteJSON(m); err != nil {
			// unblocks the reader
			c.Close()
			return fmt.Errorf("write: %w", err)
		}
		if m.Type != messageTick {
			log.Debugf("\t< %s", m.Type)
		}
	}
}
