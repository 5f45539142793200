package main

import (
	"context"
	"encoding/json"
	"moviedeck/proj/internal/domain/filters"
	"moviedeck/proj/internal/lib/debounce"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	liveWriteWait      = 5 * time.Second
	liveMaxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type liveQuery struct {
	Term   string   `json:"term"`
	Genres []string `json:"genres"`
}

type liveEvent struct {
	Type   string      `json:"type"`
	Term   string      `json:"term,omitempty"`
	Movies []movieCard `json:"movies"`
	Error  string      `json:"error,omitempty"`
}

// liveSearch filters the catalog as the user types. Every incoming query
// supersedes the previous one; results are sent once typing pauses for the
// configured debounce period.
func (app *Application) liveSearch(w http.ResponseWriter, r *http.Request) {
	const op = "main.Application.liveSearch"
	log := app.Http.setupLogPerReq(r).With("op", op)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "errMsg", err.Error())
		return
	}
	defer conn.Close()
	conn.SetReadLimit(liveMaxMessageSize)

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()
	debouncer := debounce.New[[]movieCard](app.cfg.Search.Debounce)
	defer debouncer.Stop()

	var writeMu sync.Mutex
	write := func(event liveEvent) {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		if err := conn.WriteJSON(event); err != nil {
			log.Debug("failed to write live search event", "errMsg", err.Error())
		}
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("live search connection closed", "errMsg", err.Error())
			}
			return
		}
		var query liveQuery
		if err := json.Unmarshal(payload, &query); err != nil {
			write(liveEvent{Type: "error", Error: "query must be a JSON object with term and genres"})
			continue
		}
		filter := filters.MovieFilter{Term: query.Term, Genres: query.Genres}
		debouncer.Schedule(ctx, func(ctx context.Context) ([]movieCard, error) {
			movies := app.Services.Catalog.Filter(ctx, filter)
			return app.cards(ctx, movies), ctx.Err()
		}, func(cards []movieCard) {
			write(liveEvent{Type: "results", Term: query.Term, Movies: cards})
		})
	}
}
