package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/drashti611/gowear-frontend/internal/bus"
	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
	"github.com/drashti611/gowear-frontend/pkg/logger"
	"github.com/drashti611/gowear-frontend/pkg/view"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsMaxMessage = 4 << 10
)

type Subscriber interface {
	Subscribe(ns string, h bus.Handler) (unsubscribe func())
}

type Counter interface {
	Count(ctx context.Context, ns string) int
}

type SubCategoryLister interface {
	SubCategoriesByCategory(ctx context.Context, categoryID string) ([]catalog.SubCategory, error)
}

// EventsHandler pushes collection counts to the browser whenever the
// session's cart or likes change, and answers subcategory lookups.
type EventsHandler struct {
	Hub       Subscriber
	Carts     Counter
	Likes     Counter
	Catalog   SubCategoryLister
	ImageBase string
	Upgrader  websocket.Upgrader

	// OnConnect, when set, sees +1 on connect and -1 on disconnect.
	OnConnect func(delta int)
}

func NewEventsHandler(hub Subscriber, carts, likes Counter, cat SubCategoryLister, imageBase string, checkOrigin func(r *http.Request) bool) *EventsHandler {
	return &EventsHandler{
		Hub:       hub,
		Carts:     carts,
		Likes:     likes,
		Catalog:   cat,
		ImageBase: imageBase,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

type clientMessage struct {
	Type       string `json:"type"`
	CategoryID string `json:"categoryId"`
}

type collectionsMessage struct {
	Type       string `json:"type"`
	CartCount  int    `json:"cartCount"`
	LikesCount int    `json:"likesCount"`
}

type subCategoriesMessage struct {
	Type       string            `json:"type"`
	CategoryID string            `json:"categoryId"`
	Items      []view.NamedImage `json:"items"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type lookupResult struct {
	ticket catalog.Ticket[string]
	items  []catalog.SubCategory
	err    error
}

// Serve handles GET /api/events.
func (h *EventsHandler) Serve(c *gin.Context) {
	ns := middleware.SessionID(c)
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("ws_upgrade_failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	if h.OnConnect != nil {
		h.OnConnect(1)
		defer h.OnConnect(-1)
	}

	// One pending signal is enough: the push re-reads current state.
	changed := make(chan struct{}, 1)
	unsubscribe := h.Hub.Subscribe(ns, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	commands := make(chan clientMessage)
	go h.readLoop(ctx, cancel, conn, commands)

	results := make(chan lookupResult, 1)
	var latest catalog.Latest[string]

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	if err := h.pushCollections(ctx, conn, ns); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-changed:
			if err := h.pushCollections(ctx, conn, ns); err != nil {
				return
			}

		case cmd := <-commands:
			switch cmd.Type {
			case "select_category":
				t := latest.Begin(cmd.CategoryID)
				go h.lookup(ctx, t, results)
			case "refresh":
				if err := h.pushCollections(ctx, conn, ns); err != nil {
					return
				}
			}

		case res := <-results:
			if !latest.Accept(res.ticket) {
				continue
			}
			var msg any
			if res.err != nil {
				msg = errorMessage{Type: "error", Message: apperr.PublicMessage(res.err)}
			} else {
				msg = subCategoriesMessage{
					Type:       "subcategories",
					CategoryID: res.ticket.Key,
					Items:      namedSubCategories(res.items, h.ImageBase),
				}
			}
			if err := writeJSON(conn, msg); err != nil {
				return
			}

		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *EventsHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- clientMessage) {
	defer cancel()
	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if json.Unmarshal(data, &msg) != nil {
			continue
		}
		select {
		case out <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// lookup drops its result if the connection is gone.
func (h *EventsHandler) lookup(ctx context.Context, t catalog.Ticket[string], out chan<- lookupResult) {
	items, err := h.Catalog.SubCategoriesByCategory(ctx, t.Key)
	select {
	case out <- lookupResult{ticket: t, items: items, err: err}:
	case <-ctx.Done():
	}
}

func (h *EventsHandler) pushCollections(ctx context.Context, conn *websocket.Conn, ns string) error {
	return writeJSON(conn, collectionsMessage{
		Type:       "collections",
		CartCount:  h.Carts.Count(ctx, ns),
		LikesCount: h.Likes.Count(ctx, ns),
	})
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(v)
}
