package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// CollectProgressEvent is the SSE payload emitted while a keyword collection
// run is paging through search results.
type CollectProgressEvent struct {
	Type      string `json:"type"`
	Keyword   string `json:"keyword"`
	Collected int    `json:"collected"`
	Target    int    `json:"target"`
	Done      bool   `json:"done"`
}

// Hub maintains per-user subscribers listening for collection progress.
type Hub struct {
	mu    sync.RWMutex
	users map[string]map[chan CollectProgressEvent]struct{}
}

func NewProgressHub() *Hub {
	return &Hub{users: make(map[string]map[chan CollectProgressEvent]struct{})}
}

// Serve registers an SSE stream for the authenticated user (user_name set by middleware).
func (h *Hub) Serve(c *gin.Context) {
	userName := c.GetString("user_name")
	if userName == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := make(chan CollectProgressEvent, 8)
	h.addSubscriber(userName, ch)
	defer h.removeSubscriber(userName, ch)

	// Initial comment to keep connection open
	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	for {
		select {
		case evt := <-ch:
			data, _ := json.Marshal(evt)
			_, _ = c.Writer.Write([]byte("event: collect_progress\n"))
			_, _ = c.Writer.Write([]byte("data: "))
			_, _ = c.Writer.Write(data)
			_, _ = c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func (h *Hub) addSubscriber(userName string, ch chan CollectProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userName] == nil {
		h.users[userName] = make(map[chan CollectProgressEvent]struct{})
	}
	h.users[userName][ch] = struct{}{}
}

func (h *Hub) removeSubscriber(userName string, ch chan CollectProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.users[userName]; subs != nil {
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.users, userName)
		}
	}
}

// BroadcastProgress fans the event out to every stream the user holds open.
// Slow subscribers are skipped rather than blocking the collection loop.
func (h *Hub) BroadcastProgress(userName string, evt CollectProgressEvent) {
	evt.Type = "collect_progress"
	h.mu.RLock()
	subs := h.users[userName]
	for ch := range subs {
		select { // non-blocking
		case ch <- evt:
		default:
		}
	}
	h.mu.RUnlock()
}
