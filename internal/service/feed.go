package service

import (
	"encoding/json"
	"sync"
	"time"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/pkg/log"

	"github.com/gorilla/websocket"
)

// feedWriteTimeout bounds each broadcast write so a stalled dashboard
// connection cannot hold up the SMS reply path.
const feedWriteTimeout = time.Second

// feedConn is the subset of *websocket.Conn the feed writes to.
type feedConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Feed broadcasts newly logged conversation records to connected dashboard
// websockets. Connections are per-account so caregivers only see their own
// recipients' traffic.
type Feed struct {
	mu    sync.Mutex
	conns map[feedConn]uint
}

// NewFeed creates an empty Feed.
func NewFeed() *Feed {
	return &Feed{conns: make(map[feedConn]uint)}
}

// Add registers a dashboard connection for the given account.
func (f *Feed) Add(conn *websocket.Conn, accountID uint) {
	f.add(conn, accountID)
}

func (f *Feed) add(conn feedConn, accountID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conns[conn] = accountID
}

// Remove unregisters a connection. Safe to call twice.
func (f *Feed) Remove(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.conns, conn)
}

// Broadcast sends the record to every connection watching its account. Each
// write carries a deadline; connections that fail or time out are dropped so
// one dead peer never stalls the pipeline.
func (f *Feed) Broadcast(conversation *model.Conversation) {
	payload, err := json.Marshal(conversation)
	if err != nil {
		log.Errorf("failed to marshal conversation for live feed: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for conn, accountID := range f.conns {
		if accountID != conversation.AccountID {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warnf("live feed write failed, dropping connection: %v", err)
			_ = conn.Close()
			delete(f.conns, conn)
		}
	}
}
