package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"guardian-portal-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFeedConn struct {
	writeErr  error
	messages  [][]byte
	deadlines []time.Time
	closed    bool
}

func (c *fakeFeedConn) WriteMessage(_ int, data []byte) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeFeedConn) SetWriteDeadline(t time.Time) error {
	c.deadlines = append(c.deadlines, t)
	return nil
}

func (c *fakeFeedConn) Close() error {
	c.closed = true
	return nil
}

func TestFeedBroadcast_OnlyMatchingAccountReceives(t *testing.T) {
	feed := NewFeed()
	mine := &fakeFeedConn{}
	other := &fakeFeedConn{}
	feed.add(mine, 7)
	feed.add(other, 8)

	feed.Broadcast(&model.Conversation{ID: 1, AccountID: 7, Response: "hi"})

	require.Len(t, mine.messages, 1)
	assert.Empty(t, other.messages)

	var got model.Conversation
	require.NoError(t, json.Unmarshal(mine.messages[0], &got))
	assert.Equal(t, "hi", got.Response)
}

func TestFeedBroadcast_SetsWriteDeadline(t *testing.T) {
	feed := NewFeed()
	conn := &fakeFeedConn{}
	feed.add(conn, 7)

	before := time.Now()
	feed.Broadcast(&model.Conversation{AccountID: 7})

	// Every write must be bounded so a stalled peer cannot block the reply
	// path.
	require.Len(t, conn.deadlines, 1)
	assert.True(t, conn.deadlines[0].After(before))
	assert.True(t, conn.deadlines[0].Before(before.Add(10*time.Second)))
}

func TestFeedBroadcast_DropsFailedConnection(t *testing.T) {
	feed := NewFeed()
	stuck := &fakeFeedConn{writeErr: errors.New("write timeout")}
	healthy := &fakeFeedConn{}
	feed.add(stuck, 7)
	feed.add(healthy, 7)

	feed.Broadcast(&model.Conversation{AccountID: 7})

	assert.True(t, stuck.closed)
	require.Len(t, healthy.messages, 1)

	// The failed connection is gone; the next broadcast only reaches the
	// healthy one.
	feed.Broadcast(&model.Conversation{AccountID: 7})
	assert.Len(t, healthy.messages, 2)
}
