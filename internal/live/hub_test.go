package live

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/home-inventory/internal/queue"
)

func newHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func mockClient(hub *Hub) *Client {
	return &Client{hub: hub, send: make(chan []byte, sendBufferSize)}
}

func TestRegisterUnregister(t *testing.T) {
	hub := newHub()
	c1, c2 := mockClient(hub), mockClient(hub)

	hub.Register(c1)
	hub.Register(c2)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Unregister(c1)
	hub.Unregister(c1)
	assert.Equal(t, 1, hub.ClientCount())
	hub.Unregister(c2)
	assert.Zero(t, hub.ClientCount())
}

func TestPublishBroadcasts(t *testing.T) {
	hub := newHub()
	c1, c2 := mockClient(hub), mockClient(hub)
	hub.Register(c1)
	hub.Register(c2)
	defer hub.Unregister(c1)
	defer hub.Unregister(c2)

	ev := queue.NewEvent("item", queue.ActionCreated, 42, nil)
	require.NoError(t, hub.Publish(context.Background(), ev))

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.send:
			var got queue.Event
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, ev.ID, got.ID)
			assert.Equal(t, int64(42), got.EntityID)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for event")
		}
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := newHub()
	c := mockClient(hub)
	hub.Register(c)
	defer hub.Unregister(c)

	for i := 0; i < sendBufferSize+5; i++ {
		require.NoError(t, hub.Publish(context.Background(), queue.NewEvent("room", queue.ActionUpdated, int64(i), nil)))
	}
	assert.Len(t, c.send, sendBufferSize)
}

func TestHandlerStreamsEvents(t *testing.T) {
	hub := newHub()
	e := echo.New()
	e.GET("/ws", Handler(hub))
	srv := httptest.NewServer(e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	ev := queue.NewEvent("house", queue.ActionDeleted, 7, nil)
	require.NoError(t, hub.Publish(ctx, ev))

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var got queue.Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "house", got.Entity)
	assert.Equal(t, queue.ActionDeleted, got.Action)
}
