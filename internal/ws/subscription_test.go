package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "library-server/internal/domains/book/model"
	"library-server/internal/events"
)

func newTestServer(t *testing.T, bus *events.Bus) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/subscriptions/books", NewSubscriptionHandler(bus).BookAdded)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/subscriptions/books"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestBookAddedStreamsToClient(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	server := newTestServer(t, bus)

	conn := dial(t, server)

	// Give the handler a moment to open its bus subscription; events
	// published before that are deliberately not replayed.
	time.Sleep(100 * time.Millisecond)

	published := &bookmodel.BookResponse{
		ID:        uuid.New(),
		Title:     "Dune",
		Published: 1965,
		Author:    bookmodel.AuthorSummary{ID: uuid.New(), Name: "Frank Herbert"},
		Genres:    []string{"scifi"},
	}
	require.NoError(t, bus.PublishBookAdded(context.Background(), published))

	var received bookmodel.BookResponse
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&received))

	assert.Equal(t, published.ID, received.ID)
	assert.Equal(t, "Dune", received.Title)
	assert.Equal(t, "Frank Herbert", received.Author.Name)
}

func TestEachConnectionReceivesEveryEvent(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	server := newTestServer(t, bus)

	first := dial(t, server)
	second := dial(t, server)
	time.Sleep(100 * time.Millisecond)

	published := &bookmodel.BookResponse{
		ID:     uuid.New(),
		Title:  "The Hobbit",
		Genres: []string{"fantasy"},
	}
	require.NoError(t, bus.PublishBookAdded(context.Background(), published))

	for _, conn := range []*websocket.Conn{first, second} {
		var received bookmodel.BookResponse
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&received))
		assert.Equal(t, "The Hobbit", received.Title)
	}
}

func TestEventsPublishedInOrderArriveInOrder(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	server := newTestServer(t, bus)

	conn := dial(t, server)
	time.Sleep(100 * time.Millisecond)

	titles := []string{"Dune", "Dune Messiah", "Children of Dune"}
	for _, title := range titles {
		require.NoError(t, bus.PublishBookAdded(context.Background(), &bookmodel.BookResponse{
			ID:    uuid.New(),
			Title: title,
		}))
	}

	for _, want := range titles {
		var received bookmodel.BookResponse
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&received))
		assert.Equal(t, want, received.Title)
	}
}
