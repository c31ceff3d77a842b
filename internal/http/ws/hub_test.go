package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/bill-studio/internal/auth"
)

func startHub(t *testing.T, parser *auth.Parser) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { hub.Serve(c, parser) })
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func wsURL(srv *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
}

func TestPublishReachesClient(t *testing.T) {
	hub, srv := startHub(t, nil)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration is asynchronous; keep publishing until one arrives.
	got := make(chan string, 1)
	go func() {
		_, msg, err := conn.ReadMessage()
		if err == nil {
			got <- string(msg)
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		hub.Publish(map[string]any{"type": "batch.progress", "current": 1})
		select {
		case msg := <-got:
			assert.JSONEq(t, `{"type":"batch.progress","current":1}`, msg)
			return
		case <-time.After(20 * time.Millisecond):
		case <-deadline:
			t.Fatal("no message received")
		}
	}
}

func TestServeRejectsMissingToken(t *testing.T) {
	_, srv := startHub(t, auth.NewParser("secret"))

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServeAcceptsQueryToken(t *testing.T) {
	parser := auth.NewParser("secret")
	_, srv := startHub(t, parser)
	token, err := parser.Issue("operator-1", "operator", jwt.RegisteredClaims{})
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "?token="+token), nil)
	require.NoError(t, err)
	_ = conn.Close()
}
