package httpd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okutsev/httpool/internal/config"
	"github.com/okutsev/httpool/internal/workerpool"
)

func newRoutingServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.Server.SleepDelay = time.Millisecond
	cfg.Pages.Dir = writePages(t)

	pool, err := workerpool.New(1)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return New(cfg, pool)
}

func TestRoute(t *testing.T) {
	t.Parallel()

	srv := newRoutingServer(t)

	tests := []struct {
		name        string
		requestLine string
		wantStatus  int
		wantBody    string
	}{
		{"root", "GET / HTTP/1.1", 200, helloBody},
		{"sleep", "GET /sleep HTTP/1.1", 200, helloBody},
		{"unknown path", "GET /other HTTP/1.1", 404, notFoundBody},
		{"http 1.0", "GET / HTTP/1.0", 200, helloBody},
		{"post", "POST / HTTP/1.1", 405, "method not allowed\n"},
		{"delete", "DELETE /sleep HTTP/1.1", 405, "method not allowed\n"},
		{"empty", "", 400, "bad request\n"},
		{"garbage", "not a request line at all", 400, "bad request\n"},
		{"missing protocol", "GET /", 400, "bad request\n"},
		{"wrong protocol", "GET / SPDY/3", 400, "bad request\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := srv.route(tt.requestLine)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}
