package httpd

import (
	"context"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/okutsev/httpool/internal/config"
	"github.com/okutsev/httpool/internal/metrics"
	"github.com/okutsev/httpool/internal/workerpool"
	"github.com/okutsev/httpool/pkg/cache"
)

// Server accepts TCP connections one at a time and hands each one to the
// worker pool as a job. The accept loop itself is strictly sequential; all
// concurrency lives in the pool.
type Server struct {
	addr         string
	pool         *workerpool.Pool
	pages        *PageStore
	limiter      *limiter.Limiter
	readTimeout  time.Duration
	writeTimeout time.Duration
	sleepDelay   time.Duration

	listener net.Listener
	closed   atomic.Bool
}

func New(cfg *config.Config, pool *workerpool.Pool) *Server {
	s := &Server{
		addr: cfg.Server.ListenAddress,
		pool: pool,
		pages: NewPageStore(cfg.Pages.Dir, cache.Config{
			MaxSize: cfg.Pages.CacheSize,
			TTL:     cfg.Pages.CacheTTL,
		}),
		readTimeout:  cfg.Server.ReadTimeout,
		writeTimeout: cfg.Server.WriteTimeout,
		sleepDelay:   cfg.Server.SleepDelay,
	}
	if cfg.RateLimit.Enabled {
		s.limiter = limiter.New(memory.NewStore(), limiter.Rate{
			Period: cfg.RateLimit.Period,
			Limit:  cfg.RateLimit.Limit,
		})
	}
	return s
}

// Listen binds the listen address. Callers bind before spawning Serve so
// that Shutdown and Addr never race with listener creation.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrap(err, "listen")
	}
	s.listener = ln
	return nil
}

// Serve runs the accept loop until Shutdown closes the listener. Each
// accepted connection becomes one job.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("httpd: Serve called before Listen")
	}
	slog.Info("listening", "addr", s.listener.Addr().String(), "workers", s.pool.WorkerCount())

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return nil
			}
			return errors.Wrap(err, "accept")
		}
		metrics.ConnectionsAcceptedTotal.Inc()
		s.dispatch(conn)
	}
}

// Addr reports the bound listen address, useful when the configured port is 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// dispatch applies the per-host rate limit and submits the connection job.
// Rejections are answered inline with a tiny canned response; that write is
// bounded by the write deadline so a slow client cannot stall the acceptor
// for long.
func (s *Server) dispatch(conn net.Conn) {
	if s.limiter != nil {
		host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
		if err != nil {
			host = conn.RemoteAddr().String()
		}
		lctx, err := s.limiter.Get(context.Background(), host)
		if err == nil && lctx.Reached {
			metrics.ConnectionsRejectedTotal.WithLabelValues("rate_limited").Inc()
			s.writeResponse(conn, 429, []byte("too many requests\n"))
			conn.Close()
			return
		}
	}

	err := s.pool.Submit(func() { s.handleConn(conn) })
	if err != nil {
		metrics.ConnectionsRejectedTotal.WithLabelValues("pool_closed").Inc()
		slog.Warn("connection rejected", "remote", conn.RemoteAddr(), "error", err)
		s.writeResponse(conn, 503, []byte("shutting down\n"))
		conn.Close()
	}
}

// Shutdown stops accepting. In-flight and queued connections are the pool's
// responsibility: closing the pool drains them.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closed.Store(true)
	if s.listener == nil {
		return nil
	}
	if err := s.listener.Close(); err != nil {
		return errors.Wrap(err, "close listener")
	}
	return nil
}

// Pages exposes the page store for the admin status endpoint.
func (s *Server) Pages() *PageStore { return s.pages }
