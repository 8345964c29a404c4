package httpd

import (
	"bufio"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/okutsev/httpool/internal/metrics"
)

var statusText = map[int]string{
	200: "OK",
	400: "Bad Request",
	404: "Not Found",
	405: "Method Not Allowed",
	429: "Too Many Requests",
	503: "Service Unavailable",
}

// handleConn is the body of a connection job: read one request line, pick a
// response, write it, close. Every failure is confined here - logged and the
// connection dropped, nothing propagates to the pool or the acceptor.
func (s *Server) handleConn(conn net.Conn) {
	start := time.Now()
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
		slog.Warn("set read deadline failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	line, err := bufio.NewReaderSize(conn, 4096).ReadString('\n')
	if err != nil && line == "" {
		slog.Debug("read request line failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	status, body := s.route(strings.TrimRight(line, "\r\n"))
	s.writeResponse(conn, status, body)

	metrics.RequestDuration.Observe(time.Since(start).Seconds())
	slog.Debug("request served",
		"remote", conn.RemoteAddr(),
		"status", status,
		"duration", time.Since(start),
	)
}

// route maps a request line onto a status and body. Only request-line
// routing is supported: GET / and GET /sleep get the hello page, everything
// else is a 404. The sleep route parks the worker for the configured delay,
// which is what makes pool saturation observable.
func (s *Server) route(requestLine string) (int, []byte) {
	fields := strings.Fields(requestLine)
	if len(fields) != 3 || !strings.HasPrefix(fields[2], "HTTP/") {
		return 400, []byte("bad request\n")
	}

	method, target := fields[0], fields[1]
	if method != "GET" {
		return 405, []byte("method not allowed\n")
	}

	switch target {
	case "/":
		return 200, s.pages.Load(helloPage)
	case "/sleep":
		time.Sleep(s.sleepDelay)
		return 200, s.pages.Load(helloPage)
	default:
		return 404, s.pages.Load(notFoundPage)
	}
}

func (s *Server) writeResponse(conn net.Conn, status int, body []byte) {
	if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		slog.Warn("set write deadline failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", status, statusText[status])
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	b.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n")
	b.WriteString("Connection: close\r\n")
	b.WriteString("\r\n")

	if _, err := conn.Write(append([]byte(b.String()), body...)); err != nil {
		slog.Debug("write response failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	metrics.ResponsesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}
