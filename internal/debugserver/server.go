// Package debugserver exposes the editor status over HTTP for inspection
// while the viewer runs.
package debugserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/philipparndt/gopoly/internal/status"
)

const (
	writeWait    = 5 * time.Second
	pingInterval = 30 * time.Second
)

// StatusResponse is the body of GET /status
type StatusResponse struct {
	status.Snapshot
	Panel status.Panel `json:"panel"`
}

// Server serves snapshots published to a hub
type Server struct {
	hub      *status.Hub
	engine   *gin.Engine
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// New creates a server reading from hub
func New(hub *status.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// local debugging tool, any page may connect
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: logger.With("component", "debugserver"),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/status", s.getStatus)
	engine.GET("/geometry", s.getGeometry)
	engine.GET("/ws", s.streamStatus)
	s.engine = engine
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("debug server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("debug server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("debug server shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) getStatus(c *gin.Context) {
	snap := s.hub.Latest()
	c.JSON(http.StatusOK, StatusResponse{Snapshot: snap, Panel: snap.Panel()})
}

func (s *Server) getGeometry(c *gin.Context) {
	c.JSON(http.StatusOK, s.hub.Latest().FeatureCollection())
}

func (s *Server) streamStatus(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := s.hub.Subscribe()
	defer cancel()

	// the client never sends data, reading only detects the close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.log.Debug("websocket closed", "error", err)
				}
				return
			}
		}
	}()

	send := func(snap status.Snapshot) bool {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(StatusResponse{Snapshot: snap, Panel: snap.Panel()}); err != nil {
			s.log.Debug("websocket write failed", "error", err)
			return false
		}
		return true
	}

	if !send(s.hub.Latest()) {
		return
	}

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok || !send(snap) {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
