// Package server streams computed terrain to browser hosts over websockets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/topograph/pkg/formats"
	"github.com/Faultbox/topograph/pkg/random"
	"github.com/Faultbox/topograph/pkg/topography"
)

// Request types accepted from clients.
const (
	RequestCompute = "compute"
	RequestLevel   = "level"
)

// Request is a text message sent by a client.
type Request struct {
	Type  string  `json:"type"`
	Seed  *uint64 `json:"seed,omitempty"`
	Level int     `json:"level,omitempty"`
}

// Config configures a Server.
type Config struct {
	Logger       *zap.Logger
	WriteTimeout time.Duration
}

// Server shares one engine between all connected clients.
type Server struct {
	mu       sync.Mutex
	engine   *topography.Engine
	factory  func(seed *uint64) (*topography.Engine, error)
	log      *zap.Logger
	upgrader websocket.Upgrader
	timeout  time.Duration
}

// New creates a server around factory, which builds an engine for an optional
// seed. The initial engine is built and computed immediately.
func New(ctx context.Context, factory func(seed *uint64) (*topography.Engine, error), cfg Config) (*Server, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	s := &Server{
		factory: factory,
		log:     log,
		timeout: timeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	if err := s.recompute(ctx, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

// recompute builds a fresh engine when seed is given, then computes it.
func (s *Server) recompute(ctx context.Context, seed *uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil || seed != nil {
		e, err := s.factory(seed)
		if err != nil {
			return err
		}
		s.engine = e
	}
	if err := s.engine.Compute(ctx); err != nil {
		return err
	}
	s.log.Info("terrain computed",
		zap.Int("size", s.engine.Size()),
		zap.Int("levels", s.engine.Levels()),
	)
	return nil
}

// frames encodes the current map followed by every level.
func (s *Server) frames() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := [][]byte{formats.EncodeFrame(formats.MapFrame(s.engine.Size(), s.engine.Map()))}
	for l := 0; l < s.engine.Levels(); l++ {
		out = append(out, s.levelFrame(l))
	}
	return out
}

// levelFrame encodes one level. The caller holds s.mu.
func (s *Server) levelFrame(level int) []byte {
	flat := formats.FlattenBorders(s.engine.LevelBorders(level))
	return formats.EncodeFrame(formats.BordersFrame(level, flat))
}

func (s *Server) send(conn *websocket.Conn, frames [][]byte) error {
	for _, f := range frames {
		conn.SetWriteDeadline(time.Now().Add(s.timeout))
		if err := conn.WriteMessage(websocket.BinaryMessage, f); err != nil {
			return err
		}
	}
	return nil
}

// HandleWS upgrades the request and serves one client until it disconnects.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.log.With(zap.String("remote", r.RemoteAddr))
	log.Debug("client connected")

	if err := s.send(conn, s.frames()); err != nil {
		log.Warn("initial send failed", zap.Error(err))
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("read failed", zap.Error(err))
			}
			return
		}

		var req Request
		if err := json.Unmarshal(payload, &req); err != nil {
			log.Warn("discarding malformed request", zap.Error(err))
			continue
		}

		var frames [][]byte
		switch req.Type {
		case RequestCompute:
			if err := s.recompute(r.Context(), req.Seed); err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				log.Error("compute failed", zap.Error(err))
				continue
			}
			frames = s.frames()
		case RequestLevel:
			s.mu.Lock()
			frames = [][]byte{s.levelFrame(req.Level)}
			s.mu.Unlock()
		default:
			log.Warn("unknown request type", zap.String("type", req.Type))
			continue
		}

		if err := s.send(conn, frames); err != nil {
			log.Warn("send failed", zap.Error(err))
			return
		}
	}
}

// NewEngineFactory returns a factory that builds engines with opts, seeding
// them when a seed is requested.
func NewEngineFactory(size, levels int, roughness, hurst float32, opts ...topography.Option) func(seed *uint64) (*topography.Engine, error) {
	return func(seed *uint64) (*topography.Engine, error) {
		o := append([]topography.Option(nil), opts...)
		if seed != nil {
			o = append(o, topography.WithSampler(random.New(*seed)))
		}
		return topography.New(size, levels, roughness, hurst, o...)
	}
}
