// Package web serves the embedded arm viewer and streams pose state to it
// over websockets. The browser page owns all scene construction, lighting,
// camera controls and widgets; this side owns the chain, the resolver and
// the input surface, and is the single writer of pose state.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/armviz/armviz/arm"
	"github.com/armviz/armviz/config"
	"github.com/armviz/armviz/input"
	"github.com/armviz/armviz/kinematics"
)

//go:embed static
var staticFS embed.FS

// Options configure the server.
type Options struct {
	Port              int
	Theme             string
	BroadcastInterval time.Duration
}

// NewOptions returns the default options.
func NewOptions() Options {
	cfg := config.Default()
	return Options{
		Port:              cfg.Port,
		Theme:             cfg.Theme,
		BroadcastInterval: cfg.BroadcastInterval(),
	}
}

// jointEvent is one inbound control change from a viewer.
type jointEvent struct {
	client  string
	control string
	value   float64
}

// Server wires the input surface to the resolver and fans pose state out
// to every connected viewer.
type Server struct {
	logger   golog.Logger
	opts     Options
	chain    *arm.Chain
	resolver *kinematics.Resolver
	surface  *input.Surface
	palette  config.Palette
	upgrader websocket.Upgrader

	events    chan jointEvent
	closeOnce sync.Once
	closed    chan struct{}
	loopDone  chan struct{}

	mu        sync.Mutex
	clients   map[*websocket.Conn]string
	debounced func(func())
}

// NewServer constructs the chain, binds the resolver (applying the home
// pose), and starts the event loop that serializes all inbound updates.
func NewServer(opts Options, logger golog.Logger) (*Server, error) {
	palette, err := config.ThemePalette(opts.Theme)
	if err != nil {
		return nil, err
	}

	s := &Server{
		logger:    logger,
		opts:      opts,
		chain:     arm.NewFiveJointChain(),
		resolver:  kinematics.NewResolver(logger),
		surface:   input.NewSurface(),
		palette:   palette,
		events:    make(chan jointEvent, 64),
		closed:    make(chan struct{}),
		loopDone:  make(chan struct{}),
		clients:   map[*websocket.Conn]string{},
		debounced: debounce.New(opts.BroadcastInterval),
	}
	s.resolver.Bind(s.chain)
	s.surface.RegisterConsumer(func(ja arm.JointAngles) {
		s.resolver.Apply(ja)
		s.debounced(s.broadcastPose)
	})
	goutils.PanicCapturingGo(s.eventLoop)
	return s, nil
}

// eventLoop is the single timeline on which control changes apply: each
// update is fully resolved and written before the next one is read.
func (s *Server) eventLoop() {
	defer close(s.loopDone)
	for {
		select {
		case <-s.closed:
			return
		case ev := <-s.events:
			if err := s.surface.Set(ev.control, ev.value); err != nil {
				s.logger.Debugw("rejected control change", "client", ev.client, "error", err)
			}
		}
	}
}

// Handler returns the HTTP handler serving the viewer, the websocket
// endpoint and the theme API.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded tree is fixed at build time
	}
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/theme", s.handleTheme)
	return mux
}

// Run serves until the context is done.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	goutils.PanicCapturingGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorw("error shutting down", "error", err)
		}
	})

	s.logger.Infow("serving arm viewer", "port", s.opts.Port, "theme", s.opts.Theme)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return multierr.Combine(err, s.Close())
}

// Close stops the event loop and disconnects every viewer.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		<-s.loopDone
		s.mu.Lock()
		for conn := range s.clients {
			goutils.UncheckedError(conn.Close())
		}
		s.clients = map[*websocket.Conn]string{}
		s.mu.Unlock()
	})
	return nil
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = s.opts.Theme
	}
	palette, err := config.ThemePalette(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(palette); err != nil {
		s.logger.Errorw("error encoding theme", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.clients[conn] = id
	s.mu.Unlock()
	s.logger.Debugw("viewer connected", "client", id)

	// the new viewer gets the full state immediately, not on the next change
	if err := s.writeMessage(conn, s.helloMessage()); err != nil {
		s.dropClient(conn, id)
		return
	}

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case msgSetJoint:
			select {
			case s.events <- jointEvent{client: id, control: msg.Control, value: msg.Value}:
			case <-s.closed:
			}
		default:
			s.logger.Debugw("unknown message type", "client", id, "type", msg.Type)
		}
	}
	s.dropClient(conn, id)
}

func (s *Server) dropClient(conn *websocket.Conn, id string) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	goutils.UncheckedError(conn.Close())
	s.logger.Debugw("viewer disconnected", "client", id)
}

// broadcastPose snapshots the chain after an update has fully applied and
// writes it to every connected viewer.
func (s *Server) broadcastPose() {
	msg := s.poseMessage()
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Errorw("error encoding pose", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn, id := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debugw("dropping viewer", "client", id, "error", err)
			delete(s.clients, conn)
			goutils.UncheckedError(conn.Close())
		}
	}
}

func (s *Server) writeMessage(conn *websocket.Conn, msg interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return conn.WriteJSON(msg)
}
