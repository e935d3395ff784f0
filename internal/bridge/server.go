// Package bridge exposes the turn-resolution engine over HTTP: the
// versioned rules snapshot, per-house fog-of-war state, order submission,
// and turn advancement, per spec.md §6's wire contract.
//
// Grounded on the teacher's `routes`/`dispatcher`/`handlers` trio
// (internal/routes, pkg/dispatcher, pkg/handlers): a Router matches path
// patterns to handler funcs, each wrapped in WithSafetyNet for panic
// recovery, the same composition the teacher's `server.go` builds up
// route by route.
package bridge

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/handlers"

	"ec4x_engine/internal/concurrency"
	"ec4x_engine/internal/config"
	"ec4x_engine/internal/game"
	"ec4x_engine/internal/logging"
	"ec4x_engine/internal/model"
	"ec4x_engine/internal/rules"
)

const stateResource = "state"

// Server bundles the mutable world, the engine, the rules snapshot and
// pending per-house order packets behind a single resource lock so that
// concurrent order submissions never race a turn advance.
type Server struct {
	cfg      config.Config
	state    *model.State
	engine   *game.Engine
	snapshot rules.Snapshot
	log      logging.Logger
	locker   *concurrency.ResourceLocker

	mu      sync.Mutex
	pending map[model.HouseID]model.OrderPacket
	seed    int64
}

// NewServer wires a Server around an already-initialized state and
// rules snapshot.
func NewServer(cfg config.Config, state *model.State, snapshot rules.Snapshot, log logging.Logger) *Server {
	return &Server{
		cfg:      cfg,
		state:    state,
		engine:   game.NewEngine(cfg),
		snapshot: snapshot,
		log:      log,
		locker:   concurrency.NewResourceLocker(cfg.Bridge.Workers, log),
		pending:  make(map[model.HouseID]model.OrderPacket),
		seed:     cfg.GameSetup.MasterSeed,
	}
}

// Router builds the bridge's HTTP router with every endpoint registered.
func (s *Server) Router() http.Handler {
	r := NewRouter(s.log)

	r.HandleFunc("/rules", WithSafetyNet(s.log, s.handleGetRules)).Methods("GET")
	r.HandleFunc("/state/{houseId}", WithSafetyNet(s.log, s.handleGetState)).Methods("GET")
	r.HandleFunc("/orders/{houseId}", WithSafetyNet(s.log, s.handlePostOrders)).Methods("POST")
	r.HandleFunc("/turn/advance", WithSafetyNet(s.log, s.handlePostAdvanceTurn)).Methods("POST")

	return r
}

// Serve starts the HTTP bridge and blocks until it receives SIGINT,
// shutting down gracefully. Grounded on the teacher's
// `routes.Server.Serve`: a gorilla/handlers CORS wrapper allowing any
// game client origin to reach the bridge, and a signal-triggered
// graceful shutdown with a bounded drain timeout.
func (s *Server) Serve() error {
	aMethods := handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})
	aOrigins := handlers.AllowedOrigins([]string{"*"})
	aHeaders := handlers.AllowedHeaders([]string{"Content-Type"})
	corsRouter := handlers.CORS(aHeaders, aOrigins, aMethods)(s.Router())

	httpServer := &http.Server{
		Addr:    s.cfg.Bridge.ListenAddr,
		Handler: corsRouter,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		s.log.Trace(logging.Notice, moduleName, "bridge has started")
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serveErrCh <- err
			return
		}
		serveErrCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	select {
	case err := <-serveErrCh:
		return err
	case <-stop:
	}

	s.log.Trace(logging.Notice, moduleName, "bridge is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down bridge: %w", err)
	}
	return <-serveErrCh
}
