package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/neogan74/kvd/internal/handlers"
	"github.com/neogan74/kvd/internal/logger"
	"github.com/neogan74/kvd/internal/metrics"
	"github.com/neogan74/kvd/internal/persistence"
	"github.com/neogan74/kvd/internal/protocol"
	"github.com/neogan74/kvd/internal/store"
)

// Config contains TCP server configuration
type Config struct {
	Address        string
	ReadBufferSize int
}

// Server is the sequential connection loop: one connection is fully read,
// handled, answered and persisted before the next is accepted. There is no
// read deadline, so a silent client stalls the loop; that is part of the
// protocol contract.
type Server struct {
	cfg     Config
	store   *store.KVStore
	handler *handlers.KVHandler
	engine  persistence.Engine
	log     logger.Logger
	ln      net.Listener
}

// New creates a server wired to the given store, handler and persistence
// engine.
func New(cfg Config, kvStore *store.KVStore, handler *handlers.KVHandler, engine persistence.Engine, log logger.Logger) *Server {
	return &Server{
		cfg:     cfg,
		store:   kvStore,
		handler: handler,
		engine:  engine,
		log:     log,
	}
}

// Listen binds the TCP listener. Split from Serve so callers (and tests)
// can learn the bound address before the loop starts.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	s.ln = ln
	s.log.Info("Server listening", logger.String("address", ln.Addr().String()))
	return nil
}

// Addr returns the bound listener address. Valid after Listen.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve runs the accept loop until ctx is cancelled or an I/O error occurs.
// I/O failures while handling a connection are fatal: the loop returns the
// error and the caller exits the process. Cancellation closes the listener
// and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				// Shutdown closed the listener
				return nil
			default:
				return fmt.Errorf("accept failed: %w", err)
			}
		}

		err = s.handleConn(conn)
		conn.Close()
		if err != nil {
			return err
		}
	}
}

// handleConn reads one bounded buffer from the connection, dispatches it,
// writes the response and persists the store. A connection that yields no
// parsable request line is dropped without a response and without an error.
func (s *Server) handleConn(conn net.Conn) error {
	connID := uuid.New().String()
	log := s.log.WithConn(connID)
	metrics.ConnectionsTotal.Inc()
	start := time.Now()

	log.Debug("Connection accepted", logger.String("remote", conn.RemoteAddr().String()))

	// One read only: requests larger than the buffer are truncated at the
	// read boundary, by contract.
	buf := make([]byte, s.cfg.ReadBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Debug("Connection closed before sending a request")
			metrics.DroppedConnectionsTotal.Inc()
			return nil
		}
		return fmt.Errorf("failed to read request: %w", err)
	}

	req, ok := protocol.ParseRequest(buf[:n])
	if !ok {
		log.Debug("Dropping connection without a parsable request line")
		metrics.DroppedConnectionsTotal.Inc()
		return nil
	}

	kind := req.Kind()
	log.Info("Request received",
		logger.String("method", req.Method),
		logger.String("route", req.Route))

	var body string
	switch kind {
	case protocol.RouteSet:
		body = s.handler.Set(protocol.ParsePairs(req.PairSuffix()))
	case protocol.RouteGet:
		body = s.handler.Get(protocol.ParsePairs(req.PairSuffix()))
	default:
		body = s.handler.Help()
	}
	metrics.RequestsTotal.WithLabelValues(kind.String()).Inc()

	if _, err := conn.Write([]byte(handlers.ResponsePreamble + body)); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	// The whole store is persisted after every handled request, help
	// route included.
	if err := s.snapshot(); err != nil {
		return err
	}

	metrics.KVStoreSize.Set(float64(s.store.Len()))
	log.Info("Request completed",
		logger.String("route", kind.String()),
		logger.Int("response_size", len(body)),
		logger.Duration("duration", time.Since(start)))
	return nil
}

func (s *Server) snapshot() error {
	start := time.Now()
	if err := s.engine.Dump(s.store.Items()); err != nil {
		metrics.SnapshotsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to persist store snapshot: %w", err)
	}
	metrics.SnapshotsTotal.WithLabelValues("success").Inc()
	metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	return nil
}
