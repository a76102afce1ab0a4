package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neogan74/kvd/internal/logger"
	"github.com/neogan74/kvd/internal/middleware"
	"github.com/neogan74/kvd/internal/store"
)

// Server is the optional admin HTTP endpoint exposing health and metrics.
// It runs beside the wire-protocol listener and never touches request
// handling.
type Server struct {
	app     *fiber.App
	addr    string
	store   *store.KVStore
	version string
	log     logger.Logger
}

// New creates an admin server bound to addr
func New(addr string, kvStore *store.KVStore, version string, log logger.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		app:     app,
		addr:    addr,
		store:   kvStore,
		version: version,
		log:     log,
	}

	app.Use(middleware.RequestLogging(log))

	app.Get("/healthz", s.health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return s
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": s.version,
		"keys":    s.store.Len(),
	})
}

// Listen blocks serving the admin endpoint
func (s *Server) Listen() error {
	s.log.Info("Admin endpoint listening", logger.String("address", s.addr))
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the admin endpoint
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
