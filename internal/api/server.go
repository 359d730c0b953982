package api

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"suicidestats/internal/config"
	"suicidestats/internal/session"
)

// ServerOptions configures NewServer.
type ServerOptions struct {
	MaxUploadMB int
	CORSOrigins []string
}

// NewServer wires the middleware stack and routes around h.
func NewServer(h *Handler, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = GoJSONSerializer{}

	cors := middleware.DefaultCORSConfig
	if len(opts.CORSOrigins) > 0 {
		cors.AllowOrigins = opts.CORSOrigins
	}
	e.Use(middleware.CORSWithConfig(cors))
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	if opts.MaxUploadMB > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", opts.MaxUploadMB)))
	}

	h.RegisterRoutes(e)
	return e
}

// Serve builds the session manager and HTTP server from cfg and blocks
// serving on cfg.Addr. A configured sample file loads in the background.
func Serve(cfg *config.Global) error {
	theme, err := session.ParseTheme(cfg.DefaultTheme)
	if err != nil {
		return err
	}
	sessions, err := session.NewManager(session.Options{
		MaxSessions:  cfg.SessionCacheSize,
		MaxDatasets:  cfg.DatasetCacheSize,
		DefaultTheme: theme,
	})
	if err != nil {
		return err
	}

	h := NewHandler(sessions, cfg.TopN)
	e := NewServer(h, ServerOptions{MaxUploadMB: cfg.MaxUploadMB, CORSOrigins: cfg.CORSOrigins})

	// The API is live immediately; the sample endpoint answers 503 until warm.
	if cfg.SampleFile != "" {
		sessions.Warm(cfg.SampleFile)
	}

	log.Printf("Server ready on %s", cfg.Addr)
	return e.Start(cfg.Addr)
}
