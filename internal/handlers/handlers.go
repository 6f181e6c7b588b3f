package handlers

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/abrezinsky/archeryscore/internal/auth"
	"github.com/abrezinsky/archeryscore/internal/services"
	"github.com/abrezinsky/archeryscore/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Services groups the business services the API exposes
type Services struct {
	Competitions services.CompetitionServicer
	Archers      services.ArcherServicer
	Import       services.ImportServicer
	Standings    services.StandingsServicer
	Settings     services.SettingsServicer
}

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Competitions services.CompetitionServicer
	Archers      services.ArcherServicer
	Import       services.ImportServicer
	Standings    services.StandingsServicer
	Settings     services.SettingsServicer
	Store        Pinger
	Auth         *auth.Auth
	Hub          *websocket.Hub
	Log          HTTPLogger

	// Origins allowed to call the API from a browser
	FrontendURLs []string

	staticFS     fs.FS
	staticServer http.Handler
	logoServer   http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// New creates a new Handlers instance with all dependencies. staticFS holds
// the live standings page; logoDir is where uploaded logos are stored.
func New(
	svc Services,
	store Pinger,
	staticFS fs.FS,
	logoDir string,
	adminAuth *auth.Auth,
	hub *websocket.Hub,
	log HTTPLogger,
	frontendURLs []string,
) *Handlers {
	return &Handlers{
		Competitions: svc.Competitions,
		Archers:      svc.Archers,
		Import:       svc.Import,
		Standings:    svc.Standings,
		Settings:     svc.Settings,
		Store:        store,
		Auth:         adminAuth,
		Hub:          hub,
		Log:          log,
		FrontendURLs: frontendURLs,
		staticFS:     staticFS,
		staticServer: NewStaticServer(staticFS),
		logoServer:   http.FileServer(http.Dir(logoDir)),
	}
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }
