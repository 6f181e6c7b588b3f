package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/archeryscore/internal/auth"
	"github.com/abrezinsky/archeryscore/internal/config"
	"github.com/abrezinsky/archeryscore/internal/handlers"
	"github.com/abrezinsky/archeryscore/internal/logger"
	"github.com/abrezinsky/archeryscore/internal/repository"
	"github.com/abrezinsky/archeryscore/internal/services"
	"github.com/abrezinsky/archeryscore/internal/websocket"
)

const shutdownTimeout = 10 * time.Second

// App holds all application dependencies
type App struct {
	cfg      *config.Config
	log      logger.Logger
	handlers *handlers.Handlers
	repo     *repository.Repository
	settings services.SettingsServicer
	baseURL  string
	stopHub  context.CancelFunc
}

// New creates and initializes a new application instance
func New(cfg *config.Config, log logger.Logger, staticFS fs.FS) (*App, error) {
	return newApp(cfg, log, staticFS, realNetworkProvider{})
}

func newApp(cfg *config.Config, log logger.Logger, staticFS fs.FS, network networkProvider) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	logos, err := services.NewLogoStore(cfg.UploadDir)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare upload dir %s: %w", cfg.UploadDir, err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL(cfg.Addr, network)
	}

	// Initialize services
	settingsService := services.NewSettingsService(log, repo)
	competitionService := services.NewCompetitionService(log, repo, logos)
	archerService := services.NewArcherService(log, repo, cfg.TargetArrows)
	importService := services.NewImportService(log, repo)
	standingsService := services.NewStandingsService(log, repo, settingsService, baseURL)

	// Live updates stop with the app
	ctx, cancel := context.WithCancel(context.Background())
	hub := websocket.New(log)
	hub.Start(ctx)
	archerService.SetBroadcaster(hub)
	importService.SetBroadcaster(hub)

	h := handlers.New(
		handlers.Services{
			Competitions: competitionService,
			Archers:      archerService,
			Import:       importService,
			Standings:    standingsService,
			Settings:     settingsService,
		},
		repo,
		staticFS,
		logos.Dir(),
		auth.New(cfg.AdminPassword),
		hub,
		log,
		cfg.FrontendURLs,
	)

	return &App{
		cfg:      cfg,
		log:      log,
		handlers: h,
		repo:     repo,
		settings: settingsService,
		baseURL:  baseURL,
		stopHub:  cancel,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// BaseURL is the address other devices on the network use to reach the server
func (a *App) BaseURL() string {
	return a.baseURL
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.stopHub != nil {
		a.stopHub()
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
	}
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
// gracefully. It returns nil after a clean shutdown.
func (a *App) Run(ctx context.Context) error {
	a.setDefaultBaseURL(ctx, a.baseURL)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	a.log.Info("Server starting", "addr", a.cfg.Addr, "url", a.baseURL)
	if a.handlers.Auth.Enabled() {
		a.log.Info("Admin login required for changes", "login", a.baseURL+"/admin/login")
	} else {
		a.log.Warn("No admin password configured, the API is open to the network")
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// setDefaultBaseURL sets the base URL setting if not already configured
// or if current value uses localhost (which isn't useful for QR codes)
func (a *App) setDefaultBaseURL(ctx context.Context, baseURL string) {
	existing, err := a.settings.GetBaseURL(ctx)
	if err != nil {
		a.log.Warn("Failed to read base_url", "error", err)
		return
	}

	if existing != "" && !strings.Contains(existing, "localhost") {
		return
	}
	if err := a.settings.SetBaseURL(ctx, baseURL); err != nil {
		a.log.Warn("Failed to set default base_url", "error", err)
		return
	}
	a.log.Info("Default base URL set", "url", baseURL)
}

// defaultBaseURL derives the LAN address of the server from the listen
// address. An explicit host in addr wins over interface discovery.
func defaultBaseURL(addr string, provider networkProvider) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = getPreferredIP(provider)
	}
	return "http://" + net.JoinHostPort(host, port)
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the best IPv4 address for LAN access, preferring
// private ranges. Falls back to localhost if nothing suitable is up.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP
	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}
			candidates = append(candidates, ip)
		}
	}

	for _, ip := range candidates {
		if ip.IsPrivate() {
			return ip.String()
		}
	}
	if len(candidates) > 0 {
		return candidates[0].String()
	}
	return "localhost"
}
