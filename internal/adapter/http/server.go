package adapthttp

import (
	"net/http"

	"labelscanner/internal/app"
)

// Services bundles the application services the server routes to.
type Services struct {
	Logs      *app.LogService
	Scan      *app.ScanService
	Totals    *app.TotalsService
	Water     *app.WaterService
	Habits    *app.HabitService
	History   *app.HistoryService
	Settings  *app.SettingsService
	Favorites *app.FavoriteService
	Auth      *app.AuthService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc         Services
	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string) *Server {
	return &Server{svc: svc, webDir: webDir}
}

// WithOIDC enables SSO login through the given provider configuration.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithoutAuth disables session validation (for tests).
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.handleSetupUser)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/scan", s.handleScan)

	protected.HandleFunc("/logs", s.handleLogs)
	protected.HandleFunc("/logs/day", s.handleLogsDay)
	protected.HandleFunc("/logs/undo", s.handleLogsUndo)
	protected.HandleFunc("/logs/", s.handleLogByID)

	protected.HandleFunc("/water/today", s.handleWaterToday)
	protected.HandleFunc("/water/event", s.handleWaterEvent)
	protected.HandleFunc("/water/recent", s.handleWaterRecent)

	protected.HandleFunc("/totals/day", s.handleTotalsDay)
	protected.HandleFunc("/totals/recalculate", s.handleTotalsRecalculate)

	protected.HandleFunc("/habits/stats", s.handleHabitStats)
	protected.HandleFunc("/habits/achievements", s.handleAchievements)

	protected.HandleFunc("/history/daily", s.handleHistoryDaily)
	protected.HandleFunc("/history/weekly", s.handleHistoryWeekly)

	protected.HandleFunc("/settings", s.handleSettings)
	protected.HandleFunc("/settings/onboard", s.handleOnboard)
	protected.HandleFunc("/settings/theme", s.handleTheme)

	protected.HandleFunc("/favorites", s.handleFavorites)
	protected.HandleFunc("/favorites/toggle", s.handleFavoriteToggle)

	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
