package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/oauth2"

	"github.com/susu3304/warikan/internal/config"
	"github.com/susu3304/warikan/internal/logger"
	"github.com/susu3304/warikan/internal/render"
	"github.com/susu3304/warikan/internal/split"
)

const discordAPIBase = "https://discord.com/api"

type API struct {
	router      *mux.Router
	split       *split.Service
	config      *config.Config
	format      render.Formatter
	log         *logger.Logger
	oauthConfig *oauth2.Config
	discordAPI  string
	jwtSecret   []byte
	server      *http.Server
}

func New(cfg *config.Config, svc *split.Service, log *logger.Logger) *API {
	api := &API{
		router:     mux.NewRouter(),
		split:      svc,
		config:     cfg,
		format:     render.Formatter{Symbol: cfg.CurrencySymbol, Places: cfg.CurrencyPlaces},
		log:        log.With("component", "api"),
		discordAPI: discordAPIBase,
		jwtSecret:  []byte(cfg.JWTSecret),
	}
	if cfg.OAuthEnabled() {
		api.oauthConfig = &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURI,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://discord.com/api/oauth2/authorize",
				TokenURL: "https://discord.com/api/oauth2/token",
			},
		}
	}

	api.setupRoutes()
	api.server = &http.Server{
		Addr:              cfg.WebBind,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return api
}

func (a *API) setupRoutes() {
	a.router.HandleFunc("/healthz", a.handleHealth).Methods("GET")

	// Auth endpoints
	a.router.HandleFunc("/api/auth/login", a.handleLogin).Methods("GET")
	a.router.HandleFunc("/api/auth/callback", a.handleCallback).Methods("GET")
	a.router.HandleFunc("/api/auth/logout", a.handleLogout).Methods("POST")

	// Public endpoints; a bearer token, if sent, makes the caller the owner.
	a.router.Handle("/api/settlements", a.optionalAuth(http.HandlerFunc(a.handleCreateSettlement))).Methods("POST")

	// Protected endpoints
	protected := a.router.PathPrefix("/api").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/settlements", a.handleListSettlements).Methods("GET")
	protected.HandleFunc("/settlements/{id}", a.handleGetSettlement).Methods("GET")
}

// Handler returns the router wrapped with CORS.
func (a *API) Handler() http.Handler {
	// AllowCredentials must stay false while AllowedOrigins is "*".
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}
	return cors.New(corsOptions).Handler(a.router)
}

// Start serves until Shutdown is called. It returns nil at once if Shutdown
// already ran.
func (a *API) Start() error {
	a.log.Info("API server listening", "addr", "http://"+a.config.WebBind)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
