// cmd/web/main.go
//
// PetManager console – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load and validate configuration (conf/global.yaml + PETMANAGER_
//     overrides, Vault references resolved).
//
//  4. Open the GeoIP database (optional), register form definitions, and
//     point the view engine at the repo root.
//
//  5. Build the backend gateway client and the session store (in-memory
//     or MySQL, per config).
//
//  6. Init every registered component, then mount its routes: auth stays
//     public, everything else sits behind RequireLogin.
//
//  7. Expose Prometheus /metrics, wrap with ForceHTTPS when configured,
//     and serve until SIGINT/SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/acl"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/component"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/config"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/database"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/form"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/logger"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/middleware"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/requestinfo"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/server"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/session"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/view"

	_ "github.com/Fabrica-Escuela-PetManager/front-petmanager/components/auth"
	_ "github.com/Fabrica-Escuela-PetManager/front-petmanager/components/debug"
	_ "github.com/Fabrica-Escuela-PetManager/front-petmanager/components/payment"
	_ "github.com/Fabrica-Escuela-PetManager/front-petmanager/components/provider"
	_ "github.com/Fabrica-Escuela-PetManager/front-petmanager/components/user"
)

const serverEnvPath = "/usr/local/etc/petmanager/global.env"

// roleCacheTTL bounds how stale a cached operator role may go before the
// next request re-reads it from the backend user list.
const roleCacheTTL = 5 * time.Minute

// controllerTTL bounds how long an abandoned half-filled form controller
// survives in memory before eviction closes it.
const controllerTTL = 30 * time.Minute

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//
	// ── 1.  Configuration and logging ──────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync() //nolint:errcheck

	//
	// ── 2.  View engine, form definitions, GeoIP ───────────────────────
	//
	view.SetRoot(cfg.Paths.Root)

	if err := form.RegisterForms(cfg.Paths.Root); err != nil {
		logOut.Fatalf("register forms: %v", err)
	}

	if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
		// Geolocation is enrichment only; the console runs without it.
		logOut.Warnf("geoip disabled: %v", err)
	}

	//
	// ── 3.  Backend gateway client ─────────────────────────────────────
	//
	gw, err := api.New(cfg.API.BaseURL, cfg.API.Timeout())
	if err != nil {
		logOut.Fatalf("gateway client: %v", err)
	}
	logOut.Infow("gateway client ready", "base_url", cfg.API.BaseURL)

	//
	// ── 4.  Session store (memory or MySQL) ────────────────────────────
	//
	var store session.Store
	switch cfg.Session.Backend {
	case "mysql":
		db, err := database.Open(cfg.Session.DSN)
		if err != nil {
			logOut.Fatalf("connect session DB: %v", err)
		}
		defer db.Close()
		sqlStore := session.NewSQL(db)
		defer sqlStore.Close()
		store = sqlStore
		logOut.Info("session store: mysql")
	default:
		store = session.NewMemory()
		logOut.Info("session store: memory")
	}
	sessions := session.NewManager(store, cfg.Session.TTL())

	//
	// ── 5.  Component init ─────────────────────────────────────────────
	//
	deps := component.Deps{
		Gateway:  gw,
		Sessions: sessions,
		Forms:    form.NewControllerCache(controllerTTL),
		ACL:      acl.NewStore(gw, roleCacheTTL),
		Root:     cfg.Paths.Root,
	}

	// Init runs before any Routes() call; components may wire Deps fields
	// into route middleware.
	for _, c := range component.All() {
		if err := c.Init(deps); err != nil {
			logOut.Fatalf("init component %s: %v", c.Name(), err)
		}
	}

	//
	// ── 6.  Router: public auth, protected console ─────────────────────
	//
	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Use(middleware.WithSession(sessions))
	r.Use(middleware.Security)

	r.Handle("/metrics", promhttp.Handler())

	staticDir := filepath.Join(cfg.Paths.Root, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	r.Get("/favicon.ico", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(staticDir, "favicon.ico"))
	})

	for _, c := range component.All() {
		if c.Name() == "auth" {
			graft(r, c.Routes())
		}
	}
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireLogin)
		pr.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/providers", http.StatusSeeOther)
		})
		for _, c := range component.All() {
			if c.Name() != "auth" {
				graft(pr, c.Routes())
			}
		}
	})

	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}

	//
	// ── 7.  Serve until signalled ──────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, handler)

	errc := make(chan error, 1)
	go func() {
		logOut.Infof("listening on %s", cfg.HTTP.ListenAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logOut.Info("shutdown signal received")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			logOut.Errorf("shutdown: %v", err)
		}
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalf("http server: %v", err)
		}
	}
}

// graft re-registers every route of a component router on dst, so several
// components can share the "/" namespace without chi's single-Mount limit.
// Router-level middleware (e.g. a component-wide role gate) rides along.
func graft(dst chi.Router, src chi.Router) {
	_ = chi.Walk(src, func(method, route string, h http.Handler, mws ...func(http.Handler) http.Handler) error {
		dst.With(mws...).Method(method, route, h)
		return nil
	})
}
