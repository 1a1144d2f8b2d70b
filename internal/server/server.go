package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/raphi011/btm/internal/actions"
	"github.com/raphi011/btm/internal/blocklet"
	"github.com/raphi011/btm/internal/config"
	"github.com/raphi011/btm/internal/log"
)

// maxBodySize limits JSON request bodies.
const maxBodySize = 1 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves the theme API.
type Server struct {
	svc    *actions.Service
	cfg    config.ServerConfig
	log    *log.Logger
	router chi.Router

	// base outlives requests; studios started over HTTP inherit it.
	base context.Context

	mu      sync.Mutex
	studios map[string]*blocklet.Studio
}

// New builds the router. ctx supplies the logger and the lifetime of
// background processes started by requests.
func New(ctx context.Context, svc *actions.Service, cfg config.ServerConfig) *Server {
	s := &Server{
		svc:     svc,
		cfg:     cfg,
		log:     log.FromContext(ctx),
		base:    ctx,
		studios: map[string]*blocklet.Studio{},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withLogger)
	r.Use(s.requestLog)
	r.Use(cors(s.cfg.AllowedOrigins))

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(api chi.Router) {
		api.Get("/themes", s.listThemes)
		api.Post("/themes/refresh", s.refresh)
		api.Route("/themes/{id}", func(t chi.Router) {
			t.Get("/", s.getTheme)
			t.Delete("/", s.deleteTheme)
			t.Get("/logo", s.logo)
			t.Get("/readme", s.readme)
			t.Post("/update-did", s.updateDID)
			t.Post("/set-did", s.setDID)
			t.Post("/launch", s.launch)
			t.Post("/launch-studio", s.launchStudio)
			t.Post("/check-bundle", s.checkBundle)
			t.Get("/git-remote", s.gitRemote)
			t.Get("/submodule-status", s.submoduleStatus)
			t.Post("/create-github-repo", s.createRepo)
		})
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "not found", r.URL.Path)
		})
	})

	r.Get("/theme-logos/{id}/logo.png", s.logo)

	if s.cfg.StaticDir != "" {
		r.Handle("/*", spa(s.cfg.StaticDir))
	} else if s.cfg.DevRedirect != "" {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, s.cfg.DevRedirect, http.StatusFound)
		})
	}
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and stops any studio processes it started.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return s.base },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.log.Printf("Serving %d themes on http://%s\n", s.svc.Catalog.Len(), ln.Addr())

	select {
	case err := <-errCh:
		s.stopStudios()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.stopStudios()
	if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return err
}

// trackStudio remembers a studio so it is stopped on shutdown. A studio
// already running for id is stopped first.
func (s *Server) trackStudio(id string, st *blocklet.Studio) {
	s.mu.Lock()
	prev := s.studios[id]
	s.studios[id] = st
	s.mu.Unlock()

	if prev != nil {
		_ = prev.Stop()
	}
}

func (s *Server) stopStudios() {
	s.mu.Lock()
	studios := s.studios
	s.studios = map[string]*blocklet.Studio{}
	s.mu.Unlock()

	for id, st := range studios {
		if err := st.Stop(); err != nil {
			s.log.Debug("stop studio", "theme", id, "err", err)
		}
	}
}
