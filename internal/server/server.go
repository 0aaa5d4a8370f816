// Package server hosts paged tables over HTTP.
//
// Every browser session owns one table.Widget mounted on an htmlview.Surface.
// Controls are plain links: each interaction is a GET that applies one event
// and redirects back to the table.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"maragu.dev/gomponents"

	"github.com/rshade/pagedtable/internal/config"
	"github.com/rshade/pagedtable/internal/htmlview"
	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/table"
)

const (
	// SessionCookie names the cookie carrying the session id.
	SessionCookie = "pagedtable_session"

	// DefaultMaxSessions bounds memory; the oldest session is evicted first.
	DefaultMaxSessions = 1024

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// WidgetFactory builds an unrendered widget mounted on surface.
type WidgetFactory func(surface table.Surface) (*table.Widget, error)

type session struct {
	mu      sync.Mutex
	widget  *table.Widget
	surface *htmlview.Surface
}

// Option configures a Server.
type Option func(*Server)

// WithMaxSessions overrides DefaultMaxSessions.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// Server serves one paged table per session.
type Server struct {
	cfg     config.ServerConfig
	factory WidgetFactory
	logger  zerolog.Logger
	router  chi.Router

	mu          sync.Mutex
	sessions    map[string]*session
	order       []string
	maxSessions int
}

// New creates a server. factory is called once per new session.
func New(cfg config.ServerConfig, factory WidgetFactory, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:         cfg,
		factory:     factory,
		logger:      logging.ComponentLogger(logger, "server"),
		sessions:    make(map[string]*session),
		maxSessions: DefaultMaxSessions,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/prev", s.handleEvent(func(*http.Request) (table.Event, error) {
		return table.PrevEvent(), nil
	}))
	r.Get("/next", s.handleEvent(func(*http.Request) (table.Event, error) {
		return table.NextEvent(), nil
	}))
	r.Get("/page/{index}", s.handleEvent(func(r *http.Request) (table.Event, error) {
		raw := chi.URLParam(r, "index")
		index, err := strconv.Atoi(raw)
		if err != nil {
			return table.Event{}, fmt.Errorf("%w: page %q is not a number", table.ErrInvalidArgument, raw)
		}
		return table.PageEvent(index), nil
	}))
	r.Get("/sort/{field}", s.handleEvent(func(r *http.Request) (table.Event, error) {
		// chi matches on RawPath when the request carries escapes, leaving the
		// segment encoded; otherwise it is already decoded.
		field := chi.URLParam(r, "field")
		if r.URL.RawPath != "" {
			decoded, err := url.PathUnescape(field)
			if err != nil {
				return table.Event{}, fmt.Errorf("%w: field %q: %w", table.ErrInvalidArgument, field, err)
			}
			field = decoded
		}
		return table.SortEvent(field), nil
	}))
	r.Get("/healthz", s.handleHealth)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving %s: %w", s.cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	renderHTML(w, http.StatusOK, htmlview.Document(s.cfg.Title, sess.surface.Node()))
}

// handleEvent applies the event parsed from the request to the session's
// widget, then redirects to the table.
func (s *Server) handleEvent(parse func(*http.Request) (table.Event, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ev, err := parse(r)
		if err != nil {
			s.renderError(w, r, err)
			return
		}

		sess, err := s.session(w, r)
		if err != nil {
			s.renderError(w, r, err)
			return
		}

		sess.mu.Lock()
		err = sess.surface.Dispatch(ev)
		sess.mu.Unlock()
		if err != nil {
			s.renderError(w, r, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"status":"ok","sessions":%d}`+"\n", s.SessionCount())
}

// session returns the caller's session, creating and rendering a new one
// (and setting its cookie) when the cookie is missing or unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, error) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		sess, ok := s.sessions[c.Value]
		s.mu.Unlock()
		if ok {
			return sess, nil
		}
	}

	surface := htmlview.NewSurface(htmlview.WithLinks(eventLink))
	widget, err := s.factory(surface)
	if err != nil {
		return nil, fmt.Errorf("creating table: %w", err)
	}
	if err := widget.Render(); err != nil {
		return nil, fmt.Errorf("rendering table: %w", err)
	}

	id := logging.NewID()
	s.mu.Lock()
	s.sessions[id] = &session{widget: widget, surface: surface}
	s.order = append(s.order, id)
	for len(s.order) > s.maxSessions {
		delete(s.sessions, s.order[0])
		s.order = s.order[1:]
	}
	sess := s.sessions[id]
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log := logging.FromContext(r.Context())
	log.Debug().Str("session", id).Msg("session created")
	return sess, nil
}

// renderError maps argument and range errors to 400 and everything else to 500.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	title := "Unexpected Error"
	message := "An unexpected error occurred while loading this table."

	if errors.Is(err, table.ErrInvalidArgument) || errors.Is(err, table.ErrIndexOutOfRange) {
		status = http.StatusBadRequest
		title = "Invalid Request"
		message = err.Error()
	}

	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Warn().Err(err).Msg("request rejected")
	}
	renderHTML(w, status, htmlview.ErrorPage(title, message, "/"))
}

// eventLink maps a table event to the route that applies it.
func eventLink(ev table.Event) string {
	switch ev.Kind {
	case table.EventPrev:
		return "/prev"
	case table.EventNext:
		return "/next"
	case table.EventPage:
		return "/page/" + strconv.Itoa(ev.Index)
	case table.EventSort:
		return "/sort/" + url.PathEscape(ev.Field)
	default:
		return "/"
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
