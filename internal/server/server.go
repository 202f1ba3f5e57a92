// Package server provides the HTTP REST API for the PMO Network job board.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pmonetwork/pmo-network/internal/config"
	"github.com/pmonetwork/pmo-network/internal/db"
	"github.com/pmonetwork/pmo-network/internal/events"
	"github.com/pmonetwork/pmo-network/internal/search"
	"github.com/pmonetwork/pmo-network/internal/server/middleware"
	"github.com/pmonetwork/pmo-network/internal/server/ratelimit"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Store is everything the HTTP layer reads and writes. *db.DB satisfies it.
type Store interface {
	search.Store
	AccountStore

	Ping(ctx context.Context) error

	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*db.CandidateProfile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, input *db.ProfileInput) (*db.CandidateProfile, error)

	CreateJob(ctx context.Context, input *db.JobInput) (*db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobsByEmployer(ctx context.Context, employerID uuid.UUID) ([]db.Job, error)
	UpdateJobStatus(ctx context.Context, employerID, jobID uuid.UUID, status string) (*db.Job, error)
	DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) (bool, error)
	SearchJobs(ctx context.Context, f db.JobFilters, limit, offset int) ([]db.Job, int, error)

	CreateApplication(ctx context.Context, jobID, candidateUserID uuid.UUID, coverLetter string) (uuid.UUID, error)
	ListApplicationsByCandidate(ctx context.Context, candidateUserID uuid.UUID) ([]db.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]db.Application, error)
}

// Config holds server configuration
type Config struct {
	Port      int
	JWT       *config.JWTConfig
	Passwords *config.PasswordConfig
	RateLimit *ratelimit.Config // nil uses ratelimit.LoadConfig
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	publisher   events.Publisher
	search      *search.Service
	accounts    *AccountService
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	now         func() time.Time
}

// New creates a new server instance. A nil publisher disables events.
func New(cfg Config, store Store, publisher events.Publisher) *Server {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		store:       store,
		publisher:   publisher,
		search:      search.NewService(store, publisher),
		accounts:    NewAccountService(store, cfg.Passwords),
		jwtService:  NewJWTService(cfg.JWT),
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		now:         time.Now,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed API wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.withRateLimit(s.withCORS(s.routes())))
}

func (s *Server) routes() *http.ServeMux {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	authed := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}
	employer := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireRole(db.RoleEmployer)(h))
	}
	candidate := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireRole(db.RoleCandidate)(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Candidate search and bookmarks
	mux.Handle("GET /api/employer/candidates/search", employer(s.handleSearchCandidates))
	mux.Handle("GET /api/employer/saved-candidates", employer(s.handleListSavedCandidates))
	mux.Handle("POST /api/employer/saved-candidates", employer(s.handleSaveCandidate))
	mux.Handle("DELETE /api/employer/saved-candidates", employer(s.handleUnsaveCandidate))

	// Employer jobs
	mux.Handle("GET /api/employer/jobs", employer(s.handleListEmployerJobs))
	mux.Handle("POST /api/employer/jobs", employer(s.handleCreateJob))
	mux.Handle("PATCH /api/employer/jobs/{id}/status", employer(s.handleUpdateJobStatus))
	mux.Handle("DELETE /api/employer/jobs/{id}", employer(s.handleDeleteJob))
	mux.Handle("GET /api/employer/jobs/{id}/applications", employer(s.handleListJobApplications))

	// Public job board
	mux.HandleFunc("GET /api/jobs", s.handleSearchJobs)
	mux.HandleFunc("GET /api/jobs/{id}", s.handleGetJob)
	mux.Handle("POST /api/jobs/{id}/applications", candidate(s.handleApply))

	// Candidate self-service
	mux.Handle("GET /api/candidate/profile", candidate(s.handleGetProfile))
	mux.Handle("PUT /api/candidate/profile", candidate(s.handleUpdateProfile))
	mux.Handle("GET /api/candidate/applications", candidate(s.handleListMyApplications))

	// Account settings
	mux.Handle("PUT /api/account/password", authed(s.handleUpdatePassword))

	return mux
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()

	log.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs one line per request with the captured status and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", m.Code).
			Int64("bytes", m.Written).
			Dur("duration", m.Duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("request")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		log.Error().Err(err).Msg("health check failed")
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code. Internal errors are logged and hidden from the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a size-limited JSON body into v. An empty body yields io.EOF.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		return &ErrValidation{Message: "invalid request body"}
	}
	return nil
}

// pathID parses the {id} path value.
func pathID(r *http.Request, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: fmt.Sprintf("invalid %s id", resource)}
	}
	return id, nil
}

// principal returns the caller set by the auth middleware.
func principal(r *http.Request) middleware.Principal {
	p, _ := middleware.GetPrincipal(r)
	return p
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"resetAt":   info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds()) + 1
		response["retryAfter"] = retry
		w.Header().Set("Retry-After", strconv.Itoa(retry))
	}

	log.Warn().
		Str("client", s.extractClientID(r)).
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
