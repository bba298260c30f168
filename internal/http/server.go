package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"campusbudget/internal/cache"
	"campusbudget/internal/core"
	"campusbudget/internal/ledger"
	"campusbudget/internal/log"
	"campusbudget/internal/services"
	"campusbudget/internal/stats"
)

// dashboardPayload is the combined dashboard response: transaction aggregates
// and goal portfolio statistics for one user.
type dashboardPayload struct {
	Transactions core.AggregateWindow `json:"transactions"`
	Goals        core.GoalStats       `json:"goals"`
}

type Server struct {
	http.Server
	svc      *services.LedgerService
	store    ledger.Store
	agg      *stats.Aggregator
	goalCalc *stats.GoalCalculator
	insights *stats.InsightGenerator

	rateLimiter *rateLimiter

	dashboardCache cache.Cache[dashboardPayload]
	insightsCache  cache.Cache[core.InsightReport]
	cacheManager   *cache.Manager

	// Per-user cache generation counters. Bumping a user's counter on write
	// orphans every cached key for that user, whatever its range parameters.
	generations sync.Map

	// now is swappable in tests for deterministic insight windows
	now func() time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, svc *services.LedgerService, store ledger.Store, cacheSize int, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	agg := stats.NewAggregator(store)

	dashboardCache := cache.NewLRU[dashboardPayload](cacheSize, cacheTTL)
	insightsCache := cache.NewLRU[core.InsightReport](cacheSize, cacheTTL)

	manager := cache.NewManager()
	manager.Register(dashboardCache)
	manager.Register(insightsCache)
	manager.StartCleanup(10 * time.Minute)

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:            svc,
		store:          store,
		agg:            agg,
		goalCalc:       stats.NewGoalCalculator(store),
		insights:       stats.NewInsightGenerator(agg, store),
		rateLimiter:    newRateLimiter(),
		dashboardCache: dashboardCache,
		insightsCache:  insightsCache,
		cacheManager:   manager,
		now:            time.Now,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.withAPI(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withAPI(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withAPI(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/goals", s.withAPI(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.withAPI(s.handleCreateGoal))
	mux.HandleFunc("GET /api/goals/{id}", s.withAPI(s.handleGetGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withAPI(s.handleDeleteGoal))
	mux.HandleFunc("POST /api/goals/{id}/contributions", s.withAPI(s.handleAddContribution))

	mux.HandleFunc("GET /api/dashboard", s.withAPI(s.handleDashboard))
	mux.HandleFunc("GET /api/insights", s.withAPI(s.handleInsights))

	return s
}

// withAPI adds request logging, security headers, rate limiting on writes,
// and the caller identity requirement shared by every /api route.
func (s *Server) withAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldClientIP, clientIP,
			log.FieldUserAgent, r.UserAgent())

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				log.FieldComponent, log.ComponentRateLimit,
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if userID(r) == "" {
			writeError(w, http.StatusBadRequest, "missing "+userIDHeader+" header")
			return
		}

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			log.FieldComponent, log.ComponentHTTP,
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds(),
			log.FieldSuccess, rw.statusCode < 400,
			log.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// generation returns the current cache generation for a user.
func (s *Server) generation(userID string) int64 {
	v, _ := s.generations.LoadOrStore(userID, new(int64))
	return atomic.LoadInt64(v.(*int64))
}

// invalidateUser bumps the user's generation, orphaning all cached summaries.
func (s *Server) invalidateUser(userID string) {
	v, _ := s.generations.LoadOrStore(userID, new(int64))
	atomic.AddInt64(v.(*int64), 1)
}

func (s *Server) dashboardKey(userID string, from, to core.Date) string {
	key := userID + "#" + strconv.FormatInt(s.generation(userID), 10)
	if !from.IsEmpty() {
		key += "|" + from.Format(dateLayout)
	}
	if !to.IsEmpty() {
		key += "|" + to.Format(dateLayout)
	}
	return key
}

func (s *Server) insightsKey(userID string) string {
	return userID + "#" + strconv.FormatInt(s.generation(userID), 10)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
