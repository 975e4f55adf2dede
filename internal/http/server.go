// Package http exposes the JSON API: session management, transaction
// and customer CRUD, account administration, dashboard aggregates and
// the monthly report with its PDF export.
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
	"time"

	"netkas/internal/ai"
	"netkas/internal/auth"
	"netkas/internal/cache"
	"netkas/internal/core"
	"netkas/internal/pdf"
	"netkas/internal/services"
)

const sessionCookie = "netkas_session"

// ReportConfig carries the report identity and profit-sharing policy.
type ReportConfig struct {
	Letterhead pdf.Letterhead
	Partners   []string
}

type Server struct {
	http.Server

	accounts   *auth.Store
	tokens     *auth.TokenManager
	ledger     *services.Ledger
	summarizer *ai.Summarizer
	report     ReportConfig

	rateLimiter *rateLimiter
	reportCache *cache.LRU[core.MonthlyReport]

	// genMu guards reportGen: a per-user counter folded into cache keys
	// so any transaction mutation invalidates that user's cached months.
	genMu     sync.Mutex
	reportGen map[string]uint64

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, accounts *auth.Store, tokens *auth.TokenManager, ledger *services.Ledger, summarizer *ai.Summarizer, report ReportConfig) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		accounts:         accounts,
		tokens:           tokens,
		ledger:           ledger,
		summarizer:       summarizer,
		report:           report,
		rateLimiter:      newRateLimiter(),
		reportCache:      cache.NewLRU[core.MonthlyReport](200, 5*time.Minute),
		reportGen:        make(map[string]uint64),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/login", s.withMiddleware(s.handleLogin))
	mux.HandleFunc("POST /api/logout", s.withMiddleware(s.requireSession(s.handleLogout)))
	mux.HandleFunc("GET /api/session", s.withMiddleware(s.handleSession))
	mux.HandleFunc("POST /api/password", s.withMiddleware(s.requireSession(s.handleChangePassword)))

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.requireSession(s.handleListTransactions)))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.requireSession(s.handleAddTransaction)))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withMiddleware(s.requireSession(s.handleUpdateTransaction)))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.requireSession(s.handleDeleteTransaction)))

	mux.HandleFunc("GET /api/customers", s.withMiddleware(s.requireSession(s.handleListCustomers)))
	mux.HandleFunc("POST /api/customers", s.withMiddleware(s.requireSession(s.handleAddCustomer)))
	mux.HandleFunc("PUT /api/customers/{id}", s.withMiddleware(s.requireSession(s.handleUpdateCustomer)))
	mux.HandleFunc("DELETE /api/customers/{id}", s.withMiddleware(s.requireSession(s.handleDeleteCustomer)))

	mux.HandleFunc("GET /api/users", s.withMiddleware(s.requireAdmin(s.handleListUsers)))
	mux.HandleFunc("POST /api/users", s.withMiddleware(s.requireAdmin(s.handleAddUser)))
	mux.HandleFunc("DELETE /api/users/{id}", s.withMiddleware(s.requireAdmin(s.handleDeleteUser)))

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.requireSession(s.handleDashboard)))
	mux.HandleFunc("GET /api/reports/monthly", s.withMiddleware(s.requireSession(s.handleMonthlyReport)))
	mux.HandleFunc("GET /api/reports/monthly/pdf", s.withMiddleware(s.requireSession(s.handleMonthlyReportPDF)))
	mux.HandleFunc("POST /api/summary", s.withMiddleware(s.requireSession(s.handleSummary)))

	mux.HandleFunc("GET /api/views", s.withMiddleware(s.handleListViews))
	mux.HandleFunc("GET /api/views/{id}", s.withMiddleware(s.handleResolveView))

	return s
}

// sessionHandler is a handler that additionally receives the verified
// session.
type sessionHandler func(w http.ResponseWriter, r *http.Request, session core.Session)

// requireSession verifies the session token (cookie or bearer header)
// before invoking next.
func (s *Server) requireSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.sessionFrom(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "tidak terautentikasi")
			return
		}
		next(w, r, session)
	}
}

// requireAdmin restricts a route to admin-role sessions.
func (s *Server) requireAdmin(next sessionHandler) http.HandlerFunc {
	return s.requireSession(func(w http.ResponseWriter, r *http.Request, session core.Session) {
		if session.Role != core.RoleAdmin {
			respondError(w, http.StatusForbidden, "hanya admin yang dapat mengakses pengaturan")
			return
		}
		next(w, r, session)
	})
}

func (s *Server) sessionFrom(r *http.Request) (core.Session, bool) {
	token := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		const prefix = "Bearer "
		if h := r.Header.Get("Authorization"); len(h) > len(prefix) && h[:len(prefix)] == prefix {
			token = h[len(prefix):]
		}
	}
	if token == "" {
		return core.Session{}, false
	}
	session, err := s.tokens.Verify(token)
	if err != nil {
		return core.Session{}, false
	}
	return session, true
}

// withMiddleware adds request ids, request logging, security headers
// and rate limiting of mutating requests.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
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
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusTooManyRequests, "terlalu banyak permintaan, coba lagi nanti")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type requestIDKey struct{}

// responseWriter captures the status code for the completion log line.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// Simple in-memory rate limiter, 60 mutating requests per client per
// minute.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}
	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.reportCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Report cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// reportCacheKey folds the user's mutation generation into the key so
// stale months fall out of the cache after any transaction change.
func (s *Server) reportCacheKey(username string, year, month int) string {
	s.genMu.Lock()
	gen := s.reportGen[username]
	s.genMu.Unlock()
	return username + ":" + strconv.FormatUint(gen, 10) + ":" + strconv.Itoa(year) + "-" + strconv.Itoa(month)
}

func (s *Server) invalidateReports(username string) {
	s.genMu.Lock()
	s.reportGen[username]++
	s.genMu.Unlock()
}

// Shutdown stops cleanup goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Storage reachability doubles as the readiness probe.
	if _, err := s.accounts.List(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "storage not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
