// Package api provides the HTTP REST API server for FundTrace.
//
// It exposes the crawled institutional holdings: per-ticker holdings
// history, yearly summaries, the filing timeline, and the institution
// roster, plus an endpoint to trigger a crawl.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/fundtrace/internal/config"
	"github.com/seenimoa/fundtrace/internal/history"
	"github.com/seenimoa/fundtrace/internal/tracker"
	"github.com/seenimoa/fundtrace/pkg/models"
)

// APIResponse is the standard response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CrawlRequest is the body of POST /api/v1/crawl.
type CrawlRequest struct {
	Tickers []string `json:"tickers"`
}

// Server is the HTTP API server. Crawl results are held in memory and
// replaced wholesale by each crawl; summaries are recomputed per
// request from the holdings set.
type Server struct {
	router chi.Router
	cfg    *config.Config
	trk    *tracker.Tracker

	mu           sync.RWMutex
	result       *tracker.Result
	crawling     bool
	lastCrawlErr string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, trk *tracker.Tracker) *Server {
	srv := &Server{cfg: cfg, trk: trk}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// SetResult seeds the server with crawl results, e.g. from a crawl run
// before the server starts.
func (s *Server) SetResult(result *tracker.Result) {
	s.mu.Lock()
	s.result = result
	s.mu.Unlock()
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/institutions", s.handleInstitutions)
		r.Get("/holdings/{ticker}", s.handleHoldings)
		r.Get("/summary/{ticker}", s.handleSummary)
		r.Get("/timeline", s.handleTimeline)
		r.Post("/crawl", s.handleCrawl)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	crawled := s.result != nil
	crawling := s.crawling
	lastErr := s.lastCrawlErr
	s.mu.RUnlock()

	data := map[string]interface{}{
		"status":      "ok",
		"has_results": crawled,
		"crawling":    crawling,
	}
	if lastErr != "" {
		data["last_crawl_error"] = lastErr
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func (s *Server) handleInstitutions(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()

	data := map[string]interface{}{
		"roster": s.cfg.Roster.Institutions,
	}
	if result != nil {
		data["profiles"] = history.Profiles(result.Timeline)
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()
	if result == nil {
		writeError(w, http.StatusNotFound, "no crawl results yet; POST /api/v1/crawl first")
		return
	}

	holdings := make([]models.Holding, 0)
	for _, h := range result.Holdings {
		if h.Ticker == ticker {
			holdings = append(holdings, h)
		}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: holdings})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()
	if result == nil {
		writeError(w, http.StatusNotFound, "no crawl results yet; POST /api/v1/crawl first")
		return
	}

	summaries := history.Summarize(result.Holdings, ticker, s.cfg.Crawl.StartYear, time.Now().Year())
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: summaries})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()
	if result == nil {
		writeError(w, http.StatusNotFound, "no crawl results yet; POST /api/v1/crawl first")
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: result.Timeline})
}

// handleCrawl starts a crawl in the background and returns immediately.
// Full-history crawls outlive any sensible request timeout, so the
// caller polls /health for completion; one crawl at a time.
func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	var req CrawlRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	s.mu.Lock()
	if s.crawling {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "a crawl is already running")
		return
	}
	s.crawling = true
	s.lastCrawlErr = ""
	s.mu.Unlock()

	// The crawl must not die with the request connection, so it runs
	// on a background context, not r.Context().
	go func() {
		result, err := s.trk.Track(context.Background(), req.Tickers)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.crawling = false
		if err != nil {
			s.lastCrawlErr = err.Error()
			log.Printf("crawl failed: %v", err)
			return
		}
		s.result = result
	}()

	writeJSON(w, http.StatusAccepted, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"started": true,
			"tickers": req.Tickers,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
