package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/config"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/handlers"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/loader"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/logger"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/reports"
	"github.com/Arun2310Rajaputhra/INVESTORS-DASHBOARD/src/storage"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000":    true,
			config.Cfg.FrontendBaseURL: true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Investors Dashboard backend server starting...")

	if len(config.Cfg.JWTSecret) < 32 {
		logger.L.Error("JWT_SECRET configuration invalid: must be at least 32 characters.")
		stdlog.Fatal("JWT_SECRET configuration invalid")
	}

	logger.L.Info("Initializing snapshot database...", "path", config.Cfg.SnapshotDBPath)
	storage.InitDB(config.Cfg.SnapshotDBPath)
	snapshotStore := storage.NewSnapshotStore(storage.DB)

	workbookLoader := loader.New(
		config.Cfg.WorkbookURL,
		config.Cfg.WorkbookPath,
		config.Cfg.DataDir,
		config.Cfg.RegistryTTL,
		snapshotStore,
	)

	reportCache := cache.New(reports.DefaultCacheExpiration, reports.CacheCleanupInterval)
	reportService := reports.NewReportService(workbookLoader, reportCache)

	sessionHandler := handlers.NewSessionHandler(reportService, config.Cfg.JWTSecret, config.Cfg.SessionTokenExpiry)
	metricsHandler := handlers.NewMetricsHandler(reportService)
	companyHandler := handlers.NewCompanyHandler(reportService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Investors Dashboard Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Get("/users", sessionHandler.HandleListUsers)
			r.Post("/auth/session", sessionHandler.HandleCreateSession)
			r.Get("/company/totals", companyHandler.HandleGetCompanyTotals)
			r.Get("/company/profit-series", companyHandler.HandleGetProfitSeries)
			r.Get("/company/investment-vs-profit", companyHandler.HandleGetInvestmentVsProfit)
		})

		// Protected routes (session token required)
		r.Group(func(r chi.Router) {
			r.Use(sessionHandler.AuthMiddleware)

			r.Get("/metrics", metricsHandler.HandleGetUserMetrics)
			r.Get("/report", metricsHandler.HandleGetUserReport)
			r.Get("/report/export", metricsHandler.HandleExportUserReport)
			r.Get("/reinvestments", metricsHandler.HandleGetReinvestments)
			r.Get("/reinvestments/export", metricsHandler.HandleExportReinvestments)
			r.Get("/charges/export", metricsHandler.HandleExportCharges)
		})
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
