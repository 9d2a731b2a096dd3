package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandintel/competitor-intel-bot/internal/config"
	"github.com/brandintel/competitor-intel-bot/internal/gateway"
	"github.com/brandintel/competitor-intel-bot/internal/intel"
	"github.com/brandintel/competitor-intel-bot/internal/notifications"
	"github.com/brandintel/competitor-intel-bot/internal/scheduler"
	"github.com/brandintel/competitor-intel-bot/internal/sources"
	"github.com/brandintel/competitor-intel-bot/internal/storage"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	brandFlag := flag.String("brand", "", "brand identifier to run intelligence gathering for")
	competitorsOnly := flag.Bool("competitors-only", false, "gather competitor handles only (trends are always gathered)")
	influencersOnly := flag.Bool("influencers-only", false, "gather influencer handles only (trends are always gathered)")
	serve := flag.Bool("serve", false, "run as a service with HTTP endpoints and scheduled runs")
	flag.Parse()

	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	brands, err := config.LoadBrands(cfg.BrandsFile)
	if err != nil {
		fatal("Failed to load brand definitions: %v", err)
	}

	localStore, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		fatal("Failed to initialize storage: %v", err)
	}

	// Azure archive is optional; the local report file is the artifact of
	// record either way.
	var archive storage.StorageInterface
	if cfg.StorageAccount != "" {
		azure, err := storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
		if err != nil {
			fatal("Failed to initialize Azure archive storage: %v", err)
		}
		archive = azure
	}

	gw := gateway.New(cfg.CLITool, cfg.Retries, cfg.RetryDelay)
	source := sources.NewCLISource(gw)
	notifier := notifications.NewService(cfg)
	intelService := intel.NewService(cfg, brands, source, localStore, archive, notifier)

	if *serve {
		runServer(cfg, brands, intelService)
		return
	}

	if *brandFlag == "" {
		fatal("Usage: bot -brand <identifier> [-competitors-only|-influencers-only], or bot -serve")
	}

	opts := intel.RunOptions{
		CompetitorsOnly: *competitorsOnly,
		InfluencersOnly: *influencersOnly,
	}

	report, err := intelService.Run(context.Background(), *brandFlag, opts)
	if err != nil {
		fatal("Intelligence run failed: %v", err)
	}

	fmt.Printf("Report for %s: %d competitors, %d influencers, %d trends, %d insights, %d recommendations\n",
		report.Brand, report.Summary.CompetitorsTracked, report.Summary.InfluencersTracked,
		report.Summary.TrendsFound, report.Summary.Insights, report.Summary.Recommendations)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func runServer(cfg *config.Config, brands config.Brands, intelService *intel.Service) {
	logrus.Info("Starting competitor intel bot in serve mode")

	schedulerService := scheduler.NewService(cfg, brands, intelService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Metrics endpoint
	router.HandleFunc("/metrics", metricsHandler(intelService)).Methods("GET")

	// Manual trigger endpoint (for testing)
	router.HandleFunc("/trigger", triggerHandler(intelService)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(intelService *intel.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(intelService.GetMetrics()))
	}
}

func triggerHandler(intelService *intel.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brand := r.URL.Query().Get("brand")
		if brand == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"brand query parameter is required"}`))
			return
		}

		go func() {
			if _, err := intelService.Run(context.Background(), brand, intel.RunOptions{}); err != nil {
				logrus.Errorf("Manual trigger failed for brand %s: %v", brand, err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Intelligence run triggered successfully"}`))
	}
}
