package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/easydb/easydb/pkg/metrics"
	"github.com/easydb/easydb/pkg/rest"
	"github.com/easydb/easydb/pkg/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Starts a REST API server exposing the configured SQLite tables through HTTP endpoints`,
	Run:   runServer,
}

func init() {
	f := serveCmd.Flags()
	f.StringP("db.path", "d", "", "SQLite database file path")
	f.StringP("listenAddr", "l", "", "REST server listen address")
	f.Bool("metrics.enabled", false, "Serve Prometheus metrics")
	f.String("metrics.addr", "", "Prometheus metrics listen address")

	viper.BindPFlags(f)
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) {
	if cfg == nil {
		log.Fatal("Configuration not loaded")
	}

	// flag overrides
	if listenAddr := viper.GetString("listenAddr"); listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	if dbPath := viper.GetString("db.path"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if metricsAddr := viper.GetString("metrics.addr"); metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	var logger *zap.Logger
	if logLevel != "none" {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()
	}

	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	server := rest.NewServer(db, logger)

	ctx := context.Background()
	for _, table := range cfg.Tables {
		if err := server.CreateTable(ctx, table.Name, table.Columns); err != nil {
			log.Fatalf("Failed to create table %s: %v", table.Name, err)
		}
	}

	metricsCtx, cancelMetrics := context.WithCancel(ctx)
	defer cancelMetrics()
	var wg sync.WaitGroup
	if cfg.Metrics.Enabled || viper.GetBool("metrics.enabled") {
		metrics.StartPrometheusServer(metricsCtx, &wg, &metrics.PromServerOpts{Addr: cfg.Metrics.Addr})
	}

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	cancelMetrics()
	wg.Wait()

	log.Println("Server gracefully stopped")
}
