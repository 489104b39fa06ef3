package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/martinmajer/mechanika/internal/api"
	"github.com/martinmajer/mechanika/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveNoStore bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	Long: `Serve the analysis API over HTTP.

Routes (JSON):
  POST   /api/analyze?combo=ID        analyze the posted model
  GET    /api/combinations            load combinations
  GET    /api/models                  stored models
  POST   /api/models                  store {"name": ..., "document": {...}}
  GET    /api/models/{id}             stored model
  DELETE /api/models/{id}             remove a stored model
  GET    /api/models/{id}/analysis    analyze a stored model
  GET    /api/health                  liveness

Settings come from the environment (MECHANIKA_ADDR, MECHANIKA_DB,
MECHANIKA_RATE, MECHANIKA_BURST, MECHANIKA_READ_TIMEOUT,
MECHANIKA_WRITE_TIMEOUT) or a .env file.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides MECHANIKA_ADDR)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "Disable the model library routes")
	addSimplifiedFlag(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	h := &api.Handler{
		Combinations: combinations(),
		Logger:       log.New(os.Stderr, "", log.LstdFlags),
	}
	if !serveNoStore {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		h.Store = store.New(db)
		if err := h.Store.Init(ctx); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(h, cfg.Rate, cfg.Burst),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	wg.Wait()
	log.Println("Server stopped")
	return nil
}
