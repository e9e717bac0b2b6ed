package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhouse/internal/catalog"
	"github.com/mrlokans/bookhouse/internal/config"
	http_controllers "github.com/mrlokans/bookhouse/internal/http"
	"github.com/mrlokans/bookhouse/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT.
	// SIGKILL can't be caught, so it is not registered.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work only after in-flight requests have drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookhouse v%s", version)

	stores, err := OpenStores(cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.UserAgent)
	catalogClient.SetRateLimit(cfg.Catalog.RateLimit, cfg.Catalog.RateBurst)
	if cfg.Catalog.APIKey == "" {
		log.Printf("Catalog API key is not set, searches use the anonymous quota. Set 'CATALOG_API_KEY' to raise it.")
	}

	var maintenance *scheduler.MaintenanceScheduler
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if cfg.Maintenance.Enabled {
		maintenance = scheduler.NewMaintenanceScheduler(stores.DB, cfg.Maintenance.Schedule)
		if err := maintenance.Start(schedulerCtx); err != nil {
			log.Printf("WARNING: Failed to start maintenance scheduler: %v", err)
			maintenance = nil
		}
	} else {
		log.Printf("Maintenance scheduler disabled")
	}

	routerCfg := http_controllers.RouterConfig{
		Database:        stores.DB,
		Catalog:         catalogClient,
		NotesStore:      stores.Notes,
		ProgressStore:   stores.Progress,
		FavouritesStore: stores.Favourites,
		Version:         version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
			// Leave a compact database file behind on clean shutdown.
			if err := stores.DB.Checkpoint(ctx); err != nil {
				log.Printf("Final checkpoint failed: %v", err)
			}
		}
	}

	Serve(router, cfg, onShutdown)
}
