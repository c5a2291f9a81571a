package tastebud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/edgeflare/tastebud/pkg/catalog"
	"github.com/edgeflare/tastebud/pkg/config"
	"github.com/edgeflare/tastebud/pkg/metrics"
	"github.com/edgeflare/tastebud/pkg/rest"
	"github.com/edgeflare/tastebud/pkg/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the catalog REST API server",
	Long:    `Connects to the catalog store and serves the restaurant and dish endpoints until SIGINT or SIGTERM`,
	RunE:    runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringP("rest.listenAddr", "l", "", "REST server listen address (default \":$PORT\" or \":3000\")")
	f.String("rest.baseURL", "", "Base URL for API endpoints")
	f.String("store.driver", "", "Store driver: sqlite or postgres")
	f.StringP("store.dsn", "d", "", "SQLite file or PostgreSQL connection string")
	f.Bool("metrics.enabled", false, "Serve Prometheus metrics")
	f.String("metrics.addr", "", "Prometheus metrics listen address")

	rootCmd.AddCommand(serveCmd)
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(f *pflag.FlagSet, c *config.Config) {
	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	str("rest.listenAddr", &c.REST.ListenAddr)
	str("rest.baseURL", &c.REST.BaseURL)
	str("store.driver", &c.Store.Driver)
	str("store.dsn", &c.Store.DSN)
	str("metrics.addr", &c.Metrics.Addr)
	if f.Changed("metrics.enabled") {
		c.Metrics.Enabled, _ = f.GetBool("metrics.enabled")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	applyFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the store must be reachable before the listener is bound
	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()
	logger.Info("store ready", zap.String("driver", db.Dialect().String()))

	var wg sync.WaitGroup
	if cfg.Metrics.Enabled {
		metrics.StartPrometheusServer(ctx, &wg, &metrics.PromServerOpts{
			Addr:   cfg.Metrics.Addr,
			Path:   cfg.Metrics.Path,
			Logger: logger,
		})
	}

	server := rest.NewServer(catalog.New(db), rest.Options{
		BaseURL:      cfg.REST.BaseURL,
		ExposeErrors: cfg.REST.ExposeErrors,
		CORSOrigins:  cfg.REST.CORSOrigins,
		AccessLog:    accessLogEnabled(),
		Logger:       logger,
		ServerOptions: []func(*http.Server){
			func(s *http.Server) { s.ReadHeaderTimeout = cfg.REST.ReadHeaderTimeout },
		},
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe(cfg.REST.ListenAddr)
	}()

	select {
	case err := <-errChan:
		stop()
		wg.Wait()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.REST.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	wg.Wait()

	logger.Info("server gracefully stopped")
	return nil
}
