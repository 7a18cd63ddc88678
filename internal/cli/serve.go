package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/harun/ghtools/internal/config"
	"github.com/harun/ghtools/internal/logger"
	"github.com/harun/ghtools/internal/metrics"
	"github.com/harun/ghtools/internal/server"
	"github.com/harun/ghtools/pkg/ghtools"
	"github.com/harun/ghtools/pkg/githubclient"
	"github.com/harun/ghtools/pkg/toolkit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tool server",
	Long: `Start the HTTP tool server. The tool catalog is built once at
startup and frozen before the server accepts invocation requests.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lg, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: true,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer lg.Close()

	catalog, dispatcher, err := buildDispatch(cfg)
	if err != nil {
		return err
	}

	m := metrics.NewMetrics()
	srv := server.New(server.Config{
		Host:      cfg.Server.Host,
		Port:      cfg.Server.Port,
		AuthToken: cfg.Server.AuthToken,
	}, catalog, dispatcher, m)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Int("tools", catalog.Len()).Msg("Tool server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// buildDispatch builds the frozen catalog and its dispatcher. The config
// must already be validated.
func buildDispatch(cfg *config.Config) (*toolkit.Catalog, *toolkit.Dispatcher, error) {
	client := githubclient.New(cfg.GitHub.Token)

	catalog := toolkit.NewCatalog()
	if err := ghtools.RegisterAll(catalog, client); err != nil {
		return nil, nil, fmt.Errorf("failed to build tool catalog: %w", err)
	}
	catalog.Freeze()

	var opts []toolkit.Option
	if cfg.Server.CallTimeoutMS > 0 {
		opts = append(opts, toolkit.WithTimeout(time.Duration(cfg.Server.CallTimeoutMS)*time.Millisecond))
	}
	return catalog, toolkit.NewDispatcher(catalog, opts...), nil
}
