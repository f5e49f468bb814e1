package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"adsrelay-golang/server/internal/ads"
	"adsrelay-golang/server/internal/config"
	"adsrelay-golang/server/internal/gateway"
	"adsrelay-golang/server/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		host  string
		port  int
		debug string
	)

	cmd := &cobra.Command{
		Use:           "adsrelay",
		Short:         "Relay browser requests to the Google Ads REST API with server-side credentials",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("debug") {
				cfg.Debug = debug
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides HOST)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides PORT)")
	cmd.Flags().StringVar(&debug, "debug", "", "Log level: off, low or high (overrides DEBUG)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger.Init(cfg.Debug)
	logger.Banner(cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           gateway.NewRouter(cfg, ads.NewClient(cfg)),
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       90 * time.Second,
	}

	if cfg.PprofAddr != "" {
		go servePprof(cfg.PprofAddr)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func servePprof(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	logger.Info("pprof server listening on http://%s/debug/pprof/", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("pprof server error: %v", err)
	}
}
