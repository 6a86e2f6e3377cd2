package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/deusflow/ainews/internal/logger"
	"github.com/deusflow/ainews/internal/metrics"
	"github.com/deusflow/ainews/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		RunE:  serve,
	}
	cmd.Flags().String("port", "", "listen port (default PORT or 5001)")
	return cmd
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	p, err := buildPipeline(cmd.Context(), cfg, metrics.Global)
	if err != nil {
		return err
	}
	defer p.Close()

	srv := server.New(p.agent, metrics.Global, logger.Logger, server.Options{
		DefaultDays: cfg.LookbackDays,
		CacheTTL:    cfg.RunCacheTTL,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	logger.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
