// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 COTSense Contributors

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cotsense/cotsense/internal/config"
	"github.com/cotsense/cotsense/internal/embed"
	"github.com/cotsense/cotsense/internal/explain"
	"github.com/cotsense/cotsense/internal/recommend"
	"github.com/cotsense/cotsense/internal/secrets"
	"github.com/cotsense/cotsense/internal/server"
	"github.com/cotsense/cotsense/internal/store/sqlite"
	cotserr "github.com/cotsense/cotsense/pkg/errors"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the COTSense API server",
		Long:  "Starts the REST API server that answers component searches, explanations, and admin catalog operations.",
		RunE:  runServe,
	}

	cmd.Flags().String("listen", "", "listen address (overrides server.listen)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Server.Listen = listen
	}

	logger := newLogger(viper.GetBool("verbose"))
	slog.SetDefault(logger)

	// API keys may be keyring:// references.
	keyring := secrets.NewKeyringStore()
	if err := secrets.ResolveAPIKeys(keyring, &cfg.Embedding.APIKey, &cfg.Explain.APIKey); err != nil {
		return err
	}

	ctx := cmd.Context()

	stores, err := sqlite.OpenStores(cfg.Storage.Path, cfg.Storage.Dimensions)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			logger.Warn("closing stores", "error", err)
		}
	}()

	embedder, err := embed.New(ctx, cfg.Embedding)
	if err != nil {
		return err
	}

	explainCfg := cfg.Explain
	if !cfg.ExplainEnabled() {
		explainCfg.Provider = config.ProviderNone
	}
	explainer, err := explain.New(ctx, explainCfg)
	if err != nil {
		return err
	}

	svc := recommend.NewService(recommend.Options{
		Stores:      stores,
		Embedder:    embedder,
		Explainer:   explainer,
		Logger:      logger,
		DefaultTopK: cfg.Search.DefaultTopK,
		MaxTopK:     cfg.Search.MaxTopK,
	})

	srv, err := server.New(server.Config{
		ListenAddr:  cfg.Server.Listen,
		CORSOrigins: cfg.Server.AllowedOrigins,
	}, svc)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		"listen", cfg.Server.Listen,
		"embedding_provider", embedder.Name(),
		"explain_configured", explainer != nil,
		"data_path", cfg.Storage.Path,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "COTSense server listening on %s\n", cfg.Server.Listen)

	if err := srv.Start(runCtx); err != nil {
		return cotserr.Wrap(err, cotserr.CodeServerStartFailure, "server exited")
	}

	logger.Info("server stopped")
	return nil
}

// newLogger builds the process logger. Verbose enables debug level.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
