package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bfporto/tabelaprice/internal/cache"
	"github.com/bfporto/tabelaprice/internal/server"
	"github.com/bfporto/tabelaprice/internal/store"
	"github.com/bfporto/tabelaprice/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the amortization API over HTTP",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			listenAddress := conf.Server.Address
			if address != "" {
				listenAddress = address
			}
			if listenAddress == "" {
				listenAddress = constants.DefaultServerAddress
			}

			var cacheRepo cache.Repository
			if conf.Server.CacheAddress != "" {
				cacheRepo = cache.NewRedisCache(conf.Server.CacheAddress)
				logger.Info("using Redis schedule cache",
					zap.String("op", "main"),
					zap.String("address", conf.Server.CacheAddress),
				)
			} else {
				cacheRepo = cache.NewMemoryCache()
			}

			var history *store.SQLiteStore
			if conf.Server.DatabasePath != "" {
				history, err = store.NewSQLiteStore(conf.Server.DatabasePath)
				if err != nil {
					return fmt.Errorf("failed to open calculation history: %w", err)
				}
				defer func() {
					_ = history.Close()
				}()
			}

			httpServer := &http.Server{
				Addr:         listenAddress,
				Handler:      server.NewRouter(logger, cacheRepo, history, version),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info("starting server",
					zap.String("op", "main"),
					zap.String("address", listenAddress),
				)
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					serverErr <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return fmt.Errorf("server failed: %w", err)
			case <-quit:
				logger.Info("shutting down server",
					zap.String("op", "main"),
				)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "HTTP listen address override")
	return cmd
}
