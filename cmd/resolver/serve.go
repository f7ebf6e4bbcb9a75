package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZJUSCT/resolver/internal/api/admin"
	"github.com/ZJUSCT/resolver/internal/api/user"
	"github.com/ZJUSCT/resolver/internal/database"
	"github.com/ZJUSCT/resolver/internal/loader"
	"github.com/ZJUSCT/resolver/internal/pubsub"
	"github.com/ZJUSCT/resolver/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the viewer and presenter servers",
	Long: `Loads the configured contest and serves the scoreboard viewer on
listen and, when enabled, the presenter console on admin.listen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, sync, err := setup()
		if err != nil {
			return err
		}
		defer sync()

		fmt.Fprintf(os.Stderr, "ZJUSCT Resolver %s\n\n", Version)

		db, err := database.Init(cfg.Storage.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		zap.S().Info("database initialized successfully")

		broker := pubsub.GetBroker()
		s, err := session.New(cmd.Context(), cfg, db, loader.NewSource(cfg.Minio), broker)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		defer broker.CloseTopic(s.Topic())

		servers := []*http.Server{{
			Addr:    cfg.Listen,
			Handler: user.NewUserRouter(cfg, s, broker),
		}}
		if cfg.Admin.Enabled {
			if cfg.Auth.JWT.Secret == "" {
				return errors.New("auth.jwt.secret is required when the admin server is enabled")
			}
			servers = append(servers, &http.Server{
				Addr:    cfg.Admin.Listen,
				Handler: admin.NewAdminRouter(cfg, db, s),
			})
		}

		errCh := make(chan error, len(servers))
		for _, srv := range servers {
			go func(srv *http.Server) {
				zap.S().Infof("starting server at %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- fmt.Errorf("server at %s: %w", srv.Addr, err)
				}
			}(srv)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case err = <-errCh:
		}
		zap.S().Info("shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, srv := range servers {
			if serr := srv.Shutdown(ctx); serr != nil {
				zap.S().Errorf("failed to shut down %s: %v", srv.Addr, serr)
			}
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
