package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"selling/internal/config"
	"selling/internal/database"
	"selling/internal/logger"
	"selling/internal/repositories"
	"selling/internal/services"
	"selling/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "selling",
		Short:         "Catalog service for colors, sub-categories and products",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateSuperuserCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer database.Close(db)
			logger.Log.Info("database schema is up to date")
			return nil
		},
	}
}

func newCreateSuperuserCmd() *cobra.Command {
	var email, username, password string
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff account with every permission",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer database.Close(db)

			authService := services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.JWTSecret, cfg.TokenTTL)
			user, err := authService.CreateSuperuser(cmd.Context(), email, username, password, services.UserFields{})
			if err != nil {
				return fmt.Errorf("failed to create superuser: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address, used to log in")
	cmd.Flags().StringVar(&username, "username", "", "unique username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// bootstrap loads the configuration, the logger and the database.
func bootstrap() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := logger.Initialize(cfg.AppEnv, cfg.LogLevel); err != nil {
		return config.Config{}, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

func runServe(ctx context.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close(db)

	// --- Initialize RabbitMQ Client ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		events = mqClient
	} else {
		logger.Log.Info("RABBITMQ_URL is empty, catalog events are disabled")
	}

	app, _ := NewApp(cfg, db, events)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("starting server", zap.String("addr", cfg.AppPort), zap.String("env", cfg.AppEnv))
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.Error("error during Fiber shutdown", zap.Error(err))
	}
	logger.Log.Info("server gracefully stopped")
	return nil
}
