package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"farmadelivery/cmd"
	httpin "farmadelivery/internal/adapters/in/http"
	"farmadelivery/internal/adapters/out/postgres"
	"farmadelivery/internal/core/domain/model/kernel"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:           "farmadelivery",
		Short:         "Pharmacy delivery service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		tokenCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP API and the background jobs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config := cmd.LoadConfig()
			logger := newLogger(config.LogLevel)
			if config.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := postgres.Open(config.Postgres().DSN(), config.Postgres())
			if err != nil {
				return err
			}

			app, err := cmd.NewCompositionRoot(ctx, config, db, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.Error("failed to close connections", "error", err)
				}
			}()

			e, err := app.CreateRouter(ctx)
			if err != nil {
				return err
			}
			e.Logger.SetLevel(log.INFO)

			jobManager := app.CreateJobManager()
			if err = jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			serveErr := make(chan error, 1)
			go func() {
				logger.Info("http server started", "port", config.HTTPPort)
				serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
			}()

			select {
			case err = <-serveErr:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err = e.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err = app.Dispatcher().Close(); err != nil {
				return err
			}
			if pending := app.Dispatcher().Pending(); pending > 0 {
				delivered := app.Dispatcher().Redeliver(shutdownCtx)
				logger.Info("final notification redelivery", "pending", pending, "delivered", delivered)
			}
			return nil
		},
	}
}

func migrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply or revert schema migrations",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "revert migrations (all of them unless --steps is set)",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runMigration(c, func(m *postgres.Migrator) (bool, error) { return m.Down(steps) })
		},
	}
	down.Flags().IntVar(&steps, "steps", 0, "number of migrations to revert")

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "migrate all the way up",
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				return runMigration(c, (*postgres.Migrator).Up)
			},
		},
		down,
	)
	return migrateCmd
}

func runMigration(c *cobra.Command, apply func(*postgres.Migrator) (bool, error)) error {
	config := cmd.LoadConfig()

	migrator, err := postgres.NewMigrator(config.Postgres().DSN())
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	changed, err := apply(migrator)
	if err != nil {
		return err
	}
	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}

	if !changed {
		fmt.Fprintln(c.OutOrStdout(), "No change in migration, version", version)
		return nil
	}
	fmt.Fprintf(c.OutOrStdout(), "Migrated to version %d (dirty: %t)\n", version, dirty)
	return nil
}

func tokenCommand() *cobra.Command {
	var (
		role    string
		subject string
		ttl     time.Duration
	)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "mint a development bearer token",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config := cmd.LoadConfig()
			if config.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}
			if ttl <= 0 {
				ttl = config.TokenTTL
			}

			id := kernel.NewUUID()
			if subject != "" {
				parsed, err := kernel.UUIDFromString(subject)
				if err != nil {
					return err
				}
				id = parsed
			}

			actor, err := kernel.NewActor(id, kernel.Role(strings.ToUpper(role)))
			if err != nil {
				return err
			}

			token, err := httpin.SignActorToken([]byte(config.JWTSecret), actor, time.Now(), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), token)
			return nil
		},
	}

	tokenCmd.Flags().StringVar(&role, "role", string(kernel.RoleCustomer), "CUSTOMER, PHARMACY, COURIER or ADMIN")
	tokenCmd.Flags().StringVar(&subject, "subject", "", "actor id (a new one when empty)")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (TOKEN_TTL_HOURS when zero)")
	return tokenCmd
}
