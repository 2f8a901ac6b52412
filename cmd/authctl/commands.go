package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnthoniusHendriyanto/secure-auth/db"
	"github.com/AnthoniusHendriyanto/secure-auth/internal/security"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "authctl",
		Short:        "Operator tools for the secure-auth service",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newGenKeyCmd(),
		newTOTPCodeCmd(),
		newHashPasswordCmd(),
	)
	return root
}

func newMigrateCmd() *cobra.Command {
	var dbURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded SQL migrations",
		Long: `Apply the embedded SQL migrations to the database named by --db-url.

Environment Variables:
  DB_URL  Postgres connection string (used when --db-url is empty)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbURL == "" {
				dbURL = os.Getenv("DB_URL")
			}
			if dbURL == "" {
				return fmt.Errorf("DB_URL is required")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			pool, err := db.NewPostgresPool(ctx, dbURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}

			names, _ := db.Migrations()
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", len(names))
			return nil
		},
	}
	cmd.Flags().StringVar(&dbURL, "db-url", "", "Postgres connection string (overrides DB_URL)")
	return cmd
}

func newGenKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-key",
		Short: "Print a random ENCRYPTION_KEY value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := security.GenerateKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}

func newTOTPCodeCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "totp-code <secret>",
		Short: "Print the TOTP code for a base32 secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				when = parsed
			}

			code, err := security.NewTOTP("").Code(args[0], when)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "RFC3339 instant to compute the code for (default now)")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash of the given password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := security.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

// executeArgs runs the root command with args and the given context.
func executeArgs(ctx context.Context, root *cobra.Command, args ...string) error {
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
