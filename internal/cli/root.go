package cli

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"timehair/internal/database"
)

const defaultDB = "./timehair.db"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DB     string
	Format string // "text" | "json" | "yaml"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command of the operator CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "timehairctl",
		Short:         "Operator tools for the TimeHair store",
		Long:          "Back up, restore and inspect the TimeHair salon database without the API server.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", defaultDSN(), "database path or postgres DSN")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewBackupCommand(opts))
	cmd.AddCommand(NewRestoreCommand(opts))
	cmd.AddCommand(NewPathCommand(opts))
	cmd.AddCommand(NewLedgerCommand(opts))

	return cmd
}

// defaultDSN follows the server's precedence: DATABASE_URL, then DB_PATH.
func defaultDSN() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		return v
	}
	return defaultDB
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

// withStore opens the store for the length of one command.
func (o *RootOptions) withStore(ctx context.Context, fn func(ctx context.Context, s *database.Store) error) error {
	if o.DB == "" {
		return NewExitError(ExitCommandError, "--db must not be empty")
	}
	store, err := database.Open(o.DB, "silent")
	if err != nil {
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer store.Close()
	return fn(ctx, store)
}
