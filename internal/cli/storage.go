package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"timehair/internal/database"
	"timehair/internal/modules/maintenance"
)

func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "backup <path>",
		Short:        "Write a consistent copy of the SQLite store",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd.Context(), func(ctx context.Context, s *database.Store) error {
				info, err := maintenance.NewService(s).Backup(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitFailure, "backup failed", err)
				}
				return rootOpts.formatter(cmd).Success(info, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "backup written to %s\n", info.Path)
					return err
				})
			})
		},
	}
}

func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <path>",
		Short: "Replace the SQLite store with a backup file",
		Long: `Replace the live SQLite store with the given backup.

The API server must be stopped first; it keeps its own connection open.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd.Context(), func(ctx context.Context, s *database.Store) error {
				info, err := maintenance.NewService(s).Restore(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitFailure, "restore failed", err)
				}
				return rootOpts.formatter(cmd).Success(info, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "restored %s from %s\n", info.Path, args[0])
					return err
				})
			})
		},
	}
}

func NewPathCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "path",
		Short:        "Print the absolute path of the SQLite store",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withStore(cmd.Context(), func(ctx context.Context, s *database.Store) error {
				info, err := maintenance.NewService(s).StoragePath()
				if err != nil {
					return WrapExitError(ExitFailure, "storage path", err)
				}
				return rootOpts.formatter(cmd).Success(info, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, info.Path)
					return err
				})
			})
		},
	}
}
