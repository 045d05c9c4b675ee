package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suykerbuyk/chronal/internal/archive"
	"github.com/suykerbuyk/chronal/internal/config"
	"github.com/suykerbuyk/chronal/internal/delta"
)

func newArchiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <input>",
		Short: "Store a zstd-compressed copy of an input in the state directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(cmd, args[0])
			if err != nil {
				return err
			}
			// Refuse to archive something that would never solve.
			if _, err := delta.ParseString(string(data)); err != nil {
				return err
			}

			fp := archive.Fingerprint(data)
			if archive.IsArchived(fp, a.cfg.ArchiveDir()) {
				fmt.Fprintf(cmd.OutOrStdout(), "already archived: %s\n", archive.ArchivePath(fp, a.cfg.ArchiveDir()))
				return nil
			}

			path, err := archive.Archive(data, a.cfg.ArchiveDir())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived: %s\n", path)
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:              "init",
		Short:            "Write a default config file",
		Args:             cobra.NoArgs,
		PersistentPreRun: skipSetup,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, action, err := config.WriteDefault()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", action, path)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:              "version",
		Short:            "Print version",
		Args:             cobra.NoArgs,
		PersistentPreRun: skipSetup,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chronal v%s\n", version)
		},
	}
}
