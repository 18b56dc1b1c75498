package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/career-readiness/internal/store"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export, import, inspect or clear all stored data",
}

var dataExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all data to a JSON file (default job-platform-data-YYYY-MM-DD.json)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDataExport,
}

var dataImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with an exported JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDataImport,
}

var dataClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all data",
	Args:  cobra.NoArgs,
	RunE:  runDataClear,
}

var dataStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how much data is stored",
	Args:  cobra.NoArgs,
	RunE:  runDataStats,
}

var dataClearYes bool

func init() {
	dataClearCmd.Flags().BoolVarP(&dataClearYes, "yes", "y", false, "Do not ask for confirmation")

	dataCmd.AddCommand(dataExportCmd, dataImportCmd, dataClearCmd, dataStatsCmd)
	rootCmd.AddCommand(dataCmd)
}

func runDataExport(cmd *cobra.Command, args []string) error {
	ctx := ctxOf(cmd)
	path := store.ExportFilename(ws.Store.Now())
	if len(args) == 1 {
		path = args[0]
	}
	if path == "-" {
		return ws.Store.Export(ctx, cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := ws.Store.Export(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", path)
	return nil
}

func runDataImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	if err := ws.ImportData(ctxOf(cmd), f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", args[0])
	return nil
}

func runDataClear(cmd *cobra.Command, _ []string) error {
	if !dataClearYes {
		prompt := promptui.Prompt{
			Label:     "Delete all resume, job, application and practice data",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
				return nil
			}
			return err
		}
	}

	if err := ws.ClearAll(ctxOf(cmd)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
	return nil
}

func runDataStats(cmd *cobra.Command, _ []string) error {
	stats, err := ws.Store.Stats(ctxOf(cmd))
	if err != nil {
		return err
	}
	printer(cmd).PrintStats(stats)
	return nil
}
