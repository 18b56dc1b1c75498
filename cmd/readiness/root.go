package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-readiness/internal/config"
	"github.com/jonathan/career-readiness/internal/logger"
	"github.com/jonathan/career-readiness/internal/observability"
	"github.com/jonathan/career-readiness/internal/workspace"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "readiness"

// annotationNoWorkspace marks commands that run without opening storage.
const annotationNoWorkspace = "no-workspace"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "Track your job search and career readiness from the terminal",
	Long: "readiness keeps a resume, saved jobs, applications, job description analyses and practice " +
		"assessments in one local record and recalculates a 0-100 career readiness score whenever they change.",
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  openWorkspace,
	PersistentPostRunE: closeWorkspace,
}

var (
	cfgFile string

	cfg *config.Config
	log *zap.Logger
	ws  *workspace.Workspace
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is readiness.yaml in the current directory or ~/.config/readiness)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
}

func openWorkspace(cmd *cobra.Command, _ []string) error {
	if _, skip := cmd.Annotations[annotationNoWorkspace]; skip {
		return nil
	}

	v := viper.New()
	if err := v.BindPFlag("log.debug", cmd.Flags().Lookup("debug")); err != nil {
		return err
	}
	if err := v.BindPFlag("log.json", cmd.Flags().Lookup("json")); err != nil {
		return err
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	log, err = logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return err
	}
	log.Debug("opening workspace", logger.StringFields(
		logger.StringField{Key: "driver", Value: cfg.Storage.Driver},
		logger.StringField{Key: "path", Value: cfg.Storage.Path},
	)...)

	ws, err = workspace.Open(cmd.Context(), cfg.StorageConfig(), log)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	return nil
}

func closeWorkspace(_ *cobra.Command, _ []string) error {
	if ws == nil {
		return nil
	}
	err := ws.Close()
	ws = nil
	if log != nil {
		_ = log.Sync()
	}
	return err
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}

// addOutputFlag registers -o/--output on cmd. Each command owns its flag value.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")
}

// wantJSON reports whether --output json was requested on cmd.
func wantJSON(cmd *cobra.Command) bool {
	format, err := cmd.Flags().GetString("output")
	return err == nil && strings.EqualFold(format, "json")
}

// printJSON writes v as indented JSON.
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
