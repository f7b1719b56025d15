package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Captain-Vikram/To-Do-List/internal/logger"
	"github.com/Captain-Vikram/To-Do-List/internal/tui"
	"github.com/Captain-Vikram/To-Do-List/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Open the interactive task list",
	Long: `Open the full-screen task list. Logs go to a rotating file under the data
directory while the terminal UI owns the screen.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return errors.New("the terminal UI needs an interactive terminal")
		}
		return runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command) error {
	log, closer, err := logger.Setup(logger.Options{
		Level:      logLevel(),
		Format:     "json",
		File:       appCfg.LogFile(),
		MaxSizeMB:  appCfg.Log.MaxSizeMB,
		MaxBackups: appCfg.Log.MaxBackups,
		MaxAgeDays: appCfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("setup log file: %w", err)
	}
	defer func() { _ = closer.Close() }()

	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := sess.Close(); err != nil {
			slog.Warn("close preferences", "error", err)
		}
	}()

	log.Info("terminal ui started", "backend", appCfg.Preferences.Backend, "dark", sess.store.DarkMode())
	return tui.Run(ctx, sess.store, tui.Options{
		Watcher: sess.watcher(),
		Logger:  log,
	})
}
