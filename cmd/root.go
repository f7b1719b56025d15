package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Captain-Vikram/To-Do-List/internal/config"
	"github.com/Captain-Vikram/To-Do-List/internal/logger"
	"github.com/Captain-Vikram/To-Do-List/internal/ui"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// appCfg is the configuration loaded before every command runs.
	appCfg *config.AppConfig
	// version is the application version.
	version = "0.1.0"
)

// flagKeys maps flag names to the viper keys they override.
var flagKeys = map[string]string{
	"data-dir":      "dataDir",
	"log-level":     "log.level",
	"prefs-backend": "preferences.backend",
	"appearance":    "appearance.default",
	"addr":          "server.addr",
	"verbose":       "verbose",
	"json":          "json",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo - a keyboard-driven task tracker",
	Long: `todo keeps a list of tasks with priorities, due dates and statuses.

Run without arguments to open the terminal UI, or use "todo serve" to expose
the same tasks over a JSON HTTP API.`,
	SilenceUsage:      true,
	PersistentPreRunE: initCommand,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return cmd.Help()
		}
		return runTUI(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(err)
		os.Exit(1)
	}
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.todo.yaml or $HOME/.todo.yaml)")
	pf.String("data-dir", "", "directory for preferences, logs and crash reports")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("prefs-backend", "", "preference backend: memory, sqlite, file, redis")
	pf.String("appearance", "", "appearance when no theme is saved: auto, dark, light")
	pf.BoolP("verbose", "v", false, "enable verbose output")
	pf.Bool("json", false, "print machine-readable JSON where supported")
}

// bindFlags connects the flags of the executing command to viper. It runs
// per invocation so a viper.Reset between runs does not lose the bindings.
func bindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	return nil
}

func initCommand(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	appCfg = cfg

	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())
	logger.SetBasePath(cfg.DataDir)

	if _, _, err := logger.Setup(logger.Options{Level: logLevel(), Format: cfg.Log.Format}); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	return nil
}

// logLevel is the configured log level, raised to debug by --verbose.
func logLevel() string {
	if viper.GetBool("verbose") {
		return "debug"
	}
	return appCfg.Log.Level
}

func isJSON() bool {
	return viper.GetBool("json")
}

// PrintError prints err to stderr. Wrapped causes are shown only with --verbose.
func PrintError(err error) {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		return
	}
	fmt.Fprintln(os.Stderr, ui.RenderErrorPanel(ui.NewTheme(true), "Error", err.Error()))
}

func printJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return err
}
