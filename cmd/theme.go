package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Captain-Vikram/To-Do-List/internal/ui"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or toggle the saved appearance",
	RunE:  runThemeShow,
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current appearance",
	RunE:  runThemeShow,
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between dark and light and save the choice",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = sess.Close() }()

		dark, err := sess.store.ToggleDarkMode(cmd.Context())
		if err != nil {
			return fmt.Errorf("save theme: %w", err)
		}
		return printTheme(cmd.OutOrStdout(), dark)
	},
}

func init() {
	themeCmd.AddCommand(themeShowCmd, themeToggleCmd)
	rootCmd.AddCommand(themeCmd)
}

func runThemeShow(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()
	return printTheme(cmd.OutOrStdout(), sess.store.DarkMode())
}

func printTheme(w io.Writer, dark bool) error {
	name := "light"
	if dark {
		name = "dark"
	}
	if isJSON() {
		enc := json.NewEncoder(w)
		return enc.Encode(struct {
			Theme    string `json:"theme"`
			DarkMode bool   `json:"isDarkMode"`
		}{name, dark})
	}
	th := ui.NewTheme(dark)
	_, err := fmt.Fprintf(w, "%s %s\n", th.Subtle.Render("Theme:"), th.Primary.Render(name))
	return err
}
