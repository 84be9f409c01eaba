package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/lunch-roulette/internal/config"
	"github.com/kingrea/lunch-roulette/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "lunch",
	Short: "Random lunch menu roulette",
	Long: `lunch remembers where you eat, draws a dish that you have not had in your
last three picks and builds map search links for nearby places.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := projectDir(cmd)
		if err != nil {
			return err
		}
		opts, err := appOptions(cmd)
		if err != nil {
			return err
		}
		app, err := tui.NewApp(dir, opts...)
		if err != nil {
			return err
		}
		defer app.Close()

		p := tea.NewProgram(
			app,
			tea.WithAltScreen(), // Use alternate screen buffer (like vim does)
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running TUI: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory holding the .lunch folder")
	rootCmd.PersistentFlags().String("store", "", "Location store backend: file, redis or memory")
	rootCmd.Flags().Bool("no-reveal", false, "Show the dish immediately instead of spinning")
}

// projectDir resolves --dir and makes sure .lunch exists there.
func projectDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	if err := config.InitLunchDir(abs); err != nil {
		return "", fmt.Errorf("initializing %s directory: %w", config.LunchDir, err)
	}
	return abs, nil
}

func appOptions(cmd *cobra.Command) ([]tui.AppOption, error) {
	var opts []tui.AppOption
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		opts = append(opts, tui.WithStoreBackend(store))
	}
	if cmd.Flags().Changed("no-reveal") {
		noReveal, err := cmd.Flags().GetBool("no-reveal")
		if err != nil {
			return nil, err
		}
		opts = append(opts, tui.WithReveal(!noReveal))
	}
	return opts, nil
}

// loadConfig reads configuration for the non-interactive subcommands.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, err := projectDir(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return nil, err
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		if err := cfg.SetStoreBackend(store); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
