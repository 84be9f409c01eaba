package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/lunch-roulette/internal/config"
	"github.com/kingrea/lunch-roulette/internal/coordinator"
	"github.com/kingrea/lunch-roulette/internal/logbook"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw one dish and print the search links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		at, _ := cmd.Flags().GetString("at")
		return withCoordinator(cmd.Context(), cfg, func(ctx context.Context, c *coordinator.Coordinator) error {
			if at != "" {
				if err := c.SubmitLocation(ctx, at); err != nil {
					return err
				}
			}
			sel, err := c.DrawInstant()
			if errors.Is(err, coordinator.ErrNoLocation) {
				return fmt.Errorf("%s (lunch draw --at <위치>)", coordinator.MessageNoLocation)
			}
			if err != nil {
				return err
			}
			loc, _ := c.Location()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📍 %s\n🍽  %s\n%s\n", loc.Address, sel.Final, sel.SearchURL)
			for _, candidate := range c.Carousel().Items() {
				fmt.Fprintf(out, "  %s · %s\n    %s\n", candidate.Title, candidate.Description, candidate.URL)
			}
			return nil
		})
	},
}

// withCoordinator opens the configured store, runs fn and releases the store.
func withCoordinator(ctx context.Context, cfg *config.Config, fn func(context.Context, *coordinator.Coordinator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// the journal is best effort; a nil logbook drops entries
	lb, _ := logbook.New(cfg.JournalPath())
	backend, closer, err := coordinator.OpenBackend(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	c, err := coordinator.FromConfig(ctx, cfg, backend, lb)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(ctx, c)
}

func init() {
	drawCmd.Flags().String("at", "", "Use and remember this location before drawing")
	rootCmd.AddCommand(drawCmd)
}
