package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/lunch-roulette/internal/coordinator"
)

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the remembered location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return withCoordinator(cmd.Context(), cfg, func(_ context.Context, c *coordinator.Coordinator) error {
			loc, ok := c.Location()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "저장된 위치가 없습니다.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), loc.Address)
			return nil
		})
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Clear the remembered location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return withCoordinator(cmd.Context(), cfg, func(ctx context.Context, c *coordinator.Coordinator) error {
			if err := c.ForgetLocation(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "저장된 위치를 삭제했습니다.")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(whereCmd)
	rootCmd.AddCommand(forgetCmd)
}
