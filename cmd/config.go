package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorchard/farmhand/internal/domain"
)

func newConfigCmd(verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and update the bot configuration",
	}
	cmd.AddCommand(newConfigShowCmd(verbose), newConfigSetCmd(verbose))
	return cmd
}

func newConfigShowCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := wireApp(cmd.Context(), *verbose)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(a.config.Get(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigSetCmd(verbose *bool) *cobra.Command {
	var (
		platform             string
		farmMin, farmMax     int
		patrolMin, patrolMax int
		autoFarm, autoPatrol bool
		strategyMode         string
		seedID               int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Apply a partial configuration update",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := wireApp(cmd.Context(), *verbose)
			if err != nil {
				return err
			}

			var delta domain.ConfigDelta
			flags := cmd.Flags()
			if flags.Changed("platform") {
				delta.Platform = &platform
			}
			if flags.Changed("farm-min") || flags.Changed("farm-max") {
				current := a.config.Get().FarmInterval
				rng := current
				if flags.Changed("farm-min") {
					rng.Min = farmMin
				}
				if flags.Changed("farm-max") {
					rng.Max = farmMax
				}
				delta.FarmInterval = &rng
			}
			if flags.Changed("patrol-min") || flags.Changed("patrol-max") {
				rng := a.config.Get().PatrolInterval
				if flags.Changed("patrol-min") {
					rng.Min = patrolMin
				}
				if flags.Changed("patrol-max") {
					rng.Max = patrolMax
				}
				delta.PatrolInterval = &rng
			}
			if flags.Changed("auto-farm") {
				delta.AutoFarm = &autoFarm
			}
			if flags.Changed("auto-patrol") {
				delta.AutoPatrol = &autoPatrol
			}
			if flags.Changed("strategy") || flags.Changed("seed-id") {
				strategy := a.config.Get().Strategy
				if flags.Changed("strategy") {
					strategy.Mode = domain.StrategyMode(strategyMode)
				}
				if flags.Changed("seed-id") {
					strategy.SeedID = seedID
				}
				delta.Strategy = &strategy
			}

			updated, err := a.config.Set(cmd.Context(), delta)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(updated, "", "  ")
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "session platform")
	cmd.Flags().IntVar(&farmMin, "farm-min", 0, "minimum farm loop interval (seconds)")
	cmd.Flags().IntVar(&farmMax, "farm-max", 0, "maximum farm loop interval (seconds)")
	cmd.Flags().IntVar(&patrolMin, "patrol-min", 0, "minimum patrol loop interval (seconds)")
	cmd.Flags().IntVar(&patrolMax, "patrol-max", 0, "maximum patrol loop interval (seconds)")
	cmd.Flags().BoolVar(&autoFarm, "auto-farm", false, "enable the farm automation loop")
	cmd.Flags().BoolVar(&autoPatrol, "auto-patrol", false, "enable the patrol automation loop")
	cmd.Flags().StringVar(&strategyMode, "strategy", "", "farming strategy: auto, lowest, latest or fixed")
	cmd.Flags().IntVar(&seedID, "seed-id", 0, "seed id for the fixed strategy")
	return cmd
}
