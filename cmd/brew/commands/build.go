package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/brew/internal/app"
	"go.trai.ch/brew/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [targets...]",
		Short: "Build the given targets, or every target when none is named",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rawMode, _ := cmd.Flags().GetString("mode")
			noCache, _ := cmd.Flags().GetBool("no-cache")

			mode, err := domain.ParseMode(rawMode)
			if err != nil {
				return err
			}

			return c.app.Build(cmd.Context(), app.BuildOptions{
				ConfigPath: configPath(cmd),
				Targets:    args,
				Mode:       mode,
				NoCache:    noCache,
			})
		},
	}
	cmd.Flags().StringP("mode", "m", string(domain.ModeProduction), "Build mode: production, development or watch")
	cmd.Flags().BoolP("no-cache", "n", false, "Rebuild even when the previous bundle is up to date")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [targets...]",
		Short: "Build the given targets and rebuild them on every source change",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Build(cmd.Context(), app.BuildOptions{
				ConfigPath: configPath(cmd),
				Targets:    args,
				Mode:       domain.ModeDevelopment,
			})
		},
	}
}
