package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/brew/internal/app"
)

// DefaultAddr is the address the preview server listens on.
const DefaultAddr = ":8080"

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <target>",
		Short: "Serve the output directory of a built target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return c.app.Serve(cmd.Context(), app.ServeOptions{
				ConfigPath: configPath(cmd),
				Target:     args[0],
				Addr:       addr,
			})
		},
	}
	cmd.Flags().StringP("addr", "a", DefaultAddr, "Address to listen on")
	return cmd
}
