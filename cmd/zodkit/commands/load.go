package commands

import (
	"github.com/mrcacomacaco/zodkit-sub002/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [root]",
		Short: "Discover and load all schema units once",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			noCache, _ := cmd.Flags().GetBool("no-cache")

			return c.app.Load(cmd.Context(), app.LoadOptions{
				Root:    root,
				NoCache: noCache,
			})
		},
	}

	cmd.Flags().Bool("no-cache", false, "Skip the persisted cache snapshot and load cold")

	return cmd
}
