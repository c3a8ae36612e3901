package commands

import (
	"github.com/mrcacomacaco/zodkit-sub002/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Watch schema units and hot-reload on change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Root: root,
			})
		},
	}

	return cmd
}
