package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mensylisir/pmmlkit/version"
)

func newVersionCommand(args *GlobalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print component versions and the detected Java runtime.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := args.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range version.Components() {
				fmt.Fprintln(out, c)
			}
			fmt.Fprintln(out, args.runner(&cfg.Spec).Version(cmd.Context()))
			return nil
		},
	}
}
