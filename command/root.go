// Package command implements the pmmlkit command line.
package command

import (
	"github.com/spf13/cobra"

	"github.com/mensylisir/pmmlkit/common"
)

// NewRootCommand returns the root of the cobra command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&GlobalArgs{})
}

func newRootCommand(args *GlobalArgs) *cobra.Command {
	root := &cobra.Command{
		Use:   common.AppName,
		Short: "Convert pipelines to PMML and inspect converter capabilities.",
		Long: "pmmlkit drives the external PMML converter application: it runs conversions on pipeline dumps, " +
			"lists the estimators and transformers the converter bundles support and filters search spaces down to them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	args.addFlags(root)

	root.AddCommand(newVersionCommand(args))
	root.AddCommand(newSupportedCommand(args))
	root.AddCommand(newFilterCommand(args))
	root.AddCommand(newConvertDumpCommand(args))
	return root
}
