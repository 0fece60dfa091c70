package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mensylisir/pmmlkit/capability"
	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/config"
	"github.com/mensylisir/pmmlkit/logger"
)

func newSupportedCommand(args *GlobalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "supported",
		Short: "List the identifiers the converter bundles on the classpath support.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := args.load()
			if err != nil {
				return err
			}
			cp, err := cfg.Spec.Classpath()
			if err != nil {
				return err
			}
			ids, err := capability.NewResolver(cfg.Spec.ManifestCacheTTL).SupportedIdentifiers(cp)
			if err != nil {
				return err
			}
			for _, id := range capability.Sorted(ids) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

type filterArgs struct {
	searchSpace string
	out         string
}

func newFilterCommand(args *GlobalArgs) *cobra.Command {
	fa := &filterArgs{}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the search space entries the converter can translate.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := args.load()
			if err != nil {
				return err
			}
			cp, err := cfg.Spec.Classpath()
			if err != nil {
				return err
			}
			space, err := config.LoadSearchSpace(fa.searchSpace)
			if err != nil {
				return err
			}
			filtered, err := capability.NewResolver(cfg.Spec.ManifestCacheTTL).FilterSupported(space, cp)
			if err != nil {
				return err
			}
			logger.Log.WithField(common.StepName, "filter").Infof("Kept %d of %d search space entries", len(filtered), len(space))
			if fa.out != "" {
				return config.WriteSearchSpace(fa.out, filtered)
			}
			content, err := config.MarshalSearchSpace(filtered)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		},
	}
	cmd.Flags().StringVar(&fa.searchSpace, "search-space", "", "YAML search space keyed by fully qualified identifiers.")
	cmd.Flags().StringVarP(&fa.out, "out", "o", "", "Write the filtered search space here instead of stdout.")
	_ = cmd.MarkFlagRequired("search-space")
	return cmd
}
