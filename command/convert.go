package command

import (
	"github.com/spf13/cobra"

	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/converter"
	"github.com/mensylisir/pmmlkit/logger"
)

type convertDumpArgs struct {
	dump string
	pmml string
}

func newConvertDumpCommand(args *GlobalArgs) *cobra.Command {
	ca := &convertDumpArgs{}
	cmd := &cobra.Command{
		Use:   "convert-dump",
		Short: "Run the converter on an existing pipeline dump.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := args.load()
			if err != nil {
				return err
			}
			opts, err := cfg.Spec.ConverterOptions()
			if err != nil {
				return err
			}
			opts.Runner = args.runner(&cfg.Spec)
			opts.Out = cmd.OutOrStdout()
			res, err := converter.ConvertDump(ca.dump, ca.pmml, opts)
			if err != nil {
				return err
			}
			logger.Log.WithField(common.StepName, "convert").Infof("PMML written to %s (exit code %d)", ca.pmml, res.ExitCode)
			return nil
		},
	}
	cmd.Flags().StringVar(&ca.dump, "dump", "", "Pipeline dump to convert.")
	cmd.Flags().StringVar(&ca.pmml, "pmml", "", "Destination PMML file.")
	_ = cmd.MarkFlagRequired("dump")
	_ = cmd.MarkFlagRequired("pmml")
	return cmd
}
