package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/glassgen"
	"github.com/hupe1980/glassgen/bounds"
)

func newBoundsCmd(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Print the intersected per-oxide upper bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, root)
			defer cancel()

			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			store, err := OpenStore(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			setup, err := Resolve(ctx, cfg, store, logger)
			if err != nil {
				return err
			}
			p, err := glassgen.New(setup.Pipeline, glassgen.WithLogger(logger))
			if err != nil {
				return err
			}
			upper, err := p.Bounds()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "OXIDE\tUPPER")
			for i, u := range upper {
				fmt.Fprintf(tw, "%s\t%g\n", setup.Oxides.At(i), u)
			}
			fmt.Fprintf(tw, "feasible\t%t\n", bounds.Feasible(upper))
			return tw.Flush()
		},
	}
}
