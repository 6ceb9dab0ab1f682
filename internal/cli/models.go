package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/glassgen/property"
	"github.com/hupe1980/glassgen/surrogate"
)

type modelsOptions struct {
	prefix string
}

func newModelsCmd(root *RootOptions) *cobra.Command {
	opts := &modelsOptions{}

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List model artifacts in the store",
		Long: `List every artifact under the prefix with its architecture and the
properties that use it. Blobs that do not decode as a network are reported
and skipped.`,
		Args: cobra.NoArgs,
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

			specs := cfg.Properties
			if cfg.Registry != "" {
				reg, err := property.LoadRegistry(ctx, store, cfg.Registry)
				if err != nil {
					return err
				}
				specs = append(reg.Specs(), specs...)
			}
			users := make(map[string][]string)
			for _, s := range specs {
				users[s.ArtifactName()] = append(users[s.ArtifactName()], s.Name)
			}

			names, err := store.List(ctx, opts.prefix)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ARTIFACT\tHIDDEN\tINPUTS\tPROPERTIES")
			for _, name := range names {
				net, err := surrogate.Load(ctx, store, name, inferenceOptions(cfg.Inference)...)
				if err != nil {
					logger.WarnContext(ctx, "skipping artifact", "artifact", name, "error", err)
					fmt.Fprintf(tw, "%s\t-\t-\t%s\n", name, joinOrDash(users[name]))
					continue
				}
				arch := net.Architecture()
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", name, dashIfEmpty(arch.Name()), arch.Inputs, joinOrDash(users[name]))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&opts.prefix, "prefix", "models/", "only list artifacts whose name starts with this prefix")

	return cmd
}

func joinOrDash(names []string) string {
	return dashIfEmpty(strings.Join(names, ","))
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
