package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yaklabco/subtag/internal/configloader"
	"github.com/yaklabco/subtag/pkg/config"
)

func newConfigCommand() *cobra.Command {
	var env bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration subtag would use in the current directory, after
merging the system, user and project config files, environment variables and
--config.

Examples:
  subtag config
  subtag config --env       List the supported environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if env {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				for _, v := range configloader.ListEnvVars() {
					fmt.Fprintf(tw, "%s\t%s\n", v[0], v[1])
				}
				return tw.Flush()
			}

			cfg, _, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}
			data, err := cfg.ToYAML()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&env, "env", false, "list environment variables instead")

	return cmd
}
