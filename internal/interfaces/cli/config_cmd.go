package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/SDF-Library-Mining/internal/config"
	"github.com/turtacn/SDF-Library-Mining/pkg/errors"
)

func newConfigCmd() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: "Config prints the configuration after merging the config file, SDFMINE_*\n" +
			"environment variables and defaults.  Secrets are never printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if defaults {
				cfg = config.NewDefaultConfig()
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode configuration")
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults instead")
	return cmd
}

//Personal.AI order the ending
