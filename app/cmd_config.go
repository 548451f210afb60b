package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewCmdConfig(out io.Writer, config *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective archive configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doConfig(out, config)
		},
	}
}

func doConfig(out io.Writer, config *Config) error {
	fmt.Fprintln(out, "\n# rdss-image-archive configuration")
	if _, err := fmt.Fprintf(out, "%s", config); err != nil {
		return err
	}
	if config.Catalog.Table == "" {
		_, err := fmt.Fprintln(out, "# The catalog is disabled: set catalog.table to enable it.")
		return err
	}
	return nil
}
