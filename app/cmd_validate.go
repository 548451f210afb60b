package app

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/JiscSD/rdss-image-archive/metadata"
)

var file string

func NewCmdValidate(out io.Writer, env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate descriptive metadata JSON documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doValidate(out, env)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File")

	return cmd
}

func doValidate(out io.Writer, env *environment) error {
	if file == "" {
		return errors.New("parameter empty")
	}
	m, err := metadata.ReadJSON(env.fs, file)
	if err != nil {
		fmt.Fprintln(out, "The document is invalid!")
		return err
	}
	_, err = fmt.Fprintf(out, "The document is valid: %d agents, %d titles, %d descriptions, %d keywords.\n",
		len(m.Agents()), len(m.Titles()), len(m.Descriptions()), len(m.Keywords()))
	return err
}
