package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JiscSD/rdss-image-archive/archive"
)

func NewCmdCreate(out io.Writer, env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "create <bag>",
		Short: "Create an empty bag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doCreate(out, env, args[0])
		},
	}
}

func doCreate(out io.Writer, env *environment, path string) error {
	b, err := archive.Create(env.fs, env.bagPath(path))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Bag %s created in %s\n", b.ID(), b.Path())
	return err
}
