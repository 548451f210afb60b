package app

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/JiscSD/rdss-image-archive/archive"
)

var outputFile string

func NewCmdImport(logger logrus.FieldLogger, out io.Writer, env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <image>",
		Short: "Print the Dublin Core metadata embedded in an image as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doImport(logger, out, env, args[0])
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the document to this file")

	return cmd
}

func doImport(logger logrus.FieldLogger, out io.Writer, env *environment, path string) error {
	f, err := env.fs.Open(path)
	if err != nil {
		return errors.Wrap(err, "cannot read image")
	}
	defer f.Close()
	m, err := archive.Describe(logger.WithField("image", path), f)
	if err != nil {
		return err
	}
	if outputFile != "" {
		return m.WriteJSON(env.fs, outputFile)
	}
	blob, err := m.MarshalIndent()
	if err != nil {
		return err
	}
	_, err = out.Write(blob)
	return err
}
