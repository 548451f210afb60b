package app

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/JiscSD/rdss-image-archive/archive"
	"github.com/JiscSD/rdss-image-archive/s3"
)

var publishURI string

func NewCmdAccession(logger logrus.FieldLogger, out io.Writer, env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accession <bag> <source>",
		Short: "Accession an original image into a bag",
		Long: `Accession an original image into a bag.

The source is a local path, an s3://bucket/key URI or an http(s) URL. The
descriptive metadata embedded in the image is written to data/metadata.json.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doAccession(logger, out, env, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&publishURI, "publish", "", "Upload the metadata to this s3:// URI")

	return cmd
}

func doAccession(logger logrus.FieldLogger, out io.Writer, env *environment, path, source string) error {
	if publishURI != "" && !s3.IsObjectURI(publishURI) {
		return errors.Errorf("cannot publish to %s: not an s3:// URI", publishURI)
	}
	b, err := archive.Open(env.fs, env.bagPath(path))
	if err != nil {
		return err
	}
	a, err := env.archive(logger)
	if err != nil {
		return err
	}
	res, err := a.Accession(env.ctx, b, source)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Accessioned %s (%d bytes) into %s\n", res.Filename, res.Size, b.Path())
	if title := res.Metadata.Title(); title != "" {
		fmt.Fprintf(out, "Title: %s\n", title)
	}
	if publishURI == "" {
		return nil
	}
	location, err := a.Publish(env.ctx, b, publishURI)
	if err != nil {
		return errors.Wrap(err, "metadata cannot be published")
	}
	_, err = fmt.Fprintf(out, "Metadata published to %s\n", location)
	return err
}
