package app

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewCmdCatalog(out io.Writer, env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the catalog of accessioned bags",
	}

	logger := logrus.WithField("cmd", "catalog")
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the bags ordered by title",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doCatalogList(logger, out, env)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <package-id>",
		Short: "Show the catalog entry of a bag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doCatalogShow(logger, out, env, args[0])
		},
	})

	return cmd
}

func doCatalogList(logger logrus.FieldLogger, out io.Writer, env *environment) error {
	a, err := env.archive(logger)
	if err != nil {
		return err
	}
	entries, err := a.List(env.ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s\t%s\t%s\n", e.PackageID, e.Title, e.Path)
	}
	return nil
}

func doCatalogShow(logger logrus.FieldLogger, out io.Writer, env *environment, packageID string) error {
	a, err := env.archive(logger)
	if err != nil {
		return err
	}
	e, err := a.Lookup(env.ctx, packageID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Package-ID: %s\nPath: %s\nFilename: %s\nTitle: %s\nAccessioned: %s\n",
		e.PackageID, e.Path, e.Filename, e.Title, e.Accessioned)
	return nil
}
