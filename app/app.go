package app

import (
	"context"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/cenkalti/backoff/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/JiscSD/rdss-image-archive/archive"
	"github.com/JiscSD/rdss-image-archive/s3"
)

const defaultLogLevel = logrus.WarnLevel

var (
	configFile     string
	verbosityLevel string

	// appFs is the filesystem where bags are kept.
	appFs = afero.NewOsFs()
)

func Run(out, stderr io.Writer) error {
	ctx, cancel := interruptible(context.Background())
	defer cancel()
	c := RootCommand(ctx, out, stderr)
	return c.Execute()
}

func RootCommand(ctx context.Context, out, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rdss-image-archive",
		Short:         "RDSS Image Archive",
		SilenceErrors: true,
	}

	cmd.SetOutput(out)
	cmd.Root().SilenceUsage = true

	config := &Config{}
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(config); err != nil {
			return err
		}

		if verbosityLevel == "" {
			verbosityLevel = config.Logging.Level
		}
		if err := setUpLogger(stderr, verbosityLevel); err != nil {
			return err
		}

		return nil
	}

	env := &environment{ctx: ctx, config: config, fs: appFs}

	cmd.AddCommand(NewCmdCreate(out, env))
	cmd.AddCommand(NewCmdAccession(logrus.WithField("cmd", "accession"), out, env))
	cmd.AddCommand(NewCmdImport(logrus.WithField("cmd", "import"), out, env))
	cmd.AddCommand(NewCmdCatalog(out, env))
	cmd.AddCommand(NewCmdConfig(out, config))
	cmd.AddCommand(NewCmdValidate(out, env))
	cmd.AddCommand(NewCmdVersion(out))

	cmd.PersistentFlags().StringVarP(&verbosityLevel, "verbosity", "v", "", "Log level (debug, info, warn, error, fatal, panic)")
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file")

	return cmd
}

func setUpLogger(out io.Writer, level string) error {
	if level == "" {
		level = defaultLogLevel.String()
	}
	logrus.SetOutput(out)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "parsing log level")
	}
	logrus.SetLevel(lvl)
	return nil
}

// environment gives the commands access to the configuration and to the
// services built from it once it has been loaded.
type environment struct {
	ctx    context.Context
	config *Config
	fs     afero.Fs
}

// bagPath resolves relative bag paths against the archive root.
func (e *environment) bagPath(path string) string {
	if e.config.Archive.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.config.Archive.Root, path)
}

func (e *environment) archive(logger logrus.FieldLogger) (*archive.Archive, error) {
	var s3Client s3.ObjectStorage
	{
		sess, err := awsSession(logger, e.config.AWS.S3Profile, e.config.AWS.S3Endpoint)
		if err != nil {
			return nil, err
		}
		s3Client = s3.New(sess)
	}

	var catalog archive.Catalog
	if e.config.Catalog.Table != "" {
		sess, err := awsSession(logger, e.config.AWS.DynamoDBProfile, e.config.AWS.DynamoDBEndpoint)
		if err != nil {
			return nil, err
		}
		catalog = archive.NewCatalogDynamoDB(dynamodb.New(sess), e.config.Catalog.Table)
	}

	maxElapsedTime := e.config.HTTP.MaxElapsedTime
	return archive.New(logger, e.fs, s3Client, catalog,
		archive.WithBackOff(func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.MaxElapsedTime = maxElapsedTime
			return b
		})), nil
}
