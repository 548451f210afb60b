package app

import (
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const defaultConfig = `# RDSS Image Archive

################################## LOGGING ####################################

[logging]

#
# Logging verbosity level.
# Supported values: "DEBUG", "INFO", "WARN", "ERROR", "FATAL" or "PANIC".
#
level = "INFO"

################################## ARCHIVE ####################################

[archive]

#
# Directory where bags are created. Relative bag paths given to the commands
# are resolved against it. Empty means the working directory.
#
root = ""

################################## CATALOG ####################################

[catalog]

#
# Name of the table used to catalog the accessioned bags (DynamoDB).
# Empty disables the catalog.
#
table = ""

################################## HTTP #######################################

[http]

#
# Time spent retrying the download of an http(s) original before giving up.
#
max_elapsed_time = "15m"

################################## AWS ########################################

[aws]

s3_profile = ""
s3_endpoint = ""

dynamodb_profile = ""
dynamodb_endpoint = ""
`

type Config struct {
	v *viper.Viper

	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`

	Archive struct {
		Root string `mapstructure:"root"`
	} `mapstructure:"archive"`

	Catalog struct {
		Table string `mapstructure:"table"`
	} `mapstructure:"catalog"`

	HTTP struct {
		MaxElapsedTime time.Duration `mapstructure:"max_elapsed_time"`
	} `mapstructure:"http"`

	AWS struct {
		S3Profile        string `mapstructure:"s3_profile"`
		S3Endpoint       string `mapstructure:"s3_endpoint"`
		DynamoDBProfile  string `mapstructure:"dynamodb_profile"`
		DynamoDBEndpoint string `mapstructure:"dynamodb_endpoint"`
	} `mapstructure:"aws"`
}

func (c Config) Validate() error {
	if c.HTTP.MaxElapsedTime < 0 {
		return errors.New("http.max_elapsed_time cannot be negative")
	}
	if c.Archive.Root != "" {
		info, err := os.Stat(c.Archive.Root)
		if err != nil {
			return errors.Wrap(err, "archive.root is not usable")
		}
		if !info.IsDir() {
			return errors.Errorf("archive.root %s is not a directory", c.Archive.Root)
		}
	}
	return nil
}

func (c Config) String() string {
	tmpfile, err := ioutil.TempFile("", "config.*.toml")
	if err != nil {
		return err.Error()
	}
	defer os.Remove(tmpfile.Name())
	defer tmpfile.Close()
	err = c.v.WriteConfigAs(tmpfile.Name())
	if err != nil {
		return err.Error()
	}
	blob, err := ioutil.ReadAll(tmpfile)
	if err != nil {
		return err.Error()
	}
	return string(blob)
}

func loadConfig(c *Config) error {
	v := viper.New()

	v.SetEnvPrefix("RDSS_IMAGE_ARCHIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("rdss-image-archive")
	v.SetConfigType("toml")
	v.AddConfigPath("$HOME/.config/")
	v.AddConfigPath("/etc/rdss-image-archive/")

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read our default configuration.
	if err := v.ReadConfig(strings.NewReader(defaultConfig)); err != nil {
		panic(err) // Not in the user path.
	}

	// Include configuration file provided by the user.
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return errors.Wrap(err, "configuration unmarshaling failed")
	}

	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "config did not pass validation")
	}

	c.v = v

	return nil
}
