package app

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JiscSD/rdss-image-archive/internal/testutil"
)

func TestMainHelp(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"rdss-image-archive", "help"}

	var (
		output    bytes.Buffer
		errOutput bytes.Buffer
	)
	err := Run(&output, &errOutput)

	if err != nil {
		t.Error(err)
	}
	if have, want := output.String(), "Available Commands"; !strings.Contains(have, want) {
		t.Errorf("expected output %s not found in output: %s", want, have)
	}
	if errOutput.String() != "" {
		t.Errorf("error output is not empty")
	}
}

func TestMainUnknownCommand(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"rdss-image-archive", "unknown"}

	err := Run(ioutil.Discard, ioutil.Discard)

	if err == nil {
		t.Error("error expected")
	}
}

// execute runs the root command against an in-memory filesystem.
func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()

	oldFs := appFs
	defer func() { appFs = oldFs }()
	appFs = fs
	publishURI, outputFile, file = "", "", ""

	var output bytes.Buffer
	cmd := RootCommand(context.Background(), &output, ioutil.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestConfigDefaults(t *testing.T) {
	c := &Config{}
	require.NoError(t, loadConfig(c))

	assert.Equal(t, "INFO", c.Logging.Level)
	assert.Equal(t, "", c.Catalog.Table)
	assert.Equal(t, "15m0s", c.HTTP.MaxElapsedTime.String())
	assert.Contains(t, c.String(), "max_elapsed_time")
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, afero.NewMemMapFs(), "config")
	require.NoError(t, err)
	assert.Contains(t, out, "# rdss-image-archive configuration")
	assert.Contains(t, out, "max_elapsed_time")
	assert.Contains(t, out, "The catalog is disabled")
}

func TestConfigValidate(t *testing.T) {
	c := Config{}
	c.HTTP.MaxElapsedTime = -1
	assert.Error(t, c.Validate())

	c = Config{}
	c.Archive.Root = "/this/directory/does/not/exist"
	assert.Error(t, c.Validate())
}

func TestCreateAndAccession(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/IMG_4107_XMP.png", testutil.ImageFixture(t, "moontown.xmp"), os.FileMode(0644)))

	out, err := execute(t, fs, "create", "/bags/moontown")
	require.NoError(t, err)
	assert.Contains(t, out, "created in /bags/moontown")

	out, err = execute(t, fs, "accession", "/bags/moontown", "/src/IMG_4107_XMP.png")
	require.NoError(t, err)
	assert.Contains(t, out, "Accessioned IMG_4107_XMP.png")
	assert.Contains(t, out, "Title: Moontown Cotton")

	exists, err := afero.Exists(fs, "/bags/moontown/data/metadata.json")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = execute(t, fs, "create", "/bags/moontown")
	assert.Error(t, err, "bags are not overwritten")
}

func TestAccession_InvalidPublishURI(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := execute(t, fs, "create", "/bags/moontown")
	require.NoError(t, err)

	_, err = execute(t, fs, "accession", "--publish", "https://example.com/m.json", "/bags/moontown", "/src/IMG_4107_XMP.png")
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/IMG_4107_XMP.png", testutil.ImageFixture(t, "moontown.xmp"), os.FileMode(0644)))

	out, err := execute(t, fs, "import", "/src/IMG_4107_XMP.png")
	require.NoError(t, err)
	assert.Contains(t, out, `"value": "Moontown Cotton"`)
	assert.Contains(t, out, `"full_name": "Tom Elliott"`)

	out, err = execute(t, fs, "import", "-o", "/metadata.json", "/src/IMG_4107_XMP.png")
	require.NoError(t, err)
	assert.Empty(t, out)
	blob, err := afero.ReadFile(fs, "/metadata.json")
	require.NoError(t, err)
	assert.Contains(t, string(blob), "Moontown Cotton")

	_, err = execute(t, fs, "import", "/src/missing.png")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/valid.json", []byte(`{"agents": [], "descriptions": [], "keywords": [], "titles": []}`), os.FileMode(0644)))
	require.NoError(t, afero.WriteFile(fs, "/invalid.json", []byte(`{"titles": "Moontown"}`), os.FileMode(0644)))

	out, err := execute(t, fs, "validate", "-f", "/valid.json")
	require.NoError(t, err)
	assert.Contains(t, out, "The document is valid")

	out, err = execute(t, fs, "validate", "-f", "/invalid.json")
	assert.Error(t, err)
	assert.Contains(t, out, "The document is invalid!")

	_, err = execute(t, fs, "validate")
	assert.Error(t, err)
}

func TestCatalogNotConfigured(t *testing.T) {
	_, err := execute(t, afero.NewMemMapFs(), "catalog", "list")
	assert.Error(t, err)
}
