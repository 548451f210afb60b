// Package archive manages the bags of the image archive: each bag holds an
// original image and the descriptive metadata imported from it.
package archive

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/JiscSD/rdss-image-archive/dublincore"
	"github.com/JiscSD/rdss-image-archive/metadata"
	"github.com/JiscSD/rdss-image-archive/s3"
	"github.com/JiscSD/rdss-image-archive/xmp"
)

// MetadataFilename is the payload file holding the descriptive metadata.
const MetadataFilename = "metadata.json"

// Components of a bag.
const (
	ComponentOriginal = "original"
	ComponentMetadata = "metadata"
)

// Archive accessions originals into bags.
type Archive struct {
	logger  logrus.FieldLogger
	fs      afero.Fs
	s3      s3.ObjectStorage
	catalog Catalog

	httpClient *http.Client
	retry      func() backoff.BackOff
}

// Option configures an Archive.
type Option func(*Archive)

// WithHTTPClient sets the client used to fetch http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Archive) {
		a.httpClient = c
	}
}

// WithBackOff sets the provider of retry policies for http(s) sources.
func WithBackOff(retry func() backoff.BackOff) Option {
	return func(a *Archive) {
		a.retry = retry
	}
}

// New returns an Archive. Object storage and catalog are optional: s3 sources
// and publishing fail without the former, registration is skipped without
// the latter.
func New(logger logrus.FieldLogger, fs afero.Fs, s3 s3.ObjectStorage, catalog Catalog, opts ...Option) *Archive {
	a := &Archive{
		logger:     logger,
		fs:         fs,
		s3:         s3,
		catalog:    catalog,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result summarizes an accession.
type Result struct {
	Filename string
	Size     int64
	Metadata *metadata.DescriptiveMetadata
}

// Accession copies the original found at source into the bag, imports its
// Dublin Core metadata and updates the tag files. Sources are local paths,
// s3:// or http(s):// URIs.
func (a *Archive) Accession(ctx context.Context, bag *Bag, source string) (*Result, error) {
	sourceType, source, filename, err := parseSource(source)
	if err != nil {
		return nil, err
	}
	if filename == "" || filename == "." || filename == "/" || filename == MetadataFilename {
		return nil, errors.Errorf("unsupported filename %q", filename)
	}
	logger := a.logger.WithFields(logrus.Fields{"bag": bag.Path(), "source": source})

	target := bag.DataPath(filename)
	n, err := a.fetch(ctx, logger, target, sourceType, source)
	if err != nil {
		return nil, errors.Wrap(err, "original cannot be fetched")
	}
	m, err := a.complete(logger, bag, source, filename)
	if err != nil {
		a.remove(logger, target)
		return nil, err
	}
	logger.WithField("bytes", n).Info("Original accessioned.")

	if a.catalog != nil {
		if err := a.register(ctx, bag, filename, m); err != nil {
			// The bag is complete at this point.
			logger.Errorf("Error trying to register the package: %v", err)
		}
	}

	return &Result{Filename: filename, Size: n, Metadata: m}, nil
}

// complete describes the fetched original, writes its metadata and saves the
// bag. The tags of the bag are left untouched and the metadata file is
// removed when it fails.
func (a *Archive) complete(logger logrus.FieldLogger, bag *Bag, source, filename string) (m *metadata.DescriptiveMetadata, err error) {
	m, err = a.describe(logger, bag.DataPath(filename))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			a.remove(logger, bag.DataPath(MetadataFilename))
		}
	}()
	if err := m.WriteJSON(a.fs, bag.DataPath(MetadataFilename)); err != nil {
		return nil, errors.Wrap(err, "metadata cannot be written")
	}
	info := bag.Info()
	bag.SetComponent(ComponentOriginal,
		Term{"accession_path", source},
		Term{"filename", filename},
		Term{"path", filepath.ToSlash(filepath.Join(payloadDirectory, filename))},
	)
	bag.SetComponent(ComponentMetadata,
		Term{"filename", MetadataFilename},
		Term{"path", filepath.ToSlash(filepath.Join(payloadDirectory, MetadataFilename))},
	)
	if err := bag.Save(true); err != nil {
		bag.info = info
		return nil, err
	}
	return m, nil
}

func (a *Archive) remove(logger logrus.FieldLogger, path string) {
	if err := a.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warningf("Error removing %s: %v", path, err)
	}
}

func (a *Archive) fetch(ctx context.Context, logger logrus.FieldLogger, target string, sourceType SourceType, source string) (n int64, err error) {
	f, err := a.fs.OpenFile(target, os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.FileMode(0644))
	if err != nil {
		return 0, err
	}
	defer func() {
		f.Close()
		if err != nil {
			a.remove(logger, target)
		}
	}()
	var retry backoff.BackOff
	if a.retry != nil {
		retry = a.retry()
	}
	return fetchFile(ctx, logger, a.fs, a.s3, a.httpClient, f, sourceType, source, retry)
}

// describe imports the Dublin Core metadata embedded in the file.
func (a *Archive) describe(logger logrus.FieldLogger, path string) (*metadata.DescriptiveMetadata, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Describe(logger, f)
}

// Describe imports the Dublin Core metadata embedded in the contents of an
// image. Images without XMP get empty metadata.
func Describe(logger logrus.FieldLogger, r io.Reader) (*metadata.DescriptiveMetadata, error) {
	packet, err := xmp.Extract(r)
	if errors.Cause(err) == xmp.ErrNoPacket {
		logger.Warn("The original has no XMP packet.")
		return metadata.NewDescriptiveMetadata(metadata.Contents{})
	}
	if err != nil {
		return nil, err
	}
	p, err := xmp.Parse(packet)
	if err != nil {
		return nil, err
	}
	m, err := dublincore.NewImporter(logger).Import(p.Properties(xmp.NamespaceDC))
	if err != nil {
		return nil, errors.Wrap(err, "metadata cannot be imported")
	}
	return m, nil
}

func (a *Archive) register(ctx context.Context, bag *Bag, filename string, m *metadata.DescriptiveMetadata) error {
	entry := Entry{
		PackageID:   bag.ID(),
		Path:        bag.Path(),
		Filename:    filename,
		Title:       m.Title(),
		Accessioned: now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if titles := m.Titles(); len(titles) > 0 {
		entry.SortKey = titles[0].SortKey()
	}
	return a.catalog.Register(ctx, entry)
}

// Publish uploads the metadata of the bag to an s3:// URI and returns its
// location.
func (a *Archive) Publish(ctx context.Context, bag *Bag, uri string) (string, error) {
	if a.s3 == nil {
		return "", errors.New("object storage is not configured")
	}
	f, err := a.fs.Open(bag.DataPath(MetadataFilename))
	if err != nil {
		return "", errors.Wrap(err, "metadata cannot be read")
	}
	defer f.Close()
	location, err := a.s3.Upload(ctx, f, uri, "application/json")
	if err != nil {
		return "", err
	}
	a.logger.WithFields(logrus.Fields{"bag": bag.Path(), "location": location}).Info("Metadata published.")
	return location, nil
}

// Lookup returns the catalog entry of a package.
func (a *Archive) Lookup(ctx context.Context, packageID string) (*Entry, error) {
	if a.catalog == nil {
		return nil, errors.New("catalog is not configured")
	}
	return a.catalog.Lookup(ctx, packageID)
}

// List returns the catalog entries ordered by sort key.
func (a *Archive) List(ctx context.Context) ([]Entry, error) {
	if a.catalog == nil {
		return nil, errors.New("catalog is not configured")
	}
	return a.catalog.List(ctx)
}
