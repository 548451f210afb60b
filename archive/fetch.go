package archive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/JiscSD/rdss-image-archive/s3"
)

// SourceType is the kind of location an original is accessioned from.
type SourceType int

const (
	SourceTypeLocal SourceType = iota
	SourceTypeS3
	SourceTypeHTTP
)

func (t SourceType) String() string {
	switch t {
	case SourceTypeS3:
		return "s3"
	case SourceTypeHTTP:
		return "http"
	default:
		return "local"
	}
}

// downloadTimeout bounds the time spent fetching an original.
const downloadTimeout = time.Minute * 30

// parseSource returns the kind of the source, its canonical form and the
// name of the file it points to.
func parseSource(source string) (SourceType, string, string, error) {
	if s3.IsObjectURI(source) {
		u, err := url.Parse(source)
		if err != nil {
			return 0, "", "", errors.Wrap(err, "invalid source")
		}
		return SourceTypeS3, source, path.Base(u.Path), nil
	}
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return SourceTypeHTTP, source, path.Base(u.Path), nil
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return 0, "", "", errors.Wrap(err, "invalid source")
	}
	return SourceTypeLocal, abs, filepath.Base(abs), nil
}

// fetchFile writes the contents of the source into target. The retry
// provider manages times between retries for HTTP sources; it can be nil in
// which case the default scheme will be used. The S3 download includes its
// own retry scheme.
func fetchFile(ctx context.Context, logger logrus.FieldLogger, fs afero.Fs, s3Client s3.ObjectStorage, httpClient *http.Client, target afero.File,
	sourceType SourceType, source string, retry backoff.BackOff) (int64, error) {
	logger.Debugf("Saving %s into %s", source, target.Name())
	var (
		n      int64
		err    error
		cancel context.CancelFunc
	)
	ctx, cancel = context.WithTimeout(ctx, downloadTimeout)
	defer cancel()
	switch sourceType {
	case SourceTypeLocal:
		n, err = copyFile(fs, target, source)
	case SourceTypeHTTP:
		n, err = downloadFileHTTP(ctx, httpClient, target, source, retry)
	case SourceTypeS3:
		if s3Client == nil {
			err = errors.New("object storage is not configured")
			break
		}
		n, err = s3Client.Download(ctx, target, source)
	default:
		err = fmt.Errorf("unsupported source type: %s", sourceType)
	}
	if err != nil {
		logger.Errorf("Error fetching %s: %s", source, err)
		return 0, err
	}
	logger.Debugf("Fetched %s - %d bytes written", source, n)
	return n, nil
}

func copyFile(fs afero.Fs, target io.Writer, source string) (int64, error) {
	f, err := fs.Open(source)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(target, f)
}

func downloadFileHTTP(ctx context.Context, httpClient *http.Client, target io.Writer, source string, retry backoff.BackOff) (int64, error) {
	// Use exponential backoff algorithm if the user doesn't provide one.
	if retry == nil {
		retry = backoff.NewExponentialBackOff()
	}
	// Stop retrying after the context is canceled.
	cb := backoff.WithContext(retry, ctx)

	req, err := http.NewRequest("GET", source, nil)
	if err != nil {
		return 0, err
	}
	req = req.WithContext(ctx)

	var resp *http.Response
	op := func() error {
		var err error
		resp, err = httpClient.Do(req)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusOK {
			return nil
		}
		resp.Body.Close()
		err = fmt.Errorf("unexpected status code: %d (%s)", resp.StatusCode, resp.Status)
		// Client errors other than throttling are not worth retrying.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return backoff.Permanent(err)
		}
		return err
	}

	if err := backoff.Retry(op, cb); err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return io.Copy(target, resp.Body)
}
