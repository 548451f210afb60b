package s3

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fs = afero.Afero{Fs: afero.NewMemMapFs()}

func tempFile(t *testing.T) afero.File {
	file, err := fs.TempFile("", "")
	require.NoError(t, err)
	t.Logf("Created temporary file: %s", file.Name())
	return file
}

type mockS3Client struct {
	s3iface.S3API
	t *testing.T
	f afero.File
}

func (c *mockS3Client) GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error) {
	assert.Equal(c.t, "foo", aws.StringValue(input.Bucket))
	assert.Equal(c.t, "bar/IMG_4107.png", aws.StringValue(input.Key))
	return &s3.GetObjectOutput{
		Body:         c.f,
		ContentRange: aws.String("1"),
	}, nil
}

func TestObjectStorageImpl_Download(t *testing.T) {
	const want = "Hello world!"

	// Input file S3 mock is to read from
	fi := tempFile(t)
	defer fi.Close()
	fmt.Fprint(fi, want)
	fi.Seek(0, 0)

	// Output file we want to validate
	fo := tempFile(t)
	defer fo.Close()

	client := NewWithClient(&mockS3Client{t: t, f: fi})

	_, err := client.Download(context.TODO(), fo, "[invalid-url]:12345")
	assert.Error(t, err)

	_, err = client.Download(context.TODO(), fo, "s3://foo/bar/IMG_4107.png")
	require.NoError(t, err)

	fo.Seek(0, 0)
	data, err := ioutil.ReadAll(fo)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

// bucketServer is a minimal S3 endpoint keeping objects in memory.
type bucketServer struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (s *bucketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		blob, err := ioutil.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s.objects[r.URL.Path] = blob
		s.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"1"`)
	case http.MethodGet:
		blob, ok := s.objects[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.ServeContent(w, r, r.URL.Path, time.Time{}, bytes.NewReader(blob))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestObjectStorageImpl_Upload(t *testing.T) {
	bs := &bucketServer{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(bs)
	defer srv.Close()

	sess, err := session.NewSession(&aws.Config{
		Endpoint:         aws.String(srv.URL),
		Region:           aws.String("eu-west-2"),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(true),
		Credentials:      credentials.NewStaticCredentials("id", "secret", ""),
	})
	require.NoError(t, err)
	client := New(sess)

	const doc = `{"titles": []}`
	location, err := client.Upload(context.Background(), strings.NewReader(doc), "s3://archive/bags/zucchabar/metadata.json", "application/json")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(location, "/archive/bags/zucchabar/metadata.json"), location)
	assert.Equal(t, doc, string(bs.objects["/archive/bags/zucchabar/metadata.json"]))
	assert.Equal(t, "application/json", bs.types["/archive/bags/zucchabar/metadata.json"])

	fo := tempFile(t)
	defer fo.Close()
	n, err := client.Download(context.Background(), fo, "s3://archive/bags/zucchabar/metadata.json")
	require.NoError(t, err)
	assert.Equal(t, int64(len(doc)), n)

	_, err = client.Upload(context.Background(), strings.NewReader(doc), "https://archive/metadata.json", "")
	assert.Error(t, err)
}

func Test_getBucketAndKey(t *testing.T) {
	testCases := []struct {
		url     string
		bucket  string
		key     string
		wantErr bool
	}{
		{"s3://rdss-bucker-2344/filename.jpg", "rdss-bucker-2344", "filename.jpg", false},
		{"s3://a-different-bucket/wqefqwef/cert.pem", "a-different-bucket", "wqefqwef/cert.pem", false},
		{"[invalid-url]:12345", "", "", true},
		{"https://rdss-bucker-2344/filename.jpg", "", "", true},
		{"s3://rdss-bucker-2344/", "", "", true},
		{"s3:///filename.jpg", "", "", true},
	}
	for _, tc := range testCases {
		bucket, key, err := getBucketAndKey(tc.url)
		if tc.wantErr {
			assert.Error(t, err, tc.url)
			assert.Empty(t, bucket)
			assert.Empty(t, key)
			continue
		}
		assert.NoError(t, err, tc.url)
		assert.Equal(t, tc.bucket, bucket)
		assert.Equal(t, tc.key, key)
	}
}

func TestIsObjectURI(t *testing.T) {
	assert.True(t, IsObjectURI("s3://bucket/key"))
	assert.False(t, IsObjectURI("/tmp/s3://bucket"))
	assert.False(t, IsObjectURI("https://example.com/image.png"))
}
