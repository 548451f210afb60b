package testutil

import (
	"bytes"
	"io/ioutil"
	"path"
	"runtime"
	"testing"
)

// pngSignature and pngTrailer frame the fake images built by ImageFixture.
var (
	pngSignature = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	pngTrailer   = []byte("\x00\x00\x00\x00IEND\xaeB`\x82")
)

func fixturePath(relPath string) string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("error loading caller")
	}
	return path.Join(path.Dir(filename), "../../", "testdata", relPath)
}

// Fixture returns the contents of a file under the testdata directory at
// the root of the repository.
func Fixture(t *testing.T, relPath string) []byte {
	t.Helper()

	p := fixturePath(relPath)
	blob, err := ioutil.ReadFile(p)
	if err != nil {
		t.Fatalf("error loading fixture %s: %v", p, err)
	}

	return blob
}

// ImageFixture returns the bytes of an image file embedding the XMP packet
// stored in the given fixture. An empty relPath gives an image without XMP.
func ImageFixture(t *testing.T, relPath string) []byte {
	t.Helper()

	buf := bytes.NewBuffer(nil)
	buf.Write(pngSignature)
	if relPath != "" {
		buf.WriteString("\x00\x00\x00\x00iTXtXML:com.adobe.xmp\x00\x00\x00\x00\x00")
		buf.Write(Fixture(t, relPath))
	}
	buf.Write(pngTrailer)

	return buf.Bytes()
}
