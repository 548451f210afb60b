package xmp

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

// ErrNoPacket is returned by Extract when the file carries no XMP packet.
var ErrNoPacket = errors.New("no XMP packet found")

var (
	packetStart = []byte("<x:xmpmeta")
	packetEnd   = []byte("</x:xmpmeta>")
)

// Extract returns the first <x:xmpmeta> element found in the contents of r.
// JPEG, PNG (iTXt) and TIFF files store the packet uncompressed so a byte
// scan is enough to locate it.
func Extract(r io.Reader) ([]byte, error) {
	blob, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read file")
	}
	start := bytes.Index(blob, packetStart)
	if start < 0 {
		return nil, ErrNoPacket
	}
	end := bytes.Index(blob[start:], packetEnd)
	if end < 0 {
		return nil, errors.Wrap(ErrNoPacket, "packet is truncated")
	}
	end += start + len(packetEnd)
	packet := make([]byte, end-start)
	copy(packet, blob[start:end])
	return packet, nil
}
