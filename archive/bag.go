package archive

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/JiscSD/rdss-image-archive/version"
)

const (
	bagitVersion     = "0.97"
	bagitFile        = "bagit.txt"
	bagInfoFile      = "bag-info.txt"
	manifestFile     = "manifest-sha256.txt"
	tagManifestFile  = "tagmanifest-sha256.txt"
	payloadDirectory = "data"
)

// Tags written by Create and Save.
const (
	TagSoftwareAgent      = "Bag-Software-Agent"
	TagBaggingDate        = "Bagging-Date"
	TagExternalIdentifier = "External-Identifier"
	TagPayloadOxum        = "Payload-Oxum"
)

var (
	ErrExists = errors.New("path already exists")
	ErrNotBag = errors.New("not a bag")
)

// now is replaced in tests.
var now = time.Now

// Tag is a line of bag-info.txt.
type Tag struct {
	Name  string
	Value string
}

// Bag is a directory holding an original file, its derivatives and their
// metadata under data/, described by tag files.
type Bag struct {
	fs   afero.Fs
	path string
	info []Tag
}

// Create makes a new, empty bag in path, which must not exist.
func Create(fs afero.Fs, path string) (*Bag, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot inspect path")
	}
	if exists {
		return nil, errors.Wrap(ErrExists, path)
	}
	if err := fs.MkdirAll(filepath.Join(path, payloadDirectory), os.FileMode(0755)); err != nil {
		return nil, errors.Wrap(err, "cannot create bag directory")
	}
	b := &Bag{fs: fs, path: path}
	b.SetTag(TagSoftwareAgent, "rdss-image-archive "+version.VERSION)
	b.SetTag(TagExternalIdentifier, uuid.New().String())
	if err := afero.WriteFile(fs, b.tagPath(bagitFile), []byte(fmt.Sprintf(
		"BagIt-Version: %s\nTag-File-Character-Encoding: UTF-8\n", bagitVersion)), os.FileMode(0644)); err != nil {
		return nil, errors.Wrap(err, "cannot write bag declaration")
	}
	if err := b.Save(true); err != nil {
		return nil, err
	}
	return b, nil
}

// Open loads the bag found in path.
func Open(fs afero.Fs, path string) (*Bag, error) {
	declaration, err := afero.ReadFile(fs, filepath.Join(path, bagitFile))
	if err != nil {
		return nil, errors.Wrapf(ErrNotBag, "%s: %v", path, err)
	}
	tags, err := parseTags(declaration)
	if err != nil || tagValue(tags, "BagIt-Version") == "" {
		return nil, errors.Wrapf(ErrNotBag, "%s: bag declaration is malformed", path)
	}
	b := &Bag{fs: fs, path: path}
	blob, err := afero.ReadFile(fs, b.tagPath(bagInfoFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "cannot read bag info")
	}
	if b.info, err = parseTags(blob); err != nil {
		return nil, errors.Wrapf(ErrNotBag, "%s: %v", path, err)
	}
	return b, nil
}

func (b *Bag) Path() string { return b.path }

// DataPath returns the location of a payload file.
func (b *Bag) DataPath(name string) string {
	return filepath.Join(b.path, payloadDirectory, name)
}

func (b *Bag) tagPath(name string) string {
	return filepath.Join(b.path, name)
}

// Info returns the tags of bag-info.txt in order.
func (b *Bag) Info() []Tag {
	return append([]Tag(nil), b.info...)
}

// Tag returns the value of the first tag with the given name.
func (b *Bag) Tag(name string) (string, bool) {
	for _, t := range b.info {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

func tagValue(tags []Tag, name string) string {
	for _, t := range tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// ID returns the external identifier given to the bag when it was created.
func (b *Bag) ID() string {
	return tagValue(b.info, TagExternalIdentifier)
}

// SetTag adds the tag or updates its value. It reports whether the bag
// info changed.
func (b *Bag) SetTag(name, value string) bool {
	for i, t := range b.info {
		if t.Name != name {
			continue
		}
		if t.Value == value {
			return false
		}
		b.info[i].Value = value
		return true
	}
	b.info = append(b.info, Tag{Name: name, Value: value})
	return true
}

// Term is a property of a component of the bag, e.g. the filename of the
// original.
type Term struct {
	Name  string
	Value string
}

// SetComponent records the terms of a component as tags named after both,
// e.g. Original-Accession-Path for the term accession_path of the component
// original.
func (b *Bag) SetComponent(component string, terms ...Term) {
	for _, t := range terms {
		b.SetTag(ComponentTag(component, t.Name), t.Value)
	}
}

// ComponentTag returns the tag name of a component term.
func ComponentTag(component, term string) string {
	title := cases.Title(language.Und)
	words := strings.Fields(strings.Replace(term, "_", " ", -1))
	for i, w := range words {
		words[i] = title.String(w)
	}
	return title.String(component) + "-" + strings.Join(words, "-")
}

// Save writes bag-info.txt and the tag manifest. Payload manifests are
// rewritten when manifests is set. Checksums are computed, never verified.
func (b *Bag) Save(manifests bool) error {
	if manifests {
		oxum, err := b.writeManifest()
		if err != nil {
			return err
		}
		b.SetTag(TagPayloadOxum, oxum)
	}
	b.SetTag(TagBaggingDate, now().Format("2006-01-02"))
	buf := new(bytes.Buffer)
	for _, t := range b.info {
		fmt.Fprintf(buf, "%s: %s\n", t.Name, t.Value)
	}
	if err := afero.WriteFile(b.fs, b.tagPath(bagInfoFile), buf.Bytes(), os.FileMode(0644)); err != nil {
		return errors.Wrap(err, "cannot write bag info")
	}
	return b.writeTagManifest()
}

// writeManifest checksums the payload and returns its Payload-Oxum.
func (b *Bag) writeManifest() (string, error) {
	var (
		lines []string
		total int64
	)
	root := filepath.Join(b.path, payloadDirectory)
	err := afero.Walk(b.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		sum, err := b.checksum(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(b.path, p)
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%s  %s", sum, filepath.ToSlash(rel)))
		total += info.Size()
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "cannot checksum payload")
	}
	if err := b.writeLines(manifestFile, lines); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", total, len(lines)), nil
}

func (b *Bag) writeTagManifest() error {
	var lines []string
	for _, name := range []string{bagitFile, bagInfoFile, manifestFile} {
		p := b.tagPath(name)
		if ok, _ := afero.Exists(b.fs, p); !ok {
			continue
		}
		sum, err := b.checksum(p)
		if err != nil {
			return errors.Wrap(err, "cannot checksum tag files")
		}
		lines = append(lines, fmt.Sprintf("%s  %s", sum, name))
	}
	return b.writeLines(tagManifestFile, lines)
}

func (b *Bag) writeLines(name string, lines []string) error {
	// Lines are "<64 hex digits>  <path>".
	sort.Slice(lines, func(i, j int) bool { return lines[i][66:] < lines[j][66:] })
	buf := new(bytes.Buffer)
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	if err := afero.WriteFile(b.fs, b.tagPath(name), buf.Bytes(), os.FileMode(0644)); err != nil {
		return errors.Wrapf(err, "cannot write %s", name)
	}
	return nil
}

func (b *Bag) checksum(p string) (string, error) {
	f, err := b.fs.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// parseTags reads "Name: Value" lines. Lines starting with whitespace
// continue the value of the previous tag.
func parseTags(blob []byte) ([]Tag, error) {
	var tags []Tag
	scanner := bufio.NewScanner(bytes.NewReader(blob))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if len(tags) == 0 {
				return nil, errors.New("continuation line without tag")
			}
			tags[len(tags)-1].Value += " " + strings.TrimSpace(line)
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("malformed tag line %q", line)
		}
		tags = append(tags, Tag{Name: strings.TrimSpace(parts[0]), Value: strings.TrimSpace(parts[1])})
	}
	return tags, scanner.Err()
}
