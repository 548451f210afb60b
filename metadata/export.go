package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ToDict projects the aggregate into maps and lists of strings ready to be
// encoded as JSON. Enumerations are rendered as their codes.
func (m *DescriptiveMetadata) ToDict() (map[string]interface{}, error) {
	agents := make([]interface{}, 0, len(m.agents))
	for _, item := range m.agents {
		d, err := item.toDict()
		if err != nil {
			return nil, err
		}
		agents = append(agents, d)
	}
	titles := make([]interface{}, 0, len(m.titles))
	for _, item := range m.titles {
		d, err := item.toDict()
		if err != nil {
			return nil, err
		}
		titles = append(titles, d)
	}
	descriptions := make([]interface{}, 0, len(m.descriptions))
	for _, item := range m.descriptions {
		descriptions = append(descriptions, item.toDict())
	}
	keywords := make([]interface{}, 0, len(m.keywords))
	for _, item := range m.keywords {
		keywords = append(keywords, item.toDict())
	}
	return map[string]interface{}{
		"agents":       agents,
		"descriptions": descriptions,
		"keywords":     keywords,
		"titles":       titles,
	}, nil
}

func (a *Agent) toDict() (map[string]interface{}, error) {
	role, ok := _RoleTermEnumValueToName[a.role]
	if !ok {
		return nil, SchemaDriftError{Entity: "Agent", Field: "role", Message: fmt.Sprintf("no code for %s", a.role)}
	}
	names := make([]interface{}, 0, len(a.names))
	for _, n := range a.names {
		d, err := n.toDict()
		if err != nil {
			return nil, err
		}
		names = append(names, d)
	}
	uris := make([]interface{}, 0, len(a.uris))
	for _, uri := range a.uris {
		uris = append(uris, uri)
	}
	return map[string]interface{}{
		"names": names,
		"role":  role,
		"uris":  uris,
	}, nil
}

func (n *Name) toDict() (map[string]interface{}, error) {
	nameType, ok := _NameTypeEnumValueToName[n.nameType]
	if !ok {
		return nil, SchemaDriftError{Entity: "Name", Field: "name_type", Message: fmt.Sprintf("no code for %s", n.nameType)}
	}
	return map[string]interface{}{
		"display_name": n.displayName,
		"full_name":    n.fullName,
		"lang":         n.lang,
		"name_type":    nameType,
		"sort_key":     n.sortKey,
	}, nil
}

func (t *Title) toDict() (map[string]interface{}, error) {
	titleType, ok := _TitleTypeEnumValueToName[t.titleType]
	if !ok {
		return nil, SchemaDriftError{Entity: "Title", Field: "title_type", Message: fmt.Sprintf("no code for %s", t.titleType)}
	}
	return map[string]interface{}{
		"lang":       t.lang,
		"sort_key":   t.sortKey,
		"title_type": titleType,
		"value":      t.value,
	}, nil
}

func (d *Description) toDict() map[string]interface{} {
	return map[string]interface{}{
		"lang":     d.lang,
		"sort_key": d.sortKey,
		"value":    d.value,
	}
}

func (k *Keyword) toDict() map[string]interface{} {
	return map[string]interface{}{
		"lang":     k.lang,
		"sort_key": k.sortKey,
		"uri":      k.uri,
		"value":    k.value,
	}
}

// MarshalJSON implements json.Marshaler.
func (m *DescriptiveMetadata) MarshalJSON() ([]byte, error) {
	doc, err := m.ToDict()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// MarshalIndent returns the persisted form of the aggregate: keys sorted,
// four spaces of indentation and non-ASCII text left as is. The projection
// must satisfy the schema of the persisted form.
func (m *DescriptiveMetadata) MarshalIndent() ([]byte, error) {
	doc, err := m.ToDict()
	if err != nil {
		return nil, err
	}
	issues, err := CheckDocument(doc)
	if err != nil {
		return nil, errors.Wrap(err, "schema validation failed")
	}
	if len(issues) > 0 {
		return nil, SchemaDriftError{Entity: "DescriptiveMetadata", Message: strings.Join(issues, "; ")}
	}
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON persists the aggregate in path. Nothing is written when the
// aggregate cannot be projected.
func (m *DescriptiveMetadata) WriteJSON(fs afero.Fs, path string) (err error) {
	blob, err := m.MarshalIndent()
	if err != nil {
		return err
	}
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "cannot create metadata file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "cannot close metadata file")
		}
	}()
	if _, err = f.Write(blob); err != nil {
		return errors.Wrap(err, "cannot write metadata file")
	}
	return nil
}

// Decode reads a document in the persisted form. Sort keys are taken
// verbatim so the aggregate projects back into the same document.
func Decode(r io.Reader) (*DescriptiveMetadata, error) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "cannot decode metadata document")
	}
	issues, err := CheckDocument(doc)
	if err != nil {
		return nil, errors.Wrap(err, "schema validation failed")
	}
	if len(issues) > 0 {
		return nil, ValidationError{Field: "document", Message: strings.Join(issues, "; ")}
	}
	return DescriptiveMetadataFromSpec(Spec(doc))
}

// ReadJSON loads the aggregate persisted in path.
func ReadJSON(fs afero.Fs, path string) (*DescriptiveMetadata, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open metadata file")
	}
	defer f.Close()
	return Decode(f)
}
