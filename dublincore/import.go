// Package dublincore builds descriptive metadata from the Dublin Core
// properties embedded in image files.
package dublincore

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/JiscSD/rdss-image-archive/metadata"
	"github.com/JiscSD/rdss-image-archive/xmp"
)

// maxIndex bounds the array indices accepted in property paths.
const maxIndex = 1 << 16

var pathRegex = regexp.MustCompile(`^dc:(?P<term>[a-z]+)(\[(?P<index>\d+)\])?(/\?(?P<attr>.+))?$`)

// Grouped holds the specs collected from a property stream, one list per
// Dublin Core term, indexed like the arrays of the packet. Padding entries
// are empty specs.
type Grouped struct {
	Creators     []metadata.Spec
	Descriptions []metadata.Spec
	Keywords     []metadata.Spec
	Titles       []metadata.Spec
}

// Contents returns the non-empty specs in order. Every creator becomes an
// agent with a single name.
func (g *Grouped) Contents() metadata.Contents {
	var c metadata.Contents
	for _, s := range nonEmpty(g.Creators) {
		c.Agents = append(c.Agents, metadata.FromSpec[metadata.Agent](metadata.Spec{
			"names": []metadata.Spec{s},
		}))
	}
	for _, s := range nonEmpty(g.Descriptions) {
		c.Descriptions = append(c.Descriptions, metadata.FromSpec[metadata.Description](s))
	}
	for _, s := range nonEmpty(g.Keywords) {
		c.Keywords = append(c.Keywords, metadata.FromSpec[metadata.Keyword](s))
	}
	for _, s := range nonEmpty(g.Titles) {
		c.Titles = append(c.Titles, metadata.FromSpec[metadata.Title](s))
	}
	return c
}

func nonEmpty(specs []metadata.Spec) []metadata.Spec {
	var ret []metadata.Spec
	for _, s := range specs {
		if len(s) > 0 {
			ret = append(ret, s)
		}
	}
	return ret
}

// Importer turns Dublin Core properties into a DescriptiveMetadata.
type Importer struct {
	logger logrus.FieldLogger
}

// NewImporter returns an Importer logging untreated terms to logger.
func NewImporter(logger logrus.FieldLogger) *Importer {
	return &Importer{logger: logger}
}

// Import builds a new aggregate from the properties, listed in the order and
// form of an XMP iterator over the Dublin Core namespace.
func (i *Importer) Import(props []xmp.Property) (*metadata.DescriptiveMetadata, error) {
	g, err := i.Group(props)
	if err != nil {
		return nil, err
	}
	return metadata.NewDescriptiveMetadata(g.Contents())
}

// Group collects the properties into specs without constructing entities.
func (i *Importer) Group(props []xmp.Property) (*Grouped, error) {
	g := &Grouped{}
	for _, p := range props {
		if p.Path == "" {
			continue
		}
		term, index, attr, err := parsePath(p.Path)
		if err != nil {
			return nil, err
		}

		var key, value string
		switch attr {
		case "":
			if p.Value == "" {
				// Containers are listed with an empty value.
				continue
			}
			key, value = "", p.Value
		case "xml:lang":
			key, value = "lang", p.Value
			if value == "x-default" {
				value = metadata.Undetermined
			}
		default:
			return nil, metadata.ParseError{Path: p.Path, Message: fmt.Sprintf("unexpected attribute %q", attr)}
		}

		var (
			group   *[]metadata.Spec
			primary string
		)
		switch term {
		case "creator":
			group, primary = &g.Creators, "full_name"
		case "description":
			group, primary = &g.Descriptions, "value"
		case "subject":
			group, primary = &g.Keywords, "value"
		case "title":
			group, primary = &g.Titles, "title_val"
		case "format":
			continue
		default:
			i.logger.WithFields(logrus.Fields{"term": term, "attr": attr, "value": p.Value}).Warn("Ignoring untreated Dublin Core term.")
			continue
		}
		if key == "" {
			key = primary
		}
		for len(*group) < index+1 {
			*group = append(*group, metadata.Spec{})
		}
		(*group)[index][key] = value
	}
	return g, nil
}

func parsePath(path string) (term string, index int, attr string, err error) {
	m := pathRegex.FindStringSubmatch(path)
	if m == nil {
		return "", 0, "", metadata.ParseError{Path: path, Message: "not a Dublin Core term"}
	}
	for i, name := range pathRegex.SubexpNames() {
		switch name {
		case "term":
			term = m[i]
		case "attr":
			attr = m[i]
		case "index":
			if m[i] == "" {
				continue
			}
			index, err = strconv.Atoi(m[i])
			if err != nil || index > maxIndex {
				return "", 0, "", metadata.ParseError{Path: path, Message: "index out of range"}
			}
		}
	}
	return term, index, attr, nil
}
