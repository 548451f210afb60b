// Package xmp reads the XMP packets embedded in image files.
//
// A packet is decoded into the RDF tree it carries and its properties are
// listed the way XMP iterators list them: one entry per node, with a path
// built from canonical namespace prefixes.
//
//	dc:format              image/png
//	dc:title
//	dc:title[1]            Moontown Cotton
//	dc:title[1]/?xml:lang  x-default
package xmp

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Property is a node of the packet: its path and its value. Containers are
// listed with an empty value before their items.
type Property struct {
	Path  string
	Value string
}

// Packet is a decoded XMP packet.
type Packet struct {
	descriptions []*node

	// Prefixes declared by the packet, used for namespaces without a
	// canonical prefix.
	declared map[string]string
}

type node struct {
	name     xml.Name
	attrs    []xml.Attr
	children []*node
	text     []byte
}

func (n *node) is(space, local string) bool {
	return n.name.Space == space && n.name.Local == local
}

func (n *node) attr(space, local string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Parse decodes an XMP packet, with or without its x:xmpmeta envelope.
func Parse(packet []byte) (*Packet, error) {
	var (
		dec   = xml.NewDecoder(bytes.NewReader(packet))
		p     = &Packet{declared: map[string]string{}}
		root  *node
		stack []*node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "cannot decode XMP packet")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name, attrs: t.Attr}
			for _, a := range t.Attr {
				if a.Name.Space != "xmlns" {
					continue
				}
				if _, ok := p.declared[a.Value]; !ok {
					p.declared[a.Value] = a.Name.Local
				}
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.text = append(top.text, t...)
			}
		}
	}
	if root == nil {
		return nil, errors.New("XMP packet is empty")
	}
	rdf := findRDF(root)
	if rdf == nil {
		return nil, errors.New("XMP packet has no rdf:RDF element")
	}
	for _, c := range rdf.children {
		if c.is(namespaceRDF, "Description") {
			p.descriptions = append(p.descriptions, c)
		}
	}
	return p, nil
}

func findRDF(n *node) *node {
	if n.is(namespaceRDF, "RDF") {
		return n
	}
	for _, c := range n.children {
		if found := findRDF(c); found != nil {
			return found
		}
	}
	return nil
}

// Properties lists the properties of the namespace in document order.
// Properties written as attributes of rdf:Description come before the ones
// written as elements.
func (p *Packet) Properties(namespace string) []Property {
	var props []Property
	for _, d := range p.descriptions {
		for _, a := range d.attrs {
			if a.Name.Space == namespace {
				props = append(props, Property{Path: p.qualify(a.Name), Value: a.Value})
			}
		}
		for _, c := range d.children {
			if c.name.Space == namespace {
				props = p.appendNode(props, p.qualify(c.name), c)
			}
		}
	}
	return props
}

// Namespaces returns the namespaces that have at least one property in the
// packet, in order of appearance.
func (p *Packet) Namespaces() []string {
	var (
		ret  []string
		seen = map[string]bool{}
	)
	add := func(space string) {
		if space == "" || space == "xmlns" || space == namespaceRDF || space == namespaceXML || seen[space] {
			return
		}
		seen[space] = true
		ret = append(ret, space)
	}
	for _, d := range p.descriptions {
		for _, a := range d.attrs {
			add(a.Name.Space)
		}
		for _, c := range d.children {
			add(c.name.Space)
		}
	}
	return ret
}

func (p *Packet) appendNode(props []Property, path string, n *node) []Property {
	if resource, ok := n.attr(namespaceRDF, "resource"); ok {
		props = append(props, Property{Path: path, Value: resource})
		return p.appendQualifiers(props, path, n)
	}

	if array := arrayOf(n); array != nil {
		props = append(props, Property{Path: path})
		i := 0
		for _, li := range array.children {
			if !li.is(namespaceRDF, "li") {
				continue
			}
			i++
			props = p.appendNode(props, fmt.Sprintf("%s[%d]", path, i), li)
		}
		return props
	}

	if fields, attrs, ok := structOf(n); ok {
		props = append(props, Property{Path: path})
		for _, a := range attrs {
			props = append(props, Property{Path: path + "/" + p.qualify(a.Name), Value: a.Value})
		}
		for _, f := range fields {
			props = p.appendNode(props, path+"/"+p.qualify(f.name), f)
		}
		return props
	}

	props = append(props, Property{Path: path, Value: string(n.text)})
	return p.appendQualifiers(props, path, n)
}

func (p *Packet) appendQualifiers(props []Property, path string, n *node) []Property {
	if lang, ok := n.attr(namespaceXML, "lang"); ok {
		props = append(props, Property{Path: path + "/?xml:lang", Value: lang})
	}
	return props
}

func arrayOf(n *node) *node {
	for _, c := range n.children {
		if c.name.Space != namespaceRDF {
			continue
		}
		switch c.name.Local {
		case "Seq", "Bag", "Alt":
			return c
		}
	}
	return nil
}

// structOf returns the fields of a struct value, given either with
// rdf:parseType="Resource" or as a nested rdf:Description.
func structOf(n *node) ([]*node, []xml.Attr, bool) {
	if parseType, ok := n.attr(namespaceRDF, "parseType"); ok && parseType == "Resource" {
		return n.children, nil, true
	}
	for _, c := range n.children {
		if !c.is(namespaceRDF, "Description") {
			continue
		}
		var attrs []xml.Attr
		for _, a := range c.attrs {
			switch a.Name.Space {
			case "", "xmlns", namespaceRDF, namespaceXML:
				continue
			}
			attrs = append(attrs, a)
		}
		return c.children, attrs, true
	}
	return nil, nil, false
}

func (p *Packet) qualify(name xml.Name) string {
	prefix, ok := canonicalPrefixes[name.Space]
	if !ok {
		prefix, ok = p.declared[name.Space]
	}
	if !ok {
		prefix = name.Space
	}
	return prefix + ":" + name.Local
}
