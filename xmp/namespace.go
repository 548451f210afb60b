package xmp

// Namespace URIs of the schemas commonly found in image files.
const (
	NamespaceDC        = "http://purl.org/dc/elements/1.1/"
	NamespaceXMP       = "http://ns.adobe.com/xap/1.0/"
	NamespaceXMPRights = "http://ns.adobe.com/xap/1.0/rights/"
	NamespaceXMPMM     = "http://ns.adobe.com/xap/1.0/mm/"
	NamespacePhotoshop = "http://ns.adobe.com/photoshop/1.0/"
	NamespaceTIFF      = "http://ns.adobe.com/tiff/1.0/"
	NamespaceEXIF      = "http://ns.adobe.com/exif/1.0/"
	NamespaceIPTCCore  = "http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/"

	namespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	namespaceXML = "http://www.w3.org/XML/1998/namespace"
)

// canonicalPrefixes maps the registered namespaces to the prefix used in
// property paths, whatever prefix the packet itself declares.
var canonicalPrefixes = map[string]string{
	NamespaceDC:        "dc",
	NamespaceXMP:       "xmp",
	NamespaceXMPRights: "xmpRights",
	NamespaceXMPMM:     "xmpMM",
	NamespacePhotoshop: "photoshop",
	NamespaceTIFF:      "tiff",
	NamespaceEXIF:      "exif",
	NamespaceIPTCCore:  "Iptc4xmpCore",
	namespaceRDF:       "rdf",
	namespaceXML:       "xml",
}
