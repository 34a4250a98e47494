// Package xmlcodec implements the generic XML DOM read/write used by
// every on-disk schema in spec §6: launcher config, per-game config,
// profiles, and module/degame/depatch manifests.
//
// Grounded on the only XML consumer anywhere in the retrieval pack (the
// Zaparoo-core LaunchBox importer), which also decodes through
// encoding/xml struct tags rather than a third-party XML library — no
// such library appears anywhere in the corpus (see DESIGN.md).
package xmlcodec

import (
	"encoding/xml"
	"io"

	"github.com/dragontooth/launcher/internal/launcherr"
)

// Node is a generic DOM element, used by the visitor-style callers of
// spec §9 ("a visitor pattern over a variant type for XML nodes") that
// need to walk an unknown-shaped document (e.g. to warn on unrecognized
// tags without failing the load).
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// Visitor is implemented by callers that want to walk a Node tree
// without hard-coding its shape (spec §9 visitor pattern over a variant
// type: group/image/shape/text stand in here for arbitrary element
// kinds).
type Visitor interface {
	VisitElement(n Node) (recurse bool)
}

// Walk performs a pre-order traversal of n, calling v for every element
// including n itself.
func Walk(n Node, v Visitor) {
	if !v.VisitElement(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, v)
	}
}

// ReadDOM decodes r into a generic Node tree, for callers that need to
// inspect a document's shape (e.g. to emit "unknown tag" warnings)
// before or instead of decoding into a typed schema.
func ReadDOM(r io.Reader) (Node, error) {
	var n Node
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&n); err != nil {
		return Node{}, launcherr.Wrap(launcherr.InvalidFormat, "xmlcodec", err, "decode XML document")
	}
	return n, nil
}

// Child returns the first direct child element named name, if any.
func (n Node) Child(name string) (Node, bool) {
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			return c, true
		}
	}
	return Node{}, false
}

// ChildrenNamed returns all direct children named name, in document order.
func (n Node) ChildrenNamed(name string) []Node {
	var out []Node
	for _, c := range n.Children {
		if c.XMLName.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of the attribute named name, if present.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// UnknownChildren returns the names of direct children not in known,
// each once, in document order. Schema decoders use it to report tags
// present in the document but not recognized by the typed schema
// (spec §4.3: "Unknown
// tags produce a warning via the logger but do not fail the load").
func (n Node) UnknownChildren(known map[string]bool) []string {
	var unknown []string
	seen := make(map[string]bool)
	for _, c := range n.Children {
		name := c.XMLName.Local
		if !known[name] && !seen[name] {
			seen[name] = true
			unknown = append(unknown, name)
		}
	}
	return unknown
}
