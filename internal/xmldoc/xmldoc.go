// Package xmldoc holds the small set of tree helpers the configuration store
// uses on top of etree: child lookup, find-or-create, attribute conversion,
// and whole-document parse/render.
package xmldoc

import (
	"bytes"
	"errors"
	"strings"

	"github.com/beevik/etree"
)

// Boolean attribute literals.
const (
	True  = "true"
	False = "false"
)

// FindChild returns the first direct child of parent with the given tag,
// or nil when parent is nil or has no such child.
func FindChild(parent *etree.Element, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	return parent.SelectElement(tag)
}

// FindOrCreateChild returns the first direct child of parent with the given
// tag, appending a new empty element when there is none.
func FindOrCreateChild(parent *etree.Element, tag string) *etree.Element {
	if child := FindChild(parent, tag); child != nil {
		return child
	}
	return parent.CreateElement(tag)
}

// Attr returns the value of the attribute key on e, or "" when e is nil or
// the attribute is absent.
func Attr(e *etree.Element, key string) string {
	if e == nil {
		return ""
	}
	return e.SelectAttrValue(key, "")
}

// BoolAttr reports whether the attribute key on e is literally "true" or "1".
func BoolAttr(e *etree.Element, key string) bool {
	switch Attr(e, key) {
	case True, "1":
		return true
	default:
		return false
	}
}

// SetBoolAttr writes "true" or "false" to the attribute key on e.
func SetBoolAttr(e *etree.Element, key string, value bool) {
	if value {
		e.CreateAttr(key, True)
		return
	}
	e.CreateAttr(key, False)
}

// Descendants returns every element below doc named tag, in document order.
func Descendants(doc *etree.Document, tag string) []*etree.Element {
	return doc.FindElements("//" + tag)
}

// RemoveAll detaches every element below doc named tag and returns how many
// were removed.
func RemoveAll(doc *etree.Document, tag string) int {
	return RemoveMatching(doc, tag, func(*etree.Element) bool { return true })
}

// RemoveMatching detaches every element below doc named tag for which match
// returns true.
func RemoveMatching(doc *etree.Document, tag string, match func(*etree.Element) bool) int {
	removed := 0
	for _, e := range Descendants(doc, tag) {
		if !match(e) {
			continue
		}
		if parent := e.Parent(); parent != nil {
			parent.RemoveChild(e)
			removed++
		}
	}
	return removed
}

// Document shape errors that etree itself lets through.
var (
	ErrNoRoot        = errors.New("no root element")
	ErrMultipleRoots = errors.New("more than one root element")
	ErrStrayText     = errors.New("text outside the root element")
)

// Parse reads text into a new document. A blank text yields an empty
// document with no root element. Any other text must hold exactly one root
// element and no character data outside it.
func Parse(text string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return doc, nil
	}
	if err := checkTopLevel(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func checkTopLevel(doc *etree.Document) error {
	roots := 0
	for _, token := range doc.Child {
		switch t := token.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return ErrStrayText
			}
		}
	}
	switch {
	case roots == 0:
		return ErrNoRoot
	case roots > 1:
		return ErrMultipleRoots
	}
	return nil
}

// Render writes doc back to text without reformatting it.
func Render(doc *etree.Document) string {
	var buf bytes.Buffer
	_, _ = doc.WriteTo(&buf)
	return buf.String()
}
