package config

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"

	apperrors "github.com/dmerejkowsky/qibuild/internal/errors"
	"github.com/dmerejkowsky/qibuild/internal/xmldoc"
)

// ideRow is an IDE plus the name it was loaded under, empty for rows
// appended after NewIDEList.
type ideRow struct {
	IDE
	from string
}

// IDEList is an ordered, editable list of IDEs: the row model an editor
// shows in its IDE table. Edits stay in the list until ApplyTo writes the
// whole list back into a Store.
type IDEList struct {
	rows []ideRow
}

// NewIDEList returns a list holding ides sorted by name.
func NewIDEList(ides map[string]IDE) *IDEList {
	l := &IDEList{rows: make([]ideRow, 0, len(ides))}
	for name, ide := range ides {
		l.rows = append(l.rows, ideRow{IDE: ide, from: name})
	}
	sort.Slice(l.rows, func(i, j int) bool {
		return l.rows[i].Name < l.rows[j].Name
	})
	return l
}

// Len returns the number of rows.
func (l *IDEList) Len() int {
	return len(l.rows)
}

// Rows returns a copy of the rows.
func (l *IDEList) Rows() []IDE {
	rows := make([]IDE, len(l.rows))
	for i, r := range l.rows {
		rows[i] = r.IDE
	}
	return rows
}

// Row returns the IDE at row.
func (l *IDEList) Row(row int) (IDE, error) {
	if err := l.checkRow(row); err != nil {
		return IDE{}, err
	}
	return l.rows[row].IDE, nil
}

// IndexOf returns the first row named name, or -1.
func (l *IDEList) IndexOf(name string) int {
	for i, r := range l.rows {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// Append adds ide as the last row.
func (l *IDEList) Append(ide IDE) {
	l.rows = append(l.rows, ideRow{IDE: ide})
}

// Remove deletes row.
func (l *IDEList) Remove(row int) error {
	if err := l.checkRow(row); err != nil {
		return err
	}
	l.rows = append(l.rows[:row], l.rows[row+1:]...)
	return nil
}

// SetName renames the IDE at row.
func (l *IDEList) SetName(row int, name string) error {
	if err := l.checkRow(row); err != nil {
		return err
	}
	l.rows[row].Name = name
	return nil
}

// SetPath changes the path of the IDE at row.
func (l *IDEList) SetPath(row int, path string) error {
	if err := l.checkRow(row); err != nil {
		return err
	}
	l.rows[row].Path = path
	return nil
}

// ApplyTo makes the IDEs of s match the rows of l. Rows loaded from s keep
// their element, so renames and path edits happen in place and attributes
// the store does not know about survive. IDEs without a row are removed and
// appended rows get new elements. Rows are validated first; on error s is
// left untouched. When two rows share a name the later one wins.
func (l *IDEList) ApplyTo(s *Store) error {
	for i, r := range l.rows {
		if r.Name == "" {
			return apperrors.Validation(fmt.Sprintf("row %d: ide name cannot be empty", i))
		}
	}
	s.replaceIDEs(l.rows)
	return nil
}

func (l *IDEList) checkRow(row int) error {
	if row < 0 || row >= len(l.rows) {
		return apperrors.Validation(fmt.Sprintf("row %d out of range [0,%d)", row, len(l.rows)))
	}
	return nil
}

// replaceIDEs collects every element of a row before touching any name, so
// that swapping two names does not mix their elements up.
func (s *Store) replaceIDEs(rows []ideRow) {
	owned := make([][]*etree.Element, len(rows))
	kept := make(map[string]bool, len(rows))
	for i, r := range rows {
		if _, ok := s.ides[r.from]; !ok || r.from == "" || kept[r.from] {
			continue
		}
		kept[r.from] = true
		owned[i] = s.ideElements(r.from)
	}
	for name := range s.ides {
		if !kept[name] {
			xmldoc.RemoveMatching(s.doc, tagIDE, hasName(name))
		}
	}

	claimed := make(map[string][]*etree.Element, len(rows))
	s.ides = make(map[string]ideEntry, len(rows))
	for i, r := range rows {
		for _, e := range claimed[r.Name] {
			if parent := e.Parent(); parent != nil {
				parent.RemoveChild(e)
			}
		}

		elems := owned[i]
		if len(elems) == 0 {
			elems = []*etree.Element{s.rootOrCreate().CreateElement(tagIDE)}
		}
		for _, e := range elems {
			setAttrIfChanged(e, attrName, r.Name)
		}
		// The index points at the last element of a name.
		elem := elems[len(elems)-1]
		setAttrIfChanged(elem, attrPath, r.Path)

		claimed[r.Name] = elems
		s.ides[r.Name] = ideEntry{ide: r.IDE, elem: elem}
	}
}

// setAttrIfChanged leaves untouched elements byte-identical.
func setAttrIfChanged(e *etree.Element, key, value string) {
	if attr := e.SelectAttr(key); attr != nil && attr.Value == value {
		return
	}
	e.CreateAttr(key, value)
}

func (s *Store) ideElements(name string) []*etree.Element {
	var elems []*etree.Element
	for _, e := range xmldoc.Descendants(s.doc, tagIDE) {
		if xmldoc.Attr(e, attrName) == name {
			elems = append(elems, e)
		}
	}
	return elems
}
