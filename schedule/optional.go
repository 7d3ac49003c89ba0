package schedule

import (
	"encoding/xml"
	"strings"
)

// Text is an optional value read from a child element or an attribute.
// Valid reports whether the element/attribute was present at all.
type Text struct {
	Value string
	Valid bool
}

func (t *Text) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	t.Value = s
	t.Valid = true
	return nil
}

func (t *Text) UnmarshalXMLAttr(attr xml.Attr) error {
	t.Value = attr.Value
	t.Valid = true
	return nil
}

// Empty is true for a missing element as well as for one without text.
func (t Text) Empty() bool {
	return !t.Valid || t.Value == ""
}

// Or returns the text, or def when it is Empty.
func (t Text) Or(def string) string {
	if t.Empty() {
		return def
	}
	return t.Value
}

// Trimmed returns the text stripped of surrounding white space.
func (t Text) Trimmed() string {
	return strings.TrimSpace(t.Value)
}
