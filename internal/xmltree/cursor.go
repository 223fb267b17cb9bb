package xmltree

import (
	"encoding/xml"
	"io"
)

// EventKind identifies the kind of structural event.
type EventKind int

const (
	StartElement EventKind = iota
	EndElement
)

// Event is a single structural event. On StartElement, Elem carries the
// element's name and attributes; on EndElement it additionally carries the
// accumulated text and the completed child subtree.
type Event struct {
	Kind EventKind
	Elem *Element
}

// Cursor streams start/end events over an XML document in a single forward
// pass. Completed elements are attached to their still-open parent so that
// enclosing constructs can convert bounded subtrees after the matching end
// event; callers bound memory by clearing elements they have consumed.
//
// A Cursor is created once per input stream and never reused.
type Cursor struct {
	dec   *xml.Decoder
	stack []*Element
}

// NewCursor creates a cursor over r.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{dec: xml.NewDecoder(r)}
}

// Next returns the next structural event. It returns io.EOF when the input
// is exhausted; malformed XML surfaces unchanged as the tokenizer's
// *xml.SyntaxError.
func (c *Cursor) Next() (Event, error) {
	for {
		tok, err := c.dec.Token()
		if err != nil {
			return Event{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			elem := &Element{Name: QName{Space: t.Name.Space, Local: t.Name.Local}}
			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}
				elem.Attr = append(elem.Attr, Attr{
					Name:  QName{Space: a.Name.Space, Local: a.Name.Local},
					Value: a.Value,
				})
			}
			c.stack = append(c.stack, elem)
			return Event{Kind: StartElement, Elem: elem}, nil
		case xml.CharData:
			// Text after the first child is tail text and is dropped.
			if top := c.top(); top != nil && len(top.Children) == 0 {
				top.Text += string(t)
			}
		case xml.EndElement:
			elem := c.pop()
			if elem == nil {
				continue
			}
			if parent := c.top(); parent != nil {
				parent.Children = append(parent.Children, elem)
			}
			return Event{Kind: EndElement, Elem: elem}, nil
		}
	}
}

// Depth reports the number of currently open elements.
func (c *Cursor) Depth() int {
	return len(c.stack)
}

func (c *Cursor) top() *Element {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *Cursor) pop() *Element {
	if len(c.stack) == 0 {
		return nil
	}
	elem := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return elem
}

func isNamespaceDecl(name xml.Name) bool {
	if name.Space == "xmlns" {
		return true
	}
	return name.Space == "" && name.Local == "xmlns"
}
