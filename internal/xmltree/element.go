package xmltree

// QName identifies an element or attribute by namespace URI and local name.
type QName struct {
	Space string
	Local string
}

// Attr is a single attribute with a resolved namespace.
// Attributes without a prefix have an empty Space.
type Attr struct {
	Name  QName
	Value string
}

// Element is a retained subtree of parsed XML, or a subtree under
// construction for serialization.
//
// Text holds the character data appearing before the first child element;
// trailing text and text between children is discarded, matching the
// text-content model the phyloXML vocabulary relies on.
type Element struct {
	Name     QName
	Attr     []Attr
	Text     string
	Children []*Element
}

// Get returns the value of the unqualified attribute with the given local
// name, or the empty string when absent.
func (e *Element) Get(local string) string {
	v, _ := e.Lookup(local)
	return v
}

// Lookup reports the value of the unqualified attribute with the given local
// name and whether it is present.
func (e *Element) Lookup(local string) (string, bool) {
	for _, a := range e.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr appends an attribute. Emission order follows call order.
func (e *Element) SetAttr(name QName, value string) {
	e.Attr = append(e.Attr, Attr{Name: name, Value: value})
}

// Append adds a child element.
func (e *Element) Append(child *Element) {
	e.Children = append(e.Children, child)
}

// Find returns the first child with the given name, or nil.
func (e *Element) Find(name QName) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindAll returns every child with the given name, in document order.
func (e *Element) FindAll(name QName) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Clear drops the element's retained subtree and text. The element itself
// stays attached to its parent as an empty husk; callers use Clear to release
// consumed event history as soon as a construct is finalized.
func (e *Element) Clear() {
	e.Children = nil
	e.Text = ""
}
