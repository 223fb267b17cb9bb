package xmltree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// EmitterConfig controls document emission.
type EmitterConfig struct {
	// Encoding names the declaration encoding; empty means UTF-8. For any
	// encoding other than UTF-8 the emitter escapes non-ASCII runes as
	// numeric character references, so the output bytes are valid under any
	// declared ASCII-superset encoding.
	Encoding string
	// Indent is the per-level indent string; empty produces compact output.
	Indent string
	// Prefixes maps namespace URIs to preferred prefixes. Namespaces without
	// a preferred prefix get generated ns0, ns1, ... prefixes in first-use
	// order.
	Prefixes map[string]string
}

// Emitter serializes an Element tree as a namespace-prefixed XML document.
type Emitter struct {
	w       *bufio.Writer
	cfg     EmitterConfig
	prefix  map[string]string
	used    map[string]bool
	decls   []string
	nextGen int
	ascii   bool
}

// NewEmitter creates an emitter writing to w.
func NewEmitter(w io.Writer, cfg EmitterConfig) *Emitter {
	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "UTF-8"
	}
	return &Emitter{
		w:      bufio.NewWriter(w),
		cfg:    cfg,
		prefix: make(map[string]string),
		used:   make(map[string]bool),
		ascii:  !isUTF8Name(encoding),
	}
}

// Emit writes the XML declaration and the document rooted at root.
// All namespaces used anywhere in the tree are declared on the root element.
func (e *Emitter) Emit(root *Element) error {
	e.collect(root)
	encoding := e.cfg.Encoding
	if encoding == "" {
		encoding = "UTF-8"
	}
	fmt.Fprintf(e.w, "<?xml version='1.0' encoding='%s'?>\n", encoding)
	e.writeElement(root, 0)
	if e.cfg.Indent != "" {
		e.w.WriteByte('\n')
	}
	return e.w.Flush()
}

func (e *Emitter) collect(el *Element) {
	e.assign(el.Name.Space)
	for _, a := range el.Attr {
		e.assign(a.Name.Space)
	}
	for _, c := range el.Children {
		e.collect(c)
	}
}

func (e *Emitter) assign(uri string) {
	if uri == "" {
		return
	}
	if _, ok := e.prefix[uri]; ok {
		return
	}
	p := e.cfg.Prefixes[uri]
	for p == "" || e.used[p] {
		p = "ns" + strconv.Itoa(e.nextGen)
		e.nextGen++
	}
	e.prefix[uri] = p
	e.used[p] = true
	e.decls = append(e.decls, uri)
}

func (e *Emitter) qualify(name QName) string {
	if name.Space == "" {
		return name.Local
	}
	return e.prefix[name.Space] + ":" + name.Local
}

func (e *Emitter) writeElement(el *Element, depth int) {
	name := e.qualify(el.Name)
	e.w.WriteByte('<')
	e.w.WriteString(name)
	if depth == 0 {
		for _, uri := range e.decls {
			e.w.WriteString(` xmlns:` + e.prefix[uri] + `="`)
			e.escape(uri, true)
			e.w.WriteByte('"')
		}
	}
	for _, a := range el.Attr {
		e.w.WriteByte(' ')
		e.w.WriteString(e.qualify(a.Name))
		e.w.WriteString(`="`)
		e.escape(a.Value, true)
		e.w.WriteByte('"')
	}
	if el.Text == "" && len(el.Children) == 0 {
		e.w.WriteString("/>")
		return
	}
	e.w.WriteByte('>')
	e.escape(el.Text, false)
	pretty := e.cfg.Indent != "" && el.Text == ""
	for _, c := range el.Children {
		if pretty {
			e.newline(depth + 1)
		}
		e.writeElement(c, depth+1)
	}
	if pretty && len(el.Children) > 0 {
		e.newline(depth)
	}
	e.w.WriteString("</")
	e.w.WriteString(name)
	e.w.WriteByte('>')
}

func (e *Emitter) newline(depth int) {
	e.w.WriteByte('\n')
	for range depth {
		e.w.WriteString(e.cfg.Indent)
	}
}

// escape writes s with markup characters replaced by entity references.
// Attribute values additionally escape quotes and literal whitespace so the
// value survives attribute-value normalization.
func (e *Emitter) escape(s string, attr bool) {
	for _, r := range s {
		switch r {
		case '&':
			e.w.WriteString("&amp;")
		case '<':
			e.w.WriteString("&lt;")
		case '>':
			e.w.WriteString("&gt;")
		case '"':
			if attr {
				e.w.WriteString("&quot;")
			} else {
				e.w.WriteByte('"')
			}
		case '\t', '\n', '\r':
			if attr {
				fmt.Fprintf(e.w, "&#%d;", r)
			} else {
				e.w.WriteRune(r)
			}
		default:
			if e.ascii && r > 0x7f {
				fmt.Fprintf(e.w, "&#x%X;", r)
			} else {
				e.w.WriteRune(r)
			}
		}
	}
}

func isUTF8Name(name string) bool {
	switch name {
	case "UTF-8", "utf-8", "UTF8", "utf8":
		return true
	}
	return false
}
