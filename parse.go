package phyloxml

import (
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/treeio/phyloxml/internal/xmltree"
)

// Read parses a complete phyloXML document and returns the aggregate of
// every phylogeny plus any top-level non-phyloXML content. It fails with
// *SchemaError on structural violations and passes tokenizer syntax errors
// through unchanged.
func Read(r io.Reader) (*Phyloxml, error) {
	return newParser(r).read()
}

// Parse iterates over the phylogenies in a document, yielding each one the
// moment its closing tag is seen. Top-level non-phyloXML content is ignored,
// and no phylogeny is retained after it has been yielded, so memory stays
// bounded for documents with many trees. Abandoning the iteration abandons
// the parse.
func Parse(r io.Reader) iter.Seq2[*Phylogeny, error] {
	return newParser(r).phylogenies()
}

type parser struct {
	cur  *xmltree.Cursor
	root *xmltree.Element
}

func newParser(r io.Reader) *parser {
	return &parser{cur: xmltree.NewCursor(r)}
}

// start consumes events up to and including the document root's opening tag.
func (p *parser) start() error {
	ev, err := p.cur.Next()
	if err != nil {
		return err
	}
	p.root = ev.Elem
	return nil
}

func (p *parser) read() (*Phyloxml, error) {
	if err := p.start(); err != nil {
		return nil, err
	}
	doc := &Phyloxml{Attributes: make(map[string]string, len(p.root.Attr))}
	for _, a := range p.root.Attr {
		doc.Attributes[a.Name.Local] = a.Value
	}
	foreignDepth := 0
	for {
		ev, err := p.cur.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return doc, nil
			}
			return nil, err
		}
		elem := ev.Elem
		if foreignDepth > 0 {
			if ev.Kind == xmltree.StartElement {
				foreignDepth++
				continue
			}
			if foreignDepth--; foreignDepth == 0 {
				doc.Other = append(doc.Other, foreignNode(elem))
				p.root.Clear()
			}
			continue
		}
		if ev.Kind == xmltree.StartElement {
			if elem.Name.Space != Namespace {
				foreignDepth = 1
				continue
			}
			if elem.Name.Local == "phylogeny" {
				phy, err := p.phylogeny(elem)
				if err != nil {
					return nil, err
				}
				doc.Phylogenies = append(doc.Phylogenies, phy)
				p.root.Clear()
			}
			continue
		}
		if elem == p.root {
			return doc, nil
		}
	}
}

func (p *parser) phylogenies() iter.Seq2[*Phylogeny, error] {
	return func(yield func(*Phylogeny, error) bool) {
		if err := p.start(); err != nil {
			if !errors.Is(err, io.EOF) {
				yield(nil, err)
			}
			return
		}
		phylogenyName := xmltree.QName{Space: Namespace, Local: "phylogeny"}
		for {
			ev, err := p.cur.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, err)
				}
				return
			}
			if ev.Kind == xmltree.StartElement && ev.Elem.Name == phylogenyName {
				phy, err := p.phylogeny(ev.Elem)
				if err != nil {
					yield(nil, err)
					return
				}
				p.root.Clear()
				if !yield(phy, nil) {
					return
				}
				continue
			}
			// Top-level siblings outside the vocabulary are not reported in
			// this mode; drop their event history as they close.
			if ev.Kind == xmltree.EndElement {
				ev.Elem.Clear()
				p.root.Clear()
			}
		}
	}
}

// tagStack tracks which simple or complex children have opened but not yet
// closed at the current nesting level. It distinguishes "this end event
// closes a child I am watching" from "this end event is an echo of a
// grandchild already handled inside a retained subtree".
type tagStack []string

func (s *tagStack) push(tag string) {
	*s = append(*s, tag)
}

func (s *tagStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s tagStack) top() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

func (s tagStack) empty() bool {
	return len(s) == 0
}

var phylogenyTracked = map[string]bool{
	"name":              true,
	"description":       true,
	"date":              true,
	"id":                true,
	"confidence":        true,
	"property":          true,
	"clade_relation":    true,
	"sequence_relation": true,
}

func (p *parser) phylogeny(start *xmltree.Element) (*Phylogeny, error) {
	phy := &Phylogeny{
		BranchLengthUnit: start.Get("branch_length_unit"),
		Type:             start.Get("type"),
	}
	var err error
	if phy.Rooted, err = attrBool(start, "rooted"); err != nil {
		return nil, err
	}
	if phy.Rerootable, err = attrBool(start, "rerootable"); err != nil {
		return nil, err
	}

	var tracked tagStack
	foreignDepth := 0
	for {
		ev, err := p.cur.Next()
		if err != nil {
			return nil, err
		}
		elem := ev.Elem
		if foreignDepth > 0 {
			if ev.Kind == xmltree.StartElement {
				foreignDepth++
				continue
			}
			if foreignDepth--; foreignDepth == 0 {
				phy.Other = append(phy.Other, foreignNode(elem))
				elem.Clear()
			}
			continue
		}
		name := elem.Name
		if ev.Kind == xmltree.StartElement {
			switch {
			case name.Space != Namespace:
				if tracked.empty() {
					foreignDepth = 1
				}
			case name.Local == "clade" && tracked.empty():
				if phy.Root != nil {
					return nil, schemaErrorf("phylogeny", "more than one clade at the top level")
				}
				phy.Root, err = p.clade(elem)
				if err != nil {
					return nil, err
				}
			case phylogenyTracked[name.Local] && tracked.empty():
				// A tracked tag opening while another tracked child is still
				// open belongs to that child's subtree, not to this level.
				tracked.push(name.Local)
			}
			continue
		}
		switch {
		case name.Space == Namespace && name.Local == "phylogeny" && tracked.empty():
			elem.Clear()
			return phy, nil
		case name.Space == Namespace && name.Local == tracked.top():
			tracked.pop()
			if err := p.phylogenyChild(phy, elem); err != nil {
				return nil, err
			}
			elem.Clear()
		case !tracked.empty():
			// Echo of an inner tag converted with its retained parent.
		default:
			return nil, schemaErrorf(name.Local, "unexpected element in <phylogeny>")
		}
	}
}

func (p *parser) phylogenyChild(phy *Phylogeny, elem *xmltree.Element) error {
	switch elem.Name.Local {
	case "name":
		phy.Name = collapseWhitespace(elem.Text)
	case "description":
		phy.Description = collapseWhitespace(elem.Text)
	case "id":
		phy.ID = parseID(elem)
	case "date":
		d, err := parseDate(elem)
		if err != nil {
			return err
		}
		phy.Date = d
	case "confidence":
		phy.Confidences = append(phy.Confidences, parseConfidence(elem))
	case "property":
		phy.Properties = append(phy.Properties, parseProperty(elem))
	case "clade_relation":
		phy.CladeRelations = append(phy.CladeRelations, parseCladeRelation(elem))
	case "sequence_relation":
		phy.SequenceRelations = append(phy.SequenceRelations, parseSequenceRelation(elem))
	}
	return nil
}

var cladeTracked = map[string]bool{
	"name":              true,
	"branch_length":     true,
	"width":             true,
	"node_id":           true,
	"color":             true,
	"events":            true,
	"binary_characters": true,
	"date":              true,
	"confidence":        true,
	"distribution":      true,
	"reference":         true,
	"property":          true,
}

func (p *parser) clade(start *xmltree.Element) (*Clade, error) {
	cl := &Clade{IDSource: start.Get("id_source")}
	if v, ok := start.Lookup("branch_length"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, schemaErrorf("clade", "cannot convert branch_length attribute %q", v)
		}
		cl.BranchLength = &f
	}

	var tracked tagStack
	foreignDepth := 0
	for {
		ev, err := p.cur.Next()
		if err != nil {
			return nil, err
		}
		elem := ev.Elem
		if foreignDepth > 0 {
			if ev.Kind == xmltree.StartElement {
				foreignDepth++
				continue
			}
			if foreignDepth--; foreignDepth == 0 {
				cl.Other = append(cl.Other, foreignNode(elem))
				elem.Clear()
			}
			continue
		}
		name := elem.Name
		if ev.Kind == xmltree.StartElement {
			switch {
			case name.Space != Namespace:
				if tracked.empty() {
					foreignDepth = 1
				}
			case name.Local == "clade" && tracked.empty():
				child, err := p.clade(elem)
				if err != nil {
					return nil, err
				}
				cl.Clades = append(cl.Clades, child)
			case name.Local == "taxonomy" && tracked.empty():
				tax, err := p.taxonomy(elem)
				if err != nil {
					return nil, err
				}
				cl.Taxonomies = append(cl.Taxonomies, tax)
			case name.Local == "sequence" && tracked.empty():
				seq, err := p.sequence(elem)
				if err != nil {
					return nil, err
				}
				cl.Sequences = append(cl.Sequences, seq)
			case cladeTracked[name.Local] && tracked.empty():
				tracked.push(name.Local)
			}
			continue
		}
		switch {
		case name.Space == Namespace && name.Local == "clade" && tracked.empty():
			elem.Clear()
			return cl, nil
		case name.Space == Namespace && name.Local == tracked.top():
			tracked.pop()
			if err := p.cladeChild(cl, elem); err != nil {
				return nil, err
			}
			elem.Clear()
		case !tracked.empty():
			// Echo.
		default:
			return nil, schemaErrorf(name.Local, "unexpected element in <clade>")
		}
	}
}

func (p *parser) cladeChild(cl *Clade, elem *xmltree.Element) error {
	switch elem.Name.Local {
	case "name":
		cl.Name = collapseWhitespace(elem.Text)
	case "branch_length":
		// Collision with the branch_length attribute is a hard error.
		if cl.BranchLength != nil {
			return schemaErrorf("clade", "branch_length was already set for this clade")
		}
		cl.BranchLength = optFloat(elem.Text)
	case "width":
		cl.Width = optFloat(elem.Text)
	case "node_id":
		cl.NodeID = &ID{Value: strings.TrimSpace(elem.Text), Provider: elem.Get("provider")}
	case "color":
		c, err := parseColor(elem)
		if err != nil {
			return err
		}
		cl.Color = c
	case "events":
		e, err := parseEvents(elem)
		if err != nil {
			return err
		}
		cl.Events = e
	case "binary_characters":
		cl.BinaryCharacters = parseBinaryCharacters(elem)
	case "date":
		d, err := parseDate(elem)
		if err != nil {
			return err
		}
		cl.Date = d
	case "confidence":
		cl.Confidences = append(cl.Confidences, parseConfidence(elem))
	case "distribution":
		d, err := parseDistribution(elem)
		if err != nil {
			return err
		}
		cl.Distributions = append(cl.Distributions, d)
	case "reference":
		cl.References = append(cl.References, parseReference(elem))
	case "property":
		cl.Properties = append(cl.Properties, parseProperty(elem))
	}
	return nil
}

var sequenceTracked = map[string]bool{
	"symbol":              true,
	"accession":           true,
	"name":                true,
	"location":            true,
	"mol_seq":             true,
	"uri":                 true,
	"annotation":          true,
	"domain_architecture": true,
}

func (p *parser) sequence(start *xmltree.Element) (*Sequence, error) {
	seq := &Sequence{
		Type:     start.Get("type"),
		IDRef:    start.Get("id_ref"),
		IDSource: start.Get("id_source"),
	}
	var tracked tagStack
	foreignDepth := 0
	for {
		ev, err := p.cur.Next()
		if err != nil {
			return nil, err
		}
		elem := ev.Elem
		if foreignDepth > 0 {
			if ev.Kind == xmltree.StartElement {
				foreignDepth++
				continue
			}
			if foreignDepth--; foreignDepth == 0 {
				seq.Other = append(seq.Other, foreignNode(elem))
				elem.Clear()
			}
			continue
		}
		name := elem.Name
		if ev.Kind == xmltree.StartElement {
			switch {
			case name.Space != Namespace:
				if tracked.empty() {
					foreignDepth = 1
				}
			case sequenceTracked[name.Local] && tracked.empty():
				tracked.push(name.Local)
			}
			continue
		}
		switch {
		case name.Space == Namespace && name.Local == "sequence" && tracked.empty():
			elem.Clear()
			return seq, nil
		case name.Space == Namespace && name.Local == tracked.top():
			tracked.pop()
			if err := p.sequenceChild(seq, elem); err != nil {
				return nil, err
			}
			elem.Clear()
		case !tracked.empty():
			// Echo.
		default:
			return nil, schemaErrorf(name.Local, "unexpected element in <sequence>")
		}
	}
}

func (p *parser) sequenceChild(seq *Sequence, elem *xmltree.Element) error {
	switch elem.Name.Local {
	case "symbol":
		seq.Symbol = elem.Text
	case "accession":
		seq.Accession = parseAccession(elem)
	case "name":
		seq.Name = collapseWhitespace(elem.Text)
	case "location":
		seq.Location = elem.Text
	case "mol_seq":
		ms, err := parseMolSeq(elem)
		if err != nil {
			return err
		}
		seq.MolSeq = ms
	case "uri":
		seq.URI = parseURI(elem)
	case "annotation":
		seq.Annotations = append(seq.Annotations, parseAnnotation(elem))
	case "domain_architecture":
		da, err := parseDomainArchitecture(elem)
		if err != nil {
			return err
		}
		seq.DomainArchitecture = da
	}
	return nil
}

var taxonomyTracked = map[string]bool{
	"id":              true,
	"code":            true,
	"scientific_name": true,
	"authority":       true,
	"common_name":     true,
	"synonym":         true,
	"rank":            true,
	"uri":             true,
}

func (p *parser) taxonomy(start *xmltree.Element) (*Taxonomy, error) {
	tax := &Taxonomy{IDSource: start.Get("id_source")}
	var tracked tagStack
	foreignDepth := 0
	for {
		ev, err := p.cur.Next()
		if err != nil {
			return nil, err
		}
		elem := ev.Elem
		if foreignDepth > 0 {
			if ev.Kind == xmltree.StartElement {
				foreignDepth++
				continue
			}
			if foreignDepth--; foreignDepth == 0 {
				tax.Other = append(tax.Other, foreignNode(elem))
				elem.Clear()
			}
			continue
		}
		name := elem.Name
		if ev.Kind == xmltree.StartElement {
			switch {
			case name.Space != Namespace:
				if tracked.empty() {
					foreignDepth = 1
				}
			case taxonomyTracked[name.Local] && tracked.empty():
				tracked.push(name.Local)
			}
			continue
		}
		switch {
		case name.Space == Namespace && name.Local == "taxonomy" && tracked.empty():
			elem.Clear()
			return tax, nil
		case name.Space == Namespace && name.Local == tracked.top():
			tracked.pop()
			p.taxonomyChild(tax, elem)
			elem.Clear()
		case !tracked.empty():
			// Echo.
		default:
			return nil, schemaErrorf(name.Local, "unexpected element in <taxonomy>")
		}
	}
}

func (p *parser) taxonomyChild(tax *Taxonomy, elem *xmltree.Element) {
	switch elem.Name.Local {
	case "id":
		tax.ID = parseID(elem)
	case "code":
		tax.Code = elem.Text
	case "scientific_name":
		tax.ScientificName = elem.Text
	case "authority":
		tax.Authority = elem.Text
	case "common_name":
		tax.CommonNames = append(tax.CommonNames, collapseWhitespace(elem.Text))
	case "synonym":
		tax.Synonyms = append(tax.Synonyms, elem.Text)
	case "rank":
		tax.Rank = elem.Text
	case "uri":
		tax.URI = parseURI(elem)
	}
}

// foreignNode converts a retained non-vocabulary subtree into its opaque
// record, recursively.
func foreignNode(elem *xmltree.Element) *Other {
	o := &Other{
		Tag:       elem.Name.Local,
		Namespace: elem.Name.Space,
		Value:     strings.TrimSpace(elem.Text),
	}
	if len(elem.Attr) > 0 {
		o.Attributes = make(map[string]string, len(elem.Attr))
		for _, a := range elem.Attr {
			o.Attributes[clarkName(a.Name)] = a.Value
		}
	}
	for _, c := range elem.Children {
		o.Children = append(o.Children, foreignNode(c))
	}
	return o
}

// clarkName renders a qualified name in Clark notation, "{uri}local".
func clarkName(name xmltree.QName) string {
	if name.Space == "" {
		return name.Local
	}
	return "{" + name.Space + "}" + name.Local
}

func splitClarkName(s string) xmltree.QName {
	if strings.HasPrefix(s, "{") {
		if i := strings.Index(s, "}"); i > 0 {
			return xmltree.QName{Space: s[1:i], Local: s[i+1:]}
		}
	}
	return xmltree.QName{Local: s}
}

// ---- retained-subtree converters ----

func phyName(local string) xmltree.QName {
	return xmltree.QName{Space: Namespace, Local: local}
}

func getChild(elem *xmltree.Element, local string) *xmltree.Element {
	return elem.Find(phyName(local))
}

func getChildren(elem *xmltree.Element, local string) []*xmltree.Element {
	return elem.FindAll(phyName(local))
}

// getChildText returns the text of the first child with the given tag, or ""
// when the child is absent.
func getChildText(elem *xmltree.Element, local string) string {
	if c := getChild(elem, local); c != nil {
		return c.Text
	}
	return ""
}

// getChildrenText returns the text of every child with the given tag,
// skipping children with no text.
func getChildrenText(elem *xmltree.Element, local string) []string {
	var out []string
	for _, c := range getChildren(elem, local) {
		if c.Text != "" {
			out = append(out, c.Text)
		}
	}
	return out
}

// childFloat converts a child's text with strict parsing: absent yields nil,
// unparseable text is a schema error.
func childFloat(elem *xmltree.Element, local string) (*float64, error) {
	text := getChildText(elem, local)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil, schemaErrorf(local, "cannot convert %q to float", text)
	}
	return &v, nil
}

// childInt converts a child's text with strict parsing: absent yields nil,
// unparseable text is a schema error.
func childInt(elem *xmltree.Element, local string) (*int, error) {
	text := getChildText(elem, local)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil, schemaErrorf(local, "cannot convert %q to integer", text)
	}
	return &v, nil
}

func childConfidence(elem *xmltree.Element) *Confidence {
	if c := getChild(elem, "confidence"); c != nil {
		return parseConfidence(c)
	}
	return nil
}

func childURI(elem *xmltree.Element) *URI {
	if c := getChild(elem, "uri"); c != nil {
		return parseURI(c)
	}
	return nil
}

func attrBool(elem *xmltree.Element, local string) (*bool, error) {
	v, ok := elem.Lookup(local)
	if !ok {
		return nil, nil
	}
	b, err := parseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func parseAccession(elem *xmltree.Element) *Accession {
	return &Accession{
		Value:  strings.TrimSpace(elem.Text),
		Source: elem.Get("source"),
	}
}

func parseAnnotation(elem *xmltree.Element) *Annotation {
	a := &Annotation{
		Ref:        elem.Get("ref"),
		Source:     elem.Get("source"),
		Evidence:   elem.Get("evidence"),
		Type:       elem.Get("type"),
		Desc:       collapseWhitespace(getChildText(elem, "desc")),
		Confidence: childConfidence(elem),
		URI:        childURI(elem),
	}
	for _, c := range getChildren(elem, "property") {
		a.Properties = append(a.Properties, parseProperty(c))
	}
	return a
}

func parseBinaryCharacters(elem *xmltree.Element) *BinaryCharacters {
	tokens := func(wrapper string) []string {
		if w := getChild(elem, wrapper); w != nil {
			return getChildrenText(w, "bc")
		}
		return nil
	}
	return &BinaryCharacters{
		Type:         elem.Get("type"),
		GainedCount:  optInt(elem.Get("gained_count")),
		LostCount:    optInt(elem.Get("lost_count")),
		PresentCount: optInt(elem.Get("present_count")),
		AbsentCount:  optInt(elem.Get("absent_count")),
		Gained:       tokens("gained"),
		Lost:         tokens("lost"),
		Present:      tokens("present"),
		Absent:       tokens("absent"),
	}
}

func parseCladeRelation(elem *xmltree.Element) *CladeRelation {
	return &CladeRelation{
		Type:       elem.Get("type"),
		IDRef0:     elem.Get("id_ref_0"),
		IDRef1:     elem.Get("id_ref_1"),
		Distance:   elem.Get("distance"),
		Confidence: childConfidence(elem),
	}
}

func parseColor(elem *xmltree.Element) (*BranchColor, error) {
	c := &BranchColor{}
	for _, ch := range []struct {
		tag string
		dst *int
	}{
		{"red", &c.Red},
		{"green", &c.Green},
		{"blue", &c.Blue},
	} {
		v, err := childInt(elem, ch.tag)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, schemaErrorf("color", "missing <%s> component", ch.tag)
		}
		*ch.dst = *v
	}
	return c, nil
}

func parseConfidence(elem *xmltree.Element) *Confidence {
	return &Confidence{
		Value: optFloat(elem.Text),
		Type:  elem.Get("type"),
	}
}

func parseDate(elem *xmltree.Element) (*Date, error) {
	value, err := childFloat(elem, "value")
	if err != nil {
		return nil, err
	}
	minimum, err := childFloat(elem, "minimum")
	if err != nil {
		return nil, err
	}
	maximum, err := childFloat(elem, "maximum")
	if err != nil {
		return nil, err
	}
	return &Date{
		Unit:    elem.Get("unit"),
		Desc:    collapseWhitespace(getChildText(elem, "desc")),
		Value:   value,
		Minimum: minimum,
		Maximum: maximum,
	}, nil
}

func parseDistribution(elem *xmltree.Element) (*Distribution, error) {
	d := &Distribution{Desc: collapseWhitespace(getChildText(elem, "desc"))}
	for _, c := range getChildren(elem, "point") {
		pt, err := parsePoint(c)
		if err != nil {
			return nil, err
		}
		d.Points = append(d.Points, pt)
	}
	for _, c := range getChildren(elem, "polygon") {
		poly, err := parsePolygon(c)
		if err != nil {
			return nil, err
		}
		d.Polygons = append(d.Polygons, poly)
	}
	return d, nil
}

// parseProteinDomain converts a domain element, shifting the 1-based "from"
// attribute to the zero-based half-open [Start, End) convention.
func parseProteinDomain(elem *xmltree.Element) (*ProteinDomain, error) {
	from, err := attrStrictInt(elem, "from", "domain")
	if err != nil {
		return nil, err
	}
	to, err := attrStrictInt(elem, "to", "domain")
	if err != nil {
		return nil, err
	}
	return &ProteinDomain{
		Value:      strings.TrimSpace(elem.Text),
		Start:      from - 1,
		End:        to,
		Confidence: optFloat(elem.Get("confidence")),
		ID:         elem.Get("id"),
	}, nil
}

func attrStrictInt(elem *xmltree.Element, local, owner string) (int, error) {
	v, ok := elem.Lookup(local)
	if !ok {
		return 0, schemaErrorf(owner, "missing %s attribute", local)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, schemaErrorf(owner, "cannot convert %s attribute %q to integer", local, v)
	}
	return n, nil
}

func parseDomainArchitecture(elem *xmltree.Element) (*DomainArchitecture, error) {
	da := &DomainArchitecture{Length: optInt(elem.Get("length"))}
	for _, c := range getChildren(elem, "domain") {
		d, err := parseProteinDomain(c)
		if err != nil {
			return nil, err
		}
		da.Domains = append(da.Domains, d)
	}
	return da, nil
}

func parseEvents(elem *xmltree.Element) (*Events, error) {
	duplications, err := childInt(elem, "duplications")
	if err != nil {
		return nil, err
	}
	speciations, err := childInt(elem, "speciations")
	if err != nil {
		return nil, err
	}
	losses, err := childInt(elem, "losses")
	if err != nil {
		return nil, err
	}
	return &Events{
		Type:         getChildText(elem, "type"),
		Duplications: duplications,
		Speciations:  speciations,
		Losses:       losses,
		Confidence:   childConfidence(elem),
	}, nil
}

func parseID(elem *xmltree.Element) *ID {
	provider := elem.Get("provider")
	if provider == "" {
		provider = elem.Get("type")
	}
	return &ID{Value: strings.TrimSpace(elem.Text), Provider: provider}
}

func parseMolSeq(elem *xmltree.Element) (*MolSeq, error) {
	ms := &MolSeq{Value: strings.TrimSpace(elem.Text)}
	var err error
	if ms.IsAligned, err = attrBool(elem, "is_aligned"); err != nil {
		return nil, err
	}
	return ms, nil
}

func parsePoint(elem *xmltree.Element) (*Point, error) {
	lat, err := childFloat(elem, "lat")
	if err != nil {
		return nil, err
	}
	long, err := childFloat(elem, "long")
	if err != nil {
		return nil, err
	}
	alt, err := childFloat(elem, "alt")
	if err != nil {
		return nil, err
	}
	return &Point{
		GeodeticDatum: elem.Get("geodetic_datum"),
		Lat:           lat,
		Long:          long,
		Alt:           alt,
		AltUnit:       elem.Get("alt_unit"),
	}, nil
}

func parsePolygon(elem *xmltree.Element) (*Polygon, error) {
	poly := &Polygon{}
	for _, c := range getChildren(elem, "point") {
		pt, err := parsePoint(c)
		if err != nil {
			return nil, err
		}
		poly.Points = append(poly.Points, pt)
	}
	return poly, nil
}

func parseProperty(elem *xmltree.Element) *Property {
	return &Property{
		Value:     strings.TrimSpace(elem.Text),
		Ref:       elem.Get("ref"),
		AppliesTo: elem.Get("applies_to"),
		Datatype:  elem.Get("datatype"),
		Unit:      elem.Get("unit"),
		IDRef:     elem.Get("id_ref"),
	}
}

func parseReference(elem *xmltree.Element) *Reference {
	return &Reference{
		DOI:  elem.Get("doi"),
		Desc: getChildText(elem, "desc"),
	}
}

func parseSequenceRelation(elem *xmltree.Element) *SequenceRelation {
	return &SequenceRelation{
		Type:       elem.Get("type"),
		IDRef0:     elem.Get("id_ref_0"),
		IDRef1:     elem.Get("id_ref_1"),
		Distance:   optFloat(elem.Get("distance")),
		Confidence: childConfidence(elem),
	}
}

func parseURI(elem *xmltree.Element) *URI {
	return &URI{
		Value: strings.TrimSpace(elem.Text),
		Desc:  collapseWhitespace(elem.Get("desc")),
		Type:  elem.Get("type"),
	}
}
