package phyloxml

import (
	"io"
	"iter"
	"sort"
	"strconv"

	"github.com/treeio/phyloxml/internal/xmltree"
)

// Write serializes v as a phyloXML document. It accepts a *Phyloxml, a
// *Phylogeny (wrapped in a single-tree aggregate), a bare *Clade (converted
// to a phylogeny rooted at it), or a slice or iter.Seq of either of the
// latter two. Any other shape is a *UsageError, reported before any output
// is produced.
func Write(v any, w io.Writer, opts ...WriteOption) error {
	doc, err := asPhyloxml(v)
	if err != nil {
		return err
	}
	cfg := buildWriteOptions(opts)
	emitter := xmltree.NewEmitter(w, xmltree.EmitterConfig{
		Encoding: cfg.encoding,
		Indent:   cfg.indent,
		Prefixes: registeredPrefixes(),
	})
	return emitter.Emit(documentElement(doc))
}

func asPhyloxml(v any) (*Phyloxml, error) {
	switch t := v.(type) {
	case *Phyloxml:
		if t == nil {
			break
		}
		return t, nil
	case *Phylogeny:
		if t == nil {
			break
		}
		return t.Phyloxml(), nil
	case *Clade:
		if t == nil {
			break
		}
		return t.Phylogeny().Phyloxml(), nil
	case []*Phylogeny:
		return &Phyloxml{Phylogenies: t}, nil
	case []*Clade:
		doc := &Phyloxml{}
		for _, c := range t {
			doc.Phylogenies = append(doc.Phylogenies, c.Phylogeny())
		}
		return doc, nil
	case iter.Seq[*Phylogeny]:
		doc := &Phyloxml{}
		for p := range t {
			doc.Phylogenies = append(doc.Phylogenies, p)
		}
		return doc, nil
	case iter.Seq[*Clade]:
		doc := &Phyloxml{}
		for c := range t {
			doc.Phylogenies = append(doc.Phylogenies, c.Phylogeny())
		}
		return doc, nil
	}
	return nil, &UsageError{Msg: "value must be a *Phyloxml, *Phylogeny, *Clade, or a slice or sequence of phylogenies or clades"}
}

// Each construct builder emits attributes and children in the order the
// phyloXML schema mandates; the order is part of the wire contract.

func documentElement(doc *Phyloxml) *xmltree.Element {
	e := phyElement("phyloxml")
	for _, p := range doc.Phylogenies {
		e.Append(phylogenyElement(p))
	}
	for _, o := range doc.Other {
		e.Append(foreignElement(o))
	}
	return e
}

func phylogenyElement(p *Phylogeny) *xmltree.Element {
	e := phyElement("phylogeny")
	setBoolAttr(e, "rooted", p.Rooted)
	setBoolAttr(e, "rerootable", p.Rerootable)
	setAttr(e, "branch_length_unit", p.BranchLengthUnit)
	setAttr(e, "type", p.Type)

	appendText(e, "name", p.Name)
	if p.ID != nil {
		e.Append(idElement("id", p.ID))
	}
	appendText(e, "description", p.Description)
	if p.Date != nil {
		e.Append(dateElement(p.Date))
	}
	for _, c := range p.Confidences {
		e.Append(confidenceElement(c))
	}
	if p.Root != nil {
		e.Append(cladeElement(p.Root))
	}
	for _, r := range p.CladeRelations {
		e.Append(cladeRelationElement(r))
	}
	for _, r := range p.SequenceRelations {
		e.Append(sequenceRelationElement(r))
	}
	for _, pr := range p.Properties {
		e.Append(propertyElement(pr))
	}
	for _, o := range p.Other {
		e.Append(foreignElement(o))
	}
	return e
}

func cladeElement(c *Clade) *xmltree.Element {
	e := phyElement("clade")
	setAttr(e, "id_source", c.IDSource)

	appendText(e, "name", c.Name)
	if c.BranchLength != nil {
		appendText(e, "branch_length", formatFloat(*c.BranchLength))
	}
	for _, cf := range c.Confidences {
		e.Append(confidenceElement(cf))
	}
	if c.Width != nil {
		appendText(e, "width", formatFloat(*c.Width))
	}
	if c.Color != nil {
		e.Append(colorElement(c.Color))
	}
	if c.NodeID != nil {
		e.Append(idElement("node_id", c.NodeID))
	}
	for _, t := range c.Taxonomies {
		e.Append(taxonomyElement(t))
	}
	for _, s := range c.Sequences {
		e.Append(sequenceElement(s))
	}
	if c.Events != nil {
		e.Append(eventsElement(c.Events))
	}
	if c.BinaryCharacters != nil {
		e.Append(binaryCharactersElement(c.BinaryCharacters))
	}
	for _, d := range c.Distributions {
		e.Append(distributionElement(d))
	}
	if c.Date != nil {
		e.Append(dateElement(c.Date))
	}
	for _, r := range c.References {
		e.Append(referenceElement(r))
	}
	for _, p := range c.Properties {
		e.Append(propertyElement(p))
	}
	for _, child := range c.Clades {
		e.Append(cladeElement(child))
	}
	for _, o := range c.Other {
		e.Append(foreignElement(o))
	}
	return e
}

func taxonomyElement(t *Taxonomy) *xmltree.Element {
	e := phyElement("taxonomy")
	setAttr(e, "id_source", t.IDSource)

	if t.ID != nil {
		e.Append(idElement("id", t.ID))
	}
	appendText(e, "code", t.Code)
	appendText(e, "scientific_name", t.ScientificName)
	appendText(e, "authority", t.Authority)
	for _, n := range t.CommonNames {
		appendText(e, "common_name", n)
	}
	for _, s := range t.Synonyms {
		appendText(e, "synonym", s)
	}
	appendText(e, "rank", t.Rank)
	if t.URI != nil {
		e.Append(uriElement(t.URI))
	}
	for _, o := range t.Other {
		e.Append(foreignElement(o))
	}
	return e
}

func sequenceElement(s *Sequence) *xmltree.Element {
	e := phyElement("sequence")
	setAttr(e, "type", s.Type)
	setAttr(e, "id_ref", s.IDRef)
	setAttr(e, "id_source", s.IDSource)

	appendText(e, "symbol", s.Symbol)
	if s.Accession != nil {
		a := phyElement("accession")
		setAttr(a, "source", s.Accession.Source)
		a.Text = s.Accession.Value
		e.Append(a)
	}
	appendText(e, "name", s.Name)
	appendText(e, "location", s.Location)
	if s.MolSeq != nil {
		ms := phyElement("mol_seq")
		setBoolAttr(ms, "is_aligned", s.MolSeq.IsAligned)
		ms.Text = s.MolSeq.Value
		e.Append(ms)
	}
	if s.URI != nil {
		e.Append(uriElement(s.URI))
	}
	for _, a := range s.Annotations {
		e.Append(annotationElement(a))
	}
	if s.DomainArchitecture != nil {
		e.Append(domainArchitectureElement(s.DomainArchitecture))
	}
	for _, o := range s.Other {
		e.Append(foreignElement(o))
	}
	return e
}

func annotationElement(a *Annotation) *xmltree.Element {
	e := phyElement("annotation")
	setAttr(e, "ref", a.Ref)
	setAttr(e, "source", a.Source)
	setAttr(e, "evidence", a.Evidence)
	setAttr(e, "type", a.Type)

	appendText(e, "desc", a.Desc)
	if a.Confidence != nil {
		e.Append(confidenceElement(a.Confidence))
	}
	for _, p := range a.Properties {
		e.Append(propertyElement(p))
	}
	if a.URI != nil {
		e.Append(uriElement(a.URI))
	}
	return e
}

// binaryCharactersElement is bespoke: each character list is nested inside a
// wrapper element holding flat bc tokens.
func binaryCharactersElement(bc *BinaryCharacters) *xmltree.Element {
	e := phyElement("binary_characters")
	setAttr(e, "type", bc.Type)
	setIntAttr(e, "gained_count", bc.GainedCount)
	setIntAttr(e, "lost_count", bc.LostCount)
	setIntAttr(e, "present_count", bc.PresentCount)
	setIntAttr(e, "absent_count", bc.AbsentCount)

	for _, w := range []struct {
		tag    string
		tokens []string
	}{
		{"gained", bc.Gained},
		{"lost", bc.Lost},
		{"present", bc.Present},
		{"absent", bc.Absent},
	} {
		wrapper := phyElement(w.tag)
		for _, token := range w.tokens {
			appendText(wrapper, "bc", token)
		}
		e.Append(wrapper)
	}
	return e
}

func cladeRelationElement(r *CladeRelation) *xmltree.Element {
	e := phyElement("clade_relation")
	setAttr(e, "id_ref_0", r.IDRef0)
	setAttr(e, "id_ref_1", r.IDRef1)
	setAttr(e, "distance", r.Distance)
	setAttr(e, "type", r.Type)
	if r.Confidence != nil {
		e.Append(confidenceElement(r.Confidence))
	}
	return e
}

func colorElement(c *BranchColor) *xmltree.Element {
	e := phyElement("color")
	appendText(e, "red", strconv.Itoa(c.Red))
	appendText(e, "green", strconv.Itoa(c.Green))
	appendText(e, "blue", strconv.Itoa(c.Blue))
	return e
}

func confidenceElement(c *Confidence) *xmltree.Element {
	e := phyElement("confidence")
	setAttr(e, "type", c.Type)
	if c.Value != nil {
		e.Text = formatFloat(*c.Value)
	}
	return e
}

func dateElement(d *Date) *xmltree.Element {
	e := phyElement("date")
	setAttr(e, "unit", d.Unit)
	appendText(e, "desc", d.Desc)
	if d.Value != nil {
		appendText(e, "value", formatFloat(*d.Value))
	}
	if d.Minimum != nil {
		appendText(e, "minimum", formatFloat(*d.Minimum))
	}
	if d.Maximum != nil {
		appendText(e, "maximum", formatFloat(*d.Maximum))
	}
	return e
}

func distributionElement(d *Distribution) *xmltree.Element {
	e := phyElement("distribution")
	appendText(e, "desc", d.Desc)
	for _, p := range d.Points {
		e.Append(pointElement(p))
	}
	for _, p := range d.Polygons {
		e.Append(polygonElement(p))
	}
	return e
}

// domainElement is bespoke: the stored zero-based [Start, End) range is
// emitted with the external 1-based "from" convention.
func domainElement(d *ProteinDomain) *xmltree.Element {
	e := phyElement("domain")
	e.SetAttr(xmltree.QName{Local: "from"}, strconv.Itoa(d.Start+1))
	e.SetAttr(xmltree.QName{Local: "to"}, strconv.Itoa(d.End))
	if d.Confidence != nil {
		e.SetAttr(xmltree.QName{Local: "confidence"}, formatFloat(*d.Confidence))
	}
	setAttr(e, "id", d.ID)
	e.Text = d.Value
	return e
}

func domainArchitectureElement(da *DomainArchitecture) *xmltree.Element {
	e := phyElement("domain_architecture")
	setIntAttr(e, "length", da.Length)
	for _, d := range da.Domains {
		e.Append(domainElement(d))
	}
	return e
}

func eventsElement(ev *Events) *xmltree.Element {
	e := phyElement("events")
	appendText(e, "type", ev.Type)
	if ev.Duplications != nil {
		appendText(e, "duplications", strconv.Itoa(*ev.Duplications))
	}
	if ev.Speciations != nil {
		appendText(e, "speciations", strconv.Itoa(*ev.Speciations))
	}
	if ev.Losses != nil {
		appendText(e, "losses", strconv.Itoa(*ev.Losses))
	}
	if ev.Confidence != nil {
		e.Append(confidenceElement(ev.Confidence))
	}
	return e
}

// idElement serves both id and node_id, which share the provider+value shape.
func idElement(tag string, id *ID) *xmltree.Element {
	e := phyElement(tag)
	setAttr(e, "provider", id.Provider)
	e.Text = id.Value
	return e
}

func pointElement(p *Point) *xmltree.Element {
	e := phyElement("point")
	setAttr(e, "geodetic_datum", p.GeodeticDatum)
	setAttr(e, "alt_unit", p.AltUnit)
	if p.Lat != nil {
		appendText(e, "lat", formatFloat(*p.Lat))
	}
	if p.Long != nil {
		appendText(e, "long", formatFloat(*p.Long))
	}
	if p.Alt != nil {
		appendText(e, "alt", formatFloat(*p.Alt))
	}
	return e
}

func polygonElement(p *Polygon) *xmltree.Element {
	e := phyElement("polygon")
	for _, pt := range p.Points {
		e.Append(pointElement(pt))
	}
	return e
}

func propertyElement(p *Property) *xmltree.Element {
	e := phyElement("property")
	setAttr(e, "ref", p.Ref)
	setAttr(e, "unit", p.Unit)
	setAttr(e, "datatype", p.Datatype)
	setAttr(e, "applies_to", p.AppliesTo)
	setAttr(e, "id_ref", p.IDRef)
	e.Text = p.Value
	return e
}

func referenceElement(r *Reference) *xmltree.Element {
	e := phyElement("reference")
	setAttr(e, "doi", r.DOI)
	appendText(e, "desc", r.Desc)
	return e
}

func sequenceRelationElement(r *SequenceRelation) *xmltree.Element {
	e := phyElement("sequence_relation")
	setAttr(e, "id_ref_0", r.IDRef0)
	setAttr(e, "id_ref_1", r.IDRef1)
	if r.Distance != nil {
		e.SetAttr(xmltree.QName{Local: "distance"}, formatFloat(*r.Distance))
	}
	setAttr(e, "type", r.Type)
	if r.Confidence != nil {
		e.Append(confidenceElement(r.Confidence))
	}
	return e
}

func uriElement(u *URI) *xmltree.Element {
	e := phyElement("uri")
	setAttr(e, "desc", u.Desc)
	setAttr(e, "type", u.Type)
	e.Text = u.Value
	return e
}

// foreignElement reconstructs a foreign subtree verbatim, recursively.
// Attributes are emitted in sorted name order for stable output.
func foreignElement(o *Other) *xmltree.Element {
	e := &xmltree.Element{
		Name: xmltree.QName{Space: o.Namespace, Local: o.Tag},
		Text: o.Value,
	}
	keys := make([]string, 0, len(o.Attributes))
	for k := range o.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.SetAttr(splitClarkName(k), o.Attributes[k])
	}
	for _, c := range o.Children {
		e.Append(foreignElement(c))
	}
	return e
}

func phyElement(local string) *xmltree.Element {
	return &xmltree.Element{Name: phyName(local)}
}

// setAttr sets an unqualified attribute, skipping absent ("") values.
func setAttr(e *xmltree.Element, local, value string) {
	if value == "" {
		return
	}
	e.SetAttr(xmltree.QName{Local: local}, value)
}

func setBoolAttr(e *xmltree.Element, local string, v *bool) {
	if v == nil {
		return
	}
	e.SetAttr(xmltree.QName{Local: local}, formatBool(*v))
}

func setIntAttr(e *xmltree.Element, local string, v *int) {
	if v == nil {
		return
	}
	e.SetAttr(xmltree.QName{Local: local}, strconv.Itoa(*v))
}

// appendText appends a simple text child, skipping absent ("") values.
func appendText(e *xmltree.Element, local, text string) {
	if text == "" {
		return
	}
	child := phyElement(local)
	child.Text = text
	e.Append(child)
}
