package phyloxml

// Phyloxml is the document-level aggregate: every phylogeny in the document
// plus any top-level non-phyloXML siblings. Attributes holds the root
// element's attributes keyed by local name.
type Phyloxml struct {
	Attributes  map[string]string
	Phylogenies []*Phylogeny
	Other       []*Other
}

// Phylogeny is one independently parseable phylogenetic tree.
//
// Optional scalar fields are pointer-typed so an absent value is
// distinguishable from a zero value.
type Phylogeny struct {
	Root             *Clade
	Rooted           *bool
	Rerootable       *bool
	BranchLengthUnit string
	Type             string

	Name              string
	ID                *ID
	Description       string
	Date              *Date
	Confidences       []*Confidence
	CladeRelations    []*CladeRelation
	SequenceRelations []*SequenceRelation
	Properties        []*Property
	Other             []*Other
}

// Clade is a node of a phylogeny. Clades nest recursively through Clades;
// each parent exclusively owns its children.
type Clade struct {
	IDSource     string
	Name         string
	BranchLength *float64
	Confidences  []*Confidence
	Width        *float64
	Color        *BranchColor
	NodeID       *ID

	Taxonomies       []*Taxonomy
	Sequences        []*Sequence
	Events           *Events
	BinaryCharacters *BinaryCharacters
	Distributions    []*Distribution
	Date             *Date
	References       []*Reference
	Properties       []*Property
	Clades           []*Clade
	Other            []*Other
}

// Taxonomy describes the taxon a clade represents.
type Taxonomy struct {
	IDSource       string
	ID             *ID
	Code           string
	ScientificName string
	Authority      string
	CommonNames    []string
	Synonyms       []string
	Rank           string
	URI            *URI
	Other          []*Other
}

// Sequence is a molecular sequence attached to a clade.
type Sequence struct {
	Type     string
	IDRef    string
	IDSource string

	Symbol             string
	Accession          *Accession
	Name               string
	Location           string
	MolSeq             *MolSeq
	URI                *URI
	Annotations        []*Annotation
	DomainArchitecture *DomainArchitecture
	Other              []*Other
}

// Other is an element outside the phyloXML vocabulary, preserved opaquely
// for round-trip fidelity. Namespaced attribute names use
// Clark notation ("{uri}local"); unqualified names are stored bare.
type Other struct {
	Tag        string
	Namespace  string
	Attributes map[string]string
	Value      string
	Children   []*Other
}

// Accession is a sequence accession with its source database.
type Accession struct {
	Value  string
	Source string
}

// Annotation is free-form sequence annotation.
type Annotation struct {
	Ref        string
	Source     string
	Evidence   string
	Type       string
	Desc       string
	Confidence *Confidence
	Properties []*Property
	URI        *URI
}

// BinaryCharacters records gain/loss of binary characters along a branch.
type BinaryCharacters struct {
	Type         string
	GainedCount  *int
	LostCount    *int
	PresentCount *int
	AbsentCount  *int
	Gained       []string
	Lost         []string
	Present      []string
	Absent       []string
}

// BranchColor is an RGB branch color.
type BranchColor struct {
	Red   int
	Green int
	Blue  int
}

// CladeRelation expresses a typed relation between two clades. Distance is
// kept as the raw attribute text.
type CladeRelation struct {
	Type       string
	IDRef0     string
	IDRef1     string
	Distance   string
	Confidence *Confidence
}

// Confidence is a support value with its type (for example "bootstrap").
type Confidence struct {
	Value *float64
	Type  string
}

// Date is a temporal annotation on a phylogeny or clade.
type Date struct {
	Unit    string
	Desc    string
	Value   *float64
	Minimum *float64
	Maximum *float64
}

// Distribution is a geographic distribution of points and polygons.
type Distribution struct {
	Desc     string
	Points   []*Point
	Polygons []*Polygon
}

// DomainArchitecture is a sequence's protein domain layout.
type DomainArchitecture struct {
	Length  *int
	Domains []*ProteinDomain
}

// ProteinDomain is one domain within an architecture. Start and End use the
// zero-based half-open convention [Start, End); the wire format's "from"
// attribute is Start+1 and "to" is End.
type ProteinDomain struct {
	Value      string
	Start      int
	End        int
	Confidence *float64
	ID         string
}

// Events counts speciation/duplication/loss events at a clade.
type Events struct {
	Type         string
	Duplications *int
	Speciations  *int
	Losses       *int
	Confidence   *Confidence
}

// ID is an identifier together with its provider.
type ID struct {
	Value    string
	Provider string
}

// MolSeq is the molecular sequence text itself.
type MolSeq struct {
	Value     string
	IsAligned *bool
}

// Point is a geographic coordinate.
type Point struct {
	GeodeticDatum string
	Lat           *float64
	Long          *float64
	Alt           *float64
	AltUnit       string
}

// Polygon is a closed ring of points.
type Polygon struct {
	Points []*Point
}

// Property is a typed key/value annotation.
type Property struct {
	Value     string
	Ref       string
	AppliesTo string
	Datatype  string
	Unit      string
	IDRef     string
}

// Reference is a literature reference.
type Reference struct {
	DOI  string
	Desc string
}

// SequenceRelation expresses a typed relation between two sequences.
type SequenceRelation struct {
	Type       string
	IDRef0     string
	IDRef1     string
	Distance   *float64
	Confidence *Confidence
}

// URI is a link with an optional description and type.
type URI struct {
	Value string
	Desc  string
	Type  string
}

// Phyloxml wraps the phylogeny in a single-tree document aggregate.
func (p *Phylogeny) Phyloxml() *Phyloxml {
	return &Phyloxml{Phylogenies: []*Phylogeny{p}}
}

// Phylogeny wraps a bare clade in a phylogeny rooted at it.
func (c *Clade) Phylogeny() *Phylogeny {
	return &Phylogeny{Root: c}
}
