package phyloxml

import (
	"bytes"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }

func writeString(t *testing.T, v any, opts ...WriteOption) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(v, &buf, opts...))
	return buf.String()
}

func TestWrite_ChildOrdering(t *testing.T) {
	phy := &Phylogeny{
		Rooted: boolPtr(true),
		Name:   "ordered",
		Confidences: []*Confidence{
			{Value: floatPtr(95), Type: "bootstrap"},
			{Value: floatPtr(0.9), Type: "probability"},
		},
		Root: &Clade{
			Name:   "outer",
			Clades: []*Clade{{Name: "inner"}},
		},
	}
	out := writeString(t, phy)

	// Schema order, not insertion order: name, confidences in list order,
	// then the nested subtree.
	name := strings.Index(out, "<phy:name>ordered<")
	conf1 := strings.Index(out, `<phy:confidence type="bootstrap">95<`)
	conf2 := strings.Index(out, `<phy:confidence type="probability">0.9<`)
	clade := strings.Index(out, "<phy:clade>")
	require.True(t, name >= 0 && conf1 > name, "confidence follows name: %s", out)
	require.True(t, conf2 > conf1, "confidences keep list order")
	require.True(t, clade > conf2, "clade follows the confidences")
}

func TestWrite_ScalarRendering(t *testing.T) {
	phy := &Phylogeny{
		Rooted: boolPtr(true),
		Root:   &Clade{BranchLength: floatPtr(0.00001)},
	}
	out := writeString(t, phy)
	require.Contains(t, out, `rooted="true"`)
	require.Contains(t, out, "<phy:branch_length>1E-05</phy:branch_length>")
}

func TestWrite_DomainOffsetConvention(t *testing.T) {
	phy := &Phylogeny{
		Root: &Clade{
			Sequences: []*Sequence{{
				DomainArchitecture: &DomainArchitecture{
					Length:  intPtr(400),
					Domains: []*ProteinDomain{{Value: "A", Start: 119, End: 300}},
				},
			}},
		},
	}
	out := writeString(t, phy)
	require.Contains(t, out, `<phy:domain from="120" to="300">A</phy:domain>`)
}

func TestWrite_AcceptedShapes(t *testing.T) {
	clade := &Clade{Name: "c"}
	phy := &Phylogeny{Name: "p", Root: clade}

	require.Contains(t, writeString(t, phy), "<phy:phylogeny>")
	require.Contains(t, writeString(t, clade), "<phy:clade>")
	require.Contains(t, writeString(t, []*Phylogeny{phy, phy}), "<phy:phylogeny>")
	require.Contains(t, writeString(t, []*Clade{clade}), "<phy:clade>")

	seq := iter.Seq[*Phylogeny](slices.Values([]*Phylogeny{phy}))
	require.Contains(t, writeString(t, seq), "<phy:name>p</phy:name>")
}

func TestWrite_UsageError(t *testing.T) {
	var buf bytes.Buffer
	err := Write(42, &buf)
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	require.Zero(t, buf.Len(), "usage errors are reported before any output")

	err = Write((*Phylogeny)(nil), &buf)
	require.ErrorAs(t, err, &usageErr)
}

func TestWrite_EncodingDeclaration(t *testing.T) {
	phy := &Phylogeny{Name: "caféine", Root: &Clade{}}

	out := writeString(t, phy)
	require.Contains(t, out, "<?xml version='1.0' encoding='UTF-8'?>")
	require.Contains(t, out, "caféine", "UTF-8 output keeps runes literal")

	out = writeString(t, phy, WithEncoding("ISO-8859-1"))
	require.Contains(t, out, "encoding='ISO-8859-1'")
	require.NotContains(t, out, "é", "non-UTF-8 output is escaped to ASCII")
	require.Contains(t, out, "caf&#xE9;ine")
}

func TestWrite_RegisteredNamespacePrefix(t *testing.T) {
	RegisterNamespace("dmy", "http://example.org/dummy")
	doc := &Phyloxml{
		Other: []*Other{{Tag: "extra", Namespace: "http://example.org/dummy", Value: "v"}},
	}
	out := writeString(t, doc)
	require.Contains(t, out, `xmlns:dmy="http://example.org/dummy"`)
	require.Contains(t, out, "<dmy:extra>v</dmy:extra>")
}

func TestWrite_GeneratedPrefixForUnknownNamespace(t *testing.T) {
	doc := &Phyloxml{
		Other: []*Other{{Tag: "blob", Namespace: "http://example.org/never-registered"}},
	}
	out := writeString(t, doc)
	require.Contains(t, out, `xmlns:ns0="http://example.org/never-registered"`)
	require.Contains(t, out, "<ns0:blob/>")
}

func richAggregate() *Phyloxml {
	return &Phyloxml{
		Attributes: map[string]string{},
		Phylogenies: []*Phylogeny{{
			Rooted:           boolPtr(true),
			Rerootable:       boolPtr(false),
			BranchLengthUnit: "c",
			Name:             "round trip",
			ID:               &ID{Value: "t1", Provider: "treebank"},
			Description:      "all constructs exercised",
			Date:             &Date{Unit: "mya", Desc: "estimate", Value: floatPtr(150), Minimum: floatPtr(120.5), Maximum: floatPtr(180)},
			Confidences:      []*Confidence{{Value: floatPtr(95), Type: "bootstrap"}},
			Root: &Clade{
				IDSource:     "c0",
				Name:         "root",
				BranchLength: floatPtr(0.06),
				Confidences:  []*Confidence{{Value: floatPtr(88.5), Type: "bootstrap"}},
				Width:        floatPtr(2.5),
				Color:        &BranchColor{Red: 16, Green: 128, Blue: 255},
				NodeID:       &ID{Value: "n1", Provider: "ncbi"},
				Taxonomies: []*Taxonomy{{
					ID:             &ID{Value: "6645", Provider: "ncbi"},
					Code:           "OCTVU",
					ScientificName: "Octopus vulgaris",
					Authority:      "Cuvier, 1797",
					CommonNames:    []string{"common octopus", "octopus"},
					Synonyms:       []string{"Octopus octopodia"},
					Rank:           "species",
					URI:            &URI{Value: "http://example.org/6645", Desc: "browser", Type: "taxonomy"},
				}},
				Sequences: []*Sequence{{
					Type:      "protein",
					IDSource:  "s1",
					Symbol:    "ADHX",
					Accession: &Accession{Value: "P81431", Source: "UniProtKB"},
					Name:      "Alcohol dehydrogenase class-3",
					Location:  "17q25",
					MolSeq:    &MolSeq{Value: "TDATGKPIK", IsAligned: boolPtr(true)},
					URI:       &URI{Value: "http://example.org/P81431"},
					Annotations: []*Annotation{{
						Ref:        "EC:1.1.1.1",
						Desc:       "alcohol dehydrogenase",
						Confidence: &Confidence{Value: floatPtr(0.99), Type: "probability"},
						Properties: []*Property{{Value: "7", Ref: "x:y", AppliesTo: "annotation", Datatype: "xsd:integer"}},
					}},
					DomainArchitecture: &DomainArchitecture{
						Length:  intPtr(400),
						Domains: []*ProteinDomain{{Value: "A", Start: 119, End: 300, Confidence: floatPtr(0.9), ID: "d1"}},
					},
				}},
				Events: &Events{Type: "speciation_or_duplication", Duplications: intPtr(1), Speciations: intPtr(2), Losses: intPtr(0), Confidence: &Confidence{Value: floatPtr(0.8), Type: "p"}},
				BinaryCharacters: &BinaryCharacters{
					Type:        "parsimony",
					GainedCount: intPtr(2),
					Gained:      []string{"xyl", "mal"},
					Lost:        []string{"gal"},
				},
				Distributions: []*Distribution{{
					Desc:   "Hirschweg",
					Points: []*Point{{GeodeticDatum: "WGS84", Lat: floatPtr(47.481), Long: floatPtr(8.768), Alt: floatPtr(472), AltUnit: "m"}},
					Polygons: []*Polygon{{Points: []*Point{
						{GeodeticDatum: "WGS84", Lat: floatPtr(1), Long: floatPtr(2)},
						{GeodeticDatum: "WGS84", Lat: floatPtr(3), Long: floatPtr(4)},
					}}},
				}},
				Date:       &Date{Unit: "mya", Value: floatPtr(50)},
				References: []*Reference{{DOI: "10.1000/demo", Desc: "a reference"}},
				Properties: []*Property{{Value: "200", Ref: "NOAA:depth", AppliesTo: "clade", Datatype: "xsd:integer", Unit: "METRIC:m"}},
				Clades: []*Clade{
					{Name: "A", BranchLength: floatPtr(0.102)},
					{Name: "B", BranchLength: floatPtr(0.34)},
				},
			},
			CladeRelations:    []*CladeRelation{{Type: "network_connection", IDRef0: "c1", IDRef1: "c2", Distance: "0.1", Confidence: &Confidence{Value: floatPtr(0.7), Type: "p"}}},
			SequenceRelations: []*SequenceRelation{{Type: "orthology", IDRef0: "s1", IDRef1: "s2", Distance: floatPtr(0.3)}},
			Properties:        []*Property{{Value: "0.5", Ref: "BioProp:wetness", AppliesTo: "phylogeny", Datatype: "xsd:double"}},
		}},
	}
}

func TestRoundTrip_Aggregate(t *testing.T) {
	original := richAggregate()

	var buf bytes.Buffer
	require.NoError(t, Write(original, &buf))
	parsed, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, original, parsed, "read(write(A)) is structurally equal to A")
}

func TestRoundTrip_Indented(t *testing.T) {
	original := richAggregate()

	var buf bytes.Buffer
	require.NoError(t, Write(original, &buf, WithIndent("  ")))
	parsed, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, original, parsed, "pretty printing must not change the parsed result")
}

func TestRoundTrip_ForeignContentThreeDeep(t *testing.T) {
	original := &Phyloxml{
		Attributes: map[string]string{},
		Phylogenies: []*Phylogeny{{
			Rooted: boolPtr(true),
			Root: &Clade{
				Name: "host",
				Other: []*Other{{
					Tag:       "a",
					Namespace: "http://example.org/deep",
					Children: []*Other{{
						Tag:       "b",
						Namespace: "http://example.org/deep",
						Children: []*Other{{
							Tag:        "c",
							Namespace:  "http://example.org/deep",
							Attributes: map[string]string{"attr": "v"},
							Value:      "text",
						}},
					}},
				}},
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(original, &buf))
	parsed, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, original, parsed, "foreign subtrees survive verbatim")
}
