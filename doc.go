// Package phyloxml reads and writes phyloXML documents.
//
// phyloXML (http://www.phyloxml.org) is an XML vocabulary for phylogenetic
// trees annotated with taxonomic, sequence, and geographic data. The package
// is a bidirectional codec between that vocabulary and the object model
// defined here: Read materializes a whole document, Parse streams one
// phylogeny at a time with bounded memory, and Write serializes the model
// back with the exact child ordering the schema mandates.
//
// Elements from namespaces other than the phyloXML vocabulary are preserved
// as opaque Other nodes at the point of first appearance, so a read-then-write
// round trip keeps non-vocabulary content intact.
//
// The package does not validate documents against the phyloXML XSD; it
// rejects only structural violations that would produce an incorrect object
// graph, reported as *SchemaError. Malformed XML syntax is reported by the
// underlying tokenizer as *encoding/xml.SyntaxError.
package phyloxml
