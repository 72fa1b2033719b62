// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import "io"

// Record is a fetched nucleotide record in its full parsed form. Field
// accessors read the GBSet → GBSeq path; every field is optional and
// absence is never fatal.
type Record struct {
	root *Node
}

// ParseRecord parses an EFetch XML response. No particular root element is
// required: a record that does not follow the GBSet schema still parses,
// its accessors simply report absent fields.
func ParseRecord(r io.Reader) (*Record, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return &Record{root: root}, nil
}

// Map returns the entire parsed structure for JSON serialization. The full
// document is preserved, not just the fields the accessors extract.
func (r *Record) Map() map[string]any {
	return r.root.Map()
}

func (r *Record) gbseq() *Node {
	if r.root.Name != "GBSet" {
		return nil
	}
	return r.root.Child("GBSeq")
}

// Definition returns the record's human-readable title.
func (r *Record) Definition() (string, bool) {
	return r.field("GBSeq_definition")
}

// PrimaryAccession returns the record's primary accession number.
func (r *Record) PrimaryAccession() (string, bool) {
	return r.field("GBSeq_primary-accession")
}

// AccessionVersion returns the versioned accession string.
func (r *Record) AccessionVersion() (string, bool) {
	return r.field("GBSeq_accession-version")
}

func (r *Record) field(name string) (string, bool) {
	seq := r.gbseq()
	if seq == nil {
		return "", false
	}
	s, ok := seq.String(name)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
