// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import "context"

// Artifact is one unit of operation output: either an inline body or a set
// of URIs pointing at the upstream resource, plus descriptive metadata.
type Artifact struct {
	Mimetype    string
	Description string

	// Content is the inline body. Nil for URI-only artifacts.
	Content []byte

	// URIs reference the upstream resource directly instead of embedding
	// its content. Empty for inline artifacts.
	URIs []string

	Metadata Metadata
}

// Metadata carries the named artifact metadata fields. Empty fields are
// optional and omitted from serialized forms; one bundle is assembled per
// operation and shared by every artifact it emits.
type Metadata struct {
	DataSource       string `json:"data_source,omitempty" yaml:"data_source,omitempty"`
	SearchTerms      string `json:"api_search_terms,omitempty" yaml:"api_search_terms,omitempty"`
	DerivedFrom      string `json:"derived_from,omitempty" yaml:"derived_from,omitempty"`
	PrimaryAccession string `json:"primary_accession,omitempty" yaml:"primary_accession,omitempty"`
	AccessionVersion string `json:"accession_version,omitempty" yaml:"accession_version,omitempty"`
	PortalLink       string `json:"link_to_view_record_on_ncbi_portal,omitempty" yaml:"link_to_view_record_on_ncbi_portal,omitempty"`
}

// WithDerivedFrom returns a copy of the metadata with DerivedFrom set. The
// record fetch shares one bundle between artifacts that differ only in
// this field.
func (m Metadata) WithDerivedFrom(url string) Metadata {
	m.DerivedFrom = url
	return m
}

// Process receives the log lines and artifacts of one operation invocation.
type Process interface {
	Log(text string)
	CreateArtifact(ctx context.Context, a Artifact) error
}

// ResponseContext is the host collaborator an operation writes its side
// effects to: a process trace plus direct replies to the caller.
type ResponseContext interface {
	BeginProcess(summary string) Process
	Reply(ctx context.Context, text string) error
}
