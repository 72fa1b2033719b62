// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent implements the Nucleotide agent: search and record-fetch
// operations against NCBI's Nucleotide ("nuccore") database, the response
// sinks they write to, and the entrypoint dispatch.
package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/nucleotide-agent/internal/entrez"
	"github.com/pdiddy/nucleotide-agent/pkg/types"
)

// Operation identifiers.
const (
	OpFindSequenceRecords = "find_sequence_records"
	OpGetSequenceRecord   = "get_sequence_record"
)

// ErrUnknownEntrypoint reports a dispatch on an operation identifier the
// agent does not implement. This is an integration bug in the caller, not
// a recoverable input condition.
var ErrUnknownEntrypoint = errors.New("unknown entrypoint")

// Params carries operation parameters. Only the field matching the
// dispatched entrypoint is read.
type Params struct {
	SearchTerms     string
	AccessionNumber string
}

// Card describes the agent and its entrypoints to a host.
type Card struct {
	Name        string
	Description string
	Entrypoints []Entrypoint
}

// Entrypoint is one operation the agent advertises.
type Entrypoint struct {
	ID          string
	Description string
}

// FindDescription documents the search entrypoint for hosts.
// See https://www.ncbi.nlm.nih.gov/books/NBK3837/, section "Nucleotide".
const FindDescription = `Use full-text search to find sequence record IDs in NCBI's Nucleotide ("nuccore") database. The records come from sequence databases like GenBank, RefSeq, TPA, and PDB.`

// GetDescription documents the record-fetch entrypoint for hosts.
const GetDescription = `Given a sequence record ID (e.g. a GenBank accession number, GI number, Nucleotide UID, etc.), downloads the associated sequence record. Retrieves a human-friendly "flat file" (.gb) record and generates a machine-friendly JSON version.`

// Agent executes the Nucleotide operations. It holds no per-invocation
// state; every call allocates its own transient results.
type Agent struct {
	client *http.Client
	cfg    types.EntrezConfig
}

// New builds an Agent from an Entrez configuration, applying defaults for
// the base URL.
func New(cfg types.EntrezConfig) *Agent {
	if cfg.BaseURL == "" {
		cfg.BaseURL = entrez.DefaultBaseURL
	}
	return &Agent{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

// Card returns the agent's descriptor.
func (a *Agent) Card() Card {
	return Card{
		Name:        "Nucleotide",
		Description: `Search tools for NCBI's Nucleotide ("nuccore") sequence database.`,
		Entrypoints: []Entrypoint{
			{ID: OpFindSequenceRecords, Description: FindDescription},
			{ID: OpGetSequenceRecord, Description: GetDescription},
		},
	}
}

// Run dispatches an operation by its entrypoint identifier. An identifier
// outside the agent's card is fatal and propagates to the caller.
func (a *Agent) Run(ctx context.Context, entrypoint string, params Params, rc ResponseContext) error {
	switch entrypoint {
	case OpFindSequenceRecords:
		return a.FindSequenceRecords(ctx, params.SearchTerms, rc)
	case OpGetSequenceRecord:
		return a.GetSequenceRecord(ctx, params.AccessionNumber, rc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEntrypoint, entrypoint)
	}
}

// identification appends the optional E-utilities tool/email parameters.
func (a *Agent) identification() string {
	var s string
	if a.cfg.Tool != "" {
		s += "&tool=" + url.QueryEscape(a.cfg.Tool)
	}
	if a.cfg.Email != "" {
		s += "&email=" + url.QueryEscape(a.cfg.Email)
	}
	return s
}

func (a *Agent) searchURL(encodedTerms string) string {
	return a.cfg.BaseURL + "/esearch.fcgi?db=nuccore&term=" + encodedTerms + a.identification()
}

func (a *Agent) fetchURL(id, retmode string) string {
	return a.cfg.BaseURL + "/efetch.fcgi?db=nuccore&id=" + id + "&rettype=gb&retmode=" + retmode + a.identification()
}
