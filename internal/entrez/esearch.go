// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"errors"
	"io"
	"unicode/utf8"
)

// ErrMissingRoot reports an ESearch response without the eSearchResult
// root element. The search call treats this as fatal: no partial result
// is produced.
var ErrMissingRoot = errors.New("invalid response from NCBI: missing eSearchResult element")

// ErrorKind classifies upstream query diagnostics. These are data, not
// failures: the request succeeded and NCBI reported something about the
// query itself.
type ErrorKind int

const (
	// ErrorPhraseNotFound means the search phrase matched no indexed
	// metadata field.
	ErrorPhraseNotFound ErrorKind = iota
)

// QueryError is a structured upstream diagnostic. Operations branch on
// Kind rather than inspecting message strings.
type QueryError struct {
	Kind   ErrorKind
	Phrase string
}

// String renders the diagnostic the way it appears in the serialized
// errors list.
func (e QueryError) String() string {
	switch e.Kind {
	case ErrorPhraseNotFound:
		return "Phrase not found: " + e.Phrase
	}
	return e.Phrase
}

// SearchResult is the normalized form of an ESearch response. It is built
// once per search call and serialized directly into the JSON artifact.
//
// SequenceIDs is declared for schema compatibility but never populated:
// the normalizer performs no ID-list extraction.
type SearchResult struct {
	Count       int      `json:"count"`
	Page        int      `json:"page"`
	PageSize    int      `json:"page_size"`
	SequenceIDs []string `json:"sequence_ids"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`

	queryErrors []QueryError
}

// QueryErrors returns the structured diagnostics behind the Errors list.
func (r *SearchResult) QueryErrors() []QueryError {
	return r.queryErrors
}

// HasError reports whether any diagnostic of the given kind is present.
func (r *SearchResult) HasError(kind ErrorKind) bool {
	for _, e := range r.queryErrors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// maxPhraseLen caps the phrase echoed back in a PhraseNotFound diagnostic.
const maxPhraseLen = 100

// ParseSearchResult normalizes an ESearch XML response.
//
// Count, RetStart, and RetMax default to 0 when absent or non-numeric.
// Only the PhraseNotFound member of ErrorList is surfaced; other error
// sub-elements (FieldNotFound, etc.) are intentionally ignored. A
// WarningList OutputMessage is carried over verbatim.
func ParseSearchResult(r io.Reader) (*SearchResult, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if root.Name != "eSearchResult" {
		return nil, ErrMissingRoot
	}

	result := &SearchResult{
		Count:       root.Int("Count"),
		Page:        root.Int("RetStart"),
		PageSize:    root.Int("RetMax"),
		SequenceIDs: []string{},
		Errors:      []string{},
		Warnings:    []string{},
	}

	if phrase, ok := root.String("ErrorList", "PhraseNotFound"); ok && phrase != "" {
		qe := QueryError{Kind: ErrorPhraseNotFound, Phrase: truncatePhrase(phrase, maxPhraseLen)}
		result.queryErrors = append(result.queryErrors, qe)
		result.Errors = append(result.Errors, qe.String())
	}

	if msg, ok := root.String("WarningList", "OutputMessage"); ok && msg != "" {
		result.Warnings = append(result.Warnings, msg)
	}

	return result, nil
}

// truncatePhrase keeps the first max characters of s and appends an
// ellipsis marker when anything was cut.
func truncatePhrase(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}
