// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/nucleotide-agent/internal/entrez"
	"github.com/pdiddy/nucleotide-agent/internal/httputil"
)

const searchDataSource = "Nucleotide database"

// phraseNotFoundAdvice is sent when NCBI reports that the phrase matched
// no indexed field. It is advisory, not an error signal.
const phraseNotFoundAdvice = "The search failed with the error: 'Phrase not found'. This means the search terms did not match any indexed metadata fields. " +
	"The agent's capabilities are limited to: (1) find_sequence_records - searches text metadata like organism names, titles, and authors; " +
	"(2) get_sequence_record - retrieves a record by known accession number."

// encodeSearchTerms joins terms with the E-utilities "+" separator. Known
// limitation: only spaces are encoded; other reserved characters pass
// through unchanged.
func encodeSearchTerms(terms string) string {
	return strings.ReplaceAll(terms, " ", "+")
}

// FindSequenceRecords runs a full-text ESearch against nuccore and emits a
// JSON artifact with the normalized result. Transport and normalization
// failures are logged to the process and end the operation without an
// artifact; they are not raised to the caller.
func (a *Agent) FindSequenceRecords(ctx context.Context, searchTerms string, rc ResponseContext) error {
	process := rc.BeginProcess("Searching the NCBI Nucleotide database")

	searchURL := a.searchURL(encodeSearchTerms(searchTerms))
	process.Log("Sending GET request to " + searchURL)

	resp, err := httputil.Get(ctx, a.client, searchURL, a.cfg.UserAgent)
	if err != nil {
		// Connection-level failures propagate to the caller.
		return err
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		process.Log(fmt.Sprintf("Response code: %d", resp.StatusCode))
		return nil
	}

	results, err := entrez.ParseSearchResult(resp.Body)
	if err != nil {
		process.Log("Failed to process search results: " + err.Error())
		return nil
	}

	if results.Count == 0 {
		process.Log("No matching records found in the NCBI Nucleotide database.")
		if len(results.Errors) > 0 {
			process.Log("NCBI reported: " + strings.Join(results.Errors, ", "))
		}
		if len(results.Warnings) > 0 {
			process.Log("Note: " + strings.Join(results.Warnings, ", "))
		}
	}

	body, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("serializing search results: %w", err)
	}

	if err := process.CreateArtifact(ctx, Artifact{
		Mimetype:    "application/json",
		Description: fmt.Sprintf("Nucleotide IDs for sequence records matching %q", searchTerms),
		Content:     body,
		Metadata: Metadata{
			DataSource:  searchDataSource,
			SearchTerms: searchTerms,
			DerivedFrom: searchURL,
		},
	}); err != nil {
		return err
	}

	if results.HasError(entrez.ErrorPhraseNotFound) {
		return rc.Reply(ctx, phraseNotFoundAdvice)
	}
	return nil
}
