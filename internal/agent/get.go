// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/nucleotide-agent/internal/entrez"
	"github.com/pdiddy/nucleotide-agent/internal/httputil"
)

const (
	recordDataSource = "Nucleotide"
	portalBaseURL    = "https://www.ncbi.nlm.nih.gov/nuccore/"
)

// GetSequenceRecord retrieves a nucleotide record in two forms: the XML
// record re-serialized as a JSON artifact, then a flat-file artifact that
// references the upstream URL directly. The two fetches are strictly
// sequential; the flat-file step reuses metadata extracted from the XML
// step and is never attempted if that step fails.
func (a *Agent) GetSequenceRecord(ctx context.Context, accession string, rc ResponseContext) error {
	process := rc.BeginProcess("Retrieving a record from the NCBI Nucleotide database")

	xmlURL := a.fetchURL(accession, "xml")
	process.Log("Retrieving XML nucleotide record from " + xmlURL)

	resp, err := httputil.Get(ctx, a.client, xmlURL, a.cfg.UserAgent)
	if err != nil {
		return err
	}

	if !httputil.IsSuccess(resp.StatusCode) {
		httputil.Discard(resp)
		process.Log(fmt.Sprintf("Response code: %d", resp.StatusCode))
		return rc.Reply(ctx, "Failed to retrieve XML record")
	}

	process.Log("Converting XML record to JSON")
	record, parseErr := entrez.ParseRecord(resp.Body)
	resp.Body.Close()
	if parseErr != nil {
		// An unparseable response ends the operation the same way a bad
		// status does.
		process.Log("Failed to process XML record: " + parseErr.Error())
		return rc.Reply(ctx, "Failed to retrieve XML record")
	}

	definition, _ := record.Definition()

	meta := Metadata{DataSource: recordDataSource}
	if acc, ok := record.PrimaryAccession(); ok {
		meta.PrimaryAccession = acc
		meta.PortalLink = portalBaseURL + acc
		process.Log("An online version of the record is available at " + meta.PortalLink)
	}
	if ver, ok := record.AccessionVersion(); ok {
		meta.AccessionVersion = ver
	}

	body, err := json.Marshal(record.Map())
	if err != nil {
		return fmt.Errorf("serializing record: %w", err)
	}

	if err := process.CreateArtifact(ctx, Artifact{
		Mimetype:    "application/json",
		Description: fmt.Sprintf("JSON nucleotide sequence record %s: %s", accession, definition),
		Content:     body,
		Metadata:    meta.WithDerivedFrom(xmlURL),
	}); err != nil {
		return err
	}

	flatFileURL := a.fetchURL(accession, "text")
	process.Log("Retrieving flat file nucleotide record from " + flatFileURL)

	flatResp, err := httputil.Get(ctx, a.client, flatFileURL, a.cfg.UserAgent)
	if err != nil {
		return err
	}
	httputil.Discard(flatResp)

	if !httputil.IsSuccess(flatResp.StatusCode) {
		process.Log(fmt.Sprintf("Response code: %d", flatResp.StatusCode))
		return rc.Reply(ctx, "Failed to retrieve flat file record")
	}

	// The flat file is referenced by URL, not downloaded into the artifact.
	if err := process.CreateArtifact(ctx, Artifact{
		Mimetype:    "text/plain",
		Description: fmt.Sprintf("Flat file nucleotide sequence record %s: %s", accession, definition),
		URIs:        []string{flatFileURL},
		Metadata:    meta,
	}); err != nil {
		return err
	}

	reply := "The two artifacts contain the same data but in different formats. The flat file format is more" +
		" human-friendly, while the JSON format is more machine-friendly. The JSON format was converted from" +
		" the original XML returned by the API to make it easier to process."
	if meta.PortalLink != "" {
		reply += " The record is also available in the NCBI Nucleotide portal at " + meta.PortalLink
	}
	return rc.Reply(ctx, reply)
}
