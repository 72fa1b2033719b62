// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const recordXML = `<?xml version="1.0"?>
<GBSet>
  <GBSeq>
    <GBSeq_locus>JQ814272</GBSeq_locus>
    <GBSeq_length>340</GBSeq_length>
    <GBSeq_definition>Rattus rattus voucher R213 cytochrome b (cytb) gene</GBSeq_definition>
    <GBSeq_primary-accession>JQ814272</GBSeq_primary-accession>
    <GBSeq_accession-version>JQ814272.1</GBSeq_accession-version>
  </GBSeq>
</GBSet>`

const flatFileText = `LOCUS       JQ814272                 340 bp    DNA     linear   ROD 25-SEP-2012
DEFINITION  Rattus rattus voucher R213 cytochrome b (cytb) gene.
//`

// fetchServer serves efetch requests, switching on retmode. It counts the
// flat-text requests so tests can assert the step was or was not taken.
func fetchServer(t *testing.T, xmlStatus, textStatus int, xmlBody string, textRequests *int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/efetch.fcgi" {
			t.Errorf("path = %s, want /efetch.fcgi", r.URL.Path)
		}
		switch r.URL.Query().Get("retmode") {
		case "xml":
			w.WriteHeader(xmlStatus)
			w.Write([]byte(xmlBody))
		case "text":
			atomic.AddInt32(textRequests, 1)
			w.WriteHeader(textStatus)
			w.Write([]byte(flatFileText))
		default:
			t.Errorf("unexpected retmode %q", r.URL.Query().Get("retmode"))
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestGetSequenceRecord(t *testing.T) {
	var textRequests int32
	ts := fetchServer(t, http.StatusOK, http.StatusOK, recordXML, &textRequests)

	fc := &fakeContext{}
	err := testAgent(ts.URL).Run(context.Background(), OpGetSequenceRecord,
		Params{AccessionNumber: "JQ814272"}, fc)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fc.artifacts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(fc.artifacts))
	}

	jsonArtifact := fc.artifacts[0]
	if jsonArtifact.Mimetype != "application/json" {
		t.Errorf("artifact 0 mimetype = %q, want application/json", jsonArtifact.Mimetype)
	}
	if !strings.Contains(jsonArtifact.Description, "JQ814272") ||
		!strings.Contains(jsonArtifact.Description, "cytochrome b") {
		t.Errorf("artifact 0 description = %q", jsonArtifact.Description)
	}
	if !strings.Contains(jsonArtifact.Metadata.DerivedFrom, "retmode=xml") {
		t.Errorf("artifact 0 derived_from = %q", jsonArtifact.Metadata.DerivedFrom)
	}
	if jsonArtifact.Metadata.PrimaryAccession != "JQ814272" {
		t.Errorf("primary accession = %q", jsonArtifact.Metadata.PrimaryAccession)
	}
	if jsonArtifact.Metadata.AccessionVersion != "JQ814272.1" {
		t.Errorf("accession version = %q", jsonArtifact.Metadata.AccessionVersion)
	}
	if jsonArtifact.Metadata.PortalLink != "https://www.ncbi.nlm.nih.gov/nuccore/JQ814272" {
		t.Errorf("portal link = %q", jsonArtifact.Metadata.PortalLink)
	}

	// The JSON body holds the whole parsed record, not just the fields the
	// metadata extraction reads.
	var decoded map[string]any
	if err := json.Unmarshal(jsonArtifact.Content, &decoded); err != nil {
		t.Fatalf("decoding artifact body: %v", err)
	}
	gbseq := decoded["GBSet"].(map[string]any)["GBSeq"].(map[string]any)
	if gbseq["GBSeq_length"] != "340" {
		t.Errorf("GBSeq_length = %v, want 340 preserved in full structure", gbseq["GBSeq_length"])
	}

	textArtifact := fc.artifacts[1]
	if textArtifact.Mimetype != "text/plain" {
		t.Errorf("artifact 1 mimetype = %q, want text/plain", textArtifact.Mimetype)
	}
	if len(textArtifact.Content) != 0 {
		t.Errorf("artifact 1 should reference the flat file by URI, not embed it")
	}
	if len(textArtifact.URIs) != 1 || !strings.Contains(textArtifact.URIs[0], "retmode=text") {
		t.Errorf("artifact 1 uris = %v", textArtifact.URIs)
	}
	if textArtifact.Metadata.DerivedFrom != "" {
		t.Errorf("artifact 1 derived_from = %q, want empty", textArtifact.Metadata.DerivedFrom)
	}
	if textArtifact.Metadata.PortalLink != jsonArtifact.Metadata.PortalLink {
		t.Errorf("artifacts should share the metadata bundle")
	}

	if len(fc.replies) != 1 {
		t.Fatalf("len(replies) = %d, want 1", len(fc.replies))
	}
	if !strings.Contains(fc.replies[0], "https://www.ncbi.nlm.nih.gov/nuccore/JQ814272") {
		t.Errorf("final reply %q should mention the portal URL", fc.replies[0])
	}
	if !fc.logContaining("An online version of the record is available") {
		t.Errorf("logs = %v, want portal line", fc.logs)
	}
}

func TestGetXMLFetchFailure(t *testing.T) {
	var textRequests int32
	ts := fetchServer(t, http.StatusBadGateway, http.StatusOK, "", &textRequests)

	fc := &fakeContext{}
	if err := testAgent(ts.URL).GetSequenceRecord(context.Background(), "JQ814272", fc); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fc.artifacts) != 0 {
		t.Errorf("len(artifacts) = %d, want 0", len(fc.artifacts))
	}
	if len(fc.replies) != 1 || fc.replies[0] != "Failed to retrieve XML record" {
		t.Errorf("replies = %v, want single failure reply", fc.replies)
	}
	if atomic.LoadInt32(&textRequests) != 0 {
		t.Errorf("flat-text fetch was attempted after the XML fetch failed")
	}
	if !fc.logContaining("Response code: 502") {
		t.Errorf("logs = %v, want status code line", fc.logs)
	}
}

func TestGetMalformedXMLTerminatesEarly(t *testing.T) {
	var textRequests int32
	ts := fetchServer(t, http.StatusOK, http.StatusOK, `<GBSet><GBSeq>`, &textRequests)

	fc := &fakeContext{}
	if err := testAgent(ts.URL).GetSequenceRecord(context.Background(), "JQ814272", fc); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fc.artifacts) != 0 {
		t.Errorf("len(artifacts) = %d, want 0", len(fc.artifacts))
	}
	if len(fc.replies) != 1 || fc.replies[0] != "Failed to retrieve XML record" {
		t.Errorf("replies = %v, want single failure reply", fc.replies)
	}
	if atomic.LoadInt32(&textRequests) != 0 {
		t.Errorf("flat-text fetch was attempted after a parse failure")
	}
}

func TestGetFlatFileFetchFailure(t *testing.T) {
	var textRequests int32
	ts := fetchServer(t, http.StatusOK, http.StatusNotFound, recordXML, &textRequests)

	fc := &fakeContext{}
	if err := testAgent(ts.URL).GetSequenceRecord(context.Background(), "JQ814272", fc); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The JSON artifact from step 1 stands; step 2 fails with a reply and
	// no second artifact.
	if len(fc.artifacts) != 1 {
		t.Fatalf("len(artifacts) = %d, want 1", len(fc.artifacts))
	}
	if fc.artifacts[0].Mimetype != "application/json" {
		t.Errorf("surviving artifact mimetype = %q", fc.artifacts[0].Mimetype)
	}
	if len(fc.replies) != 1 || fc.replies[0] != "Failed to retrieve flat file record" {
		t.Errorf("replies = %v, want single flat-file failure reply", fc.replies)
	}
}

func TestGetRecordWithoutAccession(t *testing.T) {
	var textRequests int32
	ts := fetchServer(t, http.StatusOK, http.StatusOK,
		`<GBSet><GBSeq><GBSeq_definition>unnamed record</GBSeq_definition></GBSeq></GBSet>`, &textRequests)

	fc := &fakeContext{}
	if err := testAgent(ts.URL).GetSequenceRecord(context.Background(), "XYZ", fc); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fc.artifacts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(fc.artifacts))
	}
	if fc.artifacts[0].Metadata.PortalLink != "" {
		t.Errorf("portal link = %q, want empty when no primary accession", fc.artifacts[0].Metadata.PortalLink)
	}
	if len(fc.replies) != 1 {
		t.Fatalf("len(replies) = %d, want 1", len(fc.replies))
	}
	if strings.Contains(fc.replies[0], "portal") {
		t.Errorf("reply %q should omit the portal sentence", fc.replies[0])
	}
}
