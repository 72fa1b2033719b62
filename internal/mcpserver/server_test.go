// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdiddy/nucleotide-agent/internal/agent"
	"github.com/pdiddy/nucleotide-agent/pkg/types"
)

func testAgent(baseURL string) *agent.Agent {
	return agent.New(types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "nucleotide-agent/test",
		},
		BaseURL: baseURL,
	})
}

func TestFindHandler(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<eSearchResult><Count>7</Count><RetMax>20</RetMax><RetStart>0</RetStart></eSearchResult>`))
	}))
	defer ts.Close()

	handler := FindHandler(testAgent(ts.URL))
	_, result, err := handler(context.Background(), nil, FindInput{SearchTerms: "Rattus rattus"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	if len(result.Artifacts) != 1 {
		t.Fatalf("len(artifacts) = %d, want 1", len(result.Artifacts))
	}
	if result.Artifacts[0].Mimetype != "application/json" {
		t.Errorf("mimetype = %q", result.Artifacts[0].Mimetype)
	}

	var decoded struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(result.Artifacts[0].Content, &decoded); err != nil {
		t.Fatalf("decoding embedded content: %v", err)
	}
	if decoded.Count != 7 {
		t.Errorf("count = %d, want 7", decoded.Count)
	}

	if len(result.Log) == 0 {
		t.Errorf("expected process log lines in the result")
	}
}

func TestGetHandlerFailureStillReportsReply(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	handler := GetHandler(testAgent(ts.URL))
	_, result, err := handler(context.Background(), nil, GetInput{AccessionNumber: "JQ814272"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	if len(result.Artifacts) != 0 {
		t.Errorf("len(artifacts) = %d, want 0", len(result.Artifacts))
	}
	if len(result.Replies) != 1 || result.Replies[0] != "Failed to retrieve XML record" {
		t.Errorf("replies = %v, want single failure reply", result.Replies)
	}
}

func TestGetHandlerURIArtifactNotEmbedded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("retmode") == "xml" {
			w.Write([]byte(`<GBSet><GBSeq><GBSeq_primary-accession>JQ814272</GBSeq_primary-accession></GBSeq></GBSet>`))
			return
		}
		w.Write([]byte("LOCUS JQ814272"))
	}))
	defer ts.Close()

	handler := GetHandler(testAgent(ts.URL))
	_, result, err := handler(context.Background(), nil, GetInput{AccessionNumber: "JQ814272"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	if len(result.Artifacts) != 2 {
		t.Fatalf("len(artifacts) = %d, want 2", len(result.Artifacts))
	}
	flat := result.Artifacts[1]
	if flat.Content != nil {
		t.Errorf("flat-file artifact should not embed content")
	}
	if len(flat.URIs) != 1 {
		t.Errorf("flat-file artifact uris = %v", flat.URIs)
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	// Construction must not panic and both tool definitions must resolve.
	server := NewServer(testAgent("http://localhost:1"), "test")
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
	if FindTool().Name != agent.OpFindSequenceRecords || GetTool().Name != agent.OpGetSequenceRecord {
		t.Errorf("tool names do not match the agent card")
	}
}
