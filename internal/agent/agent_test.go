// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/nucleotide-agent/pkg/types"
)

// --- fake response context ---

// fakeContext records everything an operation emits. It implements both
// ResponseContext and Process; operations here never run concurrently.
type fakeContext struct {
	logs      []string
	artifacts []Artifact
	replies   []string
}

func (f *fakeContext) BeginProcess(summary string) Process {
	f.logs = append(f.logs, summary)
	return f
}

func (f *fakeContext) Log(text string) {
	f.logs = append(f.logs, text)
}

func (f *fakeContext) CreateArtifact(_ context.Context, a Artifact) error {
	f.artifacts = append(f.artifacts, a)
	return nil
}

func (f *fakeContext) Reply(_ context.Context, text string) error {
	f.replies = append(f.replies, text)
	return nil
}

func (f *fakeContext) logContaining(substr string) bool {
	for _, l := range f.logs {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func testAgent(baseURL string) *Agent {
	return New(types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "nucleotide-agent/test",
		},
		BaseURL: baseURL,
	})
}

// --- dispatch ---

func TestRunUnknownEntrypoint(t *testing.T) {
	a := testAgent("http://localhost:1")
	err := a.Run(context.Background(), "summon_sequences", Params{}, &fakeContext{})
	if !errors.Is(err, ErrUnknownEntrypoint) {
		t.Fatalf("err = %v, want ErrUnknownEntrypoint", err)
	}
}

func TestCardEntrypoints(t *testing.T) {
	card := testAgent("").Card()
	if card.Name != "Nucleotide" {
		t.Errorf("card name = %q", card.Name)
	}
	if len(card.Entrypoints) != 2 {
		t.Fatalf("len(entrypoints) = %d, want 2", len(card.Entrypoints))
	}
	if card.Entrypoints[0].ID != OpFindSequenceRecords || card.Entrypoints[1].ID != OpGetSequenceRecord {
		t.Errorf("entrypoint ids = %q, %q", card.Entrypoints[0].ID, card.Entrypoints[1].ID)
	}
}

func TestIdentificationParams(t *testing.T) {
	a := New(types.EntrezConfig{
		BaseURL: "https://example.org/eutils",
		Tool:    "nucleotide-agent",
		Email:   "curator@example.com",
	})

	url := a.searchURL("Rattus+rattus")
	if !strings.Contains(url, "&tool=nucleotide-agent") || !strings.Contains(url, "&email=curator%40example.com") {
		t.Errorf("identification missing from URL: %s", url)
	}
}

func TestNoIdentificationByDefault(t *testing.T) {
	a := testAgent("https://example.org/eutils")
	url := a.fetchURL("JQ814272", "xml")
	want := "https://example.org/eutils/efetch.fcgi?db=nuccore&id=JQ814272&rettype=gb&retmode=xml"
	if url != want {
		t.Errorf("fetch URL = %s, want %s", url, want)
	}
}
