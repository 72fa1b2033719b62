// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package artifacts

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/nucleotide-agent/internal/agent"
)

// Console adapts the agent's response contract to a terminal session: log
// lines go to Logw, artifacts are persisted through the store, and replies
// are printed to Out.
type Console struct {
	Store *Store
	Logw  io.Writer
	Out   io.Writer
}

// BeginProcess prints the process summary and returns the process sink.
func (c *Console) BeginProcess(summary string) agent.Process {
	fmt.Fprintln(c.Logw, summary)
	return consoleProcess{c}
}

// Reply prints the agent's reply for the user.
func (c *Console) Reply(_ context.Context, text string) error {
	_, err := fmt.Fprintln(c.Out, text)
	return err
}

type consoleProcess struct {
	c *Console
}

func (p consoleProcess) Log(text string) {
	fmt.Fprintln(p.c.Logw, "  "+text)
}

func (p consoleProcess) CreateArtifact(ctx context.Context, a agent.Artifact) error {
	id, err := p.c.Store.Save(ctx, a)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.c.Logw, "  stored artifact %d (%s): %s\n", id, a.Mimetype, a.Description)
	return nil
}
