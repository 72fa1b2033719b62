package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nucleotide-agent/internal/agent"
	"github.com/pdiddy/nucleotide-agent/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the agent to an MCP host over stdio",
	Long: `Serve exposes find_sequence_records and get_sequence_record as MCP tools
on stdin/stdout so an MCP-speaking host can drive the agent.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log.SetPrefix("[MCP] ")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadAgentConfig(cmd)
	return mcpserver.Serve(ctx, agent.New(cfg.Entrez), version)
}
