package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nucleotide-agent/internal/agent"
	"github.com/pdiddy/nucleotide-agent/internal/artifacts"
)

var searchCmd = &cobra.Command{
	Use:   "search [terms...]",
	Short: "Search the NCBI Nucleotide database",
	Long: `Search runs a full-text query against NCBI's Nucleotide ("nuccore")
database and stores the normalized result as a JSON artifact. The search
matches indexed text metadata (organism names, titles, authors), not
sequence content.`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide search terms, e.g.: nucleotide-agent search Rattus rattus")
	}
	searchTerms := strings.Join(args, " ")

	cfg := loadAgentConfig(cmd)

	store, err := artifacts.NewStore(cfg.Artifacts)
	if err != nil {
		return err
	}
	defer store.Close()

	console := &artifacts.Console{Store: store, Logw: os.Stderr, Out: os.Stdout}
	a := agent.New(cfg.Entrez)
	return a.Run(cmd.Context(), agent.OpFindSequenceRecords, agent.Params{SearchTerms: searchTerms}, console)
}
