package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nucleotide-agent/internal/agent"
	"github.com/pdiddy/nucleotide-agent/internal/artifacts"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [accession]",
	Short: "Fetch a sequence record by accession number",
	Long: `Fetch retrieves a nucleotide record by its identifier (GenBank accession
number, GI number, or Nucleotide UID). It stores the record twice: as a JSON
artifact converted from the upstream XML, and as a reference to the
human-friendly flat file (.gb) form.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	accession := args[0]
	if accession == "" {
		return fmt.Errorf("provide a sequence record identifier, e.g.: nucleotide-agent fetch JQ814272")
	}

	cfg := loadAgentConfig(cmd)

	store, err := artifacts.NewStore(cfg.Artifacts)
	if err != nil {
		return err
	}
	defer store.Close()

	console := &artifacts.Console{Store: store, Logw: os.Stderr, Out: os.Stdout}
	a := agent.New(cfg.Entrez)
	return a.Run(cmd.Context(), agent.OpGetSequenceRecord, agent.Params{AccessionNumber: accession}, console)
}
