// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nucleotide-agent CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nucleotide-agent/internal/secrets"
	"github.com/pdiddy/nucleotide-agent/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds identification values loaded from .secrets/ at startup.
var loadedSecrets map[string]string

const (
	defaultTimeout      = 60 * time.Second
	defaultUserAgent    = "nucleotide-agent/0.1"
	defaultArtifactsDir = "artifacts"
)

// secretDefault returns fallback if set, then the secret value for key, then "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the nucleotide-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "nucleotide-agent",
	Short: `Agent for NCBI's Nucleotide ("nuccore") sequence database`,
	Long: `nucleotide-agent exposes two operations against NCBI's Nucleotide database:
a full-text search over indexed record metadata and a record fetch by
accession number. Each operation logs its retrieval steps and produces
artifacts (JSON and/or flat-text references).

Run the operations directly with the search and fetch subcommands, or expose
them to an MCP host with serve.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nucleotide-agent.yaml or ~/.config/nucleotide-agent/config.yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	rootCmd.PersistentFlags().String("artifacts-dir", "", "base directory for stored artifacts (default artifacts/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nucleotide-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nucleotide-agent"))
		}
	}

	viper.SetEnvPrefix("NUCLEOTIDE_AGENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadAgentConfig assembles the runtime configuration from flags, the config
// file, and loaded secrets, applying defaults.
func loadAgentConfig(cmd *cobra.Command) types.AgentConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("entrez.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	userAgent := viper.GetString("entrez.user_agent")
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	artifactsDir, _ := cmd.Flags().GetString("artifacts-dir")
	if artifactsDir == "" {
		artifactsDir = viper.GetString("artifacts.dir")
	}
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}

	return types.AgentConfig{
		Entrez: types.EntrezConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   timeout,
				UserAgent: userAgent,
			},
			BaseURL: viper.GetString("entrez.base_url"),
			Tool:    secretDefault("ncbi-tool", viper.GetString("entrez.tool")),
			Email:   secretDefault("ncbi-email", viper.GetString("entrez.email")),
		},
		Artifacts: types.ArtifactStoreConfig{
			Dir: artifactsDir,
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
