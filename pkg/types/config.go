// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "nucleotide-agent/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EntrezConfig holds settings for the NCBI E-utilities endpoints.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the E-utilities root (default
	// "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"). Tests point this
	// at an httptest server.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Tool identifies this client to NCBI (the E-utilities "tool"
	// parameter). Optional; appended to request URLs when set.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// Email is the maintainer contact sent alongside Tool (the
	// E-utilities "email" parameter). Optional.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// ArtifactStoreConfig holds settings for the local artifact store used by
// the CLI host.
type ArtifactStoreConfig struct {
	// Dir is the base directory for stored artifacts (contains bodies/,
	// metadata/, index/).
	Dir string `json:"dir" yaml:"dir"`
}

// AgentConfig groups all configuration for the agent.
type AgentConfig struct {
	Entrez    EntrezConfig        `json:"entrez" yaml:"entrez"`
	Artifacts ArtifactStoreConfig `json:"artifacts" yaml:"artifacts"`
}
