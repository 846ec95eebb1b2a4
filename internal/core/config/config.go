// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package config handles loading and merging crashbot configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultAPIURL    = "https://api.github.com/"
	defaultUserAgent = "EDAC Firebase functions"
	defaultWorkflow  = "crash-to-issue"
	defaultAddr      = ":8080"
)

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// GitHub holds the tracker account and target repository.
	GitHub GitHubConfig `yaml:"github"`

	// Workflow is a preset workflow name (e.g., "crash-to-issue").
	Workflow string `yaml:"workflow,omitempty"`

	// Steps is a custom list of pipeline steps (overrides workflow).
	Steps []string `yaml:"steps,omitempty"`

	// Server configures the HTTP trigger endpoint.
	Server ServerConfig `yaml:"server"`
}

// GitHubConfig holds the credentials issues are filed with.
type GitHubConfig struct {
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Repo      string `yaml:"repo"`
	APIURL    string `yaml:"api_url,omitempty"`
	UserAgent string `yaml:"user_agent,omitempty"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Load reads a config file from the given path and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// LoadWithInheritance loads a config and resolves the 'extends' chain.
// The fetcher function is used to retrieve remote configs.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if cfg.Extends == "" {
		return cfg, nil
	}

	parentData, err := fetcher(cfg.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", cfg.Extends, err)
	}

	parentCfg, err := parseRaw(parentData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}

	// Merge: child overrides parent
	merged := mergeConfigs(parentCfg, cfg)
	merged.applyDefaults()

	return merged, nil
}

// parseRaw expands environment variables and decodes YAML without applying defaults.
func parseRaw(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{
		".github/crashbot.yaml",
		".github/crashbot.yml",
		".crashbot.yaml",
		".crashbot.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// ApplyEnv fills empty credential fields from GITHUB_USER, GITHUB_PASSWORD
// and GITHUB_REPO. Values already present in the file win.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.GitHub.User == "" {
		c.GitHub.User = getenv("GITHUB_USER")
	}
	if c.GitHub.Password == "" {
		c.GitHub.Password = getenv("GITHUB_PASSWORD")
	}
	if c.GitHub.Repo == "" {
		c.GitHub.Repo = getenv("GITHUB_REPO")
	}
}

// Default returns a config with only default values set.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.GitHub.APIURL == "" {
		c.GitHub.APIURL = defaultAPIURL
	}
	if c.GitHub.UserAgent == "" {
		c.GitHub.UserAgent = defaultUserAgent
	}
	if c.Workflow == "" && len(c.Steps) == 0 {
		c.Workflow = defaultWorkflow
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
}

// mergeConfigs merges a child config onto a parent config.
// Non-zero values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent
	result.Extends = ""

	if child.Workflow != "" {
		result.Workflow = child.Workflow
	}
	if len(child.Steps) > 0 {
		result.Steps = child.Steps
	}

	if child.GitHub.User != "" {
		result.GitHub.User = child.GitHub.User
	}
	if child.GitHub.Password != "" {
		result.GitHub.Password = child.GitHub.Password
	}
	if child.GitHub.Repo != "" {
		result.GitHub.Repo = child.GitHub.Repo
	}
	if child.GitHub.APIURL != "" {
		result.GitHub.APIURL = child.GitHub.APIURL
	}
	if child.GitHub.UserAgent != "" {
		result.GitHub.UserAgent = child.GitHub.UserAgent
	}

	if child.Server.Addr != "" {
		result.Server.Addr = child.Server.Addr
	}

	return &result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 || orgRepo[0] == "" || orgRepo[1] == "" {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = ".github/crashbot.yaml"
	}

	return org, repo, branch, path, nil
}
