// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/similigh/crashbot/internal/core/config"
	"github.com/similigh/crashbot/internal/integrations/github"
)

// loadConfig resolves the config file, its 'extends' parent and the
// GITHUB_* environment fallbacks. A missing file is not an error.
func loadConfig(ctx context.Context, explicit string) (*config.Config, error) {
	fetcher := func(ref string) ([]byte, error) {
		org, repo, branch, path, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("GITHUB_TOKEN required to fetch remote config %s", ref)
		}

		ghClient, err := github.NewClient(ctx, token)
		if err != nil {
			return nil, err
		}
		return ghClient.GetFileContent(ctx, org, repo, path, branch)
	}

	path := config.FindConfigPath(explicit)
	if explicit != "" && path == "" {
		return nil, fmt.Errorf("config file %s not found", explicit)
	}

	var cfg *config.Config
	if path != "" {
		loaded, err := config.LoadWithInheritance(path, fetcher)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Loaded config from %s\n", path)
		}
		cfg = loaded
	} else {
		if verbose {
			fmt.Fprintln(os.Stderr, "No configuration file found. Using defaults and environment variables.")
		}
		cfg = config.Default()
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}
