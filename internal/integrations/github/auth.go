// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// DefaultUserAgent identifies this client to the GitHub API.
const DefaultUserAgent = "EDAC Firebase functions"

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL points the client at a different API root, e.g. a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if raw == "" {
			return nil
		}
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
		}
		c.baseURL = u
		return nil
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// NewClient creates a new GitHub client using the provided token.
// If token is empty, it returns an unauthenticated client.
func NewClient(ctx context.Context, token string, opts ...Option) (*Client, error) {
	var tc *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(ctx, ts)
	}

	return newClient(tc, opts)
}

// NewBasicAuthClient creates a GitHub client that authenticates every request
// with HTTP basic auth.
func NewBasicAuthClient(username, password string, opts ...Option) (*Client, error) {
	tp := &github.BasicAuthTransport{
		Username: username,
		Password: password,
	}
	return newClient(tp.Client(), opts)
}

func newClient(httpClient *http.Client, opts []Option) (*Client, error) {
	c := &Client{
		httpClient: httpClient,
		baseURL:    github.NewClient(nil).BaseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
