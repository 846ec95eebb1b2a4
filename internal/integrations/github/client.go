// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"

	"github.com/similigh/crashbot/internal/issue"
)

// Client wraps the GitHub API client.
//
// go-github remembers rate limit headers per client and refuses requests
// until the reset time, so every call gets a fresh client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
}

func (c *Client) api() *github.Client {
	client := github.NewClient(c.httpClient)
	u := *c.baseURL
	client.BaseURL = &u
	client.UserAgent = c.userAgent
	return client
}

// IssuesURL returns the REST endpoint issues for owner/repo are created at.
func (c *Client) IssuesURL(owner, repo string) string {
	return fmt.Sprintf("%srepos/%s/%s/issues", c.baseURL.String(), owner, repo)
}

// CreateIssue opens a new issue. Any 2xx answer is success, even when the
// body cannot be decoded; Number and URL are then left empty. A non-2xx
// answer is returned as *RemoteError.
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, req *issue.Request) (*issue.Created, error) {
	if req == nil || strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("issue title cannot be empty")
	}

	newIssue := &github.IssueRequest{
		Title: github.String(req.Title),
		Body:  github.String(req.Body),
	}
	if len(req.Labels) > 0 {
		labels := append([]string(nil), req.Labels...)
		newIssue.Labels = &labels
	}

	created, resp, err := c.api().Issues.Create(ctx, owner, repo, newIssue)
	if err != nil {
		if !isSuccess(resp) {
			return nil, fmt.Errorf("failed to create issue: %w", asRemoteError(err))
		}
		// A 202 leaves the body in AcceptedError.Raw. Decode failures leave nothing.
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) && len(accepted.Raw) > 0 {
			var parsed github.Issue
			if json.Unmarshal(accepted.Raw, &parsed) == nil {
				created = &parsed
			}
		}
	}

	return &issue.Created{
		Number: created.GetNumber(),
		URL:    created.GetHTMLURL(),
	}, nil
}

func isSuccess(resp *github.Response) bool {
	return resp != nil && resp.Response != nil &&
		resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
}

// GetFileContent fetches a file from a repository at the given ref.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) ([]byte, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}
	file, _, _, err := c.api().Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from %s/%s@%s: %w", path, owner, repo, ref, asRemoteError(err))
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is a directory", path, owner, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}

// RemoteError is a non-success response from the GitHub API.
type RemoteError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("GitHub API error: %d - %s", e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.err
}

// asRemoteError converts go-github's response errors into *RemoteError and
// returns transport errors unchanged.
func asRemoteError(err error) error {
	var (
		respErr  *github.ErrorResponse
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
	)

	switch {
	case errors.As(err, &respErr) && respErr.Response != nil:
		return &RemoteError{StatusCode: respErr.Response.StatusCode, Message: truncate(respErr.Message), err: err}
	case errors.As(err, &rateErr) && rateErr.Response != nil:
		return &RemoteError{StatusCode: rateErr.Response.StatusCode, Message: truncate(rateErr.Message), err: err}
	case errors.As(err, &abuseErr) && abuseErr.Response != nil:
		return &RemoteError{StatusCode: abuseErr.Response.StatusCode, Message: truncate(abuseErr.Message), err: err}
	}
	return err
}

// truncate keeps remote messages short enough for log lines.
func truncate(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
