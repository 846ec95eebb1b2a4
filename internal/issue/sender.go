// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package issue

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredentials indicates that the tracker account, secret or
// repository is not configured. It is never retryable.
var ErrMissingCredentials = errors.New("missing tracker credentials")

// Credentials identify the tracker account and the repository issues are filed in.
type Credentials struct {
	Account    string
	Secret     string
	Repository string
}

// Validate reports every credential that is absent.
func (c Credentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Account) == "" {
		missing = append(missing, "account")
	}
	if strings.TrimSpace(c.Secret) == "" {
		missing = append(missing, "secret")
	}
	if strings.TrimSpace(c.Repository) == "" {
		missing = append(missing, "repository")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// Creator files an issue with a tracker.
type Creator interface {
	CreateIssue(ctx context.Context, owner, repo string, req *Request) (*Created, error)
}

// Locator is implemented by creators that know the URL issues are posted to.
type Locator interface {
	IssuesURL(owner, repo string) string
}

// Sender posts crash issues to the configured repository.
type Sender struct {
	creds   Credentials
	creator Creator
}

// NewSender creates a sender. Credentials are checked on every Send, so a
// misconfigured sender can be constructed but never reaches the tracker.
func NewSender(creds Credentials, creator Creator) *Sender {
	return &Sender{
		creds:   creds,
		creator: creator,
	}
}

// Target returns the "account/repository" issues are filed in.
func (s *Sender) Target() string {
	return s.creds.Account + "/" + s.creds.Repository
}

// Endpoint returns the URL issues are posted to. Creators that cannot name
// one fall back to Target.
func (s *Sender) Endpoint() string {
	if l, ok := s.creator.(Locator); ok {
		return l.IssuesURL(s.creds.Account, s.creds.Repository)
	}
	return s.Target()
}

// Send files a single issue with the default labels. It makes exactly one
// attempt.
func (s *Sender) Send(ctx context.Context, title, body string) (*Created, error) {
	if err := s.creds.Validate(); err != nil {
		return nil, err
	}
	if s.creator == nil {
		return nil, fmt.Errorf("issue sender has no tracker client")
	}

	req := &Request{
		Title:  title,
		Body:   body,
		Labels: DefaultLabels(),
	}

	created, err := s.creator.CreateIssue(ctx, s.creds.Account, s.creds.Repository, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue in %s: %w", s.Target(), err)
	}
	return created, nil
}
