package issue

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/similigh/crashbot/internal/crash"
)

type fakeCreator struct {
	calls int
	owner string
	repo  string
	req   *Request
	err   error
}

func (f *fakeCreator) CreateIssue(ctx context.Context, owner, repo string, req *Request) (*Created, error) {
	f.calls++
	f.owner, f.repo, f.req = owner, repo, req
	if f.err != nil {
		return nil, f.err
	}
	return &Created{Number: 7, URL: "https://github.com/acme/app/issues/7"}, nil
}

func TestCompose(t *testing.T) {
	tests := []struct {
		id, title, version string
	}{
		{"42", "NullPointer", "1.2.3"},
		{"abc-def", "Fatal Exception: java.lang.IllegalStateException", "2.0.0 (100)"},
		{"1", "-", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			ev := &crash.Event{
				IssueID:    tt.id,
				IssueTitle: tt.title,
				AppInfo:    &crash.AppInfo{LatestAppVersion: tt.version},
			}
			req := Compose(ev)

			wantTitle := "Crashlytics Issue " + tt.id + " - " + tt.title
			if req.Title != wantTitle {
				t.Errorf("Title = %q, want %q", req.Title, wantTitle)
			}
			if !strings.Contains(req.Body, "AppVersion: "+tt.version+".") {
				t.Errorf("Body %q does not contain version %q", req.Body, tt.version)
			}
			if !reflect.DeepEqual(req.Labels, []string{"crashlytics", "bug"}) {
				t.Errorf("unexpected labels: %v", req.Labels)
			}
		})
	}
}

func TestComposeExactBody(t *testing.T) {
	ev := &crash.Event{
		IssueID:    "42",
		IssueTitle: "NullPointer",
		AppInfo:    &crash.AppInfo{LatestAppVersion: "1.2.3"},
	}
	want := "New crash report created Firebase Crashlytics.\n\n AppVersion: 1.2.3.\n\n"
	if got := Body(ev); got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}
}

func TestComposeMissingFields(t *testing.T) {
	req := Compose(&crash.Event{})

	if req.Title != "Crashlytics Issue undefined - undefined" {
		t.Errorf("unexpected title: %q", req.Title)
	}
	if !strings.Contains(req.Body, "AppVersion: undefined.") {
		t.Errorf("unexpected body: %q", req.Body)
	}
}

func TestDefaultLabelsIsCopy(t *testing.T) {
	first := DefaultLabels()
	first[0] = "changed"

	if got := DefaultLabels(); got[0] != "crashlytics" {
		t.Errorf("DefaultLabels shares state with callers: %v", got)
	}
}

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  string
	}{
		{"complete", Credentials{"acme", "s3cret", "app"}, ""},
		{"missing account", Credentials{"", "s3cret", "app"}, "account"},
		{"missing secret", Credentials{"acme", "", "app"}, "secret"},
		{"blank secret", Credentials{"acme", " \t", "app"}, "secret"},
		{"missing repository", Credentials{"acme", "s3cret", " "}, "repository"},
		{"all missing", Credentials{}, "account, secret, repository"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("expected ErrMissingCredentials, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to mention %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestSenderSend(t *testing.T) {
	creator := &fakeCreator{}
	sender := NewSender(Credentials{"acme", "s3cret", "app"}, creator)

	created, err := sender.Send(context.Background(), "title", "body")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if created.Number != 7 {
		t.Errorf("expected issue #7, got %d", created.Number)
	}
	if creator.calls != 1 {
		t.Errorf("expected 1 call, got %d", creator.calls)
	}
	if creator.owner != "acme" || creator.repo != "app" {
		t.Errorf("unexpected target %s/%s", creator.owner, creator.repo)
	}
	if !reflect.DeepEqual(creator.req.Labels, []string{"crashlytics", "bug"}) {
		t.Errorf("unexpected labels: %v", creator.req.Labels)
	}
	if sender.Target() != "acme/app" {
		t.Errorf("unexpected target: %s", sender.Target())
	}
}

type locatingCreator struct {
	fakeCreator
}

func (c *locatingCreator) IssuesURL(owner, repo string) string {
	return "https://api.github.com/repos/" + owner + "/" + repo + "/issues"
}

func TestSenderEndpoint(t *testing.T) {
	creds := Credentials{"acme", "s3cret", "app"}

	if got := NewSender(creds, &locatingCreator{}).Endpoint(); got != "https://api.github.com/repos/acme/app/issues" {
		t.Errorf("unexpected endpoint %q", got)
	}
	if got := NewSender(creds, &fakeCreator{}).Endpoint(); got != "acme/app" {
		t.Errorf("expected target fallback, got %q", got)
	}
}

func TestSenderMissingCredentialsSkipsRequest(t *testing.T) {
	for _, creds := range []Credentials{
		{"", "s3cret", "app"},
		{"acme", "", "app"},
		{"acme", "s3cret", ""},
		{"acme", "   ", "app"},
	} {
		creator := &fakeCreator{}
		_, err := NewSender(creds, creator).Send(context.Background(), "title", "body")
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials for %+v, got %v", creds, err)
		}
		if creator.calls != 0 {
			t.Errorf("expected no request for %+v, got %d", creds, creator.calls)
		}
	}
}

func TestSenderPropagatesFailure(t *testing.T) {
	remote := errors.New("422 Validation Failed")
	creator := &fakeCreator{err: remote}

	_, err := NewSender(Credentials{"acme", "s3cret", "app"}, creator).Send(context.Background(), "t", "b")
	if !errors.Is(err, remote) {
		t.Fatalf("expected wrapped remote error, got %v", err)
	}
	if creator.calls != 1 {
		t.Errorf("expected exactly one attempt, got %d", creator.calls)
	}
}

func TestSenderWithoutCreator(t *testing.T) {
	_, err := NewSender(Credentials{"acme", "s3cret", "app"}, nil).Send(context.Background(), "t", "b")
	if err == nil {
		t.Error("expected error when no tracker client is configured")
	}
}
