package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/similigh/crashbot/internal/core/pipeline"
	"github.com/similigh/crashbot/internal/crash"
	"github.com/similigh/crashbot/internal/integrations/github"
	"github.com/similigh/crashbot/internal/issue"
)

type stubHandler struct {
	events []*crash.Event
	err    error
}

func (h *stubHandler) Handle(ctx context.Context, ev *crash.Event) (*pipeline.Result, error) {
	h.events = append(h.events, ev)
	if h.err != nil {
		return nil, h.err
	}
	return &pipeline.Result{IssueID: ev.IssueID, Created: true, IssueNumber: 9}, nil
}

func post(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

const validBody = `{"issueId":"42","issueTitle":"NullPointer","appInfo":{"latestAppVersion":"1.2.3"}}`

func TestNewServerRequiresHandler(t *testing.T) {
	_, err := NewServer(":0", nil)
	require.Error(t, err)
}

func TestHealthz(t *testing.T) {
	srv, err := NewServer("", &stubHandler{})
	require.NoError(t, err)
	assert.Equal(t, ":8080", srv.Addr())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPostEvent(t *testing.T) {
	handler := &stubHandler{}
	srv, err := NewServer(":0", handler)
	require.NoError(t, err)

	rec := post(t, srv, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, handler.events, 1)
	assert.Equal(t, "42", handler.events[0].IssueID)
	assert.Equal(t, "1.2.3", handler.events[0].Version())

	var result pipeline.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Created)
	assert.Equal(t, 9, result.IssueNumber)
}

func TestPostEventInvalidJSON(t *testing.T) {
	handler := &stubHandler{}
	srv, err := NewServer(":0", handler)
	require.NoError(t, err)

	rec := post(t, srv, `{"issueId":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, handler.events)
}

func TestPostEventErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantRemote int
	}{
		{"malformed event", fmt.Errorf("step 'validator' failed: %w", crash.ErrMalformedEvent), http.StatusBadRequest, 0},
		{"missing credentials", fmt.Errorf("step 'issue_sender' failed: %w", issue.ErrMissingCredentials), http.StatusInternalServerError, 0},
		{"remote rejection", fmt.Errorf("step 'issue_sender' failed: %w", &github.RemoteError{StatusCode: 401, Message: "Bad credentials"}), http.StatusBadGateway, 401},
		{"transport error", errors.New("dial tcp: connection refused"), http.StatusBadGateway, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, err := NewServer(":0", &stubHandler{err: tt.err})
			require.NoError(t, err)

			rec := post(t, srv, validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body.Error)
			assert.Equal(t, tt.wantRemote, body.RemoteStatus)
		})
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0", &stubHandler{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, srv.Start(ctx))
}
