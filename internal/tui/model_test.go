package tui

import (
	"strings"
	"testing"
)

func TestModelTracksStepStatus(t *testing.T) {
	ch := make(chan PipelineStatusMsg)
	m := NewModel("42", []string{"validator", "formatter"}, ch)

	next, _ := m.Update(PipelineStatusMsg{Step: "formatter", Status: StatusSuccess, Message: "Completed"})
	m = next.(Model)

	if m.current != 1 {
		t.Errorf("expected current step 1, got %d", m.current)
	}
	if m.status["formatter"] != StatusSuccess {
		t.Errorf("unexpected status map: %v", m.status)
	}
	if !strings.Contains(m.View(), "✓ formatter") {
		t.Errorf("expected success marker in view:\n%s", m.View())
	}
}

func TestModelRecordsError(t *testing.T) {
	m := NewModel("42", []string{"issue_sender"}, nil)

	next, _ := m.Update(PipelineStatusMsg{Step: "issue_sender", Status: StatusError, Message: "GitHub API error: 401"})
	m = next.(Model)

	if m.err == nil || !strings.Contains(m.err.Error(), "401") {
		t.Errorf("expected error to be recorded, got %v", m.err)
	}
	if !strings.Contains(m.View(), "Error: step issue_sender failed") {
		t.Errorf("expected error in view:\n%s", m.View())
	}
}

func TestWaitForActivityOnClosedChannel(t *testing.T) {
	ch := make(chan PipelineStatusMsg)
	close(ch)
	m := NewModel("42", nil, ch)

	msg := m.waitForActivity()()
	if _, ok := msg.(ResultMsg); !ok {
		t.Errorf("expected ResultMsg, got %#v", msg)
	}
}

func TestModelResultQuits(t *testing.T) {
	m := NewModel("42", nil, nil)

	next, cmd := m.Update(ResultMsg{})
	m = next.(Model)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Errorf("expected empty view after quitting")
	}
}
