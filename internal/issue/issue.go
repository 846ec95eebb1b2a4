// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package issue composes tracker issues from crash events and sends them.
package issue

import (
	"fmt"

	"github.com/similigh/crashbot/internal/crash"
)

// missingField is written in place of absent event fields when an event is
// formatted without validation.
const missingField = "undefined"

var labels = []string{"crashlytics", "bug"}

// Request is the issue payload sent to the tracker.
type Request struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// Created describes an issue the tracker accepted.
type Created struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// DefaultLabels returns the labels attached to every crash issue.
func DefaultLabels() []string {
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Title formats the issue title for a crash event.
func Title(ev *crash.Event) string {
	var id, title string
	if ev != nil {
		id, title = ev.IssueID, ev.IssueTitle
	}
	return fmt.Sprintf("Crashlytics Issue %s - %s", orMissing(id), orMissing(title))
}

// Body formats the issue body for a crash event.
func Body(ev *crash.Event) string {
	return fmt.Sprintf("New crash report created Firebase Crashlytics.\n\n AppVersion: %s.\n\n", orMissing(ev.Version()))
}

// Compose builds the full issue request for a crash event.
func Compose(ev *crash.Event) *Request {
	return &Request{
		Title:  Title(ev),
		Body:   Body(ev),
		Labels: DefaultLabels(),
	}
}

func orMissing(s string) string {
	if s == "" {
		return missingField
	}
	return s
}
