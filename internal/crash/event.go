// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package crash models the crash-reporting events that trigger issue creation.
package crash

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedEvent indicates that a crash event is missing required fields.
var ErrMalformedEvent = errors.New("malformed crash event")

// AppInfo describes the application a crash was reported for.
type AppInfo struct {
	LatestAppVersion string `json:"latestAppVersion"`
	AppName          string `json:"appName,omitempty"`
	AppPlatform      string `json:"appPlatform,omitempty"`
	AppID            string `json:"appId,omitempty"`
}

// Event is a new-issue notification from Crashlytics.
type Event struct {
	IssueID    string     `json:"issueId"`
	IssueTitle string     `json:"issueTitle"`
	AppInfo    *AppInfo   `json:"appInfo,omitempty"`
	CreateTime *time.Time `json:"createTime,omitempty"`
}

// Parse decodes a crash event from JSON. It does not validate the result.
func Parse(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse crash event: %w", err)
	}
	return &ev, nil
}

// Version returns the latest app version, or "" if the event carries no app info.
func (e *Event) Version() string {
	if e == nil || e.AppInfo == nil {
		return ""
	}
	return e.AppInfo.LatestAppVersion
}

// Validate reports every required field that is absent or blank.
func (e *Event) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: event is nil", ErrMalformedEvent)
	}

	var missing []string
	if strings.TrimSpace(e.IssueID) == "" {
		missing = append(missing, "issueId")
	}
	if strings.TrimSpace(e.IssueTitle) == "" {
		missing = append(missing, "issueTitle")
	}
	if strings.TrimSpace(e.Version()) == "" {
		missing = append(missing, "appInfo.latestAppVersion")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMalformedEvent, strings.Join(missing, ", "))
	}
	return nil
}

// String returns a short identifier for log lines.
func (e *Event) String() string {
	if e == nil {
		return "<nil>"
	}
	if e.AppInfo != nil && e.AppInfo.AppName != "" {
		return fmt.Sprintf("%s (%s %s)", e.IssueID, e.AppInfo.AppName, e.AppInfo.AppPlatform)
	}
	return e.IssueID
}
