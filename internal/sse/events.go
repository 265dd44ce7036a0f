// Package sse streams pipeline progress and export status lines to
// browser clients as Server-Sent Events.
package sse

import (
	"time"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventScanProgress is sent once per file, before it is read.
	EventScanProgress EventType = "scan.progress"
	// EventExportLog carries a free-text status line.
	EventExportLog EventType = "export.log"
	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// ScanProgressEventData is the data payload for scan progress events.
type ScanProgressEventData struct {
	RunID   string `json:"runId,omitempty"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	File    string `json:"file"`
}

// ExportLogEventData is the data payload for export log events.
type ExportLogEventData struct {
	RunID   string `json:"runId,omitempty"`
	Message string `json:"message"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"serverTime"`
}

// NewScanProgressEvent creates a scan.progress event.
func NewScanProgressEvent(data ScanProgressEventData) Event {
	return Event{
		Type:      EventScanProgress,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewExportLogEvent creates an export.log event.
func NewExportLogEvent(runID, message string) Event {
	return Event{
		Type:      EventExportLog,
		Data:      ExportLogEventData{RunID: runID, Message: message},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Data:      HeartbeatEventData{ServerTime: now},
		Timestamp: now,
	}
}
