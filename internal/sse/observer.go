package sse

import (
	"github.com/listenupapp/tagexport/internal/pipeline"
)

// Observer forwards pipeline progress and status lines to the manager.
type Observer struct {
	manager *Manager
	runID   string
}

// NewObserver creates an observer that tags log events with runID.
// Progress events carry their own run id.
func NewObserver(manager *Manager, runID string) *Observer {
	return &Observer{manager: manager, runID: runID}
}

// OnProgress implements pipeline.Observer.
func (o *Observer) OnProgress(p pipeline.Progress) {
	runID := p.RunID
	if runID == "" {
		runID = o.runID
	}
	o.manager.Emit(NewScanProgressEvent(ScanProgressEventData{
		RunID:   runID,
		Current: p.Current,
		Total:   p.Total,
		File:    p.File,
	}))
}

// OnLog implements pipeline.Observer.
func (o *Observer) OnLog(message string) {
	o.manager.Emit(NewExportLogEvent(o.runID, message))
}
