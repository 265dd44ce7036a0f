package sse

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/tagexport/internal/pipeline"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func receive(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case event := <-client.EventChan:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestManager_BroadcastsToClients(t *testing.T) {
	m := NewManager(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	client, err := m.Connect()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(client.ID, "sse-"))
	assert.Equal(t, 1, m.ClientCount())

	m.Emit(NewExportLogEvent("run-1", "Export complete!"))

	event := receive(t, client)
	assert.Equal(t, EventExportLog, event.Type)
	assert.Equal(t, ExportLogEventData{RunID: "run-1", Message: "Export complete!"}, event.Data)

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())
	m.Disconnect(client.ID)
}

func TestObserver_ForwardsPipelineEvents(t *testing.T) {
	m := NewManager(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	client, err := m.Connect()
	require.NoError(t, err)

	obs := pipeline.WithRunID(NewObserver(m, "run-7"), "run-7")
	obs.OnProgress(pipeline.Progress{Current: 1, Total: 3, File: "/music/a.mp3"})
	obs.OnLog("Saving to: /music/library.json")

	progress := receive(t, client)
	assert.Equal(t, EventScanProgress, progress.Type)
	assert.Equal(t, ScanProgressEventData{RunID: "run-7", Current: 1, Total: 3, File: "/music/a.mp3"}, progress.Data)

	logEvent := receive(t, client)
	assert.Equal(t, EventExportLog, logEvent.Type)
	assert.Equal(t, "run-7", logEvent.Data.(ExportLogEventData).RunID)
}

func TestManager_ShutdownClosesClientsAndDropsLateEvents(t *testing.T) {
	m := NewManager(testLogger())

	client, err := m.Connect()
	require.NoError(t, err)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Shutdown(shutdownCtx))
	require.NoError(t, m.Shutdown(shutdownCtx))

	select {
	case <-client.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("client was not closed")
	}

	assert.NotPanics(t, func() { m.Emit(NewHeartbeatEvent()) })
	assert.Equal(t, 0, m.ClientCount())
}
