package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	progress []Progress
	logs     []string
}

func (r *recorder) OnProgress(p Progress) { r.progress = append(r.progress, p) }
func (r *recorder) OnLog(msg string)      { r.logs = append(r.logs, msg) }

func TestObservers_FanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	obs := Observers{a, nil, b}

	obs.OnProgress(Progress{Current: 1, Total: 2, File: "x.mp3"})
	obs.OnLog("Exporting metadata to JSON…")

	for _, r := range []*recorder{a, b} {
		assert.Equal(t, []Progress{{Current: 1, Total: 2, File: "x.mp3"}}, r.progress)
		assert.Equal(t, []string{"Exporting metadata to JSON…"}, r.logs)
	}
}

func TestObserverFuncs_NilFieldsAreSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		ObserverFuncs{}.OnProgress(Progress{})
		ObserverFuncs{}.OnLog("x")
		NopObserver{}.OnProgress(Progress{})
		NopObserver{}.OnLog("x")
	})
}

func TestWithRunID(t *testing.T) {
	r := &recorder{}
	obs := WithRunID(r, "run-1")

	obs.OnProgress(Progress{Current: 1, Total: 1, File: "a.mp3"})
	obs.OnLog("done")

	assert.Equal(t, "run-1", r.progress[0].RunID)
	assert.Equal(t, []string{"done"}, r.logs)
}
