package pipeline

// Progress is emitted once per file, before the file is read.
type Progress struct {
	RunID   string `json:"runId,omitempty"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
	File    string `json:"file"`
}

// Observer receives progress and free-text status lines. Calls are
// synchronous and their return is not waited on for anything; observers
// must not block for long.
type Observer interface {
	OnProgress(Progress)
	OnLog(message string)
}

// NopObserver ignores everything.
type NopObserver struct{}

// OnProgress implements Observer.
func (NopObserver) OnProgress(Progress) {}

// OnLog implements Observer.
func (NopObserver) OnLog(string) {}

// ObserverFuncs adapts plain functions. Nil fields are skipped.
type ObserverFuncs struct {
	Progress func(Progress)
	Log      func(string)
}

// OnProgress implements Observer.
func (f ObserverFuncs) OnProgress(p Progress) {
	if f.Progress != nil {
		f.Progress(p)
	}
}

// OnLog implements Observer.
func (f ObserverFuncs) OnLog(message string) {
	if f.Log != nil {
		f.Log(message)
	}
}

// Observers fans out to each non-nil observer in order.
type Observers []Observer

// OnProgress implements Observer.
func (o Observers) OnProgress(p Progress) {
	for _, obs := range o {
		if obs != nil {
			obs.OnProgress(p)
		}
	}
}

// OnLog implements Observer.
func (o Observers) OnLog(message string) {
	for _, obs := range o {
		if obs != nil {
			obs.OnLog(message)
		}
	}
}

// WithRunID stamps every progress event with id before passing it on.
func WithRunID(obs Observer, id string) Observer {
	return ObserverFuncs{
		Progress: func(p Progress) {
			p.RunID = id
			obs.OnProgress(p)
		},
		Log: obs.OnLog,
	}
}
