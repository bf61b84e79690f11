package progress

import "sync"

// Tracker holds one run's checklist and publishes every change to the hub.
// A nil hub makes the tracker record state only.
type Tracker struct {
	mu    sync.Mutex
	hub   *Hub
	snap  Snapshot
	ended bool
}

func NewTracker(hub *Hub) *Tracker {
	return &Tracker{hub: hub, snap: Snapshot{Tasks: initialTasks()}}
}

// Bind attaches the presentation id once it is known and publishes the current state.
func (t *Tracker) Bind(presentationID string) {
	t.mu.Lock()
	t.snap.PresentationID = presentationID
	t.mu.Unlock()
	t.publish()
}

func (t *Tracker) Set(taskID string, status TaskStatus) {
	t.mu.Lock()
	for i := range t.snap.Tasks {
		if t.snap.Tasks[i].ID == taskID {
			t.snap.Tasks[i].Status = status
		}
	}
	t.mu.Unlock()
	t.publish()
}

// Detail publishes a free-form progress note such as "slide 3/10".
func (t *Tracker) Detail(detail string) {
	t.mu.Lock()
	t.snap.Detail = detail
	t.mu.Unlock()
	t.publish()
}

// Complete marks the run finished with the deck URL.
func (t *Tracker) Complete(pdfURL string) {
	t.mu.Lock()
	t.snap.Done = true
	t.snap.PDFURL = pdfURL
	t.snap.Detail = ""
	t.mu.Unlock()
	t.publish()
}

// Fail turns every in-progress task into an error and ends the run.
func (t *Tracker) Fail(err error) {
	t.mu.Lock()
	for i := range t.snap.Tasks {
		if t.snap.Tasks[i].Status == TaskInProgress {
			t.snap.Tasks[i].Status = TaskError
		}
	}
	t.snap.Done = true
	if err != nil {
		t.snap.Error = err.Error()
	}
	t.mu.Unlock()
	t.publish()
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyLocked()
}

func (t *Tracker) copyLocked() Snapshot {
	s := t.snap
	s.Tasks = append([]Task(nil), t.snap.Tasks...)
	return s
}

func (t *Tracker) publish() {
	t.mu.Lock()
	if t.hub == nil || t.snap.PresentationID == "" || t.ended {
		t.mu.Unlock()
		return
	}
	s := t.copyLocked()
	t.ended = s.Done
	t.mu.Unlock()
	t.hub.Publish(s)
}
