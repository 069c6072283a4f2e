package service

import "sync"

// Session is the per-app-session latch guarding the due-check + run
// sequence. The caller owns it; the engine keeps no hidden state, so a
// re-fired trigger (e.g. a duplicate session-start event) cannot double-run
// the costly proposal call.
type Session struct {
	mu  sync.Mutex
	ran bool
}

// TryAcquire marks the session as run. It returns false if the session
// already ran an adaptation attempt.
func (s *Session) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ran {
		return false
	}
	s.ran = true
	return true
}

type RunResult struct {
	Ran           bool `json:"ran"`
	TasksAdded    int  `json:"tasks_added"`
	TasksModified int  `json:"tasks_modified"`
}

type AdaptationService interface {
	// ShouldAdapt reports whether an adaptation run is due: no log entry for
	// the current year, or the most recent run 15+ days in the past.
	ShouldAdapt(userID string) (bool, error)

	// RunIfDue performs at most one adaptation per session. Latitude and
	// longitude may be nil; weather then degrades to climate normals.
	RunIfDue(sess *Session, userID string, lat, lon *float64, language string) (*RunResult, error)
}
