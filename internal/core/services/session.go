package services

import "sync"

// ProjectSession tracks which external stock assets have been used across
// the scenes of one project, so the same clip or photo is never repeated.
// It is the one piece of engine state with an explicit, caller-managed
// lifecycle: construct one per project and call Reset when a new project
// starts. Nothing resets it automatically.
type ProjectSession struct {
	mu   sync.Mutex
	used map[string]bool
}

// NewProjectSession creates an empty session.
func NewProjectSession() *ProjectSession {
	return &ProjectSession{used: make(map[string]bool)}
}

// MarkUsed records a stock asset identifier as consumed.
func (s *ProjectSession) MarkUsed(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[id] = true
}

// IsUsed reports whether a stock asset has already been consumed in this
// project.
func (s *ProjectSession) IsUsed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used[id]
}

// UsedCount returns how many distinct assets have been consumed.
func (s *ProjectSession) UsedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.used)
}

// Reset clears the session for a new project.
func (s *ProjectSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = make(map[string]bool)
}
