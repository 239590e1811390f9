package router

import "github.com/BrandonKowalski/quickpos/pkg/quickpos/route"

// StackEntry represents a single entry in the navigation history.
// It stores the concrete path, the template it matched and its parameters.
type StackEntry struct {
	Path   string
	Route  route.Route
	Params route.Params
}

// Stack manages navigation history for back navigation.
type Stack struct {
	entries []StackEntry
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]StackEntry, 0),
	}
}

// Push adds a new entry to the stack.
// Called when navigating forward to a new screen.
func (s *Stack) Push(entry StackEntry) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry from the stack.
// Returns nil if the stack is empty.
func (s *Stack) Pop() *StackEntry {
	if len(s.entries) == 0 {
		return nil
	}
	entry := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return &entry
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}

// Reset replaces the whole history with the given entries, bottom first.
func (s *Stack) Reset(entries ...StackEntry) {
	s.entries = append(s.entries[:0], entries...)
}

// Paths lists the stored paths, bottom first.
func (s *Stack) Paths() []string {
	paths := make([]string, len(s.entries))
	for i, e := range s.entries {
		paths[i] = e.Path
	}
	return paths
}
