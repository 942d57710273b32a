package projects

import "fmt"

// ErrInvalidTransition is returned when a status change is not part of the
// project lifecycle.
var ErrInvalidTransition = fmt.Errorf("invalid status transition")

// statusTransitions enforces the project lifecycle. A project is scored out
// of draft, tokenized only after assessment, and archived from any live state.
// Re-scoring an assessed project appends an assessment without a transition.
var statusTransitions = map[ProjectStatus][]ProjectStatus{
	StatusDraft:     {StatusAssessed, StatusArchived},
	StatusAssessed:  {StatusTokenized, StatusArchived},
	StatusTokenized: {StatusArchived},
	StatusArchived:  {},
}

// CanTransition reports whether a status change is allowed.
func CanTransition(from, to ProjectStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the next statuses reachable from a given status.
func AllowedTransitions(from ProjectStatus) []ProjectStatus {
	return statusTransitions[from]
}

// Transition moves a project to the given status, rejecting moves outside the
// lifecycle.
func Transition(p *Project, to ProjectStatus) error {
	if !CanTransition(p.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	p.Status = to
	return nil
}
