package workflow

import (
	"fmt"

	"microcourses/models"
	courseModels "microcourses/models/course"
)

// Machine is a small finite-state machine over string states. Both the
// course lifecycle and the creator-application workflow run on it, so the
// transition guards live in one place instead of being scattered across
// handlers as string comparisons.
type Machine struct {
	name        string
	transitions map[string][]string
}

// New builds a machine named for error messages, with an allowed-transition
// table mapping each state to its reachable successors.
func New(name string, transitions map[string][]string) *Machine {
	return &Machine{name: name, transitions: transitions}
}

// Can reports whether from -> to is an allowed transition.
func (m *Machine) Can(from, to string) bool {
	for _, next := range m.transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns the new state, or an
// *InvalidTransitionError naming the machine and both states.
func (m *Machine) Transition(from, to string) (string, error) {
	if !m.Can(from, to) {
		return from, &InvalidTransitionError{Machine: m.name, From: from, To: to}
	}
	return to, nil
}

// InvalidTransitionError is returned when a transition is not in the table.
type InvalidTransitionError struct {
	Machine string
	From    string
	To      string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition from %q to %q", e.Machine, e.From, e.To)
}

// CourseLifecycle: draft -> pending -> published | rejected. Rejected is
// terminal; admins can only review a course that is pending.
var CourseLifecycle = New("course", map[string][]string{
	courseModels.StatusDraft:   {courseModels.StatusPending},
	courseModels.StatusPending: {courseModels.StatusPublished, courseModels.StatusRejected},
})

// CreatorApplication: none -> pending -> approved | rejected. A rejected
// applicant may re-apply, a pending application may be overwritten by a
// fresh submission; an approved one is final.
var CreatorApplication = New("creator application", map[string][]string{
	models.ApplicationNone:     {models.ApplicationPending},
	models.ApplicationPending:  {models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected},
	models.ApplicationRejected: {models.ApplicationPending},
})
