// internal/workflow/workflow.go
//
// Progress tracking for one lunch run: location → menu → search.
// Each step carries its own status; the transition table below keeps the
// steps consistent with each other.

package workflow

import (
	"errors"
	"fmt"
)

// StepID names one of the three workflow steps.
type StepID string

const (
	StepLocation StepID = "location"
	StepMenu     StepID = "menu"
	StepSearch   StepID = "search"
)

// Order is the fixed display and dependency order of the steps.
var Order = []StepID{StepLocation, StepMenu, StepSearch}

// Label returns the display name of the step.
func (id StepID) Label() string {
	switch id {
	case StepLocation:
		return "위치 설정"
	case StepMenu:
		return "메뉴 추첨"
	case StepSearch:
		return "지도 검색"
	default:
		return string(id)
	}
}

// Status is the progress of a single step.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Label returns the short status badge text.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "진행 중"
	case StatusDone:
		return "완료"
	case StatusError:
		return "오류"
	default:
		return "대기"
	}
}

var (
	// ErrUnknownStep is returned for ids outside Order.
	ErrUnknownStep = errors.New("workflow: unknown step")
	// ErrInvalidTransition is returned when a status change breaks the table.
	ErrInvalidTransition = errors.New("workflow: invalid transition")
)

// Step is one entry of the timeline.
type Step struct {
	ID      StepID
	Label   string
	Status  Status
	Message string
}

// Workflow holds the three steps in Order.
type Workflow struct {
	steps []Step
}

// New returns the initial timeline. When a stored location was loaded the
// location step starts done and the menu step is next.
func New(locationKnown bool) *Workflow {
	w := &Workflow{steps: make([]Step, len(Order))}
	for i, id := range Order {
		w.steps[i] = Step{ID: id, Label: id.Label(), Status: StatusPending}
	}
	if locationKnown {
		w.steps[0].Status = StatusDone
	} else {
		w.steps[0].Status = StatusActive
	}
	return w
}

// Steps returns a copy of the timeline.
func (w *Workflow) Steps() []Step {
	out := make([]Step, len(w.steps))
	copy(out, w.steps)
	return out
}

// Step returns a single step.
func (w *Workflow) Step(id StepID) (Step, bool) {
	idx := indexOf(id)
	if idx < 0 {
		return Step{}, false
	}
	return w.steps[idx], true
}

// Current returns the first step that is not done, or StepSearch when the
// whole run is done.
func (w *Workflow) Current() StepID {
	for _, step := range w.steps {
		if step.Status != StatusDone {
			return step.ID
		}
	}
	return StepSearch
}

// Set changes one step. Allowed moves: anything back to pending,
// pending→active, active→done, active→error, error→active and done→active.
// A step may only be active or done once every earlier step is done.
func (w *Workflow) Set(id StepID, status Status, message string) error {
	idx := indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownStep, id)
	}
	from := w.steps[idx].Status
	if !allowed(from, status) {
		return fmt.Errorf("%w: %s %s→%s", ErrInvalidTransition, id, from, status)
	}
	if status == StatusActive || status == StatusDone {
		for _, prev := range w.steps[:idx] {
			if prev.Status != StatusDone {
				return fmt.Errorf("%w: %s cannot be %s while %s is %s", ErrInvalidTransition, id, status, prev.ID, prev.Status)
			}
		}
	}
	w.steps[idx].Status = status
	w.steps[idx].Message = message
	return nil
}

// LocationSet marks a fresh location: location done, later steps pending.
func (w *Workflow) LocationSet() {
	w.resetFrom(1)
	loc := &w.steps[0]
	loc.Status = StatusDone
	loc.Message = ""
}

// LocationCleared restarts the run from location capture.
func (w *Workflow) LocationCleared() {
	w.resetFrom(1)
	w.steps[0].Status = StatusActive
	w.steps[0].Message = ""
}

// LocationMissing flags the location step with message. Later steps are
// left untouched.
func (w *Workflow) LocationMissing(message string) {
	loc := &w.steps[0]
	if loc.Status == StatusPending {
		loc.Status = StatusActive
	}
	if loc.Status == StatusActive || loc.Status == StatusError {
		loc.Status = StatusError
	}
	loc.Message = message
}

// MenuStarted marks the menu step active and clears the search step.
func (w *Workflow) MenuStarted() error {
	if err := w.Set(StepSearch, StatusPending, ""); err != nil {
		return err
	}
	return w.Set(StepMenu, StatusActive, "")
}

// MenuDrawn records the drawn dish and moves on to the search step.
func (w *Workflow) MenuDrawn(item string) error {
	if err := w.Set(StepMenu, StatusDone, item); err != nil {
		return err
	}
	return w.Set(StepSearch, StatusActive, "")
}

// SearchReady finishes the run.
func (w *Workflow) SearchReady(message string) error {
	return w.Set(StepSearch, StatusDone, message)
}

// SearchFailed flags the search step.
func (w *Workflow) SearchFailed(message string) error {
	return w.Set(StepSearch, StatusError, message)
}

func (w *Workflow) resetFrom(idx int) {
	for i := idx; i < len(w.steps); i++ {
		w.steps[i].Status = StatusPending
		w.steps[i].Message = ""
	}
}

func allowed(from, to Status) bool {
	if from == to || to == StatusPending {
		return true
	}
	switch from {
	case StatusPending:
		return to == StatusActive
	case StatusActive:
		return to == StatusDone || to == StatusError
	case StatusError, StatusDone:
		return to == StatusActive
	}
	return false
}

func indexOf(id StepID) int {
	for i, candidate := range Order {
		if candidate == id {
			return i
		}
	}
	return -1
}
