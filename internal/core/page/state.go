// Package page contains the lifecycle rules shared by every list page.
// This is part of the Functional Core - no I/O, only pure functions.
package page

import "fmt"

// State is the lifecycle position of a list page.
type State string

const (
	StateIdle          State = "idle"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateError         State = "error"
	StateDialogOpen    State = "dialog_open"
	StateSubmitting    State = "submitting"
	StateConfirmDelete State = "confirm_delete"
	StateDeleting      State = "deleting"
)

// Event moves a page from one state to another.
type Event string

const (
	EventLoad       Event = "load"
	EventLoaded     Event = "loaded"
	EventFailed     Event = "failed"
	EventOpenDialog Event = "open_dialog"
	EventClose      Event = "close"
	EventSubmit     Event = "submit"
	EventAskDelete  Event = "ask_delete"
	EventConfirm    Event = "confirm"
)

var transitions = map[State]map[Event]State{
	StateIdle: {
		EventLoad: StateLoading,
	},
	StateLoading: {
		EventLoaded: StateReady,
		EventFailed: StateError,
	},
	StateError: {
		EventLoad: StateLoading,
	},
	StateReady: {
		EventLoad:       StateLoading,
		EventOpenDialog: StateDialogOpen,
		EventAskDelete:  StateConfirmDelete,
	},
	StateDialogOpen: {
		EventSubmit: StateSubmitting,
		EventClose:  StateReady,
	},
	StateSubmitting: {
		EventLoad:   StateLoading,
		EventFailed: StateReady,
		// validation refused the form, keep editing
		EventOpenDialog: StateDialogOpen,
	},
	StateConfirmDelete: {
		EventConfirm: StateDeleting,
		EventClose:   StateReady,
	},
	StateDeleting: {
		EventLoad:   StateLoading,
		EventFailed: StateReady,
	},
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// Next returns the state reached from s on e.
// A mutation that fails returns the page to ready with the error recorded;
// only a failed load leaves the page in the error state.
func Next(s State, e Event) (State, GuardResult) {
	next, ok := transitions[s][e]
	if !ok {
		return s, GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot %s while page is %s", e, s),
		}
	}
	return next, GuardResult{Allowed: true}
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool {
	return s == StateLoading || s == StateSubmitting || s == StateDeleting
}
