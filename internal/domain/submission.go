package domain

import "fmt"

// SubmissionStatus is the lifecycle marker of a controller's submission
type SubmissionStatus string

const (
	StatusIdle    SubmissionStatus = "idle"
	StatusPending SubmissionStatus = "pending"
	StatusSuccess SubmissionStatus = "success"
	StatusFailure SubmissionStatus = "failure"
)

// SubmissionEvent drives status transitions
type SubmissionEvent string

const (
	EventSubmit   SubmissionEvent = "submit"
	EventAccepted SubmissionEvent = "accepted"
	EventFailed   SubmissionEvent = "failed"
	EventEdit     SubmissionEvent = "edit"
	EventDismiss  SubmissionEvent = "dismiss"
)

// Transition returns the status that follows current on event.
// Submitting is only refused while a submission is in flight.
func Transition(current SubmissionStatus, event SubmissionEvent) (SubmissionStatus, error) {
	switch current {
	case StatusIdle:
		switch event {
		case EventSubmit:
			return StatusPending, nil
		case EventEdit, EventDismiss:
			return StatusIdle, nil
		}
	case StatusPending:
		switch event {
		case EventAccepted:
			return StatusSuccess, nil
		case EventFailed:
			return StatusFailure, nil
		case EventEdit:
			return StatusPending, nil
		}
	case StatusSuccess, StatusFailure:
		switch event {
		case EventSubmit:
			return StatusPending, nil
		case EventEdit, EventDismiss:
			return StatusIdle, nil
		}
	default:
		return current, fmt.Errorf("unknown submission status %q", current)
	}
	return current, invalidTransition(current, event)
}

func invalidTransition(status SubmissionStatus, event SubmissionEvent) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", status, event)
}

// SubmissionOutcome is what a single Submit call achieved
type SubmissionOutcome string

const (
	// OutcomeInvalid: validation failed, nothing was sent
	OutcomeInvalid SubmissionOutcome = "invalid"
	// OutcomeBusy: another submission was already in flight
	OutcomeBusy SubmissionOutcome = "busy"
	OutcomeSent SubmissionOutcome = "sent"
	// OutcomeFailed covers provider rejection, transport and configuration errors alike
	OutcomeFailed SubmissionOutcome = "failed"
)
