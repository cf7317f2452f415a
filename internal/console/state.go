package console

import "errors"

// State is where a manager panel is in its create flow.
type State int

const (
	Idle State = iota
	FormOpen
	Submitting
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FormOpen:
		return "form_open"
	case Submitting:
		return "submitting"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrUploadInFlight blocks a submit while an image is still uploading.
	ErrUploadInFlight = errors.New("an upload is still in progress")
	// ErrFormClosed rejects a submit after the create form was closed.
	ErrFormClosed = errors.New("the form is closed")
	// ErrBusy rejects a second submit while the first is running.
	ErrBusy = errors.New("already submitting")
	// ErrNoPendingDelete is returned when a delete is confirmed without being requested.
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	// ErrUnknownTab is returned for tab names the console does not have.
	ErrUnknownTab = errors.New("unknown tab")
)
