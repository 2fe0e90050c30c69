package form

import "github.com/abhisek/dass21/internal/intake"

// submitDoneMsg carries the outcome of an asynchronous submit.
type submitDoneMsg struct {
	Receipt *intake.Receipt
	Err     error
}
