package pointmass

import "errors"

// Error implements errors unique to the point mass environment.
type Error struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

var errInvalidAction = errors.New("actions must be a single finite direction " +
	"in radians")

var errStartTooClose = errors.New("could not draw a start state with the " +
	"agent and target sufficiently separated")

// IsInvalidAction returns whether or not an error reports that an
// action passed to Step was malformed. Malformed actions are nil
// actions, actions with more than one component, and actions whose
// direction is NaN or infinite.
func IsInvalidAction(err error) bool {
	if envErr, ok := err.(*Error); ok {
		err = envErr.Err
	}
	return err == errInvalidAction
}

// IsStartTooClose returns whether or not an error reports that the
// environment could not construct a legal starting state.
//
// Starting states are redrawn until the agent and target are farther
// apart than Precision. If the start state distribution cannot produce
// such a state within a bounded number of draws, resetting fails with
// this error. The error is not recoverable by retrying: it indicates a
// misconfigured start state distribution.
func IsStartTooClose(err error) bool {
	if envErr, ok := err.(*Error); ok {
		err = envErr.Err
	}
	return err == errStartTooClose
}
