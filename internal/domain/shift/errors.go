package shift

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the base for every illegal state-machine action.
// Callers match it with errors.Is; the concrete variants carry the
// user-facing reason.
var ErrInvalidTransition = errors.New("invalid shift transition")

var (
	ErrAlreadyClockedIn = fmt.Errorf("%w: you are already clocked in", ErrInvalidTransition)
	ErrNotClockedIn     = fmt.Errorf("%w: you are not clocked in", ErrInvalidTransition)
	ErrAlreadyOnBreak   = fmt.Errorf("%w: you are already on a break", ErrInvalidTransition)
	ErrNotOnBreak       = fmt.Errorf("%w: you are not on a break", ErrInvalidTransition)
)

var (
	ErrSessionNotFound = errors.New("shift session not found")

	// ErrNoOpenSession is a ledger-level signal, mapped by the service to the
	// transition error fitting the attempted action.
	ErrNoOpenSession = errors.New("no open shift session")

	ErrUnknownAction = errors.New("unknown shift action")
)
