package exam

import "errors"

var (
	// ErrNotInProgress is returned when an answer is recorded on a
	// session that is not accepting answers.
	ErrNotInProgress = errors.New("session is not in progress")

	// ErrTimeExpired is returned when an answer arrives after the
	// session duration has elapsed.
	ErrTimeExpired = errors.New("session time has expired")

	// ErrUnknownQuestion is returned for an answer to a question id
	// that is not part of the session.
	ErrUnknownQuestion = errors.New("question is not part of this session")

	// ErrAlreadyStarted is returned when Begin is called twice.
	ErrAlreadyStarted = errors.New("session already started")

	// ErrNotGrading is returned when results are finalized on a
	// session that has not been submitted.
	ErrNotGrading = errors.New("session is not being graded")
)
