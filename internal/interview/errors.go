package interview

import "errors"

// ErrSessionCreation indicates the session could not be created because the
// request itself was malformed, e.g. a non-positive question count.
var ErrSessionCreation = errors.New("session creation failed")

// ErrSessionNotFound indicates the session id is not in the live working
// set. A completed session is removed, so a second Complete call also
// reports this error.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSessionState indicates a lifecycle misuse, such as submitting an
// answer after every question has been answered.
var ErrInvalidSessionState = errors.New("invalid session state")

// ErrSessionOwnership indicates the caller is not the candidate the session
// belongs to.
var ErrSessionOwnership = errors.New("session belongs to another candidate")
