package intake

import "errors"

var (
	// ErrSessionNotFound indicates the session does not exist, has expired,
	// or belongs to another user. The caller is expected to restart the
	// flow from ProcessInput.
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrEmptyInput indicates the turn carried no usable text, transcript
	// or attachment content.
	ErrEmptyInput = errors.New("input is empty")

	// ErrFlowMismatch indicates the submitted flow id does not match the
	// flow currently outstanding on the session.
	ErrFlowMismatch = errors.New("flow id does not match the active clarification flow")
)
