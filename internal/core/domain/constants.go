package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrCommandNotFound    = errors.New("command not found")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidOption      = errors.New("invalid option")
	ErrInvalidTransition  = errors.New("invalid invocation state transition")
)

// Typed failures returned by the analytics backend.
var (
	ErrNoActivity         = errors.New("subject has no recorded activity")
	ErrBackendUnavailable = errors.New("analytics backend unavailable")
	ErrInvalidScope       = errors.New("invalid analytics scope")
)

const AttachmentPrefix = "attachment://"
