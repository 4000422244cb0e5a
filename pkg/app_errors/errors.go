package apperrors

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrCommentNotFound = errors.New("comment not found")

	// membership
	ErrAlreadyParticipant = errors.New("already a participant of this event")
	ErrNotParticipant     = errors.New("not a participant of this event")
	ErrEventFull          = errors.New("event has reached maximum participants")
	ErrCreatorCannotLeave = errors.New("event creator cannot leave the event")

	// invite codes
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrInviteCodeTaken   = errors.New("invite code already taken")

	// visibility
	ErrAccessDenied = errors.New("access denied")

	// likes
	ErrAlreadyLiked = errors.New("image already liked")
	ErrNotLiked     = errors.New("image not liked")

	ErrInvalidInput        = errors.New("invalid input")
	ErrStorageFailure      = errors.New("blob storage failure")
	ErrInternalServerError = errors.New("internal server error")
)
