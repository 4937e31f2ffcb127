package domain

import "errors"

var (
	ErrPermissionDenied   = errors.New("accessibility permission not granted")
	ErrProcessNotFound    = errors.New("target process not found")
	ErrWindowNotFound     = errors.New("target window not found")
	ErrClickRejected      = errors.New("click event rejected by event service")
	ErrTimingViolation    = errors.New("click timing constraint violated")
	ErrInvalidDestination = errors.New("destination point outside every monitor")
	ErrTargetNotSet       = errors.New("no target selected")
	ErrPresetNotFound     = errors.New("preset not found")
)
