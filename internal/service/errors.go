package service

import "errors"

// Sentinel errors for policy rejections on the write path. Controllers map
// them onto HTTP statuses; everything else is an internal fault.
var (
	ErrLectureNotFound   = errors.New("lecture not found")
	ErrTestNotFound      = errors.New("test not found")
	ErrNotPublished      = errors.New("lecture is not published or has no test")
	ErrDeadlinePassed    = errors.New("test deadline has passed")
	ErrAttemptsExhausted = errors.New("no attempts remaining")
	ErrGenerationFailed  = errors.New("question generation failed")
)
