package domain

import "errors"

var (
	ErrUnknownRole          = errors.New("unknown message role")
	ErrEmptyContent         = errors.New("message content is empty")
	ErrNegativeWeight       = errors.New("token weight must be a non-negative number")
	ErrAttachmentName       = errors.New("attachment name is required")
	ErrAttachmentOverweight = errors.New("attachment weight exceeds message weight")
	ErrCapacityLimit        = errors.New("capacity limit must be positive")
	ErrNegativeDelay        = errors.New("timing delay must not be negative")
	ErrSlideOrderEmpty      = errors.New("slide order is empty")
	ErrSlideNotFound        = errors.New("slide not found")
)
