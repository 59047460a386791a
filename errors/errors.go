package errors

import "fmt"

var (
	ErrInvalidReference     = fmt.Errorf("invalid channel or user reference")
	ErrAdapterSendFailure   = fmt.Errorf("adapter failed to deliver message")
	ErrMissingResource      = fmt.Errorf("required static resource is missing")
	ErrDirectoryUnavailable = fmt.Errorf("destination directory unavailable")
	ErrUnknownService       = fmt.Errorf("unknown service")
	ErrSelfLink             = fmt.Errorf("a channel cannot be linked to itself")
	ErrAlreadyLinked        = fmt.Errorf("channels are already linked")
	ErrLinkNotFound         = fmt.Errorf("no such link")
	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrEmptyWords           = fmt.Errorf("no words have been found")
	ErrInvalidPassword      = fmt.Errorf("password does not meet complexity requirements")
	ErrMalformedHash        = fmt.Errorf("malformed password hash")
)
