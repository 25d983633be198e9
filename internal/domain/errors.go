package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrSourceUnavailable signals an unreadable data source.
	ErrSourceUnavailable = errors.New("data source unavailable")
	// ErrGeneratorUnavailable signals that no chat model could produce a reply.
	ErrGeneratorUnavailable = errors.New("chat model unavailable")
)
