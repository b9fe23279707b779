// Package common defines shared constants and sentinel errors used across
// the upload client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Pipeline stage errors. Collaborators wrap their causes with one of these
	// so the orchestrator can map a failure onto a record status.
	ErrCompression = errors.New("compression failed")
	ErrCanceled    = errors.New("upload canceled")
	ErrTransport   = errors.New("transport failed")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)
