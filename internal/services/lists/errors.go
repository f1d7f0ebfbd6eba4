package lists

import "errors"

var (
	ErrEntryNotFound = errors.New("movie is not in the list")
	ErrUnknownKind   = errors.New("unknown list kind")
)
