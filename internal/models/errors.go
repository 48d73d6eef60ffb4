package models

import "errors"

var (
	ErrEventOrder     = errors.New("word end event precedes its start event")
	ErrMissingType    = errors.New("word type is required")
	ErrSelfDerivation = errors.New("word cannot derive from itself")
)

// ErrNoSource is returned when a prim source has no "n/mL" score.
var ErrNoSource = errors.New("no compatible source found")
