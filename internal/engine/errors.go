package engine

import "errors"

// ErrConfig marks an invalid range-table configuration. Construction fails
// and the engine must not run.
var ErrConfig = errors.New("invalid range configuration")

// ErrValidation marks a malformed reading: a non-finite value or a value
// outside the sensor's hard physical bounds. Callers reject the reading and
// retain their last known-good state.
var ErrValidation = errors.New("invalid reading")
