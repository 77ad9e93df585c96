package catalog

import (
	"errors"
	"fmt"
)

// RetryMessage is shown by presenters when the dataset could not be loaded.
const RetryMessage = "Failed to load card data, please refresh and try again."

// ErrNullDocument is the parse failure for a payload that is the JSON literal null.
var ErrNullDocument = errors.New("card document is null")

// LoadError reports that the dataset could not be retrieved or parsed.
// No partial dataset is ever returned alongside it.
type LoadError struct {
	Op     string // "open", "read" or "parse"
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
