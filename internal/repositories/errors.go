package repositories

import "errors"

// ErrNotFound is returned when a row does not exist. Handlers map it to
// a 404.
var ErrNotFound = errors.New("record not found")
