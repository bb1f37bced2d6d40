package domain

import "errors"

// ErrNotFound indicates the requested product or order does not exist.
var ErrNotFound = errors.New("not found")
