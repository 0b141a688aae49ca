package core

import "errors"

// Error classes surfaced by the broker and registry. Callers wrap them with
// fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrValidation = errors.New("invalid request")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrTransport  = errors.New("transport unavailable")
	ErrSigning    = errors.New("grant signing failed")
)
