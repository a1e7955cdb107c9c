package apperr

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrEmptyExport = errors.New("no notes in export scope")
	ErrBusy        = errors.New("operation already in progress")
)
