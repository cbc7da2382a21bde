package core

import "errors"

// Error kinds. Stage errors wrap exactly one of these, so callers can
// tell failures apart with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrCorruptArchive    = errors.New("corrupt archive")
	ErrMissingDocument   = errors.New("missing document")
	ErrMalformedDocument = errors.New("malformed document")
	ErrEmptyAccountList  = errors.New("no accounts found in the export data")
	ErrEmptyVaultList    = errors.New("no vaults found in the first account")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrWriteFailure      = errors.New("write failure")
	ErrSchemaMismatch    = errors.New("schema mismatch")
)
