package board

import "errors"

// Validation errors are decided locally and never reach the ledger.
var (
	ErrMissingClient     = errors.New("a client must be selected from the directory")
	ErrEmptyItems        = errors.New("order items text is empty")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrOrderDispatched   = errors.New("order already dispatched")
	ErrUnknownRoute      = errors.New("unknown route")
	ErrUnknownStatus     = errors.New("unknown status")
	ErrWrongKind         = errors.New("operation not valid for this order kind")
	ErrRouteUnassigned   = errors.New("order is not on an ordered route")
)
