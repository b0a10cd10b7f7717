package overtime

import "errors"

// Overtime domain errors
var (
	ErrPermissionNotFound = errors.New("overtime transaction not found")
	ErrDateEntryNotFound  = errors.New("overtime date not found")
	ErrNoPendingWindow    = errors.New("no computed times pending for this overtime date")
	ErrInvalidStatus      = errors.New("invalid overtime status")
	ErrNotApproved        = errors.New("overtime transaction is not approved for rendering")
)
