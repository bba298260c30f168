package ledger

import "errors"

// ErrNotFound is returned by stores when an entity does not exist for the
// given user. Handlers map it to 404; everything else is a store failure and
// propagates unmodified as a data-unavailable condition.
var ErrNotFound = errors.New("not found")
