package trade

import "github.com/google/uuid"

// RequestFilter can veto a trade request before it is recorded. A non-nil
// error rejects the request.
type RequestFilter func(requester, target uuid.UUID) error

// AcceptFilter can veto an accepted request before the session opens.
type AcceptFilter func(requester, target uuid.UUID) error
