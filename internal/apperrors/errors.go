package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no authenticated account is associated with the request.
var ErrUnauthorized = errors.New("not authenticated")

// ErrInsufficientFunds indicates a buy whose total exceeds the account's cash balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInsufficientHoldings indicates a sell of more units than the account holds.
var ErrInsufficientHoldings = errors.New("insufficient holdings")

// ErrPersistence indicates that a store read or write failed. The account may
// not reflect the requested change; callers must not report this as an
// ordinary trade failure.
var ErrPersistence = errors.New("persistence failure")

// ErrCompensationFailed indicates that the rollback leg of an exchange did
// not complete after the sell leg had been persisted. The account is in a
// partially-updated state and needs manual reconciliation; this must be
// surfaced distinctly, never swallowed into an ordinary failure.
var ErrCompensationFailed = errors.New("exchange compensation failed")
