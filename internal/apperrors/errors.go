package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller's credentials are missing or wrong.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInsufficientFunds indicates the payer's balance cannot cover the amount
// at the moment the transfer executes.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidRequest indicates a money request that does not exist, is no longer
// pending, or does not belong to the resolving user.
var ErrInvalidRequest = errors.New("invalid or unauthorized request")
