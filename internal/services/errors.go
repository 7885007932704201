package services

import (
  "errors"
  "fmt"
)

// Failure taxonomy surfaced to the HTTP layer. Store/backend errors that are
// neither of these are transport failures and pass through wrapped.
var (
  ErrNotFound   = errors.New("not found")
  ErrValidation = errors.New("validation failed")
)

func notFound(what string) error {
  return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func invalid(reason string) error {
  return fmt.Errorf("%s: %w", reason, ErrValidation)
}
