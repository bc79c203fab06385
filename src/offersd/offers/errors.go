package offers

import "fmt"

// NotFoundError means a referenced offer/place/city/role did not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier '%s' not found", e.Entity, e.ID)
}

// ConflictError means a duplicate external identifier on create. This is an
// expected, frequently-hit condition during batch import.
type ConflictError struct {
	OfferUID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("offer with %s already exists", e.OfferUID)
}

// ValidationError aborts the whole operation with no partial effect.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}
