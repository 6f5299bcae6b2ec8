package data

import "errors"

var (
	ErrOrderNotFound             = errors.New("order not found")
	ErrAmbiguousOrder            = errors.New("more than one order matches")
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrDeletionForbidden         = errors.New("deleting orders is forbidden")
)
