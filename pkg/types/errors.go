package types

import "errors"

// Operation errors. Every catalog operation reports failures through one of
// these, wrapped with context; callers test with errors.Is.
var (
	// ErrNotFound reports that a lookup by key or unique field matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument reports input that cannot be interpreted, such as an
	// unknown copy status token.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConstraintViolation reports a rejected write: duplicate ISBN or copy
	// code, a missing required field or a missing parent reference.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStoreFault reports a connectivity or transport failure of the
	// underlying store.
	ErrStoreFault = errors.New("store fault")

	// ErrNoChanges aborts an update that would not modify anything. The
	// transaction is rolled back rather than committed empty.
	ErrNoChanges = errors.New("no changes applied")
)

// Backend lifecycle errors.
var (
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrAlreadyAttached = errors.New("catalog is already attached")
)
