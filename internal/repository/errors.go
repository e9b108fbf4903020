// Package repository holds the data access logic for the inventory
// hierarchy.  The sentinel values below are shared by every repository
// so handlers can map failures to HTTP responses without knowing which
// table produced them.
package repository

import "errors"

// ErrConflict is returned when a delete cannot proceed because the
// record still has children (houses with rooms, containers with items
// and so on).  Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrParentNotFound is returned when an insert or update names a parent
// id that does not exist.  Handlers translate it into an HTTP 422.
var ErrParentNotFound = errors.New("parent not found")
