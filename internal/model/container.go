package model

// Container is a box, jar or bin kept at a location.  Items may be
// placed in a container.
type Container struct {
	ID         int64  // containers.id
	Name       string // containers.name
	LocationID int64  // containers.location_id
}
