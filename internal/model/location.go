package model

// Location is a place inside a room (a shelf, a cupboard, a drawer
// unit) that holds containers.
//
// Fields:
//  ID     – primary key identifier.
//  Name   – display name of the location.
//  RoomID – ID of the owning room.
type Location struct {
	ID     int64  // locations.id
	Name   string // locations.name
	RoomID int64  // locations.room_id
}
