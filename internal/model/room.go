package model

// Room is a room inside a house.  Every room references an existing
// house and owns any number of locations.
//
// Fields:
//  ID      – primary key identifier.
//  Name    – display name of the room.
//  HouseID – ID of the owning house.
type Room struct {
	ID      int64  // rooms.id
	Name    string // rooms.name
	HouseID int64  // rooms.house_id
}
