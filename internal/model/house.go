package model

// House is the root of the inventory hierarchy.  A house owns any
// number of rooms.  This struct corresponds to a row in the `houses`
// table.
//
// Fields:
//  ID      – primary key identifier, assigned by the store.
//  Name    – display name of the house.
//  Address – optional postal address (nil when unset).
type House struct {
	ID      int64   // houses.id
	Name    string  // houses.name
	Address *string // houses.address (nullable)
}
