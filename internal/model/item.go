package model

// Item is a single catalogued thing.  Unlike the other levels of the
// hierarchy an item does not need a parent: ContainerID is nil for
// items that have not been put away yet.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the item.
//  Category    – free-form category label (e.g. "Spices").
//  ExpiryDate  – optional best-before date (nil when unset).
//  ContainerID – ID of the container holding the item (nil if unassigned).
type Item struct {
	ID          int64  // items.id
	Name        string // items.name
	Category    string // items.category
	ExpiryDate  *Date  // items.expiry_date (nullable)
	ContainerID *int64 // items.container_id (nullable)
}
