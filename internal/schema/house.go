package schema

import "github.com/iliyamo/home-inventory/internal/model"

// HouseCreate is the input of POST /houses/.
type HouseCreate struct {
	Name    string
	Address *string
}

// HouseUpdate is the input of PUT /houses/{id}.  Only set fields are
// written.
type HouseUpdate struct {
	Name    Optional[string]
	Address Optional[string]
}

// HouseRead is the serialized form of a stored house.
type HouseRead struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

// DecodeHouseCreate validates a create payload.
func DecodeHouseCreate(data []byte) (HouseCreate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return HouseCreate{}, errs
	}
	in := HouseCreate{
		Name:    required[string](obj, "name", errs),
		Address: nullable[string](obj, "address", errs),
	}
	return in, errs.orNil()
}

// DecodeHouseUpdate validates an update payload.
func DecodeHouseUpdate(data []byte) (HouseUpdate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return HouseUpdate{}, errs
	}
	in := HouseUpdate{
		Name:    optional[string](obj, "name", true, errs),
		Address: optional[string](obj, "address", false, errs),
	}
	return in, errs.orNil()
}

// Apply copies the set fields onto h.
func (u HouseUpdate) Apply(h *model.House) {
	if u.Name.Present() {
		h.Name = u.Name.Value
	}
	if u.Address.Set {
		h.Address = u.Address.Ptr()
	}
}

// NewHouseRead builds the read shape from a stored row.
func NewHouseRead(h *model.House) HouseRead {
	return HouseRead{ID: h.ID, Name: h.Name, Address: h.Address}
}

// NewHouseReads converts a page of rows.
func NewHouseReads(hs []*model.House) []HouseRead {
	out := make([]HouseRead, 0, len(hs))
	for _, h := range hs {
		out = append(out, NewHouseRead(h))
	}
	return out
}
