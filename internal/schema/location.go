package schema

import "github.com/iliyamo/home-inventory/internal/model"

// LocationCreate is the input of POST /locations/.
type LocationCreate struct {
	Name   string
	RoomID int64
}

// LocationUpdate is the input of PUT /locations/{id}.
type LocationUpdate struct {
	Name   Optional[string]
	RoomID Optional[int64]
}

// LocationRead is the serialized form of a stored location.
type LocationRead struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	RoomID int64  `json:"room_id"`
}

func DecodeLocationCreate(data []byte) (LocationCreate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return LocationCreate{}, errs
	}
	in := LocationCreate{
		Name:   required[string](obj, "name", errs),
		RoomID: required[int64](obj, "room_id", errs),
	}
	return in, errs.orNil()
}

func DecodeLocationUpdate(data []byte) (LocationUpdate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return LocationUpdate{}, errs
	}
	in := LocationUpdate{
		Name:   optional[string](obj, "name", true, errs),
		RoomID: optional[int64](obj, "room_id", true, errs),
	}
	return in, errs.orNil()
}

func (u LocationUpdate) Apply(l *model.Location) {
	if u.Name.Present() {
		l.Name = u.Name.Value
	}
	if u.RoomID.Present() {
		l.RoomID = u.RoomID.Value
	}
}

func NewLocationRead(l *model.Location) LocationRead {
	return LocationRead{ID: l.ID, Name: l.Name, RoomID: l.RoomID}
}

func NewLocationReads(ls []*model.Location) []LocationRead {
	out := make([]LocationRead, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewLocationRead(l))
	}
	return out
}
