package schema

import "github.com/iliyamo/home-inventory/internal/model"

// RoomCreate is the input of POST /rooms/.
type RoomCreate struct {
	Name    string
	HouseID int64
}

// RoomUpdate is the input of PUT /rooms/{id}.
type RoomUpdate struct {
	Name    Optional[string]
	HouseID Optional[int64]
}

// RoomRead is the serialized form of a stored room.
type RoomRead struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	HouseID int64  `json:"house_id"`
}

func DecodeRoomCreate(data []byte) (RoomCreate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return RoomCreate{}, errs
	}
	in := RoomCreate{
		Name:    required[string](obj, "name", errs),
		HouseID: required[int64](obj, "house_id", errs),
	}
	return in, errs.orNil()
}

func DecodeRoomUpdate(data []byte) (RoomUpdate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return RoomUpdate{}, errs
	}
	in := RoomUpdate{
		Name:    optional[string](obj, "name", true, errs),
		HouseID: optional[int64](obj, "house_id", true, errs),
	}
	return in, errs.orNil()
}

func (u RoomUpdate) Apply(r *model.Room) {
	if u.Name.Present() {
		r.Name = u.Name.Value
	}
	if u.HouseID.Present() {
		r.HouseID = u.HouseID.Value
	}
}

func NewRoomRead(r *model.Room) RoomRead {
	return RoomRead{ID: r.ID, Name: r.Name, HouseID: r.HouseID}
}

func NewRoomReads(rs []*model.Room) []RoomRead {
	out := make([]RoomRead, 0, len(rs))
	for _, r := range rs {
		out = append(out, NewRoomRead(r))
	}
	return out
}
