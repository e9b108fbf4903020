package schema

import "github.com/iliyamo/home-inventory/internal/model"

// ContainerCreate is the input of POST /containers/.
type ContainerCreate struct {
	Name       string
	LocationID int64
}

// ContainerUpdate is the input of PUT /containers/{id}.
type ContainerUpdate struct {
	Name       Optional[string]
	LocationID Optional[int64]
}

// ContainerRead is the serialized form of a stored container.
type ContainerRead struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LocationID int64  `json:"location_id"`
}

func DecodeContainerCreate(data []byte) (ContainerCreate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return ContainerCreate{}, errs
	}
	in := ContainerCreate{
		Name:       required[string](obj, "name", errs),
		LocationID: required[int64](obj, "location_id", errs),
	}
	return in, errs.orNil()
}

func DecodeContainerUpdate(data []byte) (ContainerUpdate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return ContainerUpdate{}, errs
	}
	in := ContainerUpdate{
		Name:       optional[string](obj, "name", true, errs),
		LocationID: optional[int64](obj, "location_id", true, errs),
	}
	return in, errs.orNil()
}

func (u ContainerUpdate) Apply(c *model.Container) {
	if u.Name.Present() {
		c.Name = u.Name.Value
	}
	if u.LocationID.Present() {
		c.LocationID = u.LocationID.Value
	}
}

func NewContainerRead(c *model.Container) ContainerRead {
	return ContainerRead{ID: c.ID, Name: c.Name, LocationID: c.LocationID}
}

func NewContainerReads(cs []*model.Container) []ContainerRead {
	out := make([]ContainerRead, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewContainerRead(c))
	}
	return out
}
