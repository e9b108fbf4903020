package schema

import "github.com/iliyamo/home-inventory/internal/model"

// ItemCreate is the input of POST /items/.  ExpiryDate and ContainerID
// are optional; an item without a container is unassigned.
type ItemCreate struct {
	Name        string
	Category    string
	ExpiryDate  *model.Date
	ContainerID *int64
}

// ItemUpdate is the input of PUT /items/{id}.  ExpiryDate and
// ContainerID may be set to null to clear them.
type ItemUpdate struct {
	Name        Optional[string]
	Category    Optional[string]
	ExpiryDate  Optional[model.Date]
	ContainerID Optional[int64]
}

// ItemRead is the serialized form of a stored item.
type ItemRead struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	ExpiryDate  *model.Date `json:"expiry_date"`
	ContainerID *int64      `json:"container_id"`
}

func DecodeItemCreate(data []byte) (ItemCreate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return ItemCreate{}, errs
	}
	in := ItemCreate{
		Name:        required[string](obj, "name", errs),
		Category:    required[string](obj, "category", errs),
		ExpiryDate:  nullable[model.Date](obj, "expiry_date", errs),
		ContainerID: nullable[int64](obj, "container_id", errs),
	}
	return in, errs.orNil()
}

func DecodeItemUpdate(data []byte) (ItemUpdate, error) {
	obj, errs := parseObject(data)
	if obj == nil {
		return ItemUpdate{}, errs
	}
	in := ItemUpdate{
		Name:        optional[string](obj, "name", true, errs),
		Category:    optional[string](obj, "category", true, errs),
		ExpiryDate:  optional[model.Date](obj, "expiry_date", false, errs),
		ContainerID: optional[int64](obj, "container_id", false, errs),
	}
	return in, errs.orNil()
}

func (u ItemUpdate) Apply(it *model.Item) {
	if u.Name.Present() {
		it.Name = u.Name.Value
	}
	if u.Category.Present() {
		it.Category = u.Category.Value
	}
	if u.ExpiryDate.Set {
		it.ExpiryDate = u.ExpiryDate.Ptr()
	}
	if u.ContainerID.Set {
		it.ContainerID = u.ContainerID.Ptr()
	}
}

func NewItemRead(it *model.Item) ItemRead {
	return ItemRead{
		ID:          it.ID,
		Name:        it.Name,
		Category:    it.Category,
		ExpiryDate:  it.ExpiryDate,
		ContainerID: it.ContainerID,
	}
}

func NewItemReads(its []*model.Item) []ItemRead {
	out := make([]ItemRead, 0, len(its))
	for _, it := range its {
		out = append(out, NewItemRead(it))
	}
	return out
}
