package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/iliyamo/home-inventory/internal/model"
)

const (
	msgRequired = "field required"
	msgNotNull  = "field may not be null"
)

// object is a request body split into its top-level fields.
type object map[string]json.RawMessage

// parseObject splits a body into fields.  Anything other than a JSON
// object is rejected as a whole.
func parseObject(data []byte) (object, *ValidationError) {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		errs := &ValidationError{}
		errs.Add("body", "request body must be a JSON object")
		return nil, errs
	}
	return obj, &ValidationError{}
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// decodeValue unmarshals raw into a T and turns decoder errors into a
// readable message on errs.
func decodeValue[T any](raw json.RawMessage, field string, errs *ValidationError) (T, bool) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			errs.Add(field, "value is not a valid "+typeName[T]())
		} else {
			errs.Add(field, err.Error())
		}
		return v, false
	}
	return v, true
}

// required decodes a field that must be present and non-null.
func required[T any](obj object, field string, errs *ValidationError) T {
	raw, ok := obj[field]
	if !ok || isNull(raw) {
		errs.Add(field, msgRequired)
		var zero T
		return zero
	}
	v, _ := decodeValue[T](raw, field, errs)
	return v
}

// nullable decodes a field that may be absent or null.  It returns nil in
// both cases.
func nullable[T any](obj object, field string, errs *ValidationError) *T {
	raw, ok := obj[field]
	if !ok || isNull(raw) {
		return nil
	}
	v, ok := decodeValue[T](raw, field, errs)
	if !ok {
		return nil
	}
	return &v
}

// optional decodes a field of a partial update.  When notNull is set an
// explicit null is rejected because the column cannot hold it.
func optional[T any](obj object, field string, notNull bool, errs *ValidationError) Optional[T] {
	raw, ok := obj[field]
	if !ok {
		return Optional[T]{}
	}
	if isNull(raw) {
		if notNull {
			errs.Add(field, msgNotNull)
			return Optional[T]{}
		}
		return Null[T]()
	}
	v, ok := decodeValue[T](raw, field, errs)
	if !ok {
		return Optional[T]{}
	}
	return Some(v)
}

func typeName[T any]() string {
	var zero T
	switch any(zero).(type) {
	case string:
		return "string"
	case int64, int:
		return "integer"
	case model.Date:
		return "date"
	}
	return fmt.Sprint(reflect.TypeOf(zero))
}
