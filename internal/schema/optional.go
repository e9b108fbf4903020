package schema

// Optional is a field of a partial update.  It tells apart the three
// states a JSON field can be in: absent (Set is false), explicitly null
// (Set and Null) and carrying a value (Set and not Null).
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Present reports whether the field carries a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr returns nil for null and a pointer to the value otherwise.  It is
// meant for nullable columns and is only meaningful when Set is true.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}
