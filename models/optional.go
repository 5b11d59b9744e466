package models

import "encoding/json"

// Optional отмечает, было ли поле передано в частичном обновлении.
// Ключ, присутствующий в JSON (даже со значением null), делает Set истинным.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Or возвращает переданное значение либо текущее.
func (o Optional[T]) Or(current T) T {
	if o.Set {
		return o.Value
	}
	return current
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}
