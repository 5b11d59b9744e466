package models

import "errors"

// Ошибки хранилища, общие для SQL-реализации и тестовых подмен.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	// ErrStale: условная запись не нашла строку в ожидаемом состоянии.
	ErrStale = errors.New("record state changed")
)
