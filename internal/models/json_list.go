package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONList is a JSON array persisted in a text column.
//
// Scan never fails: NULL, empty, malformed or non-array text is read back as
// an empty list so a single bad row cannot break a catalog read. Text that
// holds a JSON string wrapping an array (double-encoded) is unwrapped once.
type JSONList[T any] []T

// ParseJSONList decodes raw into a list, degrading to an empty list.
func ParseJSONList[T any](raw []byte) JSONList[T] {
	out := JSONList[T]{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return out
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		if items == nil {
			return out
		}
		return items
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil && inner != "" {
		if err := json.Unmarshal([]byte(inner), &items); err == nil && items != nil {
			return items
		}
	}
	return out
}

// Value implements driver.Valuer
func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]T(l))
	if err != nil {
		return nil, fmt.Errorf("encode json list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *JSONList[T]) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*l = ParseJSONList[T](v)
	case string:
		*l = ParseJSONList[T]([]byte(v))
	default:
		*l = JSONList[T]{}
	}
	return nil
}

// GormDataType keeps the column a plain text column on every dialect
func (JSONList[T]) GormDataType() string {
	return "text"
}

func (l JSONList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}

func (l *JSONList[T]) UnmarshalJSON(data []byte) error {
	*l = ParseJSONList[T](data)
	return nil
}
