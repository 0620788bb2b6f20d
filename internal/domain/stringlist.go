package domain

import (
	"database/sql/driver"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// StringList stores an ordered list of strings as a JSON text column.
// Used for product/blog image paths and product feature lines.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := jsoniter.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList column type %T", src)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	return jsoniter.Unmarshal(data, (*[]string)(l))
}
