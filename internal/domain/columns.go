package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// StringList maps a Postgres text[] column.
type StringList []string

func (l *StringList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("scanning text array: %w", err)
	}

	*l = StringList(arr)

	return nil
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return pq.StringArray{}.Value()
	}

	return pq.StringArray(l).Value()
}

// Metadata is the free-form JSONB attribute bag of a plan (venue, guest
// count, theme and so on).
type Metadata map[string]any

func (m *Metadata) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", src)
	}

	out := Metadata{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decoding metadata: %w", err)
	}

	*m = out

	return nil
}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}

	return string(raw), nil
}
