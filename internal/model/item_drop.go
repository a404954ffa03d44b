package model

import (
	"database/sql/driver"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ItemDrop is one (item, quantity) entry in a drop report's item list.
type ItemDrop struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// ItemDrops is the full item list of one report, stored as a jsonb column
// on drop_reports.
type ItemDrops []ItemDrop

func (d *ItemDrops) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = nil
		return nil
	default:
		return errors.Errorf("unsupported source type %T for ItemDrops", src)
	}
}

func (d ItemDrops) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
