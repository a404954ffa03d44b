package model

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// DropInfo describes the expected bounds for one target within a stage's
// reward table while the stage is open. When ItemID is null the bounds
// constrain the number of distinct item kinds of DropType in a report;
// otherwise they constrain the quantity of that specific item.
type DropInfo struct {
	bun.BaseModel `bun:"drop_infos,alias:di"`

	DropInfoID int         `bun:"drop_info_id,pk,autoincrement" json:"id"`
	Server     string      `bun:"server" json:"server"`
	StageID    string      `bun:"stage_id" json:"stageId"`
	ItemID     null.String `bun:"item_id" json:"itemId"`
	DropType   string      `bun:"drop_type" json:"dropType"`
	OpenTime   null.Int    `bun:"open_time" json:"openTime"`   // epoch millis, null = since forever
	CloseTime  null.Int    `bun:"close_time" json:"closeTime"` // epoch millis, null = still open
	Bounds     *Bounds     `bun:"bounds,type:jsonb" json:"bounds"`
}

// Open reports whether this entry's opening window contains timestamp.
func (d *DropInfo) Open(timestamp int64) bool {
	if d.OpenTime.Valid && timestamp < d.OpenTime.Int64 {
		return false
	}
	if d.CloseTime.Valid && timestamp >= d.CloseTime.Int64 {
		return false
	}
	return true
}

// Bounds is an inclusive numeric range with optional excluded values.
type Bounds struct {
	Lower      int   `json:"lower"`
	Upper      int   `json:"upper"`
	Exceptions []int `json:"exceptions,omitempty"`
}

func (b *Bounds) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	default:
		return fmt.Errorf("unsupported source type %T for Bounds", src)
	}
}

// Valid reports whether n is admitted. A nil Bounds admits everything.
func (b *Bounds) Valid(n int) bool {
	if b == nil {
		return true
	}
	if n < b.Lower || n > b.Upper {
		return false
	}
	return !lo.Contains(b.Exceptions, n)
}

func (b *Bounds) String() string {
	if b == nil {
		return "(unbounded)"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d, %d]", b.Lower, b.Upper)
	if len(b.Exceptions) > 0 {
		fmt.Fprintf(&sb, " except %v", b.Exceptions)
	}
	return sb.String()
}
