package model

import (
	"github.com/uptrace/bun"
)

// DropReport is one submission event: the items a player received from a
// single run (or several identical runs, see Times) of a stage. A stored
// report is immutable except for the IsReliable and IsDeleted flags, which
// moderation flips after the fact.
type DropReport struct {
	bun.BaseModel `bun:"drop_reports,alias:dr"`

	DropID     string    `bun:"drop_id,pk" json:"id"`
	StageID    string    `bun:"stage_id" json:"stageId"`
	UserID     string    `bun:"user_id" json:"userId"`
	Server     string    `bun:"server" json:"server"`
	Timestamp  int64     `bun:"timestamp" json:"timestamp"` // epoch millis
	Times      int       `bun:"times" json:"times"`
	Drops      ItemDrops `bun:"drops,type:jsonb" json:"drops"`
	IsReliable bool      `bun:"is_reliable" json:"isReliable"`
	IsDeleted  bool      `bun:"is_deleted" json:"isDeleted"`
}
