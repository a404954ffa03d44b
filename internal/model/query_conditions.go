package model

import (
	"gopkg.in/guregu/null.v3"
)

// StageWithTimeRange scopes a query to one stage within a time window.
// A null StageID matches by time range only, ignoring stage identity; that
// form is only meaningful as the sole element of QueryConditions.Stages.
type StageWithTimeRange struct {
	StageID null.String `json:"stageId"`
	Start   null.Int    `json:"start"` // epoch millis, null = 0
	End     null.Int    `json:"end"`   // epoch millis, null = now
}

// QueryConditions narrows the drop-report document set an aggregation runs
// over. Empty list fields impose no constraint.
type QueryConditions struct {
	UserIDs  []string             `json:"userIds"`
	ItemIDs  []string             `json:"itemIds"`
	Servers  []string             `json:"servers"`
	Stages   []StageWithTimeRange `json:"stages"`
	Interval null.Int             `json:"interval"` // bucket width in millis
	Range    null.Int             `json:"range"`    // trailing lookback window in millis
}
