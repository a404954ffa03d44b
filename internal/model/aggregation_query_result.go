package model

import (
	"gopkg.in/guregu/null.v3"
)

// ItemDropQueryResult is one row of the item-drop rate aggregation: the
// total sample count and quantity of one item within one (section, stage)
// cell. A null ItemID marks the placeholder row a zero-drop cell produces
// so its Times stays visible in the output.
type ItemDropQueryResult struct {
	StageID  string      `json:"stageId"`
	Section  int64       `json:"section"`
	Times    int         `json:"times"`
	ItemID   null.String `json:"itemId"`
	Quantity int         `json:"quantity"`
}

// DropPatternQueryResult is one row of the drop-pattern aggregation: how
// many reports (Quantity) of a stage's total sample count (Times) produced
// the exact canonical Pattern. DocID references one representative report.
type DropPatternQueryResult struct {
	StageID  string    `json:"stageId"`
	Times    int       `json:"times"`
	Pattern  ItemDrops `json:"pattern"`
	Quantity int       `json:"quantity"`
	DocID    string    `json:"docId"`
}

// StageTimesQueryResult is one row of the stage sample-count aggregation.
type StageTimesQueryResult struct {
	StageID string `json:"stageId"`
	Times   int    `json:"times"`
}

// ItemQuantityQueryResult is one row of the global item-quantity
// aggregation.
type ItemQuantityQueryResult struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}
