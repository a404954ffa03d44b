package model

// TypedDrop is an item drop tagged with its reward-table drop type. It only
// exists while a submitted report is being validated and is never persisted.
type TypedDrop struct {
	DropType string `json:"dropType"`
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}
