package types

import (
	"github.com/dropstats/backend/internal/model"
)

// common report request structs

type SubmitDrop struct {
	DropType string `json:"dropType" validate:"required,oneof=NORMAL SPECIAL EXTRA FURNITURE"`
	ItemID   string `json:"itemId" validate:"required" example:"30013"`

	// Quantity is additionally capped at constant.MaxDropQuantity on
	// submission.
	Quantity int `json:"quantity" validate:"gte=0"`
}

type SingularReportRequest struct {
	Server  string `json:"server" validate:"required,gameserver"`
	StageID string `json:"stageId" validate:"required" example:"main_01-07"`
	UserID  string `json:"userId"`

	// Timestamp is when the run finished, in epoch millis. Zero means
	// "now" at submission time.
	Timestamp int64 `json:"timestamp" validate:"gte=0"`

	// Times is the number of identical runs this report covers. Zero is
	// normalized to 1; the cap is constant.MaxReportTimes.
	Times int `json:"times" validate:"gte=0"`

	Drops []SubmitDrop `json:"drops" validate:"dive"`
}

// ReportTask is the unit handed to the verifier chain: the assembled report
// document together with its typed drops.
type ReportTask struct {
	Report *model.DropReport `json:"report"`
	Drops  []model.TypedDrop `json:"drops"`
}
