package reportverifs

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dropstats/backend/internal/constant"
	"github.com/dropstats/backend/internal/model"
	"github.com/dropstats/backend/internal/model/types"
	"github.com/dropstats/backend/internal/repo"
)

// DropInfoSource supplies the drop infos open for a stage at a timestamp,
// grouped by drop type. An empty map means the stage was not open.
type DropInfoSource interface {
	GetOpenDropInfos(ctx context.Context, server string, stageId string, timestamp int64) (map[string][]*model.DropInfo, error)
}

// DropVerifier checks a report's item set and quantities against the drop
// infos open for its stage at its timestamp. For each drop type in the
// reward table: a null-item drop info bounds the number of distinct item
// kinds of that type, an item drop info bounds that item's quantity (zero
// when absent), and every reported item must be claimed by exactly one
// drop info.
type DropVerifier struct {
	DropInfos DropInfoSource
}

// ensure DropVerifier conforms to Verifier
var _ Verifier = (*DropVerifier)(nil)

func NewDropVerifier(dropInfoRepo *repo.DropInfo) *DropVerifier {
	return &DropVerifier{
		DropInfos: dropInfoRepo,
	}
}

func (d *DropVerifier) Name() string {
	return "drop"
}

func (d *DropVerifier) Verify(ctx context.Context, task *types.ReportTask) (*Rejection, error) {
	report := task.Report

	dropInfosByType, err := d.DropInfos.GetOpenDropInfos(ctx, report.Server, report.StageID, report.Timestamp)
	if err != nil {
		return nil, err
	}

	if len(dropInfosByType) == 0 {
		return &Rejection{
			Message: fmt.Sprintf("stage %s was not open on server %s at %d", report.StageID, report.Server, report.Timestamp),
		}, nil
	}

	dropsByType := lo.GroupBy(task.Drops, func(drop model.TypedDrop) string {
		return drop.DropType
	})

	for _, dropType := range constant.DropTypes {
		dropInfos, ok := dropInfosByType[dropType]
		if !ok {
			log.Warn().
				Str("evt.name", "reportverifs.drop").
				Str("stageId", report.StageID).
				Str("dropType", dropType).
				Msg("failed to find drop info for drop type")
			continue
		}

		if rejection := d.verifyDropType(dropType, dropsByType[dropType], dropInfos); rejection != nil {
			return rejection, nil
		}
	}

	return nil, nil
}

func (d *DropVerifier) verifyDropType(dropType string, drops []model.TypedDrop, dropInfos []*model.DropInfo) *Rejection {
	dropByItemId := make(map[string]model.TypedDrop, len(drops))
	for _, drop := range drops {
		if _, ok := dropByItemId[drop.ItemID]; ok {
			log.Debug().
				Str("itemId", drop.ItemID).
				Str("dropType", dropType).
				Msg("found duplicated itemId in drops")
			return &Rejection{
				Message: fmt.Sprintf("duplicated item %s in drop type `%s`", drop.ItemID, dropType),
			}
		}
		dropByItemId[drop.ItemID] = drop
	}

	typesNum := len(drops)

	unclaimedItemIds := lo.Keys(dropByItemId)

	for _, dropInfo := range dropInfos {
		var numberToCheck int
		var target string
		if !dropInfo.ItemID.Valid {
			numberToCheck = typesNum
			target = fmt.Sprintf("item types num in %s", dropType)
		} else {
			numberToCheck = dropByItemId[dropInfo.ItemID.String].Quantity
			target = fmt.Sprintf("item %s's quantity in %s", dropInfo.ItemID.String, dropType)
		}

		if !dropInfo.Bounds.Valid(numberToCheck) {
			log.Debug().
				Str("target", target).
				Int("observed", numberToCheck).
				Stringer("bounds", dropInfo.Bounds).
				Msg("failed drop bounds check")
			return &Rejection{
				Message: fmt.Sprintf("%s = %d, expected %s", target, numberToCheck, dropInfo.Bounds),
			}
		}

		if dropInfo.ItemID.Valid {
			unclaimedItemIds = lo.Without(unclaimedItemIds, dropInfo.ItemID.String)
		}
	}

	if len(unclaimedItemIds) > 0 {
		log.Debug().
			Strs("itemIds", unclaimedItemIds).
			Str("dropType", dropType).
			Msg("found unexpected items")
		return &Rejection{
			Message: fmt.Sprintf("unexpected items %v in drop type `%s`", unclaimedItemIds, dropType),
		}
	}

	return nil
}
