package reportverifs

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/dropstats/backend/internal/constant"
	"github.com/dropstats/backend/internal/model"
	"github.com/dropstats/backend/internal/model/types"
)

type memDropInfoSource struct {
	infos []*model.DropInfo
	err   error
}

func (s *memDropInfoSource) GetOpenDropInfos(_ context.Context, server string, stageId string, timestamp int64) (map[string][]*model.DropInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	grouped := make(map[string][]*model.DropInfo)
	for _, info := range s.infos {
		if info.Server != server || info.StageID != stageId || !info.Open(timestamp) {
			continue
		}
		grouped[info.DropType] = append(grouped[info.DropType], info)
	}
	return grouped, nil
}

func typeCountInfo(dropType string, lower, upper int) *model.DropInfo {
	return &model.DropInfo{
		Server:   "CN",
		StageID:  "main_01-07",
		DropType: dropType,
		Bounds:   &model.Bounds{Lower: lower, Upper: upper},
	}
}

func itemInfo(dropType, itemId string, lower, upper int) *model.DropInfo {
	info := typeCountInfo(dropType, lower, upper)
	info.ItemID = null.StringFrom(itemId)
	return info
}

func task(drops ...model.TypedDrop) *types.ReportTask {
	items := make(model.ItemDrops, 0, len(drops))
	for _, drop := range drops {
		items = append(items, model.ItemDrop{ItemID: drop.ItemID, Quantity: drop.Quantity})
	}
	return &types.ReportTask{
		Report: &model.DropReport{
			DropID:    "doc-1",
			StageID:   "main_01-07",
			Server:    "CN",
			Timestamp: 1600000000000,
			Times:     1,
			Drops:     items,
		},
		Drops: drops,
	}
}

func normal(itemId string, quantity int) model.TypedDrop {
	return model.TypedDrop{DropType: constant.DropTypeNormal, ItemID: itemId, Quantity: quantity}
}

func verify(t *testing.T, infos []*model.DropInfo, task *types.ReportTask) *Rejection {
	t.Helper()
	verifier := &DropVerifier{DropInfos: &memDropInfoSource{infos: infos}}
	rejection, err := verifier.Verify(context.Background(), task)
	require.NoError(t, err)
	return rejection
}

func TestDropVerifierStageNotOpen(t *testing.T) {
	rejection := verify(t, nil, task(normal("A", 1)))
	require.NotNil(t, rejection)
	assert.Contains(t, rejection.Message, "not open")

	closed := typeCountInfo(constant.DropTypeNormal, 0, 3)
	closed.CloseTime = null.IntFrom(1500000000000)
	rejection = verify(t, []*model.DropInfo{closed}, task(normal("A", 1)))
	require.NotNil(t, rejection, "drop infos outside their opening window do not open the stage")
}

func TestDropVerifierTypeCountBounds(t *testing.T) {
	infos := []*model.DropInfo{
		typeCountInfo(constant.DropTypeNormal, 1, 3),
		itemInfo(constant.DropTypeNormal, "A", 0, 10),
		itemInfo(constant.DropTypeNormal, "B", 0, 10),
		itemInfo(constant.DropTypeNormal, "C", 0, 10),
		itemInfo(constant.DropTypeNormal, "D", 0, 10),
	}

	assert.Nil(t, verify(t, infos, task(normal("A", 1), normal("B", 2))),
		"2 distinct normal items within [1,3]")

	rejection := verify(t, infos, task(normal("A", 1), normal("B", 1), normal("C", 1), normal("D", 1)))
	require.NotNil(t, rejection, "4 distinct normal items exceed [1,3]")
	assert.Contains(t, rejection.Message, "item types num")
}

func TestDropVerifierDuplicateItem(t *testing.T) {
	infos := []*model.DropInfo{
		itemInfo(constant.DropTypeNormal, "X", 0, 100),
	}

	rejection := verify(t, infos, task(normal("X", 1), normal("X", 2)))
	require.NotNil(t, rejection, "the same itemId twice within one drop type must reject regardless of quantities")
	assert.Contains(t, rejection.Message, "duplicated item")
}

func TestDropVerifierUnclaimedItem(t *testing.T) {
	infos := []*model.DropInfo{
		itemInfo(constant.DropTypeNormal, "A", 0, 10),
		itemInfo(constant.DropTypeNormal, "B", 0, 10),
	}

	rejection := verify(t, infos, task(normal("A", 1), normal("C", 1)))
	require.NotNil(t, rejection, "an item no drop info claims must reject")
	assert.Contains(t, rejection.Message, "unexpected items")
}

func TestDropVerifierQuantityBounds(t *testing.T) {
	infos := []*model.DropInfo{
		itemInfo(constant.DropTypeNormal, "A", 1, 3),
	}

	assert.Nil(t, verify(t, infos, task(normal("A", 2))))

	rejection := verify(t, infos, task(normal("A", 4)))
	require.NotNil(t, rejection)
	assert.Contains(t, rejection.Message, "item A's quantity")

	rejection = verify(t, infos, task())
	require.NotNil(t, rejection, "an absent item counts as quantity 0, below lower bound 1")

	relaxed := []*model.DropInfo{itemInfo(constant.DropTypeNormal, "A", 0, 3)}
	assert.Nil(t, verify(t, relaxed, task()), "a bound including zero allows the item to be absent")
}

func TestDropVerifierBoundsExceptions(t *testing.T) {
	info := itemInfo(constant.DropTypeNormal, "A", 0, 5)
	info.Bounds.Exceptions = []int{3}

	assert.Nil(t, verify(t, []*model.DropInfo{info}, task(normal("A", 2))))

	rejection := verify(t, []*model.DropInfo{info}, task(normal("A", 3)))
	require.NotNil(t, rejection, "excepted values inside the range still reject")
}

func TestDropVerifierUnboundedInfoAlwaysPasses(t *testing.T) {
	info := itemInfo(constant.DropTypeNormal, "A", 0, 0)
	info.Bounds = nil

	assert.Nil(t, verify(t, []*model.DropInfo{info}, task(normal("A", 9999))))
}

func TestDropVerifierSkipsTypesWithoutInfo(t *testing.T) {
	infos := []*model.DropInfo{
		itemInfo(constant.DropTypeNormal, "A", 0, 10),
	}

	// SPECIAL has drops but no drop info configured: the type is skipped,
	// not failed.
	special := model.TypedDrop{DropType: constant.DropTypeSpecial, ItemID: "S", Quantity: 1}
	assert.Nil(t, verify(t, infos, task(normal("A", 1), special)))
}

func TestDropVerifierPropagatesSourceErrors(t *testing.T) {
	verifier := &DropVerifier{DropInfos: &memDropInfoSource{err: errors.New("connection refused")}}

	rejection, err := verifier.Verify(context.Background(), task(normal("A", 1)))
	require.Error(t, err, "storage errors propagate, they are not rejections")
	assert.Nil(t, rejection)
}

func TestReportVerifiersStopAtFirstViolation(t *testing.T) {
	verifiers := ReportVerifiers{
		&DropVerifier{DropInfos: &memDropInfoSource{}},
	}

	violation, err := verifiers.Verify(context.Background(), task(normal("A", 1)))
	require.NoError(t, err)
	require.NotNil(t, violation)
	assert.Equal(t, "drop", violation.Name)
}
