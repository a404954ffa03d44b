package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropstats/backend/internal/model"
	"github.com/dropstats/backend/internal/pkg/pgerr"
)

type memModerationStore struct {
	reports map[string]*model.DropReport
}

func (s *memModerationStore) GetDropReport(_ context.Context, dropId string) (*model.DropReport, error) {
	report, ok := s.reports[dropId]
	if !ok {
		return nil, pgerr.ErrNotFound
	}
	return report, nil
}

func (s *memModerationStore) DeleteDropReport(_ context.Context, dropId string) error {
	if report, ok := s.reports[dropId]; ok {
		report.IsDeleted = true
	}
	return nil
}

func (s *memModerationStore) UpdateDropReportReliability(_ context.Context, dropId string, isReliable bool) error {
	if report, ok := s.reports[dropId]; ok {
		report.IsReliable = isReliable
	}
	return nil
}

func newModerationService(reports ...*model.DropReport) (*Moderation, *memModerationStore) {
	store := &memModerationStore{reports: make(map[string]*model.DropReport)}
	for _, report := range reports {
		store.reports[report.DropID] = report
	}
	return &Moderation{Store: store}, store
}

func TestModerationDelete(t *testing.T) {
	svc, store := newModerationService(&model.DropReport{DropID: "d1", IsReliable: true})

	require.NoError(t, svc.Delete(context.Background(), "d1"))
	assert.True(t, store.reports["d1"].IsDeleted)
}

func TestModerationDeleteMissingReport(t *testing.T) {
	svc, _ := newModerationService()

	err := svc.Delete(context.Background(), "nope")
	require.ErrorIs(t, err, pgerr.ErrNotFound)
}

func TestModerationSetReliability(t *testing.T) {
	svc, store := newModerationService(&model.DropReport{DropID: "d1", IsReliable: true})

	require.NoError(t, svc.SetReliability(context.Background(), "d1", false))
	assert.False(t, store.reports["d1"].IsReliable)

	require.NoError(t, svc.SetReliability(context.Background(), "d1", true))
	assert.True(t, store.reports["d1"].IsReliable)
}

func TestModerationSetReliabilityMissingReport(t *testing.T) {
	svc, _ := newModerationService()

	err := svc.SetReliability(context.Background(), "nope", false)
	require.ErrorIs(t, err, pgerr.ErrNotFound)
}
