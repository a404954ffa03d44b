package repo

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"github.com/dropstats/backend/internal/model"
	"github.com/dropstats/backend/internal/pkg/pgerr"
	"github.com/dropstats/backend/internal/repo/selector"
)

type DropReport struct {
	DB *bun.DB
}

func NewDropReport(db *bun.DB) *DropReport {
	return &DropReport{DB: db}
}

// QueryDropReports scans all drop reports admitted by sel in one query.
// Aggregations consume the result as a whole; no per-row round trips.
func (s *DropReport) QueryDropReports(ctx context.Context, sel *selector.Selector) ([]*model.DropReport, error) {
	reports := make([]*model.DropReport, 0)
	err := sel.Apply(s.DB.NewSelect().Model(&reports)).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (s *DropReport) GetDropReport(ctx context.Context, dropId string) (*model.DropReport, error) {
	var report model.DropReport
	err := s.DB.NewSelect().
		Model(&report).
		Where("drop_id = ?", dropId).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pgerr.ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *DropReport) CreateDropReport(ctx context.Context, dropReport *model.DropReport) error {
	_, err := s.DB.NewInsert().
		Model(dropReport).
		Exec(ctx)
	return err
}

// DeleteDropReport soft-deletes: the document stays but no filter admits it.
func (s *DropReport) DeleteDropReport(ctx context.Context, dropId string) error {
	_, err := s.DB.NewUpdate().
		Model((*model.DropReport)(nil)).
		Set("is_deleted = TRUE").
		Where("drop_id = ?", dropId).
		Exec(ctx)
	return err
}

func (s *DropReport) UpdateDropReportReliability(ctx context.Context, dropId string, isReliable bool) error {
	_, err := s.DB.NewUpdate().
		Model((*model.DropReport)(nil)).
		Set("is_reliable = ?", isReliable).
		Where("drop_id = ?", dropId).
		Exec(ctx)
	return err
}
