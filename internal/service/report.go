package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dropstats/backend/internal/constant"
	"github.com/dropstats/backend/internal/model"
	"github.com/dropstats/backend/internal/model/types"
	"github.com/dropstats/backend/internal/pkg/clock"
	"github.com/dropstats/backend/internal/repo"
	"github.com/dropstats/backend/internal/util/reportverifs"
)

// ErrReportRejected is the submitter-facing outcome of a failed
// verification. The diagnostic detail stays in the logs.
var ErrReportRejected = errors.New("report rejected")

// ReportStore is the persistence capability the write path needs.
type ReportStore interface {
	CreateDropReport(ctx context.Context, dropReport *model.DropReport) error
}

// Report is the write path: assemble a drop report from a submission
// request, run the verifier chain, and persist only on acceptance.
type Report struct {
	Store     ReportStore
	Verifiers *reportverifs.ReportVerifiers
	Validate  *validator.Validate
	Clock     clock.Clock
}

func NewReport(dropReportRepo *repo.DropReport, verifiers *reportverifs.ReportVerifiers, validate *validator.Validate, clk clock.Clock) *Report {
	return &Report{
		Store:     dropReportRepo,
		Verifiers: verifiers,
		Validate:  validate,
		Clock:     clk,
	}
}

// Submit validates and stores one report, returning the new document id.
// Verification must finish before anything is written: a rejected report
// never reaches the store.
func (s *Report) Submit(ctx context.Context, req *types.SingularReportRequest) (string, error) {
	if err := s.Validate.Struct(req); err != nil {
		return "", err
	}

	if req.Times > constant.MaxReportTimes {
		return "", errors.Errorf("times %d exceeds the maximum of %d", req.Times, constant.MaxReportTimes)
	}
	for _, drop := range req.Drops {
		if drop.Quantity > constant.MaxDropQuantity {
			return "", errors.Errorf("quantity %d of item %s exceeds the maximum of %d", drop.Quantity, drop.ItemID, constant.MaxDropQuantity)
		}
	}

	task := s.assemble(req)

	accepted, err := s.Verify(ctx, task)
	if err != nil {
		return "", err
	}
	if !accepted {
		return "", ErrReportRejected
	}

	if err := s.Store.CreateDropReport(ctx, task.Report); err != nil {
		return "", errors.Wrap(err, "failed to save drop report")
	}

	return task.Report.DropID, nil
}

// Verify runs the verifier chain without persisting. The decision is always
// definite: false means rejected, with the violation logged.
func (s *Report) Verify(ctx context.Context, task *types.ReportTask) (bool, error) {
	violation, err := s.Verifiers.Verify(ctx, task)
	if err != nil {
		return false, err
	}

	if violation != nil {
		log.Info().
			Str("evt.name", "report.rejected").
			Str("stageId", task.Report.StageID).
			Str("server", task.Report.Server).
			Str("verifier", violation.Name).
			Str("reason", violation.Message).
			Msg("rejected report")
		return false, nil
	}

	return true, nil
}

func (s *Report) assemble(req *types.SingularReportRequest) *types.ReportTask {
	timestamp := req.Timestamp
	if timestamp == 0 {
		timestamp = s.Clock.Now().UnixMilli()
	}

	times := req.Times
	if times == 0 {
		times = 1
	}

	typedDrops := lo.Map(req.Drops, func(drop types.SubmitDrop, _ int) model.TypedDrop {
		return model.TypedDrop{
			DropType: drop.DropType,
			ItemID:   drop.ItemID,
			Quantity: drop.Quantity,
		}
	})

	report := &model.DropReport{
		DropID:     xid.New().String(),
		StageID:    req.StageID,
		UserID:     req.UserID,
		Server:     req.Server,
		Timestamp:  timestamp,
		Times:      times,
		Drops: lo.Map(req.Drops, func(drop types.SubmitDrop, _ int) model.ItemDrop {
			return model.ItemDrop{ItemID: drop.ItemID, Quantity: drop.Quantity}
		}),
		IsReliable: true,
	}

	return &types.ReportTask{
		Report: report,
		Drops:  typedDrops,
	}
}
