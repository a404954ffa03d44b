package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/dropstats/backend/internal/model"
	"github.com/dropstats/backend/internal/repo"
)

// ModerationStore is the persistence capability the moderation path needs.
type ModerationStore interface {
	GetDropReport(ctx context.Context, dropId string) (*model.DropReport, error)
	DeleteDropReport(ctx context.Context, dropId string) error
	UpdateDropReportReliability(ctx context.Context, dropId string, isReliable bool) error
}

// Moderation flips the soft lifecycle flags on stored reports. Both
// operations resolve the document first so a missing dropId surfaces as
// pgerr.ErrNotFound instead of a silent no-op update.
type Moderation struct {
	Store ModerationStore
}

func NewModeration(dropReportRepo *repo.DropReport) *Moderation {
	return &Moderation{Store: dropReportRepo}
}

// Delete soft-deletes one report: the document stays, but no aggregation
// filter admits it afterwards.
func (s *Moderation) Delete(ctx context.Context, dropId string) error {
	if _, err := s.Store.GetDropReport(ctx, dropId); err != nil {
		return err
	}

	if err := s.Store.DeleteDropReport(ctx, dropId); err != nil {
		return err
	}

	log.Info().
		Str("evt.name", "moderation.delete").
		Str("dropId", dropId).
		Msg("soft-deleted drop report")
	return nil
}

// SetReliability marks one report reliable or unreliable for the
// aggregate-query reliability gate.
func (s *Moderation) SetReliability(ctx context.Context, dropId string, isReliable bool) error {
	if _, err := s.Store.GetDropReport(ctx, dropId); err != nil {
		return err
	}

	if err := s.Store.UpdateDropReportReliability(ctx, dropId, isReliable); err != nil {
		return err
	}

	log.Info().
		Str("evt.name", "moderation.reliability").
		Str("dropId", dropId).
		Bool("isReliable", isReliable).
		Msg("updated drop report reliability")
	return nil
}
