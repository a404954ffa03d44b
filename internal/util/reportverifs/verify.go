package reportverifs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/dropstats/backend/internal/model/types"
	"github.com/dropstats/backend/internal/pkg/observability"
)

var tracer = otel.Tracer("reportverifs")

// Verifier checks one aspect of a submitted report. A nil Rejection means
// the report passed this verifier. Storage errors are returned as errors
// and propagate untouched; they are not rejections.
type Verifier interface {
	Name() string
	Verify(ctx context.Context, task *types.ReportTask) (*Rejection, error)
}

type ReportVerifiers []Verifier

func NewReportVerifiers(dropVerifier *DropVerifier) *ReportVerifiers {
	return &ReportVerifiers{
		dropVerifier,
	}
}

// Verify runs the chain in order and stops at the first rejection. One
// report, one decision: the result is either nil (accept) or the single
// violation that aborted the chain.
func (verifiers ReportVerifiers) Verify(ctx context.Context, task *types.ReportTask) (*Violation, error) {
	for _, pipe := range verifiers {
		start := time.Now()

		name := pipe.Name()

		ctx, span := tracer.
			Start(ctx, "reportverifs.verifier."+name)

		rejection, err := pipe.Verify(ctx, task)
		span.End()

		observability.ReportVerifyDuration.
			WithLabelValues(name).
			Observe(time.Since(start).Seconds())

		if err != nil {
			return nil, err
		}

		if rejection != nil {
			observability.ReportRejections.
				WithLabelValues(name).
				Inc()

			return &Violation{
				Name:      name,
				Rejection: *rejection,
			}, nil
		}
	}

	return nil, nil
}
