package service

import (
	"context"
	"time"

	"github.com/ahmetb/go-linq/v3"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"github.com/dropstats/backend/internal/model"
	"github.com/dropstats/backend/internal/pkg/clock"
	"github.com/dropstats/backend/internal/pkg/observability"
	"github.com/dropstats/backend/internal/repo"
	"github.com/dropstats/backend/internal/repo/selector"
)

// DocumentSource is the scan capability the aggregations consume: one query
// per pipeline run, returning every drop report the selector admits.
type DocumentSource interface {
	QueryDropReports(ctx context.Context, sel *selector.Selector) ([]*model.DropReport, error)
}

/*
Stats hosts the four aggregation pipelines. Each one is a pure function of
the filtered document set:

 1. AggregateItemDrops: (section, stage, item) -> total times and quantity
 2. AggregateDropPatterns: (stage, canonical item pattern) -> report count
 3. AggregateStageTimes: stage -> total sample count
 4. AggregateItemQuantities: item -> global total quantity

Every pipeline issues exactly one source query and transforms the result in
memory; no per-row round trips, no shared state between calls.
*/
type Stats struct {
	Source DocumentSource
	Clock  clock.Clock
}

func NewStats(dropReportRepo *repo.DropReport, clk clock.Clock) *Stats {
	return &Stats{
		Source: dropReportRepo,
		Clock:  clk,
	}
}

type sectionGroupKey struct {
	Section int64
	StageID string
}

type itemDropGroupKey struct {
	Section int64
	StageID string
	Times   int
	ItemID  null.String
}

// expandedDrop is one post-unwind row: a single item of one report, or the
// placeholder (Item == nil) a zero-item report leaves behind so the
// section's Times survives into the output.
type expandedDrop struct {
	Section int64
	StageID string
	Times   int
	Item    *model.ItemDrop
}

// AggregateItemDrops computes, per (section, stage, item), the total sample
// count and dropped quantity under the given conditions.
func (s *Stats) AggregateItemDrops(ctx context.Context, conditions *model.QueryConditions) ([]*model.ItemDropQueryResult, error) {
	start := time.Now()
	defer func() {
		observability.AggregateDuration.WithLabelValues("item_drops").Observe(time.Since(start).Seconds())
	}()

	sel := selector.FromConditions(conditions, s.Clock.Now())
	reports, err := s.Source.QueryDropReports(ctx, sel)
	if err != nil {
		return nil, err
	}

	interval := conditions.Interval
	if interval.Valid && interval.Int64 <= 0 {
		log.Warn().
			Str("evt.name", "stats.aggregate.item_drops").
			Int64("interval", interval.Int64).
			Msg("non-positive interval; collapsing into a single bucket")
		interval = null.Int{}
	}
	baseTime := s.sectionBaseTime(conditions)
	section := func(report *model.DropReport) int64 {
		if !interval.Valid {
			return 0
		}
		return (report.Timestamp - baseTime) / interval.Int64
	}

	itemIdSet := make(map[string]struct{}, len(conditions.ItemIDs))
	for _, itemId := range conditions.ItemIDs {
		itemIdSet[itemId] = struct{}{}
	}

	results := make([]*model.ItemDropQueryResult, 0)
	linq.From(reports).
		// group by (section, stageId) and total up Times first: a report
		// with no items still counts toward the section's sample count.
		GroupByT(func(report *model.DropReport) sectionGroupKey {
			return sectionGroupKey{Section: section(report), StageID: report.StageID}
		}, func(report *model.DropReport) *model.DropReport {
			return report
		}).
		// unwind each report's item list, keeping a placeholder row for
		// empty lists.
		SelectManyT(func(group linq.Group) linq.Query {
			key := group.Key.(sectionGroupKey)

			times := 0
			for _, v := range group.Group {
				times += v.(*model.DropReport).Times
			}

			expanded := make([]expandedDrop, 0, len(group.Group))
			for _, v := range group.Group {
				report := v.(*model.DropReport)
				if len(report.Drops) == 0 {
					expanded = append(expanded, expandedDrop{
						Section: key.Section,
						StageID: key.StageID,
						Times:   times,
					})
					continue
				}
				for i := range report.Drops {
					expanded = append(expanded, expandedDrop{
						Section: key.Section,
						StageID: key.StageID,
						Times:   times,
						Item:    &report.Drops[i],
					})
				}
			}
			return linq.From(expanded)
		}).
		// the item filter applies after expansion so the placeholder rows
		// are always retained.
		WhereT(func(row expandedDrop) bool {
			if len(itemIdSet) == 0 || row.Item == nil {
				return true
			}
			_, ok := itemIdSet[row.Item.ItemID]
			return ok
		}).
		// Times is constant within a section cell, so keeping it in the
		// group key does not split groups.
		GroupByT(func(row expandedDrop) itemDropGroupKey {
			key := itemDropGroupKey{Section: row.Section, StageID: row.StageID, Times: row.Times}
			if row.Item != nil {
				key.ItemID = null.StringFrom(row.Item.ItemID)
			}
			return key
		}, func(row expandedDrop) int {
			if row.Item == nil {
				return 0
			}
			return row.Item.Quantity
		}).
		SelectT(func(group linq.Group) *model.ItemDropQueryResult {
			key := group.Key.(itemDropGroupKey)
			quantity := 0
			for _, v := range group.Group {
				quantity += v.(int)
			}
			return &model.ItemDropQueryResult{
				StageID:  key.StageID,
				Section:  key.Section,
				Times:    key.Times,
				ItemID:   key.ItemID,
				Quantity: quantity,
			}
		}).
		ToSlice(&results)

	log.Debug().
		Str("evt.name", "stats.aggregate.item_drops").
		Int("reports", len(reports)).
		Int("rows", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("aggregated item drops")

	return results, nil
}

// sectionBaseTime resolves the common bucket origin for an interval query.
// All requested stages must share one start time; on mismatch the origin
// falls back to 0 with an error log instead of aborting the aggregation.
func (s *Stats) sectionBaseTime(conditions *model.QueryConditions) int64 {
	if !conditions.Interval.Valid || len(conditions.Stages) == 0 {
		return 0
	}
	firstStart := conditions.Stages[0].Start
	for _, stage := range conditions.Stages[1:] {
		if stage.Start != firstStart {
			log.Error().
				Str("evt.name", "stats.aggregate.item_drops").
				Msg("start time must be identical for all stages in the conditions")
			return 0
		}
	}
	return firstStart.ValueOrZero()
}

type patternEntry struct {
	StageID  string
	Times    int
	DocID    string
	Pattern  *model.DropPattern
	Quantity int
}

type patternGroupKey struct {
	StageID string
	Times   int
	Hash    string
}

// AggregateDropPatterns computes, per stage, how many reports produced each
// exact co-occurring item multiset. Patterns are canonicalized so the same
// multiset compares equal regardless of submission order.
func (s *Stats) AggregateDropPatterns(ctx context.Context, conditions *model.QueryConditions) ([]*model.DropPatternQueryResult, error) {
	start := time.Now()
	defer func() {
		observability.AggregateDuration.WithLabelValues("drop_patterns").Observe(time.Since(start).Seconds())
	}()

	sel := selector.FromConditions(conditions, s.Clock.Now())
	reports, err := s.Source.QueryDropReports(ctx, sel)
	if err != nil {
		return nil, err
	}

	results := make([]*model.DropPatternQueryResult, 0)
	linq.From(reports).
		// group by stageId, totalling Times, then unwind into one pattern
		// entry per report carrying that total.
		GroupByT(func(report *model.DropReport) string {
			return report.StageID
		}, func(report *model.DropReport) *model.DropReport {
			return report
		}).
		SelectManyT(func(group linq.Group) linq.Query {
			times := 0
			for _, v := range group.Group {
				times += v.(*model.DropReport).Times
			}

			entries := make([]patternEntry, 0, len(group.Group))
			for _, v := range group.Group {
				report := v.(*model.DropReport)
				entries = append(entries, patternEntry{
					StageID:  report.StageID,
					Times:    times,
					DocID:    report.DropID,
					Pattern:  model.NewDropPattern(report.Drops),
					Quantity: report.Times,
				})
			}
			return linq.From(entries)
		}).
		// identical canonical patterns group together; the first report
		// seen stays as the representative document.
		GroupByT(func(entry patternEntry) patternGroupKey {
			return patternGroupKey{StageID: entry.StageID, Times: entry.Times, Hash: entry.Pattern.Hash}
		}, func(entry patternEntry) patternEntry {
			return entry
		}).
		SelectT(func(group linq.Group) *model.DropPatternQueryResult {
			first := group.Group[0].(patternEntry)
			quantity := 0
			for _, v := range group.Group {
				quantity += v.(patternEntry).Quantity
			}
			return &model.DropPatternQueryResult{
				StageID:  first.StageID,
				Times:    first.Times,
				Pattern:  first.Pattern.Drops,
				Quantity: quantity,
				DocID:    first.DocID,
			}
		}).
		ToSlice(&results)

	log.Debug().
		Str("evt.name", "stats.aggregate.drop_patterns").
		Int("reports", len(reports)).
		Int("rows", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("aggregated drop patterns")

	return results, nil
}

// AggregateStageTimes computes the total sample count per stage over
// reliable reports, optionally within a trailing lookback window.
func (s *Stats) AggregateStageTimes(ctx context.Context, conditions *model.QueryConditions) ([]*model.StageTimesQueryResult, error) {
	start := time.Now()
	defer func() {
		observability.AggregateDuration.WithLabelValues("stage_times").Observe(time.Since(start).Seconds())
	}()

	sel := selector.ForStageTimes(conditions, s.Clock.Now())
	reports, err := s.Source.QueryDropReports(ctx, sel)
	if err != nil {
		return nil, err
	}

	results := make([]*model.StageTimesQueryResult, 0)
	linq.From(reports).
		GroupByT(func(report *model.DropReport) string {
			return report.StageID
		}, func(report *model.DropReport) int {
			return report.Times
		}).
		SelectT(func(group linq.Group) *model.StageTimesQueryResult {
			times := 0
			for _, v := range group.Group {
				times += v.(int)
			}
			return &model.StageTimesQueryResult{
				StageID: group.Key.(string),
				Times:   times,
			}
		}).
		ToSlice(&results)

	return results, nil
}

// AggregateItemQuantities computes the global dropped quantity per item
// over reliable reports, ignoring stage and time.
func (s *Stats) AggregateItemQuantities(ctx context.Context, conditions *model.QueryConditions) ([]*model.ItemQuantityQueryResult, error) {
	start := time.Now()
	defer func() {
		observability.AggregateDuration.WithLabelValues("item_quantities").Observe(time.Since(start).Seconds())
	}()

	sel := selector.ForItemQuantities(conditions)
	reports, err := s.Source.QueryDropReports(ctx, sel)
	if err != nil {
		return nil, err
	}

	results := make([]*model.ItemQuantityQueryResult, 0)
	linq.From(reports).
		SelectManyT(func(report *model.DropReport) linq.Query {
			return linq.From(report.Drops)
		}).
		GroupByT(func(drop model.ItemDrop) string {
			return drop.ItemID
		}, func(drop model.ItemDrop) int {
			return drop.Quantity
		}).
		SelectT(func(group linq.Group) *model.ItemQuantityQueryResult {
			quantity := 0
			for _, v := range group.Group {
				quantity += v.(int)
			}
			return &model.ItemQuantityQueryResult{
				ItemID:   group.Key.(string),
				Quantity: quantity,
			}
		}).
		ToSlice(&results)

	return results, nil
}
