package selector

import (
	"time"

	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/dropstats/backend/internal/model"
)

// Selector is the executable form of a QueryConditions filter. It is built
// once per query, resolving all "now" defaults at build time, and then
// evaluates the same conjunction either in-process via Predicate or pushed
// down to the database via Apply.
type Selector struct {
	userIDs []string
	servers []string

	// requireReliable is the aggregate-query reliability gate: it is
	// lifted only when the query names explicit users.
	requireReliable bool

	// timeOnly is the single-stage-with-null-stageId form: constrain by
	// timestamp alone. Mutually exclusive with stages.
	timeOnly *timeWindow
	stages   []stageWindow
}

type timeWindow struct {
	start int64 // inclusive
	end   int64 // exclusive
}

type stageWindow struct {
	stageID string
	timeWindow
}

func (w timeWindow) contains(timestamp int64) bool {
	return timestamp >= w.start && timestamp < w.end
}

// FromConditions builds the common filter shared by the item-drop and
// drop-pattern aggregations. now resolves null stage end times.
func FromConditions(conditions *model.QueryConditions, now time.Time) *Selector {
	s := &Selector{
		userIDs:         conditions.UserIDs,
		servers:         conditions.Servers,
		requireReliable: len(conditions.UserIDs) == 0,
	}

	if len(conditions.Stages) == 0 {
		return s
	}

	if len(conditions.Stages) == 1 && !conditions.Stages[0].StageID.Valid {
		w := resolveWindow(conditions.Stages[0], now)
		s.timeOnly = &w
		return s
	}

	s.stages = make([]stageWindow, 0, len(conditions.Stages))
	for _, stage := range conditions.Stages {
		s.stages = append(s.stages, stageWindow{
			stageID:    stage.StageID.String,
			timeWindow: resolveWindow(stage, now),
		})
	}
	return s
}

// ForStageTimes builds the stage sample-count filter: always reliable-only,
// optionally scoped by server set and a trailing lookback window.
func ForStageTimes(conditions *model.QueryConditions, now time.Time) *Selector {
	s := &Selector{
		servers:         conditions.Servers,
		requireReliable: true,
	}
	if conditions.Range.Valid {
		end := now.UnixMilli()
		s.timeOnly = &timeWindow{start: end - conditions.Range.Int64, end: end}
	}
	return s
}

// ForItemQuantities builds the global item-quantity filter: reliable-only,
// optionally scoped by server set.
func ForItemQuantities(conditions *model.QueryConditions) *Selector {
	return &Selector{
		servers:         conditions.Servers,
		requireReliable: true,
	}
}

func resolveWindow(stage model.StageWithTimeRange, now time.Time) timeWindow {
	w := timeWindow{start: 0, end: now.UnixMilli()}
	if stage.Start.Valid {
		w.start = stage.Start.Int64
	}
	if stage.End.Valid {
		w.end = stage.End.Int64
	}
	return w
}

// Predicate returns the in-memory evaluation of the filter. The returned
// closure is safe for concurrent use.
func (s *Selector) Predicate() func(*model.DropReport) bool {
	return func(report *model.DropReport) bool {
		if report.IsDeleted {
			return false
		}
		if len(s.userIDs) > 0 {
			if !lo.Contains(s.userIDs, report.UserID) {
				return false
			}
		} else if s.requireReliable && !report.IsReliable {
			return false
		}
		if len(s.servers) > 0 && !lo.Contains(s.servers, report.Server) {
			return false
		}
		if s.timeOnly != nil {
			return s.timeOnly.contains(report.Timestamp)
		}
		if len(s.stages) == 0 {
			return true
		}
		for _, stage := range s.stages {
			if report.StageID == stage.stageID && stage.contains(report.Timestamp) {
				return true
			}
		}
		return false
	}
}

// Apply pushes the filter down into a bun select over drop_reports. The
// WHERE clause it produces is equivalent to Predicate.
func (s *Selector) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	q = q.Where("dr.is_deleted = FALSE")

	if len(s.userIDs) > 0 {
		q = q.Where("dr.user_id IN (?)", bun.In(s.userIDs))
	} else if s.requireReliable {
		q = q.Where("dr.is_reliable = TRUE")
	}

	if len(s.servers) > 0 {
		q = q.Where("dr.server IN (?)", bun.In(s.servers))
	}

	if s.timeOnly != nil {
		q = q.Where("dr.timestamp >= ? AND dr.timestamp < ?", s.timeOnly.start, s.timeOnly.end)
	} else if len(s.stages) > 0 {
		stages := s.stages
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, stage := range stages {
				stage := stage
				q = q.WhereGroup(" OR ", func(q *bun.SelectQuery) *bun.SelectQuery {
					return q.
						Where("dr.stage_id = ?", stage.stageID).
						Where("dr.timestamp >= ? AND dr.timestamp < ?", stage.start, stage.end)
				})
			}
			return q
		})
	}

	return q
}
