package selector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"

	"github.com/dropstats/backend/internal/model"
)

var testNow = time.UnixMilli(1700000000000)

func report(mutate func(r *model.DropReport)) *model.DropReport {
	r := &model.DropReport{
		DropID:     "doc-1",
		StageID:    "main_01-07",
		UserID:     "user-1",
		Server:     "CN",
		Timestamp:  1600000000000,
		Times:      1,
		IsReliable: true,
	}
	if mutate != nil {
		mutate(r)
	}
	return r
}

func TestPredicateReliabilityGate(t *testing.T) {
	type testCase struct {
		name       string
		conditions model.QueryConditions
		mutate     func(r *model.DropReport)
		expect     bool
	}

	testCases := []testCase{
		{
			name:   "reliable report passes aggregate query",
			expect: true,
		},
		{
			name:   "unreliable report fails aggregate query",
			mutate: func(r *model.DropReport) { r.IsReliable = false },
			expect: false,
		},
		{
			name:       "per-user query bypasses reliability gate",
			conditions: model.QueryConditions{UserIDs: []string{"user-1"}},
			mutate:     func(r *model.DropReport) { r.IsReliable = false },
			expect:     true,
		},
		{
			name:       "per-user query excludes other users",
			conditions: model.QueryConditions{UserIDs: []string{"user-2"}},
			expect:     false,
		},
		{
			name:   "deleted report never passes",
			mutate: func(r *model.DropReport) { r.IsDeleted = true },
			expect: false,
		},
		{
			name:       "deleted report never passes even per-user",
			conditions: model.QueryConditions{UserIDs: []string{"user-1"}},
			mutate: func(r *model.DropReport) {
				r.IsDeleted = true
			},
			expect: false,
		},
		{
			name:       "server filter",
			conditions: model.QueryConditions{Servers: []string{"US", "JP"}},
			expect:     false,
		},
		{
			name:       "server filter match",
			conditions: model.QueryConditions{Servers: []string{"US", "CN"}},
			expect:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pred := FromConditions(&tc.conditions, testNow).Predicate()
			assert.Equal(t, tc.expect, pred(report(tc.mutate)))
		})
	}
}

func TestPredicateStageScoping(t *testing.T) {
	emptyStages := FromConditions(&model.QueryConditions{}, testNow).Predicate()
	assert.True(t, emptyStages(report(nil)), "empty stages imposes no stage/time constraint")
	assert.True(t, emptyStages(report(func(r *model.DropReport) { r.StageID = "other" })))

	timeOnly := FromConditions(&model.QueryConditions{
		Stages: []model.StageWithTimeRange{
			{Start: null.IntFrom(1500000000000), End: null.IntFrom(1650000000000)},
		},
	}, testNow).Predicate()
	assert.True(t, timeOnly(report(nil)))
	assert.True(t, timeOnly(report(func(r *model.DropReport) { r.StageID = "anything" })),
		"null stageId matches by time range only")
	assert.False(t, timeOnly(report(func(r *model.DropReport) { r.Timestamp = 1650000000000 })),
		"end bound is exclusive")
	assert.False(t, timeOnly(report(func(r *model.DropReport) { r.Timestamp = 1499999999999 })))

	defaults := FromConditions(&model.QueryConditions{
		Stages: []model.StageWithTimeRange{{}},
	}, testNow).Predicate()
	assert.True(t, defaults(report(func(r *model.DropReport) { r.Timestamp = 0 })),
		"null start defaults to 0")
	assert.False(t, defaults(report(func(r *model.DropReport) { r.Timestamp = testNow.UnixMilli() })),
		"null end defaults to now, exclusive")

	multi := FromConditions(&model.QueryConditions{
		Stages: []model.StageWithTimeRange{
			{StageID: null.StringFrom("main_01-07"), Start: null.IntFrom(1500000000000), End: null.IntFrom(1650000000000)},
			{StageID: null.StringFrom("main_04-04"), Start: null.IntFrom(1610000000000), End: null.IntFrom(1660000000000)},
		},
	}, testNow).Predicate()
	assert.True(t, multi(report(nil)))
	assert.False(t, multi(report(func(r *model.DropReport) { r.StageID = "main_04-04" })),
		"each stage carries its own window")
	assert.True(t, multi(report(func(r *model.DropReport) {
		r.StageID = "main_04-04"
		r.Timestamp = 1620000000000
	})))
	assert.False(t, multi(report(func(r *model.DropReport) { r.StageID = "main_07-18" })))
}

func TestForStageTimes(t *testing.T) {
	pred := ForStageTimes(&model.QueryConditions{
		UserIDs: []string{"user-1"},
		Range:   null.IntFrom(86400000),
	}, testNow).Predicate()

	inWindow := report(func(r *model.DropReport) { r.Timestamp = testNow.UnixMilli() - 1000 })
	assert.True(t, pred(inWindow))

	outOfWindow := report(nil)
	assert.False(t, pred(outOfWindow), "trailing window excludes old reports")

	unreliable := report(func(r *model.DropReport) {
		r.Timestamp = testNow.UnixMilli() - 1000
		r.IsReliable = false
	})
	assert.False(t, pred(unreliable), "stage times never lifts the reliability gate")
}

func TestForItemQuantities(t *testing.T) {
	pred := ForItemQuantities(&model.QueryConditions{Servers: []string{"CN"}}).Predicate()

	assert.True(t, pred(report(nil)))
	assert.False(t, pred(report(func(r *model.DropReport) { r.IsReliable = false })))
	assert.False(t, pred(report(func(r *model.DropReport) { r.Server = "US" })))
}
