package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"
)

func TestBoundsValid(t *testing.T) {
	type testCase struct {
		name   string
		bounds *Bounds
		n      int
		expect bool
	}

	testCases := []testCase{
		{"nil bounds admit everything", nil, 9999, true},
		{"inside range", &Bounds{Lower: 1, Upper: 3}, 2, true},
		{"lower bound inclusive", &Bounds{Lower: 1, Upper: 3}, 1, true},
		{"upper bound inclusive", &Bounds{Lower: 1, Upper: 3}, 3, true},
		{"below range", &Bounds{Lower: 1, Upper: 3}, 0, false},
		{"above range", &Bounds{Lower: 1, Upper: 3}, 4, false},
		{"exception inside range", &Bounds{Lower: 0, Upper: 5, Exceptions: []int{3}}, 3, false},
		{"non-exception inside range", &Bounds{Lower: 0, Upper: 5, Exceptions: []int{3}}, 4, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.bounds.Valid(tc.n))
		})
	}
}

func TestDropInfoOpen(t *testing.T) {
	info := &DropInfo{
		OpenTime:  null.IntFrom(1000),
		CloseTime: null.IntFrom(2000),
	}

	assert.False(t, info.Open(999))
	assert.True(t, info.Open(1000))
	assert.True(t, info.Open(1999))
	assert.False(t, info.Open(2000), "close time is exclusive")

	forever := &DropInfo{}
	assert.True(t, forever.Open(0))
	assert.True(t, forever.Open(1<<60))
}
