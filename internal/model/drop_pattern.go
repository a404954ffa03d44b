package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// DropPattern is the canonical form of one report's item list: the same
// multiset of (itemId, quantity) pairs always produces the same pattern,
// regardless of the order items were submitted in.
type DropPattern struct {
	Hash                string    `json:"hash"`
	OriginalFingerprint string    `json:"originalFingerprint"`
	Drops               ItemDrops `json:"drops"`
}

// NewDropPattern canonicalizes drops by sorting on itemId ascending and
// fingerprints the result. The input slice is not modified.
func NewDropPattern(drops ItemDrops) *DropPattern {
	sorted := make(ItemDrops, len(drops))
	copy(sorted, drops)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ItemID != sorted[j].ItemID {
			return sorted[i].ItemID < sorted[j].ItemID
		}
		return sorted[i].Quantity < sorted[j].Quantity
	})

	segments := make([]string, len(sorted))
	for i, drop := range sorted {
		segments[i] = drop.ItemID + ":" + strconv.Itoa(drop.Quantity)
	}
	fingerprint := strings.Join(segments, "|")

	return &DropPattern{
		Hash:                strconv.FormatUint(xxh3.HashString(fingerprint), 16),
		OriginalFingerprint: fingerprint,
		Drops:               sorted,
	}
}
