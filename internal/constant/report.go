package constant

const (
	DropTypeNormal    = "NORMAL"
	DropTypeSpecial   = "SPECIAL"
	DropTypeExtra     = "EXTRA"
	DropTypeFurniture = "FURNITURE"
)

// DropTypes enumerates every known drop type in reward-table order.
// Validation iterates the full list even when a type has no drop info
// configured for a stage, in which case the type is skipped, not failed.
// The list must not be modified.
var DropTypes = []string{
	DropTypeNormal,
	DropTypeSpecial,
	DropTypeExtra,
	DropTypeFurniture,
}

const (
	// MaxReportTimes caps the attempt count a single report may carry.
	MaxReportTimes = 100

	// MaxDropQuantity caps the quantity of a single item in one report.
	MaxDropQuantity = 1000
)
