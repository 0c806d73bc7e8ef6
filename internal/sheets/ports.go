package sheets

import (
	"context"

	"culvert/internal/ledger"
)

// SnapshotRange covers the whole ledger grid the engine ever addresses.
const SnapshotRange = "A1:ZZ"

// Ports for outbound adapters.
type (
	// RangeReader returns the rectangular snapshot for an A1-style range.
	// Missing cells read as empty strings; rows may be ragged.
	RangeReader interface {
		ReadRange(ctx context.Context, rangeSpec string) (ledger.Snapshot, error)
	}

	// BatchWriter applies a set of range writes. Application is best-effort
	// per call; callers do not rely on cross-write atomicity.
	BatchWriter interface {
		BatchWrite(ctx context.Context, writes []ledger.CellWrite) error
	}

	// LedgerStore is the full store contract the tracker depends on.
	LedgerStore interface {
		RangeReader
		BatchWriter
	}
)
