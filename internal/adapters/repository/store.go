// Package repository defines the draft snapshot store interface and errors.
package repository

import (
	"context"

	"github.com/okian/sherrin/internal/draft/model"
)

// Store provides read/write access to the draft state. The snapshot is the
// unit of consistency: readers always see a complete, internally consistent
// draft and writers replace it atomically.
type Store interface {
	// Snapshot returns a deep copy of the current draft state.
	Snapshot(ctx context.Context) model.Snapshot

	// Replace swaps the whole draft state for snap.
	Replace(ctx context.Context, snap model.Snapshot) error

	// Update applies fn to a private copy of the state and commits the
	// result. Returning an error from fn aborts the commit.
	Update(ctx context.Context, fn func(snap *model.Snapshot) error) error

	// ExportJSON serializes the current state for backup or transfer.
	ExportJSON(ctx context.Context) ([]byte, error)

	// ImportJSON replaces the current state with a previously exported
	// snapshot. Returns ErrBadSnapshot when the payload does not decode.
	ImportJSON(ctx context.Context, data []byte) error
}
