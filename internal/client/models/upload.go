// Package models defines the client-side data model of tracked uploads.
package models

import (
	"math"
	"time"
)

// Status is the lifecycle state of an upload record.
type Status string

const (
	StatusProgress Status = "progress"
	StatusSuccess  Status = "success"
	StatusError    Status = "error"
	StatusCanceled Status = "canceled"
)

// IsTerminal reports whether the status ends a pipeline run.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError || s == StatusCanceled
}

// Upload is one tracked file. Values are immutable snapshots: the
// orchestrator replaces a record wholesale on every change, so a copy
// handed to a reader never changes underneath it.
type Upload struct {
	// ID is generated by the orchestrator and never reused.
	ID string

	// Name is the display name of the source file.
	Name string

	// Source is the original file, owned by this record.
	Source File

	Status Status

	// OriginalSize is fixed at creation.
	OriginalSize int64

	// CompressedSize is nil until the compression stage of the current run
	// has finished.
	CompressedSize *int64

	// Transferred never decreases within a run and never exceeds the
	// compressed size (or the original size before compression finishes).
	Transferred int64

	// RemoteRef identifies the stored object; empty until success.
	RemoteRef string

	// Err is the text of the failure that moved the record to StatusError.
	Err string

	// Attempt counts pipeline runs started for this record, starting at 1.
	Attempt int

	// Version increases with every committed change of this record. Of two
	// snapshots of the same record, the one with the higher Version is newer.
	Version uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Limit is the upper bound for Transferred.
func (u Upload) Limit() int64 {
	if u.CompressedSize != nil {
		return *u.CompressedSize
	}
	return u.OriginalSize
}

// Percent is the completion of this record in [0, 100].
func (u Upload) Percent() int {
	if u.Status == StatusSuccess {
		return 100
	}
	if u.CompressedSize == nil {
		return 0
	}
	return Percent(u.Transferred, *u.CompressedSize)
}

// Savings is how much smaller the compressed payload is than the original,
// in percent. Zero until compression finishes.
func (u Upload) Savings() int {
	if u.CompressedSize == nil || u.OriginalSize <= 0 {
		return 0
	}
	saved := u.OriginalSize - *u.CompressedSize
	if saved <= 0 {
		return 0
	}
	return Percent(saved, u.OriginalSize)
}

// Progress is the aggregate view across all records.
type Progress struct {
	HasPendingWork bool
	Percent        int
}

// CompressOptions are handed to the compression service on every run.
type CompressOptions struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// Percent returns min(round(part*100/total), 100), or 0 for an empty total.
func Percent(part, total int64) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	p := math.Round(float64(part) * 100 / float64(total))
	if p > 100 {
		return 100
	}
	return int(p)
}
