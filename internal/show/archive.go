// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package show

import "time"

// # Archive Entities

// ArchivedShow is a show persisted by the [Syncer], with its cast in sorted order.
type ArchivedShow struct {
	Show

	// Slug is the unique, human-readable identifier (e.g. "under-the-dome-1").
	Slug string `json:"slug"`

	// Page is the catalog page the show was last seen on.
	Page int `json:"page"`

	SyncedAt time.Time `json:"synced_at"`
}

// SyncStatus is the lifecycle state of a [SyncRun].
type SyncStatus string

const (
	SyncRunning   SyncStatus = "running"
	SyncCompleted SyncStatus = "completed"
	SyncFailed    SyncStatus = "failed"
)

// SyncRun records one pass of the [Syncer] over the catalog.
type SyncRun struct {
	ID         string     `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Pages      int        `json:"pages"`
	Shows      int        `json:"shows"`
	Status     SyncStatus `json:"status"`
	Error      string     `json:"error,omitempty"`
}
